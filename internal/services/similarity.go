package services

import (
	"math"
	"strings"
)

type SimilarityScorer interface {
	Score(normalizedResume, normalizedJob string) float64
}

type tfidfScorer struct {
	maxN int
}

// NewSimilarityScorer returns a TF-IDF cosine scorer over unigrams and bigrams.
func NewSimilarityScorer() SimilarityScorer {
	return &tfidfScorer{maxN: 2}
}

// Score returns the cosine similarity of the two texts' TF-IDF vectors, scaled to 0-100.
// The vocabulary and document frequencies come from these two texts only.
func (s *tfidfScorer) Score(normalizedResume, normalizedJob string) float64 {
	docs := []map[string]int{
		termCounts(normalizedResume, s.maxN),
		termCounts(normalizedJob, s.maxN),
	}

	df := make(map[string]int)
	for _, counts := range docs {
		for term := range counts {
			df[term]++
		}
	}

	idf := make(map[string]float64, len(df))
	n := float64(len(docs))
	for term, freq := range df {
		idf[term] = math.Log((1+n)/(1+float64(freq))) + 1
	}

	a := weigh(docs[0], idf)
	b := weigh(docs[1], idf)

	return clampPercent(cosine(a, b) * 100)
}

// termCounts counts every n-gram of length 1..maxN over the space-separated tokens.
func termCounts(normalized string, maxN int) map[string]int {
	counts := make(map[string]int)
	tokens := strings.Fields(normalized)
	for size := 1; size <= maxN; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+size], " ")]++
		}
	}
	return counts
}

func weigh(counts map[string]int, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64, len(counts))
	for term, tf := range counts {
		vec[term] = float64(tf) * idf[term]
	}
	return vec
}

// cosine is 0 when either vector is the zero vector.
func cosine(a, b map[string]float64) float64 {
	normA := norm(a)
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	var dot float64
	for term, w := range small {
		dot += w * large[term]
	}
	return dot / (normA * normB)
}

func norm(v map[string]float64) float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

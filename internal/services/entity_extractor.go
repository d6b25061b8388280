package services

import (
	"strings"
	"unicode"

	"alfredoptarigan/ats-analyzer/internal/models"
)

// Entities is what one annotation pass yields for a text.
type Entities struct {
	Name   string
	Skills models.SkillSet
}

type EntityExtractorService interface {
	Extract(text string) (*Entities, error)
	ExtractName(text string) (string, error)
	ExtractSkills(text string) (models.SkillSet, error)
}

type entityExtractorService struct {
	annotator Annotator
}

func NewEntityExtractorService(annotator Annotator) EntityExtractorService {
	return &entityExtractorService{annotator: annotator}
}

// nounTags are the Penn Treebank tags for common and proper nouns.
var nounTags = map[string]bool{
	"NN":   true,
	"NNS":  true,
	"NNP":  true,
	"NNPS": true,
}

const personLabel = "PERSON"

func (e *entityExtractorService) Extract(text string) (*Entities, error) {
	if strings.TrimSpace(text) == "" {
		return &Entities{Name: models.UnknownApplicant, Skills: models.NewSkillSet()}, nil
	}

	ann, err := e.annotator.Annotate(text)
	if err != nil {
		return nil, err
	}

	return &Entities{
		Name:   personName(ann),
		Skills: skillTokens(ann),
	}, nil
}

func (e *entityExtractorService) ExtractName(text string) (string, error) {
	ents, err := e.Extract(text)
	if err != nil {
		return "", err
	}
	return ents.Name, nil
}

func (e *entityExtractorService) ExtractSkills(text string) (models.SkillSet, error) {
	ents, err := e.Extract(text)
	if err != nil {
		return nil, err
	}
	return ents.Skills, nil
}

// personName returns the first PERSON entity, or the unknown-applicant sentinel.
func personName(ann *Annotation) string {
	for _, ent := range ann.Entities {
		if ent.Label != personLabel {
			continue
		}
		if name := strings.TrimSpace(ent.Text); name != "" {
			return name
		}
	}
	return models.UnknownApplicant
}

// skillTokens keeps noun tokens that are neither stop words nor punctuation.
// This is a coarse proxy for skills and will include non-skill nouns.
func skillTokens(ann *Annotation) models.SkillSet {
	skills := models.NewSkillSet()
	for _, tok := range ann.Tokens {
		if !nounTags[tok.Tag] {
			continue
		}
		if IsStopWord(tok.Text) || isPunct(tok.Text) {
			continue
		}
		skills.Add(strings.ToLower(tok.Text))
	}
	return skills
}

func isPunct(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

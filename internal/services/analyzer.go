package services

import (
	"log"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type AnalyzerService interface {
	Analyze(document []byte, jobDescription string) (*models.AnalysisResult, error)
}

type analyzerService struct {
	parser   DocumentParserService
	entities EntityExtractorService
	scorer   SimilarityScorer
}

func NewAnalyzerService(
	parser DocumentParserService,
	entities EntityExtractorService,
	scorer SimilarityScorer,
) AnalyzerService {
	return &analyzerService{
		parser:   parser,
		entities: entities,
		scorer:   scorer,
	}
}

// Analyze compares a resume document against a job description.
// It returns a complete result or an error, never both.
func (a *analyzerService) Analyze(document []byte, jobDescription string) (*models.AnalysisResult, error) {
	// Step 1: Document text
	resumeText, err := a.parser.ExtractText(document)
	if err != nil {
		return nil, err
	}

	// Step 2: Name and skills
	resume, err := a.entities.Extract(resumeText)
	if err != nil {
		return nil, err
	}

	jobSkills, err := a.entities.ExtractSkills(jobDescription)
	if err != nil {
		return nil, err
	}

	matching, missing := CompareSkills(resume.Skills, jobSkills)

	// Step 3: Similarity over normalized text
	score := a.scorer.Score(NormalizeText(resumeText), NormalizeText(jobDescription))

	log.Printf("📊 Analysis for %q: score %.1f, %d matching, %d missing\n",
		resume.Name, score, matching.Len(), missing.Len())

	return &models.AnalysisResult{
		MatchPercentage: score,
		MatchingSkills:  matching,
		MissingSkills:   missing,
		ApplicantName:   resume.Name,
	}, nil
}

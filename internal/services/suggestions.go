package services

import "alfredoptarigan/ats-analyzer/internal/models"

const (
	// ImprovementThreshold is the score below which improvement tips are shown.
	ImprovementThreshold = 85.0
	// ResourceThreshold is the score below which learning resources are shown.
	ResourceThreshold = 50.0
)

var improvementTips = []string{
	"Add the missing skills to your resume (if you possess them).",
	"Use clear section headings like Experience, Education, and Skills.",
	"Avoid using images, tables, or complex formatting.",
	"Use keywords from the job description naturally in your resume.",
	"Quantify your achievements with numbers or metrics.",
}

var learningResources = []models.Resource{
	{Title: "How to Write a Winning Resume", URL: "https://youtu.be/y8YH0Qbu5h4"},
	{Title: "Tips for ATS-Friendly Resumes", URL: "https://youtu.be/J-4Fv8nq1iA"},
	{Title: "Improve Your Skills with Free Courses", URL: "https://youtu.be/yp693O87GmM"},
}

// BuildSuggestions picks the static advice that applies to a match score.
func BuildSuggestions(score float64) models.Suggestions {
	var s models.Suggestions
	if score < ImprovementThreshold {
		s.Improvements = append([]string(nil), improvementTips...)
	}
	if score < ResourceThreshold {
		s.Resources = append([]models.Resource(nil), learningResources...)
	}
	return s
}

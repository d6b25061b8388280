package models

type AnalyzeResponse struct {
	ID              string      `json:"id"`
	ApplicantName   string      `json:"applicant_name"`
	MatchPercentage float64     `json:"match_percentage"`
	MatchingSkills  []string    `json:"matching_skills"`
	MissingSkills   []string    `json:"missing_skills"`
	Suggestions     Suggestions `json:"suggestions"`
}

type Suggestions struct {
	Improvements []string   `json:"improvements,omitempty"`
	Resources    []Resource `json:"resources,omitempty"`
}

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

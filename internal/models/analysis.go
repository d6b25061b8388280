package models

import (
	"encoding/json"
	"sort"
)

// UnknownApplicant is reported when no person entity is found in the resume.
const UnknownApplicant = "Unknown Applicant"

// SkillSet is a set of lowercase skill tokens.
type SkillSet map[string]struct{}

func NewSkillSet(skills ...string) SkillSet {
	s := make(SkillSet, len(skills))
	for _, skill := range skills {
		s.Add(skill)
	}
	return s
}

func (s SkillSet) Add(skill string) {
	s[skill] = struct{}{}
}

func (s SkillSet) Contains(skill string) bool {
	_, ok := s[skill]
	return ok
}

func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var skills []string
	if err := json.Unmarshal(data, &skills); err != nil {
		return err
	}
	*s = NewSkillSet(skills...)
	return nil
}

// AnalysisResult is the outcome of comparing one resume against one job description.
type AnalysisResult struct {
	MatchPercentage float64  `json:"match_percentage"`
	MatchingSkills  SkillSet `json:"matching_skills"`
	MissingSkills   SkillSet `json:"missing_skills"`
	ApplicantName   string   `json:"applicant_name"`
}

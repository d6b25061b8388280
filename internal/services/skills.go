package services

import "alfredoptarigan/ats-analyzer/internal/models"

// CompareSkills returns the job skills the resume has (matching) and
// the job skills it lacks (missing). The two results never overlap.
func CompareSkills(resumeSkills, jobSkills models.SkillSet) (matching, missing models.SkillSet) {
	matching = models.NewSkillSet()
	missing = models.NewSkillSet()

	small, large := resumeSkills, jobSkills
	if small.Len() > large.Len() {
		small, large = large, small
	}
	for skill := range small {
		if large.Contains(skill) {
			matching.Add(skill)
		}
	}

	for skill := range jobSkills {
		if !resumeSkills.Contains(skill) {
			missing.Add(skill)
		}
	}
	return matching, missing
}

package services

import (
	"fmt"
	"strings"
)

const noSkillsSummary = "No specific technical skills detected in the resume."

// Summarize lists the skills from skills that occur (as substrings,
// case-insensitively) in the resume, in the order of skills.
func Summarize(resumeText string, skills []string) string {
	resumeLower := strings.ToLower(resumeText)

	var matched []string
	for _, skill := range skills {
		if strings.Contains(resumeLower, skill) {
			matched = append(matched, skill)
		}
	}

	if len(matched) == 0 {
		return noSkillsSummary
	}

	return fmt.Sprintf("This resume highlights skills in: %s", strings.Join(matched, ", "))
}

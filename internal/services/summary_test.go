package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	skills := []string{"python", "sql", "c++", "power bi", "aws"}

	tests := []struct {
		name   string
		resume string
		want   string
	}{
		{
			name:   "skills in list order",
			resume: "Built AWS pipelines in Python and SQL",
			want:   "This resume highlights skills in: python, sql, aws",
		},
		{
			name:   "multi-word and symbol skills",
			resume: "Dashboards in Power BI, services in C++",
			want:   "This resume highlights skills in: c++, power bi",
		},
		{
			name:   "substring match",
			resume: "mysql administrator",
			want:   "This resume highlights skills in: sql",
		},
		{
			name:   "no skills",
			resume: "Pastry chef with ten years of experience",
			want:   "No specific technical skills detected in the resume.",
		},
		{
			name:   "empty resume",
			resume: "",
			want:   "No specific technical skills detected in the resume.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.resume, skills))
		})
	}
}

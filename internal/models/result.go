package models

type UploadResponse struct {
	ResumeText   string `json:"resume_text"`
	ExtractionID string `json:"extraction_id,omitempty"`
}

type MatchRequest struct {
	Resume string `json:"resume" validate:"required"`
	Job    string `json:"job" validate:"required"`
}

type MatchResponse struct {
	Score    float64  `json:"score"`
	Keywords []string `json:"keywords"`
}

type JobDescription struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type MatchMultipleRequest struct {
	Resume string           `json:"resume" validate:"required"`
	Jobs   []JobDescription `json:"jobs" validate:"required,min=1"`
}

type JobMatch struct {
	Title    string   `json:"title"`
	Score    float64  `json:"score"`
	Keywords []string `json:"keywords"`
}

type MatchMultipleResponse struct {
	Results []JobMatch `json:"results"`
}

type SummaryRequest struct {
	Resume string `json:"resume" validate:"required"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

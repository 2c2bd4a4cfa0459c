package model

import "time"

// ExportRow is one submitted participant in an assessment export
type ExportRow struct {
	Code            string          `json:"code"`
	SubmittedAt     time.Time       `json:"submittedAt"`
	PersonalScore   float64         `json:"personalScore"`
	Grade           string          `json:"grade"`
	DimensionScores DimensionScores `json:"dimensionScores"`
}

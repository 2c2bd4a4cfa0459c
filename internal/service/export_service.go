package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"teamhealth/internal/model"
	"teamhealth/internal/repository"
	"time"
)

// ExportService produces per-participant exports of an assessment
type ExportService struct {
	assessments  repository.AssessmentRepo
	participants repository.ParticipantRepo
}

// NewExportService creates a new export service
func NewExportService(assessments repository.AssessmentRepo, participants repository.ParticipantRepo) *ExportService {
	return &ExportService{
		assessments:  assessments,
		participants: participants,
	}
}

// Rows returns one row per submitted participant, in issue order
func (s *ExportService) Rows(ctx context.Context, assessmentID string) ([]model.ExportRow, error) {
	a, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if a == nil {
		return nil, ErrAssessmentNotFound
	}

	participants, err := s.participants.ListByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	rows := []model.ExportRow{}
	for _, p := range participants {
		if !p.Submitted() {
			continue
		}
		rows = append(rows, model.ExportRow{
			Code:            p.Code,
			SubmittedAt:     *p.SubmittedAt,
			PersonalScore:   p.Result.PersonalScore,
			Grade:           p.Result.Grade,
			DimensionScores: p.Result.DimensionScores,
		})
	}
	return rows, nil
}

// CSVHeader is the first line of a CSV export
func CSVHeader() []string {
	header := []string{"code", "submitted_at", "personal_score", "grade"}
	for _, dim := range model.Dimensions {
		header = append(header, string(dim))
	}
	return header
}

// WriteCSV writes rows with scores formatted to one decimal
func WriteCSV(w io.Writer, rows []model.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader()); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Code,
			r.SubmittedAt.UTC().Format(time.RFC3339),
			formatScore(r.PersonalScore),
			r.Grade,
		}
		for _, dim := range model.Dimensions {
			record = append(record, formatScore(r.DimensionScores.Get(dim)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

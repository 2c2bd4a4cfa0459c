package service

import (
	"context"
	"regexp"
	"teamhealth/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

func TestNewParticipantCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code := NewParticipantCode()
		assert.Regexp(t, codePattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 190)
}

func TestAssessmentCreateIssuesCodes(t *testing.T) {
	f := newFixture(t)
	org := f.createOrg(t, "Acme", "")

	resp := f.createAssessment(t, org.ID, "Platform", 2, "a@example.com", "b@example.com", "c@example.com")
	assert.Equal(t, 3, resp.Assessment.ExpectedParticipants)
	assert.Equal(t, model.AssessmentOpen, resp.Assessment.Status)
	require.Len(t, resp.Participants, 3)
	assert.Equal(t, "c@example.com", resp.Participants[2].Email)
	for _, p := range resp.Participants {
		assert.Equal(t, resp.Assessment.ID, p.AssessmentID)
		assert.Regexp(t, codePattern, p.Code)
	}

	listed, err := f.assessmentSvc.ListParticipants(context.Background(), resp.Assessment.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestAssessmentCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.CreateAssessmentRequest
		want error
	}{
		{"missing team", model.CreateAssessmentRequest{ExpectedParticipants: 3}, ErrInvalidInput},
		{"no participants", model.CreateAssessmentRequest{TeamName: "A"}, ErrInvalidInput},
		{"too many", model.CreateAssessmentRequest{TeamName: "A", ExpectedParticipants: maxParticipants + 1}, ErrInvalidInput},
		{"unknown org", model.CreateAssessmentRequest{TeamName: "A", ExpectedParticipants: 3, OrganizationID: "nope"}, ErrOrganizationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.assessmentSvc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAssessmentAddParticipantsAndClose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := f.createAssessment(t, "", "Platform", 2)
	id := resp.Assessment.ID

	added, err := f.assessmentSvc.AddParticipants(ctx, id, model.AddParticipantsRequest{Count: 2})
	require.NoError(t, err)
	assert.Len(t, added, 2)

	a, err := f.assessmentSvc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, a.ExpectedParticipants)

	closed, err := f.assessmentSvc.Close(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.AssessmentClosed, closed.Status)

	_, err = f.assessmentSvc.AddParticipants(ctx, id, model.AddParticipantsRequest{Count: 1})
	assert.ErrorIs(t, err, ErrAssessmentClosed)

	_, err = f.assessmentSvc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

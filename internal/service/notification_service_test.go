package service

import (
	"context"
	"teamhealth/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendInvitations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := f.createAssessment(t, "", "Platform", 4, "a@example.com", "b@example.com", "c@example.com")
	f.submit(t, resp.Participants[0].Code, 4)
	f.mailer.fail["c@example.com"] = true

	result, err := f.notifySvc.SendInvitations(ctx, resp.Assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Sent)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "c@example.com", result.Failures[0].To)

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "b@example.com", msg.To)
	assert.Contains(t, msg.Text, resp.Participants[1].Code)
	assert.Contains(t, msg.Text, "https://survey.test/s/"+resp.Participants[1].Code)

	invited, err := f.participants.GetByCode(ctx, resp.Participants[1].Code)
	require.NoError(t, err)
	assert.NotNil(t, invited.InvitedAt)
	failed, err := f.participants.GetByCode(ctx, resp.Participants[2].Code)
	require.NoError(t, err)
	assert.Nil(t, failed.InvitedAt)
}

func TestSendSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := f.createOrg(t, "Acme", "")
	resp := f.createAssessment(t, org.ID, "Alpha", 1)
	f.submit(t, resp.Participants[0].Code, 4)
	_, err := f.reportSvc.GenerateTeamReport(ctx, resp.Assessment.ID)
	require.NoError(t, err)

	_, err = f.notifySvc.SendSummary(ctx, org.ID, []string{"ceo@example.com"})
	assert.ErrorIs(t, err, ErrSummaryNotFound)

	_, err = f.reportSvc.GenerateSummary(ctx, org.ID)
	require.NoError(t, err)

	_, err = f.notifySvc.SendSummary(ctx, org.ID, []string{" "})
	assert.ErrorIs(t, err, ErrNoRecipients)

	result, err := f.notifySvc.SendSummary(ctx, org.ID, []string{"ceo@example.com", "hr@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, "Team health summary: Acme", f.mailer.sent[0].Subject)
	assert.Contains(t, f.mailer.sent[0].Text, "1. Alpha: 80.0 (Exceptional Team)")

	summary, err := f.reportSvc.Summary(ctx, org.ID)
	require.NoError(t, err)
	assert.True(t, summary.EmailSent)
}

func TestSendSummaryAllFailedLeavesFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := f.createOrg(t, "Acme", "")
	resp := f.createAssessment(t, org.ID, "Alpha", 1)
	f.submit(t, resp.Participants[0].Code, 4)
	_, err := f.reportSvc.GenerateTeamReport(ctx, resp.Assessment.ID)
	require.NoError(t, err)
	_, err = f.reportSvc.GenerateSummary(ctx, org.ID)
	require.NoError(t, err)

	f.mailer.fail["ceo@example.com"] = true
	result, err := f.notifySvc.SendSummary(ctx, org.ID, []string{"ceo@example.com"})
	require.NoError(t, err)
	assert.Zero(t, result.Sent)

	summary, err := f.reportSvc.Summary(ctx, org.ID)
	require.NoError(t, err)
	assert.False(t, summary.EmailSent)
}

func TestSummaryDigest(t *testing.T) {
	summary := &model.OrganizationSummary{
		CompletedTeams:   1,
		PendingTeams:     2,
		AverageTeamScore: 71.25,
		AvgParticipation: 90,
		TeamComparisons:  []model.TeamComparison{{Rank: 1, TeamName: "Alpha", TeamScore: 71.2, HealthGrade: "Healthy Team"}},
		Insights:         model.OrganizationInsights{Recommendations: []string{"Keep going"}},
	}
	text := SummaryDigest("Acme", summary)
	assert.Contains(t, text, "Teams: 1 completed, 2 pending")
	assert.Contains(t, text, "Average participation: 90.0%")
	assert.Contains(t, text, "\nRecommendations\n- Keep going\n")
	assert.NotContains(t, text, "Strengths")
}

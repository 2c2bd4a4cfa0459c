package service

import (
	"context"
	"fmt"
	"strings"
	"teamhealth/internal/model"
	"teamhealth/internal/repository"
	"time"

	"go.uber.org/zap"
)

// NotificationService emails invitations and organization summaries
type NotificationService struct {
	assessments  repository.AssessmentRepo
	participants repository.ParticipantRepo
	orgs         repository.OrganizationRepo
	reports      *ReportService
	mailer       Mailer
	delay        time.Duration
	surveyURL    string
	logger       *zap.Logger
	now          func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	assessments repository.AssessmentRepo,
	participants repository.ParticipantRepo,
	orgs repository.OrganizationRepo,
	reports *ReportService,
	mailer Mailer,
	delay time.Duration,
	surveyURL string,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		assessments:  assessments,
		participants: participants,
		orgs:         orgs,
		reports:      reports,
		mailer:       mailer,
		delay:        delay,
		surveyURL:    surveyURL,
		logger:       logger,
		now:          time.Now,
	}
}

// SendInvitations emails every unsubmitted participant that has an email address
func (s *NotificationService) SendInvitations(ctx context.Context, assessmentID string) (*model.BulkMailResult, error) {
	a, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if a == nil {
		return nil, ErrAssessmentNotFound
	}
	if a.Status == model.AssessmentClosed {
		return nil, ErrAssessmentClosed
	}

	participants, err := s.participants.ListByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	var pending []*model.Participant
	var msgs []model.MailMessage
	for _, p := range participants {
		if p.Email == "" || p.Submitted() {
			continue
		}
		pending = append(pending, p)
		msgs = append(msgs, s.invitation(a, p))
	}

	result := SendBulk(ctx, s.mailer, msgs, s.delay, func(i int) {
		if err := s.participants.MarkInvited(ctx, pending[i].Code, s.now().UTC()); err != nil {
			s.logger.Warn("failed to record invitation", zap.String("assessment", a.ID), zap.Error(err))
		}
	})

	s.logger.Info("invitations dispatched",
		zap.String("assessment", a.ID),
		zap.Int("attempted", result.Attempted),
		zap.Int("sent", result.Sent),
		zap.Int("failed", len(result.Failures)))
	return &result, nil
}

// SendSummary emails the organization summary digest and marks the summary
// as emailed when at least one send succeeded
func (s *NotificationService) SendSummary(ctx context.Context, orgID string, recipients []string) (*model.BulkMailResult, error) {
	to := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	summary, err := s.reports.Summary(ctx, orgID)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Team health summary: %s", org.Name)
	body := SummaryDigest(org.Name, summary)
	msgs := make([]model.MailMessage, len(to))
	for i, addr := range to {
		msgs[i] = model.MailMessage{To: addr, Subject: subject, Text: body}
	}

	result := SendBulk(ctx, s.mailer, msgs, s.delay, nil)
	if result.Sent > 0 {
		if err := s.reports.MarkSummaryEmailed(ctx, orgID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("summary emailed",
		zap.String("organization", orgID),
		zap.Int("sent", result.Sent),
		zap.Int("failed", len(result.Failures)))
	return &result, nil
}

func (s *NotificationService) invitation(a *model.Assessment, p *model.Participant) model.MailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Your team %s is taking the team health survey.\n\n", a.TeamName)
	fmt.Fprintf(&b, "Your personal access code: %s\n", p.Code)
	if s.surveyURL != "" {
		fmt.Fprintf(&b, "Answer the survey here: %s%s\n", s.surveyURL, p.Code)
	}
	b.WriteString("\nThe survey has 27 statements and takes about ten minutes. Individual answers are never shown to your team.\n")
	return model.MailMessage{
		To:      p.Email,
		Subject: fmt.Sprintf("Team health survey for %s", a.TeamName),
		Text:    b.String(),
	}
}

// SummaryDigest renders an organization summary as plain text
func SummaryDigest(orgName string, summary *model.OrganizationSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Team health summary for %s\n\n", orgName)
	fmt.Fprintf(&b, "Teams: %d completed, %d pending\n", summary.CompletedTeams, summary.PendingTeams)
	fmt.Fprintf(&b, "Average team score: %.1f (highest %.1f, lowest %.1f)\n", summary.AverageTeamScore, summary.HighestScore, summary.LowestScore)
	fmt.Fprintf(&b, "Average participation: %.1f%%\n", summary.AvgParticipation)

	b.WriteString("\nRanking\n")
	for _, t := range summary.TeamComparisons {
		fmt.Fprintf(&b, "%d. %s: %.1f (%s)\n", t.Rank, t.TeamName, t.TeamScore, t.HealthGrade)
	}

	writeSection(&b, "Strengths", summary.Insights.Strengths)
	writeSection(&b, "Concerns", summary.Insights.Concerns)
	writeSection(&b, "Recommendations", summary.Insights.Recommendations)
	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, l := range lines {
		fmt.Fprintf(b, "- %s\n", l)
	}
}

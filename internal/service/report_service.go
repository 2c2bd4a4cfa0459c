package service

import (
	"context"
	"fmt"
	"teamhealth/internal/cache"
	"teamhealth/internal/model"
	"teamhealth/internal/repository"
	"teamhealth/internal/scoring"
	"teamhealth/internal/trustmatrix"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const summaryLoadConcurrency = 8

// ReportService generates team reports and organization summaries
type ReportService struct {
	assessments  repository.AssessmentRepo
	participants repository.ParticipantRepo
	reports      repository.ReportRepo
	orgs         repository.OrganizationRepo
	reportCache  cache.ReportCache
	ranking      cache.RankingCache
	broadcaster  Broadcaster
	logger       *zap.Logger
	now          func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	assessments repository.AssessmentRepo,
	participants repository.ParticipantRepo,
	reports repository.ReportRepo,
	orgs repository.OrganizationRepo,
	reportCache cache.ReportCache,
	ranking cache.RankingCache,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		assessments:  assessments,
		participants: participants,
		reports:      reports,
		orgs:         orgs,
		reportCache:  reportCache,
		ranking:      ranking,
		broadcaster:  nopBroadcaster{},
		logger:       logger,
		now:          time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ReportService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GenerateTeamReport recomputes the team report from every submission and replaces the stored one
func (s *ReportService) GenerateTeamReport(ctx context.Context, assessmentID string) (*model.TeamReport, error) {
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

	results := make([]*model.PersonalResult, 0, len(participants))
	for _, p := range participants {
		if p.Submitted() {
			results = append(results, p.Result)
		}
	}
	if len(results) == 0 {
		return nil, scoring.ErrNoSubmissions
	}

	ts, dims, err := scoring.ScoreTeam(results)
	if err != nil {
		return nil, err
	}

	report := &model.TeamReport{
		AssessmentID:       a.ID,
		OrganizationID:     a.OrganizationID,
		TeamName:           a.TeamName,
		TeamScore:          *ts,
		DimensionScores:    dims,
		ParticipationCount: len(results),
		ParticipationRate:  scoring.ParticipationRate(len(results), len(participants)),
		ComputedAt:         s.now().UTC(),
	}

	if err := s.reports.SaveTeamReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save team report: %w", err)
	}
	if err := s.reportCache.SetTeamReport(ctx, report); err != nil {
		s.logger.Warn("failed to cache team report", zap.String("assessment", a.ID), zap.Error(err))
	}
	if a.OrganizationID != "" {
		if err := s.ranking.UpdateTeamScore(ctx, a.OrganizationID, a.ID, report.Score); err != nil {
			s.logger.Warn("failed to update ranking", zap.String("organization", a.OrganizationID), zap.Error(err))
		}
	}

	s.logger.Info("team report generated",
		zap.String("assessment", a.ID),
		zap.Float64("teamScore", report.Score),
		zap.String("grade", report.HealthGrade),
		zap.Int("submissions", report.ParticipationCount))

	s.broadcaster.Broadcast(AssessmentTopic(a.ID), EventTeamReportUpdated, report)
	if a.OrganizationID != "" {
		s.broadcaster.Broadcast(OrganizationTopic(a.OrganizationID), EventTeamReportUpdated, report)
	}
	return report, nil
}

// TeamReport returns the latest team report, from cache when possible
func (s *ReportService) TeamReport(ctx context.Context, assessmentID string) (*model.TeamReport, error) {
	cached, err := s.reportCache.GetTeamReport(ctx, assessmentID)
	if err != nil {
		s.logger.Warn("team report cache read failed", zap.String("assessment", assessmentID), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	report, err := s.reports.GetTeamReport(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if err := s.reportCache.SetTeamReport(ctx, report); err != nil {
		s.logger.Warn("failed to cache team report", zap.String("assessment", assessmentID), zap.Error(err))
	}
	return report, nil
}

// TrustMatrix places the team's dimension averages on the trust matrix
func (s *ReportService) TrustMatrix(ctx context.Context, assessmentID string) (*model.Personalization, error) {
	report, err := s.TeamReport(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	return trustmatrix.Recommend(report.DimensionScores), nil
}

// GenerateSummary rolls up the team reports of an organization's assessments
// and replaces the stored summary. The new summary has not been emailed.
func (s *ReportService) GenerateSummary(ctx context.Context, orgID string) (*model.OrganizationSummary, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}

	assessments, err := s.assessments.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}

	teams := make([]model.TeamResult, len(assessments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryLoadConcurrency)
	for i, a := range assessments {
		teams[i] = model.TeamResult{AssessmentID: a.ID, TeamName: a.TeamName}
		g.Go(func() error {
			report, err := s.reports.GetTeamReport(gctx, a.ID)
			if err != nil {
				return fmt.Errorf("failed to load report for %s: %w", a.ID, err)
			}
			teams[i].Report = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary, err := scoring.SummarizeOrganization(orgID, teams)
	if err != nil {
		return nil, err
	}
	summary.GeneratedAt = s.now().UTC()
	summary.EmailSent = false

	if err := s.reports.SaveSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}
	if err := s.reportCache.SetSummary(ctx, summary); err != nil {
		s.logger.Warn("failed to cache summary", zap.String("organization", orgID), zap.Error(err))
	}

	s.logger.Info("organization summary generated",
		zap.String("organization", orgID),
		zap.Int("completedTeams", summary.CompletedTeams),
		zap.Int("pendingTeams", summary.PendingTeams),
		zap.Float64("averageTeamScore", summary.AverageTeamScore))

	s.broadcaster.Broadcast(OrganizationTopic(orgID), EventSummaryRegenerated, summary)
	return summary, nil
}

// Summary returns the stored organization summary, from cache when possible
func (s *ReportService) Summary(ctx context.Context, orgID string) (*model.OrganizationSummary, error) {
	cached, err := s.reportCache.GetSummary(ctx, orgID)
	if err != nil {
		s.logger.Warn("summary cache read failed", zap.String("organization", orgID), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	summary, err := s.reports.GetSummary(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}
	if summary == nil {
		return nil, ErrSummaryNotFound
	}
	if err := s.reportCache.SetSummary(ctx, summary); err != nil {
		s.logger.Warn("failed to cache summary", zap.String("organization", orgID), zap.Error(err))
	}
	return summary, nil
}

// MarkSummaryEmailed records that the current summary was sent
func (s *ReportService) MarkSummaryEmailed(ctx context.Context, orgID string) error {
	if err := s.reports.MarkSummaryEmailed(ctx, orgID); err != nil {
		return fmt.Errorf("failed to mark summary emailed: %w", err)
	}
	if err := s.reportCache.InvalidateSummary(ctx, orgID); err != nil {
		s.logger.Warn("failed to invalidate summary cache", zap.String("organization", orgID), zap.Error(err))
	}
	return nil
}

// Ranking returns the organization's teams ordered by their latest team score
func (s *ReportService) Ranking(ctx context.Context, orgID string, limit int) ([]cache.RankingEntry, error) {
	if org, err := s.orgs.GetByID(ctx, orgID); err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	} else if org == nil {
		return nil, ErrOrganizationNotFound
	}

	entries, err := s.ranking.GetTop(ctx, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking: %w", err)
	}
	for i := range entries {
		a, err := s.assessments.GetByID(ctx, entries[i].AssessmentID)
		if err != nil {
			s.logger.Warn("failed to load ranked assessment", zap.String("assessment", entries[i].AssessmentID), zap.Error(err))
			continue
		}
		if a != nil {
			entries[i].TeamName = a.TeamName
		}
	}
	return entries, nil
}

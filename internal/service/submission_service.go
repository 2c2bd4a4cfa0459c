package service

import (
	"context"
	"fmt"
	"strings"
	"teamhealth/internal/cache"
	"teamhealth/internal/model"
	"teamhealth/internal/repository"
	"teamhealth/internal/scoring"
	"time"

	"go.uber.org/zap"
)

// SubmissionService scores and stores participant responses
type SubmissionService struct {
	participants repository.ParticipantRepo
	assessments  repository.AssessmentRepo
	reportCache  cache.ReportCache
	broadcaster  Broadcaster
	logger       *zap.Logger
	now          func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	participants repository.ParticipantRepo,
	assessments repository.AssessmentRepo,
	reportCache cache.ReportCache,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		participants: participants,
		assessments:  assessments,
		reportCache:  reportCache,
		broadcaster:  nopBroadcaster{},
		logger:       logger,
		now:          time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SubmissionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates and scores a response set and stores it on the participant code.
// A code accepts exactly one submission.
func (s *SubmissionService) Submit(ctx context.Context, code string, responses model.ResponseSet) (*model.PersonalResult, error) {
	p, a, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	if p.Submitted() {
		return nil, ErrAlreadySubmitted
	}
	if a.Status == model.AssessmentClosed {
		return nil, ErrAssessmentClosed
	}

	result, err := scoring.ScoreResponses(responses)
	if err != nil {
		return nil, err
	}

	submittedAt := s.now().UTC()
	if err := s.participants.SaveSubmission(ctx, p.Code, responses, result, submittedAt); err != nil {
		if err == repository.ErrAlreadySubmitted {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	// the stored team report is stale until it is regenerated
	if err := s.reportCache.InvalidateTeamReport(ctx, a.ID); err != nil {
		s.logger.Warn("failed to invalidate team report cache", zap.String("assessment", a.ID), zap.Error(err))
	}

	s.logger.Info("submission received",
		zap.String("assessment", a.ID),
		zap.Float64("personalScore", result.PersonalScore),
		zap.String("grade", result.Grade))

	s.broadcaster.Broadcast(AssessmentTopic(a.ID), EventSubmissionReceived, map[string]interface{}{
		"assessmentId": a.ID,
		"submittedAt":  submittedAt,
	})
	return result, nil
}

// Status returns the public view of a participant code
func (s *SubmissionService) Status(ctx context.Context, code string) (*model.ParticipantStatus, error) {
	p, a, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	status := &model.ParticipantStatus{
		Code:         p.Code,
		AssessmentID: a.ID,
		TeamName:     a.TeamName,
		Submitted:    p.Submitted(),
	}
	if status.Submitted {
		status.Result = p.Result
	}
	return status, nil
}

func (s *SubmissionService) load(ctx context.Context, code string) (*model.Participant, *model.Assessment, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil, ErrParticipantNotFound
	}

	p, err := s.participants.GetByCode(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if p == nil {
		return nil, nil, ErrParticipantNotFound
	}

	a, err := s.assessments.GetByID(ctx, p.AssessmentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if a == nil {
		return nil, nil, ErrAssessmentNotFound
	}
	return p, a, nil
}

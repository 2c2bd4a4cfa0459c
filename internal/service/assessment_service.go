package service

import (
	"context"
	"fmt"
	"strings"
	"teamhealth/internal/model"
	"teamhealth/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	participantCodeLength = 8
	maxParticipants       = 500
)

// AssessmentService handles assessment creation and participant codes
type AssessmentService struct {
	assessments  repository.AssessmentRepo
	participants repository.ParticipantRepo
	orgs         repository.OrganizationRepo
	logger       *zap.Logger
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	assessments repository.AssessmentRepo,
	participants repository.ParticipantRepo,
	orgs repository.OrganizationRepo,
	logger *zap.Logger,
) *AssessmentService {
	return &AssessmentService{
		assessments:  assessments,
		participants: participants,
		orgs:         orgs,
		logger:       logger,
	}
}

// Create stores a new assessment and issues its participant codes.
// One code is issued per expected participant or per email, whichever is more.
func (s *AssessmentService) Create(ctx context.Context, req model.CreateAssessmentRequest) (*model.CreateAssessmentResponse, error) {
	teamName := strings.TrimSpace(req.TeamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: teamName is required", ErrInvalidInput)
	}
	count := max(req.ExpectedParticipants, len(req.Emails))
	if count < 1 || count > maxParticipants {
		return nil, fmt.Errorf("%w: expectedParticipants must be between 1 and %d", ErrInvalidInput, maxParticipants)
	}

	if req.OrganizationID != "" {
		org, err := s.orgs.GetByID(ctx, req.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load organization: %w", err)
		}
		if org == nil {
			return nil, ErrOrganizationNotFound
		}
	}

	a := &model.Assessment{
		OrganizationID:       req.OrganizationID,
		TeamName:             teamName,
		ExpectedParticipants: count,
		Status:               model.AssessmentOpen,
	}
	if err := s.assessments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	participants, err := s.issueCodes(ctx, a.ID, count, req.Emails)
	if err != nil {
		return nil, err
	}

	s.logger.Info("assessment created",
		zap.String("assessment", a.ID),
		zap.String("team", a.TeamName),
		zap.Int("codes", len(participants)))
	return &model.CreateAssessmentResponse{Assessment: a, Participants: participants}, nil
}

// Get returns one assessment
func (s *AssessmentService) Get(ctx context.Context, id string) (*model.Assessment, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if a == nil {
		return nil, ErrAssessmentNotFound
	}
	return a, nil
}

// ListByOrganization returns the assessments of one organization
func (s *AssessmentService) ListByOrganization(ctx context.Context, orgID string) ([]*model.Assessment, error) {
	return s.assessments.ListByOrganization(ctx, orgID)
}

// AddParticipants issues more codes for an open assessment
func (s *AssessmentService) AddParticipants(ctx context.Context, id string, req model.AddParticipantsRequest) ([]*model.Participant, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == model.AssessmentClosed {
		return nil, ErrAssessmentClosed
	}

	count := max(req.Count, len(req.Emails))
	if count < 1 || a.ExpectedParticipants+count > maxParticipants {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, maxParticipants-a.ExpectedParticipants)
	}

	participants, err := s.issueCodes(ctx, id, count, req.Emails)
	if err != nil {
		return nil, err
	}

	a.ExpectedParticipants += count
	if err := s.assessments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}
	return participants, nil
}

// ListParticipants returns every code issued for an assessment
func (s *AssessmentService) ListParticipants(ctx context.Context, id string) ([]*model.Participant, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.participants.ListByAssessment(ctx, id)
}

// Close stops an assessment from accepting submissions
func (s *AssessmentService) Close(ctx context.Context, id string) (*model.Assessment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == model.AssessmentClosed {
		return a, nil
	}
	a.Status = model.AssessmentClosed
	if err := s.assessments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to close assessment: %w", err)
	}
	s.logger.Info("assessment closed", zap.String("assessment", id))
	return a, nil
}

func (s *AssessmentService) issueCodes(ctx context.Context, assessmentID string, count int, emails []string) ([]*model.Participant, error) {
	participants := make([]*model.Participant, count)
	for i := range participants {
		p := &model.Participant{
			Code:         NewParticipantCode(),
			AssessmentID: assessmentID,
		}
		if i < len(emails) {
			p.Email = strings.TrimSpace(emails[i])
		}
		participants[i] = p
	}
	if err := s.participants.CreateMany(ctx, participants); err != nil {
		return nil, fmt.Errorf("failed to issue participant codes: %w", err)
	}
	return participants, nil
}

// NewParticipantCode returns an 8-character uppercase hexadecimal access code
func NewParticipantCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:participantCodeLength])
}

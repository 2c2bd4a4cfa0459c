package service

import (
	"context"
	"fmt"
	"strings"
	"teamhealth/internal/model"
	"teamhealth/internal/repository"

	"go.uber.org/zap"
)

// OrganizationService manages the organization tree
type OrganizationService struct {
	orgs        repository.OrganizationRepo
	assessments repository.AssessmentRepo
	logger      *zap.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgs repository.OrganizationRepo, assessments repository.AssessmentRepo, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{
		orgs:        orgs,
		assessments: assessments,
		logger:      logger,
	}
}

// Create adds an organization, optionally under an existing parent
func (s *OrganizationService) Create(ctx context.Context, req model.CreateOrganizationRequest) (*model.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.ParentID != "" {
		if err := s.requireParent(ctx, req.ParentID); err != nil {
			return nil, err
		}
	}

	org := &model.Organization{Name: name, ParentID: req.ParentID}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	s.logger.Info("organization created", zap.String("organization", org.ID), zap.String("parent", org.ParentID))
	return org, nil
}

// Get returns one organization
func (s *OrganizationService) Get(ctx context.Context, id string) (*model.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

// List returns every organization, or only the direct children of parentID when it is set
func (s *OrganizationService) List(ctx context.Context, parentID string) ([]*model.Organization, error) {
	if parentID == "" {
		return s.orgs.List(ctx)
	}
	if _, err := s.Get(ctx, parentID); err != nil {
		return nil, err
	}
	return s.orgs.ListChildren(ctx, parentID)
}

// Update renames and/or re-parents an organization
func (s *OrganizationService) Update(ctx context.Context, id string, req model.UpdateOrganizationRequest) (*model.Organization, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		org.Name = name
	}

	if req.ParentID != nil && *req.ParentID != org.ParentID {
		parentID := *req.ParentID
		if parentID != "" {
			if err := s.requireParent(ctx, parentID); err != nil {
				return nil, err
			}
			if err := s.checkCycle(ctx, id, parentID); err != nil {
				return nil, err
			}
		}
		org.ParentID = parentID
	}

	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// Delete removes a leaf organization that has no assessments
func (s *OrganizationService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	children, err := s.orgs.CountChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}
	assessments, err := s.assessments.CountByOrganization(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count assessments: %w", err)
	}
	if children > 0 || assessments > 0 {
		return ErrOrganizationInUse
	}

	if err := s.orgs.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	s.logger.Info("organization deleted", zap.String("organization", id))
	return nil
}

func (s *OrganizationService) requireParent(ctx context.Context, parentID string) error {
	parent, err := s.orgs.GetByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("failed to load parent: %w", err)
	}
	if parent == nil {
		return ErrParentNotFound
	}
	return nil
}

// checkCycle walks up from the proposed parent and fails if it reaches id
func (s *OrganizationService) checkCycle(ctx context.Context, id, parentID string) error {
	seen := map[string]bool{}
	for cur := parentID; cur != ""; {
		if cur == id {
			return ErrOrganizationCycle
		}
		if seen[cur] {
			// existing data already loops; refuse to add to it
			return ErrOrganizationCycle
		}
		seen[cur] = true

		org, err := s.orgs.GetByID(ctx, cur)
		if err != nil {
			return fmt.Errorf("failed to load ancestor: %w", err)
		}
		if org == nil {
			return nil
		}
		cur = org.ParentID
	}
	return nil
}

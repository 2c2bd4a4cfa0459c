package service

import (
	"errors"
	"teamhealth/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrInvalidInput = errors.New("invalid input")

	ErrOrganizationNotFound = errors.New("organization not found")
	ErrParentNotFound       = errors.New("parent organization not found")
	ErrOrganizationCycle    = errors.New("organization cannot be moved under itself or a descendant")
	ErrOrganizationInUse    = errors.New("organization still has child organizations or assessments")

	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrAssessmentClosed    = errors.New("assessment is closed")
	ErrParticipantNotFound = errors.New("participant code not found")
	ErrAlreadySubmitted    = repository.ErrAlreadySubmitted

	ErrReportNotFound  = errors.New("team report not found")
	ErrSummaryNotFound = errors.New("organization summary not found")
	ErrNoRecipients    = errors.New("no recipients")
)

package service

import (
	"context"
	"teamhealth/internal/model"
	"teamhealth/internal/scoring"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	f := &fixture{
		orgs:         newFakeOrgRepo(),
		assessments:  newFakeAssessmentRepo(),
		participants: newFakeParticipantRepo(),
		reports:      newFakeReportRepo(),
		reportCache:  newFakeReportCache(),
		ranking:      newFakeRanking(),
		broadcaster:  &recordingBroadcaster{},
		mailer:       &fakeMailer{fail: map[string]bool{}},
	}

	f.orgSvc = NewOrganizationService(f.orgs, f.assessments, logger)
	f.assessmentSvc = NewAssessmentService(f.assessments, f.participants, f.orgs, logger)

	f.submissionSvc = NewSubmissionService(f.participants, f.assessments, f.reportCache, logger)
	f.submissionSvc.SetBroadcaster(f.broadcaster)
	f.submissionSvc.now = func() time.Time { return fixedNow }

	f.reportSvc = NewReportService(f.assessments, f.participants, f.reports, f.orgs, f.reportCache, f.ranking, logger)
	f.reportSvc.SetBroadcaster(f.broadcaster)
	f.reportSvc.now = func() time.Time { return fixedNow }

	f.exportSvc = NewExportService(f.assessments, f.participants)
	f.notifySvc = NewNotificationService(f.assessments, f.participants, f.orgs, f.reportSvc, f.mailer, 0, "https://survey.test/s/", logger)
	return f
}

// uniformResponses answers every statement so that each dimension scores 20*v
func uniformResponses(v int) model.ResponseSet {
	rs := model.ResponseSet{}
	for _, q := range scoring.Questions {
		if q.Reverse {
			rs[q.ID] = 6 - v
		} else {
			rs[q.ID] = v
		}
	}
	return rs
}

func (f *fixture) createOrg(t *testing.T, name, parent string) *model.Organization {
	t.Helper()
	org, err := f.orgSvc.Create(context.Background(), model.CreateOrganizationRequest{Name: name, ParentID: parent})
	require.NoError(t, err)
	return org
}

func (f *fixture) createAssessment(t *testing.T, orgID, team string, n int, emails ...string) *model.CreateAssessmentResponse {
	t.Helper()
	resp, err := f.assessmentSvc.Create(context.Background(), model.CreateAssessmentRequest{
		OrganizationID:       orgID,
		TeamName:             team,
		ExpectedParticipants: n,
		Emails:               emails,
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) submit(t *testing.T, code string, v int) *model.PersonalResult {
	t.Helper()
	result, err := f.submissionSvc.Submit(context.Background(), code, uniformResponses(v))
	require.NoError(t, err)
	return result
}

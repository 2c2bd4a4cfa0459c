package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"teamhealth/internal/cache"
	"teamhealth/internal/model"
	"teamhealth/internal/repository"
	"time"
)

type fakeOrgRepo struct {
	mu   sync.Mutex
	orgs map[string]*model.Organization
	seq  int
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: map[string]*model.Organization{}}
}

func (r *fakeOrgRepo) Create(_ context.Context, org *model.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if org.ID == "" {
		r.seq++
		org.ID = fmt.Sprintf("org-%d", r.seq)
	}
	cp := *org
	r.orgs[org.ID] = &cp
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*model.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	org, ok := r.orgs[id]
	if !ok {
		return nil, nil
	}
	cp := *org
	return &cp, nil
}

func (r *fakeOrgRepo) List(_ context.Context) ([]*model.Organization, error) {
	return r.filter(func(*model.Organization) bool { return true }), nil
}

func (r *fakeOrgRepo) ListChildren(_ context.Context, parentID string) ([]*model.Organization, error) {
	return r.filter(func(o *model.Organization) bool { return o.ParentID == parentID }), nil
}

func (r *fakeOrgRepo) filter(keep func(*model.Organization) bool) []*model.Organization {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Organization{}
	for _, o := range r.orgs {
		if keep(o) {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeOrgRepo) Update(_ context.Context, org *model.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *org
	r.orgs[org.ID] = &cp
	return nil
}

func (r *fakeOrgRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orgs, id)
	return nil
}

func (r *fakeOrgRepo) CountChildren(_ context.Context, id string) (int64, error) {
	children, _ := r.ListChildren(context.Background(), id)
	return int64(len(children)), nil
}

type fakeAssessmentRepo struct {
	mu          sync.Mutex
	assessments map[string]*model.Assessment
	order       []string
	seq         int
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{assessments: map[string]*model.Assessment{}}
}

func (r *fakeAssessmentRepo) Create(_ context.Context, a *model.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		r.seq++
		a.ID = fmt.Sprintf("as-%d", r.seq)
	}
	cp := *a
	r.assessments[a.ID] = &cp
	r.order = append(r.order, a.ID)
	return nil
}

func (r *fakeAssessmentRepo) GetByID(_ context.Context, id string) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assessments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssessmentRepo) ListByOrganization(_ context.Context, orgID string) ([]*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Assessment{}
	for _, id := range r.order {
		if a := r.assessments[id]; a.OrganizationID == orgID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) CountByOrganization(ctx context.Context, orgID string) (int64, error) {
	list, _ := r.ListByOrganization(ctx, orgID)
	return int64(len(list)), nil
}

func (r *fakeAssessmentRepo) Update(_ context.Context, a *model.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.assessments[a.ID] = &cp
	return nil
}

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants map[string]*model.Participant
	order        []string
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{participants: map[string]*model.Participant{}}
}

func (r *fakeParticipantRepo) CreateMany(_ context.Context, ps []*model.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ps {
		if _, dup := r.participants[p.Code]; dup {
			return errors.New("duplicate code")
		}
		cp := *p
		r.participants[p.Code] = &cp
		r.order = append(r.order, p.Code)
	}
	return nil
}

func (r *fakeParticipantRepo) GetByCode(_ context.Context, code string) (*model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeParticipantRepo) ListByAssessment(_ context.Context, assessmentID string) ([]*model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Participant{}
	for _, code := range r.order {
		if p := r.participants[code]; p.AssessmentID == assessmentID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) SaveSubmission(_ context.Context, code string, responses model.ResponseSet, result *model.PersonalResult, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[code]
	if !ok || p.SubmittedAt != nil {
		return repository.ErrAlreadySubmitted
	}
	p.Responses = responses
	p.Result = result
	p.SubmittedAt = &at
	return nil
}

func (r *fakeParticipantRepo) MarkInvited(_ context.Context, code string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.participants[code]; ok {
		p.InvitedAt = &at
	}
	return nil
}

type fakeReportRepo struct {
	mu        sync.Mutex
	reports   map[string]*model.TeamReport
	summaries map[string]*model.OrganizationSummary
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{
		reports:   map[string]*model.TeamReport{},
		summaries: map[string]*model.OrganizationSummary{},
	}
}

func (r *fakeReportRepo) SaveTeamReport(_ context.Context, report *model.TeamReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *report
	r.reports[report.AssessmentID] = &cp
	return nil
}

func (r *fakeReportRepo) GetTeamReport(_ context.Context, assessmentID string) (*model.TeamReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[assessmentID]
	if !ok {
		return nil, nil
	}
	cp := *report
	return &cp, nil
}

func (r *fakeReportRepo) SaveSummary(_ context.Context, summary *model.OrganizationSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *summary
	r.summaries[summary.OrganizationID] = &cp
	return nil
}

func (r *fakeReportRepo) GetSummary(_ context.Context, orgID string) (*model.OrganizationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.summaries[orgID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeReportRepo) MarkSummaryEmailed(_ context.Context, orgID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.summaries[orgID]; ok {
		s.EmailSent = true
	}
	return nil
}

type fakeReportCache struct {
	mu        sync.Mutex
	reports   map[string]*model.TeamReport
	summaries map[string]*model.OrganizationSummary
	reads     int
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{
		reports:   map[string]*model.TeamReport{},
		summaries: map[string]*model.OrganizationSummary{},
	}
}

func (c *fakeReportCache) GetTeamReport(_ context.Context, id string) (*model.TeamReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	return c.reports[id], nil
}

func (c *fakeReportCache) SetTeamReport(_ context.Context, report *model.TeamReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[report.AssessmentID] = report
	return nil
}

func (c *fakeReportCache) InvalidateTeamReport(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.reports, id)
	return nil
}

func (c *fakeReportCache) GetSummary(_ context.Context, orgID string) (*model.OrganizationSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaries[orgID], nil
}

func (c *fakeReportCache) SetSummary(_ context.Context, s *model.OrganizationSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries[s.OrganizationID] = s
	return nil
}

func (c *fakeReportCache) InvalidateSummary(_ context.Context, orgID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.summaries, orgID)
	return nil
}

type fakeRanking struct {
	mu     sync.Mutex
	scores map[string]map[string]float64
}

func newFakeRanking() *fakeRanking {
	return &fakeRanking{scores: map[string]map[string]float64{}}
}

func (r *fakeRanking) UpdateTeamScore(_ context.Context, orgID, assessmentID string, score float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scores[orgID] == nil {
		r.scores[orgID] = map[string]float64{}
	}
	r.scores[orgID][assessmentID] = score
	return nil
}

func (r *fakeRanking) GetTop(_ context.Context, orgID string, limit int) ([]cache.RankingEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := []cache.RankingEntry{}
	for id, score := range r.scores[orgID] {
		entries = append(entries, cache.RankingEntry{AssessmentID: id, TeamScore: score})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].TeamScore > entries[j].TeamScore })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (r *fakeRanking) GetRank(ctx context.Context, orgID, assessmentID string) (int64, error) {
	entries, _ := r.GetTop(ctx, orgID, 0)
	for _, e := range entries {
		if e.AssessmentID == assessmentID {
			return int64(e.Rank), nil
		}
	}
	return -1, nil
}

func (r *fakeRanking) Remove(_ context.Context, orgID, assessmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scores[orgID], assessmentID)
	return nil
}

type fakeSessions struct {
	mu  sync.Mutex
	ids map[string]time.Duration
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{ids: map[string]time.Duration{}}
}

func (s *fakeSessions) Set(_ context.Context, id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = ttl
	return nil
}

func (s *fakeSessions) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok, nil
}

func (s *fakeSessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
	return nil
}

type event struct {
	topic   string
	msgType string
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []event
}

func (b *recordingBroadcaster) Broadcast(topic, msgType string, _ interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event{topic: topic, msgType: msgType})
}

func (b *recordingBroadcaster) all() []event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]event(nil), b.events...)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []model.MailMessage
	fail map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, msg model.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[msg.To] {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

// fixture wires every service against the fakes
type fixture struct {
	orgs         *fakeOrgRepo
	assessments  *fakeAssessmentRepo
	participants *fakeParticipantRepo
	reports      *fakeReportRepo
	reportCache  *fakeReportCache
	ranking      *fakeRanking
	broadcaster  *recordingBroadcaster
	mailer       *fakeMailer

	orgSvc        *OrganizationService
	assessmentSvc *AssessmentService
	submissionSvc *SubmissionService
	reportSvc     *ReportService
	exportSvc     *ExportService
	notifySvc     *NotificationService
}

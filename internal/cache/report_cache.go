package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"teamhealth/internal/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache keeps the latest team reports and organization summaries in Redis
type ReportCache interface {
	GetTeamReport(ctx context.Context, assessmentID string) (*model.TeamReport, error)
	SetTeamReport(ctx context.Context, report *model.TeamReport) error
	InvalidateTeamReport(ctx context.Context, assessmentID string) error

	GetSummary(ctx context.Context, orgID string) (*model.OrganizationSummary, error)
	SetSummary(ctx context.Context, summary *model.OrganizationSummary) error
	InvalidateSummary(ctx context.Context, orgID string) error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new report cache
func NewReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &reportCache{
		client: client,
		ttl:    ttl,
	}
}

func teamReportKey(assessmentID string) string {
	return fmt.Sprintf("assessment:%s:report", assessmentID)
}

func summaryKey(orgID string) string {
	return fmt.Sprintf("org:%s:summary", orgID)
}

func (c *reportCache) GetTeamReport(ctx context.Context, assessmentID string) (*model.TeamReport, error) {
	var report model.TeamReport
	found, err := c.get(ctx, teamReportKey(assessmentID), &report)
	if err != nil || !found {
		return nil, err
	}
	return &report, nil
}

func (c *reportCache) SetTeamReport(ctx context.Context, report *model.TeamReport) error {
	return c.set(ctx, teamReportKey(report.AssessmentID), report)
}

func (c *reportCache) InvalidateTeamReport(ctx context.Context, assessmentID string) error {
	return c.client.Del(ctx, teamReportKey(assessmentID)).Err()
}

func (c *reportCache) GetSummary(ctx context.Context, orgID string) (*model.OrganizationSummary, error) {
	var summary model.OrganizationSummary
	found, err := c.get(ctx, summaryKey(orgID), &summary)
	if err != nil || !found {
		return nil, err
	}
	return &summary, nil
}

func (c *reportCache) SetSummary(ctx context.Context, summary *model.OrganizationSummary) error {
	return c.set(ctx, summaryKey(summary.OrganizationID), summary)
}

func (c *reportCache) InvalidateSummary(ctx context.Context, orgID string) error {
	return c.client.Del(ctx, summaryKey(orgID)).Err()
}

func (c *reportCache) get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *reportCache) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

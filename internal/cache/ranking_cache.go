package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RankingCache keeps a per-organization ZSET of team scores
type RankingCache interface {
	UpdateTeamScore(ctx context.Context, orgID, assessmentID string, score float64) error
	GetTop(ctx context.Context, orgID string, limit int) ([]RankingEntry, error)
	GetRank(ctx context.Context, orgID, assessmentID string) (int64, error)
	Remove(ctx context.Context, orgID, assessmentID string) error
}

// RankingEntry is one team in an organization ranking
type RankingEntry struct {
	AssessmentID string  `json:"assessmentId"`
	TeamName     string  `json:"teamName,omitempty"`
	TeamScore    float64 `json:"teamScore"`
	Rank         int     `json:"rank"`
}

type rankingCache struct {
	client *redis.Client
}

// NewRankingCache creates a new ranking cache
func NewRankingCache(client *redis.Client) RankingCache {
	return &rankingCache{
		client: client,
	}
}

func rankingKey(orgID string) string {
	return fmt.Sprintf("org:%s:ranking", orgID)
}

func (c *rankingCache) UpdateTeamScore(ctx context.Context, orgID, assessmentID string, score float64) error {
	return c.client.ZAdd(ctx, rankingKey(orgID), redis.Z{
		Score:  score,
		Member: assessmentID,
	}).Err()
}

// GetTop returns the best teams first. A non-positive limit returns every team.
func (c *rankingCache) GetTop(ctx context.Context, orgID string, limit int) ([]RankingEntry, error) {
	stop := int64(limit - 1)
	if limit <= 0 {
		stop = -1
	}
	results, err := c.client.ZRevRangeWithScores(ctx, rankingKey(orgID), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	return toEntries(results), nil
}

func (c *rankingCache) GetRank(ctx context.Context, orgID, assessmentID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, rankingKey(orgID), assessmentID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

func (c *rankingCache) Remove(ctx context.Context, orgID, assessmentID string) error {
	return c.client.ZRem(ctx, rankingKey(orgID), assessmentID).Err()
}

func toEntries(results []redis.Z) []RankingEntry {
	entries := make([]RankingEntry, 0, len(results))
	for i, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, RankingEntry{
			AssessmentID: member,
			TeamScore:    z.Score,
			Rank:         i + 1,
		})
	}
	return entries
}

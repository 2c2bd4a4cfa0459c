package cache

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "assessment:a1:report", teamReportKey("a1"))
	assert.Equal(t, "org:o1:summary", summaryKey("o1"))
	assert.Equal(t, "org:o1:ranking", rankingKey("o1"))
	assert.Equal(t, "admin:session:s1", sessionKey("s1"))
}

func TestToEntries(t *testing.T) {
	entries := toEntries([]redis.Z{
		{Score: 82.5, Member: "alpha"},
		{Score: 61, Member: "beta"},
	})

	assert.Equal(t, []RankingEntry{
		{AssessmentID: "alpha", TeamScore: 82.5, Rank: 1},
		{AssessmentID: "beta", TeamScore: 61, Rank: 2},
	}, entries)
	assert.Empty(t, toEntries(nil))
}

func TestNewReportCacheDefaultTTL(t *testing.T) {
	c := NewReportCache(nil, 0).(*reportCache)
	assert.Positive(t, c.ttl)
}

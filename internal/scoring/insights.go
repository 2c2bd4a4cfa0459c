package scoring

import (
	"fmt"
	"sort"
	"strings"
	"teamhealth/internal/model"
)

// Insight thresholds
const (
	orgStrengthMin        = 80.0 // dimension average counted as a strength
	orgConcernBelow       = 75.0 // dimension average counted as a concern
	participationTarget   = 90.0 // percent
	teamParticipationLow  = 85.0 // percent, per flagged team
	scoreSpreadLimit      = 12.0 // std-dev of team scores
	standoutDimensionMin  = 85.0
	attentionScoreBelow   = 75.0
	attentionDimBelow     = 70.0
	maxAttentionTeams     = 3
	highlightedDimensions = 2
	topPerformerShareMin  = 80.0
	trendStrongMin        = 80.0
	trendWeakBelow        = 75.0
)

type dimensionAverage struct {
	dim   model.Dimension
	value float64
}

// insightContext is everything the insight rules read
type insightContext struct {
	ascending     []dimensionAverage // rollup dimensions, weakest first
	participation float64
	stdDev        float64
	top           *model.TopPerformer
	attention     []model.AttentionTeam
}

// insightRule renders its template when the predicate holds
type insightRule struct {
	applies func(c *insightContext) bool
	render  func(c *insightContext) string
}

// Concern rules run after the dimension concerns, in this order
var concernRules = []insightRule{
	{
		applies: func(c *insightContext) bool { return c.participation < participationTarget },
		render: func(c *insightContext) string {
			return fmt.Sprintf("Average participation is %.1f%%, below the %.0f%% target", c.participation, participationTarget)
		},
	},
	{
		applies: func(c *insightContext) bool { return c.stdDev > scoreSpreadLimit },
		render: func(c *insightContext) string {
			return fmt.Sprintf("Team scores vary widely (standard deviation %.1f); team experiences differ considerably", c.stdDev)
		},
	},
}

// Recommendation rules, evaluated in this order
var recommendationRules = []insightRule{
	{
		applies: func(c *insightContext) bool { return c.ascending[0].value < orgStrengthMin },
		render: func(c *insightContext) string {
			w := c.ascending[0]
			return fmt.Sprintf("Run an organization-wide initiative on %s, the lowest-scoring dimension (%.1f)", w.dim.DisplayName(), w.value)
		},
	},
	{
		applies: func(c *insightContext) bool { return c.top != nil && c.top.TeamScore >= topPerformerShareMin },
		render: func(c *insightContext) string {
			return fmt.Sprintf("Ask %s to share its team practices with other teams (team score %.1f)", c.top.TeamName, c.top.TeamScore)
		},
	},
	{
		applies: func(c *insightContext) bool { return len(c.attention) > 0 },
		render: func(c *insightContext) string {
			names := make([]string, len(c.attention))
			for i, t := range c.attention {
				names[i] = t.TeamName
			}
			return fmt.Sprintf("Schedule follow-up sessions with the %d team(s) needing attention: %s", len(names), strings.Join(names, ", "))
		},
	},
	{
		applies: func(c *insightContext) bool { return c.participation < participationTarget },
		render: func(c *insightContext) string {
			return fmt.Sprintf("Ask team leads to encourage survey participation; aim for at least %.0f%%", participationTarget)
		},
	},
	{
		applies: func(c *insightContext) bool { return c.stdDev > scoreSpreadLimit },
		render: func(c *insightContext) string {
			return "Pair higher- and lower-scoring teams to exchange practices and narrow the gap between teams"
		},
	},
}

const defaultOrgRecommendation = "Continue current practices and reassess in the next survey cycle"

func buildInsights(completed []model.TeamResult, s *model.OrganizationSummary) model.OrganizationInsights {
	c := &insightContext{
		ascending:     sortedAverages(s.DimensionAverages),
		participation: s.AvgParticipation,
		stdDev:        s.ScoreStdDev,
	}
	c.top = topPerformer(completed)
	c.attention = needsAttention(completed)

	ins := model.OrganizationInsights{
		Strengths:       []string{},
		Concerns:        []string{},
		TopPerformer:    c.top,
		NeedsAttention:  c.attention,
		Recommendations: []string{},
		CrossTeamTrends: crossTeamTrends(completed),
	}

	// highest two averages, strongest first
	for i := len(c.ascending) - 1; i >= len(c.ascending)-highlightedDimensions; i-- {
		d := c.ascending[i]
		if d.value >= orgStrengthMin {
			ins.Strengths = append(ins.Strengths, fmt.Sprintf("%s is a shared strength across teams (average %.1f)", d.dim.DisplayName(), d.value))
		}
	}
	// lowest two averages, weakest first
	for _, d := range c.ascending[:highlightedDimensions] {
		if d.value < orgConcernBelow {
			ins.Concerns = append(ins.Concerns, fmt.Sprintf("%s is low across teams (average %.1f)", d.dim.DisplayName(), d.value))
		}
	}
	for _, rule := range concernRules {
		if rule.applies(c) {
			ins.Concerns = append(ins.Concerns, rule.render(c))
		}
	}
	for _, rule := range recommendationRules {
		if rule.applies(c) {
			ins.Recommendations = append(ins.Recommendations, rule.render(c))
		}
	}
	if len(ins.Recommendations) == 0 {
		ins.Recommendations = append(ins.Recommendations, defaultOrgRecommendation)
	}
	return ins
}

// sortedAverages orders the rollup dimensions weakest first; ties keep declaration order
func sortedAverages(avgs model.DimensionAverages) []dimensionAverage {
	out := make([]dimensionAverage, len(model.RollupDimensions))
	for i, dim := range model.RollupDimensions {
		out[i] = dimensionAverage{dim: dim, value: avgs.Get(dim)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].value < out[j].value })
	return out
}

// topPerformer picks the highest team score in a single pass. When several
// teams share the maximum, the first one in input order wins; callers should
// not rely on which.
func topPerformer(completed []model.TeamResult) *model.TopPerformer {
	best := completed[0]
	for _, t := range completed[1:] {
		if t.Report.Score > best.Report.Score {
			best = t
		}
	}
	standout := []string{}
	for _, dim := range model.Dimensions {
		if best.Report.DimensionScores.Get(dim) >= standoutDimensionMin {
			standout = append(standout, dim.DisplayName())
		}
	}
	return &model.TopPerformer{
		AssessmentID:       best.AssessmentID,
		TeamName:           best.TeamName,
		TeamScore:          best.Report.Score,
		StandoutDimensions: standout,
	}
}

// needsAttention returns up to three of the lowest-scoring teams below 75, lowest first
func needsAttention(completed []model.TeamResult) []model.AttentionTeam {
	low := make([]model.TeamResult, 0, len(completed))
	for _, t := range completed {
		if t.Report.Score < attentionScoreBelow {
			low = append(low, t)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Report.Score < low[j].Report.Score })
	if len(low) > maxAttentionTeams {
		low = low[:maxAttentionTeams]
	}

	out := make([]model.AttentionTeam, 0, len(low))
	for _, t := range low {
		issues := []string{}
		for _, dim := range model.Dimensions {
			if v := t.Report.DimensionScores.Get(dim); v < attentionDimBelow {
				issues = append(issues, fmt.Sprintf("%s (%.1f)", dim.DisplayName(), v))
			}
		}
		if t.Report.ParticipationRate < teamParticipationLow {
			issues = append(issues, fmt.Sprintf("Low participation (%.1f%%)", t.Report.ParticipationRate))
		}
		out = append(out, model.AttentionTeam{
			AssessmentID: t.AssessmentID,
			TeamName:     t.TeamName,
			TeamScore:    t.Report.Score,
			Issues:       issues,
		})
	}
	return out
}

// crossTeamTrends reports rollup dimensions that are strong, or weak, in every team
func crossTeamTrends(completed []model.TeamResult) []string {
	trends := []string{}
	for _, dim := range model.RollupDimensions {
		allStrong, allWeak := true, true
		for _, t := range completed {
			v := t.Report.DimensionScores.Get(dim)
			if v < trendStrongMin {
				allStrong = false
			}
			if v >= trendWeakBelow {
				allWeak = false
			}
		}
		switch {
		case allStrong:
			trends = append(trends, fmt.Sprintf("%s is strong (%.0f+) in every team", dim.DisplayName(), trendStrongMin))
		case allWeak:
			trends = append(trends, fmt.Sprintf("%s is below %.0f in every team", dim.DisplayName(), trendWeakBelow))
		}
	}
	return trends
}

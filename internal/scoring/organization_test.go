package scoring

import (
	"teamhealth/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedTeam(id string, score, participation float64, ds model.DimensionScores) model.TeamResult {
	return model.TeamResult{
		AssessmentID: id,
		TeamName:     id,
		Report: &model.TeamReport{
			AssessmentID:      id,
			TeamName:          id,
			TeamScore:         model.TeamScore{Score: score, HealthGrade: HealthGrade(score)},
			DimensionScores:   ds,
			ParticipationRate: participation,
		},
	}
}

func TestSummarizeOrganization(t *testing.T) {
	beta := uniformScores(72)
	beta.Appreciation = 65
	beta.ConflictManagement = 60

	teams := []model.TeamResult{
		completedTeam("Alpha", 88, 100, uniformScores(90)),
		completedTeam("Beta", 72, 80, beta),
		{AssessmentID: "Delta", TeamName: "Delta"},
		completedTeam("Gamma", 60, 95, uniformScores(68)),
	}

	s, err := SummarizeOrganization("org-1", teams)
	require.NoError(t, err)

	assert.Equal(t, "org-1", s.OrganizationID)
	assert.Equal(t, 4, s.TotalTeams)
	assert.Equal(t, 3, s.CompletedTeams)
	assert.Equal(t, 1, s.PendingTeams)
	assert.Equal(t, 73.3, s.AverageTeamScore)
	assert.Equal(t, 88.0, s.HighestScore)
	assert.Equal(t, 60.0, s.LowestScore)
	assert.Equal(t, 11.5, s.ScoreStdDev)
	assert.Equal(t, 91.7, s.AvgParticipation)
	assert.Equal(t, model.DimensionAverages{
		TeamConnection:     76.7,
		Appreciation:       74.3,
		Responsiveness:     76.7,
		TrustPositivity:    76.7,
		ConflictManagement: 72.7,
		GoalSupport:        76.7,
	}, s.DimensionAverages)

	require.Len(t, s.TeamComparisons, 3)
	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		assert.Equal(t, name, s.TeamComparisons[i].TeamName)
		assert.Equal(t, i+1, s.TeamComparisons[i].Rank)
	}

	ins := s.Insights
	assert.Empty(t, ins.Strengths)
	assert.Equal(t, []string{
		"Conflict Management is low across teams (average 72.7)",
		"Appreciation is low across teams (average 74.3)",
	}, ins.Concerns)

	require.NotNil(t, ins.TopPerformer)
	assert.Equal(t, "Alpha", ins.TopPerformer.TeamName)
	assert.Len(t, ins.TopPerformer.StandoutDimensions, 7)

	require.Len(t, ins.NeedsAttention, 2)
	assert.Equal(t, "Gamma", ins.NeedsAttention[0].TeamName)
	assert.Len(t, ins.NeedsAttention[0].Issues, 7)
	assert.Equal(t, "Beta", ins.NeedsAttention[1].TeamName)
	assert.Equal(t, []string{
		"Appreciation (65.0)",
		"Conflict Management (60.0)",
		"Low participation (80.0%)",
	}, ins.NeedsAttention[1].Issues)

	assert.Equal(t, []string{
		"Run an organization-wide initiative on Conflict Management, the lowest-scoring dimension (72.7)",
		"Ask Alpha to share its team practices with other teams (team score 88.0)",
		"Schedule follow-up sessions with the 2 team(s) needing attention: Gamma, Beta",
	}, ins.Recommendations)
	assert.Empty(t, ins.CrossTeamTrends)
}

func TestSummarizeOrganizationSpreadAndParticipation(t *testing.T) {
	teams := []model.TeamResult{
		completedTeam("A", 95, 70, uniformScores(95)),
		completedTeam("B", 60, 70, uniformScores(82)),
	}
	s, err := SummarizeOrganization("org", teams)
	require.NoError(t, err)
	assert.Equal(t, 17.5, s.ScoreStdDev)

	ins := s.Insights
	assert.Equal(t, []string{
		"Goal Support is a shared strength across teams (average 88.5)",
		"Conflict Management is a shared strength across teams (average 88.5)",
	}, ins.Strengths)
	assert.Equal(t, []string{
		"Average participation is 70.0%, below the 90% target",
		"Team scores vary widely (standard deviation 17.5); team experiences differ considerably",
	}, ins.Concerns)
	assert.Equal(t, []string{
		"Ask A to share its team practices with other teams (team score 95.0)",
		"Schedule follow-up sessions with the 1 team(s) needing attention: B",
		"Ask team leads to encourage survey participation; aim for at least 90%",
		"Pair higher- and lower-scoring teams to exchange practices and narrow the gap between teams",
	}, ins.Recommendations)
	assert.Equal(t, []string{"Low participation (70.0%)"}, ins.NeedsAttention[0].Issues)
	assert.Len(t, ins.CrossTeamTrends, 6)
	assert.Equal(t, "Team Connection is strong (80+) in every team", ins.CrossTeamTrends[0])
}

func TestSummarizeOrganizationDefaults(t *testing.T) {
	s, err := SummarizeOrganization("org", []model.TeamResult{
		completedTeam("Solo", 79, 100, uniformScores(85)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{defaultOrgRecommendation}, s.Insights.Recommendations)
	assert.Empty(t, s.Insights.NeedsAttention)
	assert.Empty(t, s.Insights.Concerns)
	assert.Zero(t, s.ScoreStdDev)
}

func TestSummarizeOrganizationWeakTrend(t *testing.T) {
	low := uniformScores(90)
	low.Responsiveness = 60
	s, err := SummarizeOrganization("org", []model.TeamResult{
		completedTeam("A", 70, 100, low),
		completedTeam("B", 70, 100, low),
	})
	require.NoError(t, err)
	assert.Contains(t, s.Insights.CrossTeamTrends, "Responsiveness is below 75 in every team")
	assert.Contains(t, s.Insights.CrossTeamTrends, "Appreciation is strong (80+) in every team")
}

func TestTopPerformerTieIsOrderDependent(t *testing.T) {
	teams := []model.TeamResult{
		completedTeam("First", 80, 100, uniformScores(80)),
		completedTeam("Second", 80, 100, uniformScores(80)),
	}
	s, err := SummarizeOrganization("org", teams)
	require.NoError(t, err)
	assert.Equal(t, "First", s.Insights.TopPerformer.TeamName)
}

func TestRollupExcludesWarningSigns(t *testing.T) {
	a := uniformScores(80)
	b := uniformScores(80)
	b.WarningSigns = 10

	s1, err := SummarizeOrganization("org", []model.TeamResult{completedTeam("A", 80, 100, a)})
	require.NoError(t, err)
	s2, err := SummarizeOrganization("org", []model.TeamResult{completedTeam("A", 80, 100, b)})
	require.NoError(t, err)
	assert.Equal(t, s1.DimensionAverages, s2.DimensionAverages)
	assert.Len(t, model.RollupDimensions, 6)
	assert.NotContains(t, model.RollupDimensions, model.DimWarningSigns)
}

func TestSummarizeOrganizationNothingCompleted(t *testing.T) {
	_, err := SummarizeOrganization("org", nil)
	assert.ErrorIs(t, err, ErrNothingToSummarize)

	_, err = SummarizeOrganization("org", []model.TeamResult{{AssessmentID: "p", TeamName: "p"}})
	assert.ErrorIs(t, err, ErrNothingToSummarize)
}

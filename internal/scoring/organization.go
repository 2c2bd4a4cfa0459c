package scoring

import (
	"sort"
	"teamhealth/internal/model"
)

// SummarizeOrganization rolls the team reports of an organization up into
// cross-team statistics and templated insights. Teams without a report count
// as pending. At least one completed team is required.
func SummarizeOrganization(orgID string, teams []model.TeamResult) (*model.OrganizationSummary, error) {
	completed := make([]model.TeamResult, 0, len(teams))
	for _, t := range teams {
		if t.Report != nil {
			completed = append(completed, t)
		}
	}
	if len(completed) == 0 {
		return nil, ErrNothingToSummarize
	}

	scores := make([]float64, len(completed))
	participation := make([]float64, len(completed))
	for i, t := range completed {
		scores[i] = t.Report.Score
		participation[i] = t.Report.ParticipationRate
	}
	lo, hi := minMax(scores)

	summary := &model.OrganizationSummary{
		OrganizationID:    orgID,
		TotalTeams:        len(teams),
		CompletedTeams:    len(completed),
		PendingTeams:      len(teams) - len(completed),
		AverageTeamScore:  round(mean(scores), 1),
		HighestScore:      hi,
		LowestScore:       lo,
		ScoreStdDev:       round(populationStdDev(scores), 1),
		AvgParticipation:  round(mean(participation), 1),
		DimensionAverages: rollupDimensions(completed),
		TeamComparisons:   compareTeams(completed),
	}
	summary.Insights = buildInsights(completed, summary)
	return summary, nil
}

func rollupDimensions(completed []model.TeamResult) model.DimensionAverages {
	var avgs model.DimensionAverages
	values := make([]float64, len(completed))
	for _, dim := range model.RollupDimensions {
		for i, t := range completed {
			values[i] = t.Report.DimensionScores.Get(dim)
		}
		avgs.Set(dim, round(mean(values), 1))
	}
	return avgs
}

// compareTeams ranks teams by score, highest first. Equal scores keep input order.
func compareTeams(completed []model.TeamResult) []model.TeamComparison {
	rows := make([]model.TeamComparison, len(completed))
	for i, t := range completed {
		rows[i] = model.TeamComparison{
			AssessmentID:      t.AssessmentID,
			TeamName:          t.TeamName,
			TeamScore:         t.Report.Score,
			HealthGrade:       t.Report.HealthGrade,
			ParticipationRate: t.Report.ParticipationRate,
			DimensionScores:   t.Report.DimensionScores,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TeamScore > rows[j].TeamScore
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

package scoring

import (
	"fmt"
	"math"
	"teamhealth/internal/model"
)

// Team health grades. The lowest band is labeled "Error" in the reports
// dashboard and is kept verbatim.
const (
	HealthExceptional = "Exceptional Team"
	HealthHealthy     = "Healthy Team"
	HealthRisk        = "Risk Team"
	HealthError       = "Error"
)

const (
	// A standard deviation of consistencyCeiling or more drives consistency to 0
	consistencyCeiling = 30.0
	// Members below dangerThreshold on warning signs count as at risk
	dangerThreshold = 50.0
	// Up to dangerTolerance of at-risk members carries no penalty
	dangerTolerance = 0.3
	dangerSlope     = 0.5
)

// CalculateTeamScore combines the personal scores of a team into a team score.
//
// The mean of the personal scores is scaled by a consistency factor
// (1 - stdDev/30, floored at 0) and a penalty factor that shrinks once more
// than 30% of members score below 50 on warning signs. The final score uses
// unrounded intermediates; the stored factors are rounded for display.
func CalculateTeamScore(personal, warningSigns []float64) (*model.TeamScore, error) {
	n := len(personal)
	if n == 0 {
		return nil, ErrNoSubmissions
	}
	if len(warningSigns) != n {
		return nil, fmt.Errorf("%w: %d vs %d", ErrMismatchedInput, n, len(warningSigns))
	}

	base := mean(personal)
	stdDev := populationStdDev(personal)
	consistency := math.Max(0, 1-stdDev/consistencyCeiling)

	atRisk := 0
	for _, ws := range warningSigns {
		if ws < dangerThreshold {
			atRisk++
		}
	}
	dangerRatio := float64(atRisk) / float64(n)
	penalty := 1.0
	if dangerRatio > dangerTolerance {
		penalty = 1 - (dangerRatio-dangerTolerance)*dangerSlope
	}

	score := round(base*consistency*penalty, 1)
	return &model.TeamScore{
		Score:             score,
		BaseScore:         round(base, 1),
		ConsistencyFactor: round(consistency, 2),
		PenaltyFactor:     round(penalty, 2),
		StandardDeviation: round(stdDev, 1),
		AtRiskCount:       atRisk,
		HealthGrade:       HealthGrade(score),
	}, nil
}

// HealthGrade maps a team score onto its health band
func HealthGrade(score float64) string {
	switch {
	case score >= 80:
		return HealthExceptional
	case score >= 65:
		return HealthHealthy
	case score >= 50:
		return HealthRisk
	default:
		return HealthError
	}
}

// AverageDimensions averages each of the seven dimensions over a set of members
func AverageDimensions(members []model.DimensionScores) model.DimensionScores {
	var avg model.DimensionScores
	if len(members) == 0 {
		return avg
	}
	values := make([]float64, len(members))
	for _, dim := range model.Dimensions {
		for i, m := range members {
			values[i] = m.Get(dim)
		}
		avg.Set(dim, round(mean(values), 1))
	}
	return avg
}

// ScoreTeam computes the team score and dimension averages of a set of personal results
func ScoreTeam(results []*model.PersonalResult) (*model.TeamScore, model.DimensionScores, error) {
	personal := make([]float64, 0, len(results))
	warning := make([]float64, 0, len(results))
	dims := make([]model.DimensionScores, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		personal = append(personal, r.PersonalScore)
		warning = append(warning, r.DimensionScores.WarningSigns)
		dims = append(dims, r.DimensionScores)
	}
	ts, err := CalculateTeamScore(personal, warning)
	if err != nil {
		return nil, model.DimensionScores{}, err
	}
	return ts, AverageDimensions(dims), nil
}

// ParticipationRate is the percentage of issued codes that were submitted, to one decimal
func ParticipationRate(submitted, issued int) float64 {
	if issued <= 0 {
		return 0
	}
	return round(float64(submitted)/float64(issued)*100, 1)
}

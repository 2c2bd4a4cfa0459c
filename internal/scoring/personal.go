package scoring

import "teamhealth/internal/model"

// Personal grade bands
const (
	GradeExcellent        = "Excellent"
	GradeGood             = "Good"
	GradeNeedsImprovement = "Needs improvement"
	GradeAlert            = "Alert"
)

const (
	strengthThreshold = 80.0
	growthThreshold   = 70.0

	DefaultStrength   = "No standout dimension yet; keep maintaining your current level across all dimensions"
	DefaultGrowthArea = "All dimensions are in good shape"
)

// DimensionWeight is the share of one dimension in a weighted score
type DimensionWeight struct {
	Dimension model.Dimension
	Weight    float64
}

// PersonalWeights sum to 1.0; warning signs carry the most weight
var PersonalWeights = []DimensionWeight{
	{model.DimTeamConnection, 0.10},
	{model.DimAppreciation, 0.10},
	{model.DimResponsiveness, 0.10},
	{model.DimTrustPositivity, 0.10},
	{model.DimConflictManagement, 0.10},
	{model.DimGoalSupport, 0.10},
	{model.DimWarningSigns, 0.40},
}

// recommendationRule emits its messages when the dimension is below the limit.
// Rules are evaluated in table order.
type recommendationRule struct {
	dim      model.Dimension
	below    float64
	messages []string
}

var personalRecommendationRules = []recommendationRule{
	{
		dim:   model.DimWarningSigns,
		below: 60,
		messages: []string{
			"Agree on team norms for giving feedback without criticism, contempt or defensiveness",
			"Practice a short repair ritual after tense conversations, such as a check-in the next day",
		},
	},
	{
		dim:   model.DimConflictManagement,
		below: 65,
		messages: []string{
			"Use a structured format for disagreements: each side restates the other's view before responding",
			"Hold a retrospective on a recent conflict and agree on how to handle the next one",
		},
	},
	{
		dim:      model.DimAppreciation,
		below:    70,
		messages: []string{"Start meetings with a round of specific appreciation for recent work"},
	},
	{
		dim:      model.DimTeamConnection,
		below:    70,
		messages: []string{"Schedule regular informal time together, such as a weekly team coffee"},
	},
}

const defaultRecommendation = "Relationships on your team look healthy; keep investing in the habits that work"

// CalculatePersonalScore is the weighted sum of the dimension scores, rounded to one decimal
func CalculatePersonalScore(ds model.DimensionScores) float64 {
	total := 0.0
	for _, w := range PersonalWeights {
		total += ds.Get(w.Dimension) * w.Weight
	}
	return round(total, 1)
}

// PersonalGrade maps a personal score onto its grade band
func PersonalGrade(score float64) string {
	switch {
	case score >= 85:
		return GradeExcellent
	case score >= 70:
		return GradeGood
	case score >= 55:
		return GradeNeedsImprovement
	default:
		return GradeAlert
	}
}

// Strengths lists dimensions scoring 80 or more
func Strengths(ds model.DimensionScores) []string {
	var out []string
	for _, dim := range model.Dimensions {
		if ds.Get(dim) >= strengthThreshold {
			out = append(out, dim.DisplayName())
		}
	}
	if len(out) == 0 {
		return []string{DefaultStrength}
	}
	return out
}

// GrowthAreas lists dimensions scoring below 70
func GrowthAreas(ds model.DimensionScores) []string {
	var out []string
	for _, dim := range model.Dimensions {
		if ds.Get(dim) < growthThreshold {
			out = append(out, dim.DisplayName())
		}
	}
	if len(out) == 0 {
		return []string{DefaultGrowthArea}
	}
	return out
}

// Recommendations applies the personal recommendation rules in order
func Recommendations(ds model.DimensionScores) []string {
	var out []string
	for _, rule := range personalRecommendationRules {
		if ds.Get(rule.dim) < rule.below {
			out = append(out, rule.messages...)
		}
	}
	if len(out) == 0 {
		return []string{defaultRecommendation}
	}
	return out
}

// PersonalResultFor derives the full personal result from dimension scores
func PersonalResultFor(ds model.DimensionScores) *model.PersonalResult {
	score := CalculatePersonalScore(ds)
	return &model.PersonalResult{
		PersonalScore:   score,
		Grade:           PersonalGrade(score),
		DimensionScores: ds,
		Strengths:       Strengths(ds),
		GrowthAreas:     GrowthAreas(ds),
		Recommendations: Recommendations(ds),
	}
}

// ScoreResponses validates a response set and scores it
func ScoreResponses(rs model.ResponseSet) (*model.PersonalResult, error) {
	if err := ValidateResponses(rs); err != nil {
		return nil, err
	}
	return PersonalResultFor(CalculateDimensionScores(rs)), nil
}

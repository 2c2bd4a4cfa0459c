// Package trustmatrix places a team on the Emotional Bank Account (EBA) and
// Bids for Connection axes and selects advice for the resulting quadrant.
//
// It is a second lens on the same seven dimensions and is independent of the
// team health grade computed by package scoring.
package trustmatrix

import (
	"sort"
	"teamhealth/internal/model"

	"github.com/montanaflynn/stats"
)

// AxisThreshold splits each axis into low and high halves
const AxisThreshold = 60.0

const priorityCount = 3

type axisWeight struct {
	dim    model.Dimension
	weight float64
}

var ebaWeights = []axisWeight{
	{model.DimTrustPositivity, 0.35},
	{model.DimAppreciation, 0.30},
	{model.DimGoalSupport, 0.20},
	{model.DimWarningSigns, 0.15},
}

var bidsWeights = []axisWeight{
	{model.DimResponsiveness, 0.40},
	{model.DimTeamConnection, 0.35},
	{model.DimConflictManagement, 0.25},
}

func weighted(ds model.DimensionScores, weights []axisWeight) float64 {
	total := 0.0
	for _, w := range weights {
		total += ds.Get(w.dim) * w.weight
	}
	return total
}

// EBA is the Emotional Bank Account score
func EBA(ds model.DimensionScores) float64 {
	return weighted(ds, ebaWeights)
}

// Bids is the Bids for Connection score
func Bids(ds model.DimensionScores) float64 {
	return weighted(ds, bidsWeights)
}

// Classify maps the two axis scores onto a quadrant
func Classify(eba, bids float64) model.Quadrant {
	highEBA := eba >= AxisThreshold
	highBids := bids >= AxisThreshold
	switch {
	case highEBA && highBids:
		return model.QuadrantThriving
	case highEBA:
		return model.QuadrantSolidFoundation
	case highBids:
		return model.QuadrantTrustErosion
	default:
		return model.QuadrantGridlock
	}
}

// Position computes the axis scores and the quadrant with its canned text
func Position(ds model.DimensionScores) model.TeamPosition {
	eba, bids := EBA(ds), Bids(ds)
	q := Classify(eba, bids)
	text := quadrantTexts[q]
	return model.TeamPosition{
		EBAScore:       round1(eba),
		BidsScore:      round1(bids),
		Quadrant:       q,
		Interpretation: text.interpretation,
		NextStep:       text.nextStep,
	}
}

// PriorityAreas returns the three weakest dimensions with advice for the quadrant.
// Equal scores keep the canonical dimension order.
func PriorityAreas(ds model.DimensionScores, q model.Quadrant) []model.PriorityArea {
	dims := make([]model.Dimension, len(model.Dimensions))
	copy(dims, model.Dimensions)
	sort.SliceStable(dims, func(i, j int) bool { return ds.Get(dims[i]) < ds.Get(dims[j]) })

	out := make([]model.PriorityArea, 0, priorityCount)
	for i, dim := range dims[:priorityCount] {
		adv := priorityAdvice[dim][q]
		out = append(out, model.PriorityArea{
			Rank:        i + 1,
			Dimension:   dim,
			DisplayName: dim.DisplayName(),
			Score:       round1(ds.Get(dim)),
			Issue:       adv.issue,
			Action:      adv.action,
		})
	}
	return out
}

// Recommend builds the full trust-matrix personalization for a set of dimension scores
func Recommend(ds model.DimensionScores) *model.Personalization {
	pos := Position(ds)
	areas := PriorityAreas(ds, pos.Quadrant)
	weakest := make([]string, len(areas))
	for i, a := range areas {
		weakest[i] = a.DisplayName
	}
	return &model.Personalization{
		Position:        pos,
		PriorityAreas:   areas,
		Recommendations: bundleFor(pos.Quadrant, weakest),
	}
}

func round1(v float64) float64 {
	r, err := stats.Round(v, 1)
	if err != nil {
		return v
	}
	return r
}

package scoring

import (
	"sort"
	"teamhealth/internal/model"
)

// ValidateResponses checks that a response set answers every question of the
// instrument with a value between 1 and 5 and contains nothing else.
func ValidateResponses(rs model.ResponseSet) error {
	verr := &IncompleteResponsesError{}
	for _, q := range Questions {
		v, ok := rs[q.ID]
		if !ok {
			verr.Missing = append(verr.Missing, q.ID)
			continue
		}
		if v < MinAnswer || v > MaxAnswer {
			verr.Invalid = append(verr.Invalid, q.ID)
		}
	}
	for id := range rs {
		if _, ok := questionIndex[id]; !ok {
			verr.Unknown = append(verr.Unknown, id)
		}
	}
	sort.Strings(verr.Unknown)

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 || len(verr.Unknown) > 0 {
		return verr
	}
	return nil
}

// CalculateDimensionScores averages the answers of each dimension and maps
// the average onto 0-100. Reverse-scored items contribute 6 - value. Missing
// answers are skipped; a dimension with no answers scores 0.
func CalculateDimensionScores(rs model.ResponseSet) model.DimensionScores {
	var ds model.DimensionScores
	for _, dim := range model.Dimensions {
		sum, count := 0, 0
		for _, q := range questionsByDimension[dim] {
			v, ok := rs[q.ID]
			if !ok {
				continue
			}
			if q.Reverse {
				v = reverseBase - v
			}
			sum += v
			count++
		}
		if count == 0 {
			ds.Set(dim, 0)
			continue
		}
		ds.Set(dim, float64(sum)/float64(count)*likertToPercent)
	}
	return ds
}

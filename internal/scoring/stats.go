package scoring

import "github.com/montanaflynn/stats"

// round rounds half away from zero to the given number of decimals
func round(v float64, places int) float64 {
	r, err := stats.Round(v, places)
	if err != nil {
		return v
	}
	return r
}

// mean is the arithmetic mean; empty input yields 0
func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// populationStdDev divides by N, not N-1; empty input yields 0
func populationStdDev(values []float64) float64 {
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return 0
	}
	return sd
}

func minMax(values []float64) (float64, float64) {
	lo, err := stats.Min(values)
	if err != nil {
		return 0, 0
	}
	hi, _ := stats.Max(values)
	return lo, hi
}

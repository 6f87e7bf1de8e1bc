package learning

import "math"

const (
	// SpendUnit is the spend that earns a weight of 1.0
	SpendUnit = 100000.0
	// MaxWeight saturates the spend weight
	MaxWeight = 10.0
	// PoorResultFactor scales contributions from bad results
	PoorResultFactor = -0.5
)

// Weight maps spend to an observation weight, saturating at MaxWeight.
func Weight(spend float64) float64 {
	return math.Min(spend/SpendUnit, MaxWeight)
}

// Contribution is the signed, spend-weighted score one result adds to each of its patterns.
func Contribution(score, spend float64, good bool) float64 {
	sign := 1.0
	if !good {
		sign = PoorResultFactor
	}
	return score * Weight(spend) * sign
}

// FoldMean folds one more observation into a running mean of count observations.
// A count of zero starts a new entry.
func FoldMean(mean float64, count int, x float64) (float64, int) {
	if count <= 0 {
		return x, 1
	}
	return (mean*float64(count) + x) / float64(count+1), count + 1
}

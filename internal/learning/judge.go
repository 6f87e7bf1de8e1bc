package learning

import "math"

// Direction tells which side of a target counts as good
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// MaxRatio caps the credit a single metric can contribute to the score
const MaxRatio = 2.0

// GoodThreshold is the share of satisfied metrics needed for a good verdict
const GoodThreshold = 0.5

// Metric identifies one of the six campaign metrics
type Metric string

const (
	MetricCTR  Metric = "ctr"
	MetricCPC  Metric = "cpc"
	MetricMCVR Metric = "mcvr"
	MetricMCPA Metric = "mcpa"
	MetricCVR  Metric = "cvr"
	MetricCPA  Metric = "cpa"
)

// MetricSpec pairs a metric with its comparison direction
type MetricSpec struct {
	Metric    Metric
	Direction Direction
}

// Metrics is the fixed evaluation order.
var Metrics = []MetricSpec{
	{MetricCTR, HigherIsBetter},
	{MetricCPC, LowerIsBetter},
	{MetricMCVR, HigherIsBetter},
	{MetricMCPA, LowerIsBetter},
	{MetricCVR, HigherIsBetter},
	{MetricCPA, LowerIsBetter},
}

// Observed holds the raw readings of one campaign result, keyed by metric.
// Missing keys are treated as absent values.
type Observed map[Metric]any

// Targets holds a category's per-metric thresholds; 0 means no target.
type Targets map[Metric]float64

// Verdict is the frozen judgement attached to a campaign result
type Verdict struct {
	Good      bool    `json:"is_good_performance"`
	Score     float64 `json:"performance_score"`
	Satisfied int     `json:"satisfied_count"`
}

func targetSet(target float64) bool {
	return target > 0 && !math.IsNaN(target)
}

// Satisfies reports whether raw meets target in the given direction.
// Unset values, unset targets and non-numeric input all fail.
func Satisfies(raw any, target float64, dir Direction) bool {
	r := Coerce(raw)
	if r.Unset() {
		return false
	}
	if !targetSet(target) {
		return false
	}
	if !r.OK() {
		return false
	}
	if dir == LowerIsBetter {
		return r.Value <= target
	}
	return r.Value >= target
}

// Ratio is the per-metric score contribution, clamped to MaxRatio.
func Ratio(raw any, target float64, dir Direction) float64 {
	r := Coerce(raw)
	if r.Unset() || !targetSet(target) || !r.OK() {
		return 0.0
	}

	var ratio float64
	if dir == LowerIsBetter {
		if r.Value <= 0 {
			return 0.0
		}
		ratio = target / r.Value
	} else {
		ratio = r.Value / target
	}

	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0.0
	}
	return math.Min(ratio, MaxRatio)
}

// CountSatisfied returns how many of the six metrics meet their targets.
func CountSatisfied(observed Observed, targets Targets) int {
	n := 0
	for _, m := range Metrics {
		if Satisfies(observed[m.Metric], targets[m.Metric], m.Direction) {
			n++
		}
	}
	return n
}

// IsGood is true when at least half of all six metrics are satisfied.
// Metrics without a target still count in the denominator.
func IsGood(observed Observed, targets Targets) bool {
	if targets == nil {
		return false
	}
	return float64(CountSatisfied(observed, targets))/float64(len(Metrics)) >= GoodThreshold
}

// Score averages the ratios of metrics that have a target; metrics without one are skipped.
func Score(observed Observed, targets Targets) float64 {
	if targets == nil {
		return 0.0
	}
	sum := 0.0
	n := 0
	for _, m := range Metrics {
		if !targetSet(targets[m.Metric]) {
			continue
		}
		sum += Ratio(observed[m.Metric], targets[m.Metric], m.Direction)
		n++
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}

// Judge computes the verdict for one campaign result.
// A nil Targets (category without a targets record) yields a bad verdict with score 0.
func Judge(observed Observed, targets Targets) Verdict {
	if targets == nil {
		return Verdict{}
	}
	return Verdict{
		Good:      IsGood(observed, targets),
		Score:     Score(observed, targets),
		Satisfied: CountSatisfied(observed, targets),
	}
}

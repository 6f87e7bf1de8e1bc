package learning

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscript_campaign_verdicts_total",
			Help: "Campaign results judged, by verdict",
		},
		[]string{"verdict"},
	)

	performanceScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adscript_campaign_performance_score",
			Help:    "Performance score of judged campaign results",
			Buckets: []float64{0, 0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2},
		},
	)

	foldsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscript_learning_folds_total",
			Help: "Campaign results folded into the pattern ledger",
		},
		[]string{"result"},
	)

	patternsFoldedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "adscript_learning_patterns_folded_total",
			Help: "Pattern ledger entries created or updated",
		},
	)

	foldFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "adscript_learning_fold_failures_total",
			Help: "Ledger updates that failed after the result was stored",
		},
	)
)

// ObserveVerdict records a judged campaign result
func ObserveVerdict(v Verdict) {
	label := "poor"
	if v.Good {
		label = "good"
	}
	verdictsTotal.WithLabelValues(label).Inc()
	performanceScore.Observe(v.Score)
}

// ObserveFold records a successful ledger update covering n tokens
func ObserveFold(good bool, n int) {
	label := "poor"
	if good {
		label = "good"
	}
	foldsTotal.WithLabelValues(label).Inc()
	patternsFoldedTotal.Add(float64(n))
}

// ObserveFoldFailure records a ledger update that could not be applied
func ObserveFoldFailure() {
	foldFailuresTotal.Inc()
}

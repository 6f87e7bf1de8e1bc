package domain

// Overview dashboard totals
type Overview struct {
	EffectiveScripts int64 `json:"effective_scripts"`
	Categories       int64 `json:"categories"`
	GeneratedScripts int64 `json:"generated_scripts"`
	CampaignResults  int64 `json:"campaign_results"`
	Patterns         int64 `json:"patterns"`
}

// TrendPoint mean performance score of one day's results
type TrendPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	AvgScore float64 `json:"avg_score"`
	Count    int64   `json:"count"`
}

// CategoryReport per-category performance and learning report
type CategoryReport struct {
	Category         *Category         `json:"category"`
	EffectiveScripts int64             `json:"effective_scripts"`
	GeneratedScripts int64             `json:"generated_scripts"`
	Results          CampaignSummary   `json:"results"`
	Statistics       []PatternTypeStat `json:"pattern_statistics"`
	TopPatterns      []*Pattern        `json:"top_patterns"`
	Trend            []TrendPoint      `json:"trend"`
}

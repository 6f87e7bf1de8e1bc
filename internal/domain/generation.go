package domain

import "time"

// APIUsageLog one provider call, used for the daily limits (API使用ログ)
type APIUsageLog struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Date        string    `gorm:"column:date;size:10;index" json:"date"` // YYYY-MM-DD
	RequestType string    `gorm:"column:request_type;size:100" json:"request_type"`
	TokensUsed  int       `gorm:"column:tokens_used" json:"tokens_used"`
	CostJPY     float64   `gorm:"column:cost_jpy" json:"cost_jpy"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (APIUsageLog) TableName() string {
	return "api_usage_log"
}

// DailyUsage today's provider consumption
type DailyUsage struct {
	RequestCount int64   `gorm:"column:request_count" json:"request_count"`
	TotalTokens  int64   `gorm:"column:total_tokens" json:"total_tokens"`
	TotalCost    float64 `gorm:"column:total_cost" json:"total_cost"`
}

// GenerateScriptRequest script generation request
type GenerateScriptRequest struct {
	CategoryID     uint64 `json:"category_id" binding:"required"`
	Platform       string `json:"platform" binding:"required,max=50"`
	TargetAudience string `json:"target_audience" binding:"required,max=255"`
	ScriptLength   string `json:"script_length" binding:"required,max=50"`
}

// ScriptDraft structured output of the text-generation provider
type ScriptDraft struct {
	Title         string `json:"title"`
	Hook          string `json:"hook"`
	MainContent   string `json:"main_content"`
	CallToAction  string `json:"call_to_action"`
	ScriptContent string `json:"script_content"`
}

// QualityAnalysis heuristic quality profile of a draft
type QualityAnalysis struct {
	HasNumbers   bool `json:"has_numbers"`
	HasUrgency   bool `json:"has_urgency"`
	HasAuthority bool `json:"has_authority"`
	HookStrength int  `json:"hook_strength"`
	CTAStrength  int  `json:"cta_strength"`
	OverallScore int  `json:"overall_score"`
}

// GenerateScriptResponse generated draft, not yet saved
type GenerateScriptResponse struct {
	Draft      ScriptDraft     `json:"draft"`
	Violations []string        `json:"ng_violations"`
	Analysis   QualityAnalysis `json:"analysis"`
	TokensUsed int             `json:"tokens_used"`
}

// ReferenceAnalysis common patterns found across reference scripts
type ReferenceAnalysis struct {
	NumericalPatterns []string `json:"numerical_patterns"`
	AuthorityPatterns []string `json:"authority_patterns"`
	UrgencyPatterns   []string `json:"urgency_patterns"`
	HookStarters      []string `json:"hook_starters"`
	CTAPatterns       []string `json:"cta_patterns"`
	FrequentKeywords  []string `json:"frequent_keywords"`
}

package domain

import (
	"encoding/json"
	"time"

	"github.com/adscript/adscript-backend/internal/learning"
)

// CampaignResult one real-world performance observation of a script (配信結果).
// IsGoodPerformance and PerformanceScore are computed at insert time and never recomputed.
type CampaignResult struct {
	ID                  uint64     `gorm:"primaryKey" json:"id"`
	ScriptID            uint64     `gorm:"column:script_id;index:idx_campaign_script" json:"script_id"`
	ScriptType          ScriptType `gorm:"column:script_type;size:20;index:idx_campaign_script" json:"script_type"`
	CategoryID          uint64     `gorm:"column:category_id;index" json:"category_id"`
	Platform            string     `gorm:"size:50;index" json:"platform"`
	CTR                 *float64   `gorm:"column:ctr" json:"ctr"`
	CPC                 *float64   `gorm:"column:cpc" json:"cpc"`
	MCVR                *float64   `gorm:"column:mcvr" json:"mcvr"`
	MCPA                *float64   `gorm:"column:mcpa" json:"mcpa"`
	CVR                 *float64   `gorm:"column:cvr" json:"cvr"`
	CPA                 *float64   `gorm:"column:cpa" json:"cpa"`
	SpendAmount         float64    `gorm:"column:spend_amount" json:"spend_amount"`
	Impressions         int64      `gorm:"column:impressions" json:"impressions"`
	Clicks              int64      `gorm:"column:clicks" json:"clicks"`
	Conversions         int64      `gorm:"column:conversions" json:"conversions"`
	CampaignPeriodStart *time.Time `gorm:"column:campaign_period_start;type:date" json:"campaign_period_start,omitempty"`
	CampaignPeriodEnd   *time.Time `gorm:"column:campaign_period_end;type:date" json:"campaign_period_end,omitempty"`
	IsGoodPerformance   bool       `gorm:"column:is_good_performance" json:"is_good_performance"`
	PerformanceScore    float64    `gorm:"column:performance_score" json:"performance_score"`
	CreatedAt           time.Time  `gorm:"column:created_at;index" json:"created_at"`

	CategoryName string `gorm:"->;column:category_name;-:migration" json:"category_name,omitempty"`
	ScriptTitle  string `gorm:"->;column:script_title;-:migration" json:"script_title,omitempty"`
}

func (CampaignResult) TableName() string {
	return "campaign_results"
}

// Ref returns the originating script reference
func (r *CampaignResult) Ref() ScriptRef {
	return ScriptRef{ID: r.ScriptID, Type: r.ScriptType}
}

// RawMetrics the six metrics exactly as submitted; each may be null, "", a number or a numeric string
type RawMetrics struct {
	CTR  json.RawMessage `json:"ctr,omitempty" swaggertype:"string"`
	CPC  json.RawMessage `json:"cpc,omitempty" swaggertype:"string"`
	MCVR json.RawMessage `json:"mcvr,omitempty" swaggertype:"string"`
	MCPA json.RawMessage `json:"mcpa,omitempty" swaggertype:"string"`
	CVR  json.RawMessage `json:"cvr,omitempty" swaggertype:"string"`
	CPA  json.RawMessage `json:"cpa,omitempty" swaggertype:"string"`
}

// Observed decodes the raw JSON values for the judge.
// Undecodable JSON is passed through as an unsupported value, which the judge treats as non-numeric.
func (m RawMetrics) Observed() learning.Observed {
	return learning.Observed{
		learning.MetricCTR:  decodeRaw(m.CTR),
		learning.MetricCPC:  decodeRaw(m.CPC),
		learning.MetricMCVR: decodeRaw(m.MCVR),
		learning.MetricMCPA: decodeRaw(m.MCPA),
		learning.MetricCVR:  decodeRaw(m.CVR),
		learning.MetricCPA:  decodeRaw(m.CPA),
	}
}

func decodeRaw(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}
	return v
}

// RecordCampaignResultRequest campaign result entry request
type RecordCampaignResultRequest struct {
	ScriptID    uint64     `json:"script_id" binding:"required"`
	ScriptType  ScriptType `json:"script_type" binding:"required,oneof=effective generated"`
	CategoryID  uint64     `json:"category_id,omitempty"`
	Platform    string     `json:"platform,omitempty" binding:"max=50"`
	Metrics     RawMetrics `json:"metrics"`
	SpendAmount float64    `json:"spend_amount" binding:"min=0"`
	Impressions int64      `json:"impressions" binding:"min=0"`
	Clicks      int64      `json:"clicks" binding:"min=0"`
	Conversions int64      `json:"conversions" binding:"min=0"`
	StartDate   string     `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate     string     `json:"end_date,omitempty"`   // YYYY-MM-DD
}

// LearningOutcome reports what the ledger did with a newly recorded result
type LearningOutcome struct {
	Updated  bool   `json:"updated"`
	Patterns int    `json:"patterns"`
	Message  string `json:"message,omitempty"`
}

// RecordCampaignResultResponse recorded result plus the learning acknowledgement
type RecordCampaignResultResponse struct {
	Result   *CampaignResult `json:"result"`
	Learning LearningOutcome `json:"learning"`
}

// PerformanceFilter selects results by verdict
type PerformanceFilter string

const (
	PerformanceAll  PerformanceFilter = "all"
	PerformanceGood PerformanceFilter = "good"
	PerformancePoor PerformanceFilter = "poor"
)

// CampaignFilter list filter for campaign results
type CampaignFilter struct {
	CategoryID  uint64
	Platform    string
	Performance PerformanceFilter
}

// CampaignSummary aggregate over a filtered result list
type CampaignSummary struct {
	Total    int64   `json:"total"`
	Good     int64   `json:"good"`
	GoodRate float64 `json:"good_rate"`
}

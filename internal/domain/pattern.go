package domain

import (
	"time"

	"github.com/adscript/adscript-backend/internal/learning"
)

// Pattern one learned textual feature and its running weighted effectiveness (学習パターン)
type Pattern struct {
	ID                 uint64               `gorm:"primaryKey" json:"id"`
	CategoryID         uint64               `gorm:"column:category_id;uniqueIndex:uq_pattern_key,priority:1" json:"category_id"`
	Platform           string               `gorm:"size:50;uniqueIndex:uq_pattern_key,priority:2" json:"platform"`
	PatternType        learning.PatternType `gorm:"column:pattern_type;size:20;uniqueIndex:uq_pattern_key,priority:3" json:"pattern_type"`
	PatternContent     string               `gorm:"column:pattern_content;size:191;uniqueIndex:uq_pattern_key,priority:4" json:"pattern_content"`
	EffectivenessScore float64              `gorm:"column:effectiveness_score" json:"effectiveness_score"`
	FrequencyCount     int                  `gorm:"column:frequency_count" json:"frequency_count"`
	LastUpdated        time.Time            `gorm:"column:last_updated" json:"last_updated"`
}

func (Pattern) TableName() string {
	return "learning_patterns"
}

// PatternFilter read-side query for the ledger
type PatternFilter struct {
	CategoryID       uint64
	Platform         string
	MinEffectiveness float64
	Limit            int
}

// RankedPattern the tuple handed to generation
type RankedPattern struct {
	PatternType        learning.PatternType `json:"pattern_type"`
	PatternContent     string               `json:"pattern_content"`
	EffectivenessScore float64              `json:"effectiveness_score"`
	FrequencyCount     int                  `json:"frequency_count"`
}

// PatternTypeStat aggregate view per pattern type
type PatternTypeStat struct {
	PatternType learning.PatternType `gorm:"column:pattern_type" json:"pattern_type"`
	Count       int64                `gorm:"column:count" json:"count"`
	AvgScore    float64              `gorm:"column:avg_score" json:"avg_score"`
}

// LearningData ranked positive and negative patterns for one category and platform
type LearningData struct {
	Positive []RankedPattern `json:"positive_patterns"`
	Negative []RankedPattern `json:"negative_patterns"`
}

package domain

import "time"

// Platform video ad platform
type Platform struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:platform_name;size:100;uniqueIndex;not null" json:"name"`
	Code        string    `gorm:"column:platform_code;size:50;uniqueIndex;not null" json:"code"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	SortOrder   int       `gorm:"column:sort_order;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Platform) TableName() string {
	return "platforms"
}

// CreatePlatformRequest platform creation request
type CreatePlatformRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=50"`
	Description string `json:"description,omitempty" binding:"max=255"`
}

// UpdatePlatformRequest platform edit request
type UpdatePlatformRequest struct {
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

// PlatformCount usage count of one platform value
type PlatformCount struct {
	Platform string `gorm:"column:platform" json:"platform"`
	Count    int64  `gorm:"column:count" json:"count"`
}

// PlatformUsage per-platform counts across scripts and results
type PlatformUsage struct {
	EffectiveScripts []PlatformCount `json:"effective_scripts"`
	GeneratedScripts []PlatformCount `json:"generated_scripts"`
	CampaignResults  []PlatformCount `json:"campaign_results"`
}

package domain

import (
	"time"

	"github.com/adscript/adscript-backend/internal/learning"
)

// Targets per-metric goals of a category; 0 means no target
type Targets struct {
	CTR  float64 `gorm:"column:target_ctr;default:0" json:"ctr"`
	CPC  float64 `gorm:"column:target_cpc;default:0" json:"cpc"`
	MCVR float64 `gorm:"column:target_mcvr;default:0" json:"mcvr"`
	MCPA float64 `gorm:"column:target_mcpa;default:0" json:"mcpa"`
	CVR  float64 `gorm:"column:target_cvr;default:0" json:"cvr"`
	CPA  float64 `gorm:"column:target_cpa;default:0" json:"cpa"`
}

// ForJudge converts the targets into the judge's metric map
func (t Targets) ForJudge() learning.Targets {
	return learning.Targets{
		learning.MetricCTR:  t.CTR,
		learning.MetricCPC:  t.CPC,
		learning.MetricMCVR: t.MCVR,
		learning.MetricMCPA: t.MCPA,
		learning.MetricCVR:  t.CVR,
		learning.MetricCPA:  t.CPA,
	}
}

// Category product category (商材カテゴリー)
type Category struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:category_name;size:100;uniqueIndex;not null" json:"name"`
	Targets   Targets   `gorm:"embedded" json:"targets"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Category) TableName() string {
	return "product_categories"
}

// CreateCategoryRequest category creation request
type CreateCategoryRequest struct {
	Name    string   `json:"name" binding:"required,max=100"`
	Targets *Targets `json:"targets,omitempty"`
}

// UpdateTargetsRequest target update request
type UpdateTargetsRequest struct {
	CTR  float64 `json:"ctr" binding:"min=0"`
	CPC  float64 `json:"cpc" binding:"min=0"`
	MCVR float64 `json:"mcvr" binding:"min=0"`
	MCPA float64 `json:"mcpa" binding:"min=0"`
	CVR  float64 `json:"cvr" binding:"min=0"`
	CPA  float64 `json:"cpa" binding:"min=0"`
}

// ToTargets converts the request into Targets
func (r *UpdateTargetsRequest) ToTargets() Targets {
	return Targets{CTR: r.CTR, CPC: r.CPC, MCVR: r.MCVR, MCPA: r.MCPA, CVR: r.CVR, CPA: r.CPA}
}

package domain

import (
	"fmt"
	"time"
)

// ScriptType distinguishes hand-curated scripts from generated ones
type ScriptType string

const (
	ScriptTypeEffective ScriptType = "effective"
	ScriptTypeGenerated ScriptType = "generated"
)

// Valid reports whether t is a known script variant
func (t ScriptType) Valid() bool {
	return t == ScriptTypeEffective || t == ScriptTypeGenerated
}

// ScriptRef identifies a script across both variants
type ScriptRef struct {
	ID   uint64
	Type ScriptType
}

func (r ScriptRef) String() string {
	return fmt.Sprintf("%s:%d", r.Type, r.ID)
}

// ScriptText the free-text fields the extractor reads
type ScriptText struct {
	Title        string `json:"title"`
	Hook         string `json:"hook"`
	MainContent  string `json:"main_content"`
	CallToAction string `json:"call_to_action"`
}

// ComposeScriptContent builds the denormalized script body stored with each script
func ComposeScriptContent(hook, mainContent, cta string) string {
	return fmt.Sprintf("【フック】\n%s\n\n【メイン】\n%s\n\n【CTA】\n%s", hook, mainContent, cta)
}

// EffectiveScript hand-curated reference script (効果的台本)
type EffectiveScript struct {
	ID                  uint64    `gorm:"primaryKey" json:"id"`
	CategoryID          uint64    `gorm:"column:category_id;index" json:"category_id"`
	Title               string    `gorm:"size:255;not null" json:"title"`
	Hook                string    `gorm:"type:text" json:"hook"`
	MainContent         string    `gorm:"column:main_content;type:text" json:"main_content"`
	CallToAction        string    `gorm:"column:call_to_action;type:text" json:"call_to_action"`
	ScriptContent       string    `gorm:"column:script_content;type:text" json:"script_content"`
	Platform            string    `gorm:"size:50;index" json:"platform"`
	EffectivenessReason string    `gorm:"column:effectiveness_reason;type:text" json:"effectiveness_reason"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at" json:"updated_at"`

	CategoryName string `gorm:"->;column:category_name;-:migration" json:"category_name,omitempty"`
}

func (EffectiveScript) TableName() string {
	return "effective_scripts"
}

// Text returns the script's text fields
func (s *EffectiveScript) Text() ScriptText {
	return ScriptText{Title: s.Title, Hook: s.Hook, MainContent: s.MainContent, CallToAction: s.CallToAction}
}

// GeneratedScript AI-produced script saved by a user (生成済み台本)
type GeneratedScript struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	CategoryID       uint64    `gorm:"column:category_id;index" json:"category_id"`
	Title            string    `gorm:"size:255" json:"title"`
	Hook             string    `gorm:"type:text" json:"hook"`
	MainContent      string    `gorm:"column:main_content;type:text" json:"main_content"`
	CallToAction     string    `gorm:"column:call_to_action;type:text" json:"call_to_action"`
	ScriptContent    string    `gorm:"column:script_content;type:text" json:"script_content"`
	Platform         string    `gorm:"size:50;index" json:"platform"`
	GenerationSource string    `gorm:"column:generation_source;size:100" json:"generation_source"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`

	CategoryName string `gorm:"->;column:category_name;-:migration" json:"category_name,omitempty"`
}

func (GeneratedScript) TableName() string {
	return "generated_scripts"
}

// Text returns the script's text fields
func (s *GeneratedScript) Text() ScriptText {
	return ScriptText{Title: s.Title, Hook: s.Hook, MainContent: s.MainContent, CallToAction: s.CallToAction}
}

// CreateEffectiveScriptRequest effective script registration request
type CreateEffectiveScriptRequest struct {
	CategoryID          uint64 `json:"category_id" binding:"required"`
	Title               string `json:"title" binding:"required,max=255"`
	Hook                string `json:"hook"`
	MainContent         string `json:"main_content"`
	CallToAction        string `json:"call_to_action"`
	Platform            string `json:"platform" binding:"required,max=50"`
	EffectivenessReason string `json:"effectiveness_reason"`
}

// UpdateEffectiveScriptRequest effective script edit request
type UpdateEffectiveScriptRequest struct {
	Title               *string `json:"title,omitempty"`
	Hook                *string `json:"hook,omitempty"`
	MainContent         *string `json:"main_content,omitempty"`
	CallToAction        *string `json:"call_to_action,omitempty"`
	Platform            *string `json:"platform,omitempty"`
	EffectivenessReason *string `json:"effectiveness_reason,omitempty"`
}

// SaveGeneratedScriptRequest request to keep a generated draft
type SaveGeneratedScriptRequest struct {
	CategoryID       uint64 `json:"category_id" binding:"required"`
	Platform         string `json:"platform" binding:"required,max=50"`
	Title            string `json:"title" binding:"max=255"`
	Hook             string `json:"hook"`
	MainContent      string `json:"main_content"`
	CallToAction     string `json:"call_to_action"`
	ScriptContent    string `json:"script_content"`
	GenerationSource string `json:"generation_source"`
}

// ScriptFilter list filter shared by both script variants
type ScriptFilter struct {
	CategoryID uint64
	Platform   string
}

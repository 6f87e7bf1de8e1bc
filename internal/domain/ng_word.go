package domain

import "time"

// NGWordType matching mode of a banned phrase
type NGWordType string

const (
	NGWordExact   NGWordType = "exact"
	NGWordPartial NGWordType = "partial"
	NGWordRegex   NGWordType = "regex"
)

// NGWordReplacement is substituted for banned phrases in generated drafts
const NGWordReplacement = "[規制対象]"

// NGWord regulated phrase for one category (NGワード)
type NGWord struct {
	ID         uint64     `gorm:"primaryKey" json:"id"`
	CategoryID uint64     `gorm:"column:category_id;index" json:"category_id"`
	Word       string     `gorm:"size:255;not null" json:"word"`
	WordType   NGWordType `gorm:"column:word_type;size:20;default:exact" json:"word_type"`
	Reason     string     `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`

	CategoryName string `gorm:"->;column:category_name;-:migration" json:"category_name,omitempty"`
}

func (NGWord) TableName() string {
	return "ng_words"
}

// CreateNGWordRequest NG word registration request
type CreateNGWordRequest struct {
	CategoryID uint64     `json:"category_id" binding:"required"`
	Word       string     `json:"word" binding:"required,max=255"`
	WordType   NGWordType `json:"word_type" binding:"omitempty,oneof=exact partial regex"`
	Reason     string     `json:"reason,omitempty" binding:"max=255"`
}

// CheckNGWordsRequest ad-hoc text check
type CheckNGWordsRequest struct {
	CategoryID uint64 `json:"category_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// CheckNGWordsResponse violations found in the text
type CheckNGWordsResponse struct {
	Violations []string `json:"violations"`
}

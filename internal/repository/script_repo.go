package repository

import (
	"github.com/adscript/adscript-backend/internal/domain"
	"gorm.io/gorm"
)

// ScriptRepository effective and generated script data access
type ScriptRepository interface {
	CreateEffective(script *domain.EffectiveScript) error
	FindEffective(id uint64) (*domain.EffectiveScript, error)
	ListEffective(filter domain.ScriptFilter) ([]*domain.EffectiveScript, error)
	UpdateEffective(script *domain.EffectiveScript) error
	CountEffective(categoryID uint64) (int64, error)

	CreateGenerated(script *domain.GeneratedScript) error
	FindGenerated(id uint64) (*domain.GeneratedScript, error)
	ListGenerated(filter domain.ScriptFilter) ([]*domain.GeneratedScript, error)
	CountGenerated(categoryID uint64) (int64, error)

	// Text loads the extractor fields of either variant
	Text(ref domain.ScriptRef) (*domain.ScriptText, error)
}

type scriptRepository struct {
	db *gorm.DB
}

// NewScriptRepository creates a new ScriptRepository
func NewScriptRepository(db *gorm.DB) ScriptRepository {
	return &scriptRepository{db: db}
}

// withCategory joins the category name and applies the list filter; alias is the script table alias
func withCategory(db *gorm.DB, table, alias string, filter domain.ScriptFilter) *gorm.DB {
	q := db.Table(table+" AS "+alias).
		Select(alias + ".*, pc.category_name").
		Joins("LEFT JOIN product_categories pc ON pc.id = " + alias + ".category_id")
	if filter.CategoryID != 0 {
		q = q.Where(alias+".category_id = ?", filter.CategoryID)
	}
	if filter.Platform != "" {
		q = q.Where(alias+".platform = ?", filter.Platform)
	}
	return q
}

func (r *scriptRepository) CreateEffective(script *domain.EffectiveScript) error {
	return r.db.Create(script).Error
}

func (r *scriptRepository) FindEffective(id uint64) (*domain.EffectiveScript, error) {
	var script domain.EffectiveScript
	err := withCategory(r.db, "effective_scripts", "es", domain.ScriptFilter{}).
		Where("es.id = ?", id).
		Take(&script).Error
	if err != nil {
		return nil, err
	}
	return &script, nil
}

// ListEffective returns scripts newest first
func (r *scriptRepository) ListEffective(filter domain.ScriptFilter) ([]*domain.EffectiveScript, error) {
	var scripts []*domain.EffectiveScript
	err := withCategory(r.db, "effective_scripts", "es", filter).
		Order("es.created_at DESC, es.id DESC").
		Find(&scripts).Error
	return scripts, err
}

func (r *scriptRepository) UpdateEffective(script *domain.EffectiveScript) error {
	return r.db.Model(&domain.EffectiveScript{}).
		Where("id = ?", script.ID).
		Updates(map[string]interface{}{
			"title":                script.Title,
			"hook":                 script.Hook,
			"main_content":         script.MainContent,
			"call_to_action":       script.CallToAction,
			"script_content":       script.ScriptContent,
			"platform":             script.Platform,
			"effectiveness_reason": script.EffectivenessReason,
		}).Error
}

// CountEffective counts scripts of one category; 0 counts all
func (r *scriptRepository) CountEffective(categoryID uint64) (int64, error) {
	return countByCategory(r.db.Model(&domain.EffectiveScript{}), categoryID)
}

func (r *scriptRepository) CreateGenerated(script *domain.GeneratedScript) error {
	return r.db.Create(script).Error
}

func (r *scriptRepository) FindGenerated(id uint64) (*domain.GeneratedScript, error) {
	var script domain.GeneratedScript
	err := withCategory(r.db, "generated_scripts", "gs", domain.ScriptFilter{}).
		Where("gs.id = ?", id).
		Take(&script).Error
	if err != nil {
		return nil, err
	}
	return &script, nil
}

func (r *scriptRepository) ListGenerated(filter domain.ScriptFilter) ([]*domain.GeneratedScript, error) {
	var scripts []*domain.GeneratedScript
	err := withCategory(r.db, "generated_scripts", "gs", filter).
		Order("gs.created_at DESC, gs.id DESC").
		Find(&scripts).Error
	return scripts, err
}

func (r *scriptRepository) CountGenerated(categoryID uint64) (int64, error) {
	return countByCategory(r.db.Model(&domain.GeneratedScript{}), categoryID)
}

func countByCategory(q *gorm.DB, categoryID uint64) (int64, error) {
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *scriptRepository) Text(ref domain.ScriptRef) (*domain.ScriptText, error) {
	var model interface{}
	switch ref.Type {
	case domain.ScriptTypeEffective:
		model = &domain.EffectiveScript{}
	case domain.ScriptTypeGenerated:
		model = &domain.GeneratedScript{}
	default:
		return nil, gorm.ErrRecordNotFound
	}

	var text domain.ScriptText
	err := r.db.Model(model).
		Select("title, hook, main_content, call_to_action").
		Where("id = ?", ref.ID).
		Take(&text).Error
	if err != nil {
		return nil, err
	}
	return &text, nil
}

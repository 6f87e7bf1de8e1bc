package repository

import (
	"github.com/adscript/adscript-backend/internal/domain"
	"gorm.io/gorm"
)

// NGWordRepository banned phrase data access
type NGWordRepository interface {
	Create(word *domain.NGWord) error
	FindByCategory(categoryID uint64) ([]*domain.NGWord, error)
	Delete(id uint64) error
}

type ngWordRepository struct {
	db *gorm.DB
}

// NewNGWordRepository creates a new NGWordRepository
func NewNGWordRepository(db *gorm.DB) NGWordRepository {
	return &ngWordRepository{db: db}
}

func (r *ngWordRepository) Create(word *domain.NGWord) error {
	return r.db.Create(word).Error
}

// FindByCategory returns words newest first; categoryID 0 lists every category
func (r *ngWordRepository) FindByCategory(categoryID uint64) ([]*domain.NGWord, error) {
	var words []*domain.NGWord
	q := r.db.Table("ng_words AS nw").
		Select("nw.*, pc.category_name").
		Joins("JOIN product_categories pc ON pc.id = nw.category_id")
	if categoryID != 0 {
		q = q.Where("nw.category_id = ?", categoryID)
	}
	err := q.Order("nw.created_at DESC, nw.id DESC").Find(&words).Error
	return words, err
}

func (r *ngWordRepository) Delete(id uint64) error {
	result := r.db.Delete(&domain.NGWord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

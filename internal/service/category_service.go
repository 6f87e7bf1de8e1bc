package service

import (
	"fmt"
	"strings"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/repository"
)

// CategoryService business logic for product categories
type CategoryService interface {
	Create(req *domain.CreateCategoryRequest) (*domain.Category, error)
	List() ([]*domain.Category, error)
	Get(id uint64) (*domain.Category, error)
	UpdateTargets(id uint64, req *domain.UpdateTargetsRequest) (*domain.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func validTargets(t domain.Targets) bool {
	return t.CTR >= 0 && t.CPC >= 0 && t.MCVR >= 0 && t.MCPA >= 0 && t.CVR >= 0 && t.CPA >= 0
}

// Create registers a category; a duplicate name is a conflict
func (s *categoryService) Create(req *domain.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", common.ErrInvalidInput)
	}

	category := &domain.Category{Name: name}
	if req.Targets != nil {
		if !validTargets(*req.Targets) {
			return nil, fmt.Errorf("targets must not be negative: %w", common.ErrInvalidInput)
		}
		category.Targets = *req.Targets
	}

	if err := s.repo.Create(category); err != nil {
		return nil, translate(err, common.ErrCategoryNotFound)
	}
	return category, nil
}

func (s *categoryService) List() ([]*domain.Category, error) {
	return s.repo.FindAll()
}

func (s *categoryService) Get(id uint64) (*domain.Category, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, translate(err, common.ErrCategoryNotFound)
	}
	return category, nil
}

// UpdateTargets replaces the targets; stored verdicts are left as they were judged
func (s *categoryService) UpdateTargets(id uint64, req *domain.UpdateTargetsRequest) (*domain.Category, error) {
	targets := req.ToTargets()
	if !validTargets(targets) {
		return nil, fmt.Errorf("targets must not be negative: %w", common.ErrInvalidInput)
	}

	if err := s.repo.UpdateTargets(id, targets); err != nil {
		return nil, translate(err, common.ErrCategoryNotFound)
	}
	return s.Get(id)
}

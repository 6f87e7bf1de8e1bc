package service

import (
	"fmt"
	"strings"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/repository"
)

// PlatformService business logic for ad platforms
type PlatformService interface {
	ListActive() ([]*domain.Platform, error)
	ListAll() ([]*domain.Platform, error)
	Create(req *domain.CreatePlatformRequest) (*domain.Platform, error)
	Update(id uint64, req *domain.UpdatePlatformRequest) (*domain.Platform, error)
	Deactivate(id uint64) error
	Usage() (*domain.PlatformUsage, error)
}

type platformService struct {
	repo repository.PlatformRepository
}

// NewPlatformService creates a new PlatformService
func NewPlatformService(repo repository.PlatformRepository) PlatformService {
	return &platformService{repo: repo}
}

func (s *platformService) ListActive() ([]*domain.Platform, error) {
	return s.repo.FindActive()
}

func (s *platformService) ListAll() ([]*domain.Platform, error) {
	return s.repo.FindAll()
}

func (s *platformService) Create(req *domain.CreatePlatformRequest) (*domain.Platform, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" || code == "" {
		return nil, fmt.Errorf("platform name and code are required: %w", common.ErrInvalidInput)
	}

	platform := &domain.Platform{
		Name:        name,
		Code:        code,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(platform); err != nil {
		return nil, translate(err, common.ErrPlatformNotFound)
	}
	return platform, nil
}

func (s *platformService) Update(id uint64, req *domain.UpdatePlatformRequest) (*domain.Platform, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["platform_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		fields["platform_code"] = strings.TrimSpace(*req.Code)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}

	if len(fields) > 0 {
		if err := s.repo.Update(id, fields); err != nil {
			return nil, translate(err, common.ErrPlatformNotFound)
		}
	}

	platform, err := s.repo.FindByID(id)
	if err != nil {
		return nil, translate(err, common.ErrPlatformNotFound)
	}
	return platform, nil
}

// Deactivate hides a platform from selection lists
func (s *platformService) Deactivate(id uint64) error {
	return translate(s.repo.Deactivate(id), common.ErrPlatformNotFound)
}

func (s *platformService) Usage() (*domain.PlatformUsage, error) {
	return s.repo.UsageCounts()
}

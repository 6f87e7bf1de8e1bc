package service

import (
	"fmt"
	"strings"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/repository"
)

// DefaultGenerationSource marks drafts saved from the generator
const DefaultGenerationSource = "統合AI生成"

// ScriptService business logic for the script library
type ScriptService interface {
	AddEffective(req *domain.CreateEffectiveScriptRequest) (*domain.EffectiveScript, error)
	ListEffective(filter domain.ScriptFilter) ([]*domain.EffectiveScript, error)
	GetEffective(id uint64) (*domain.EffectiveScript, error)
	UpdateEffective(id uint64, req *domain.UpdateEffectiveScriptRequest) (*domain.EffectiveScript, error)

	SaveGenerated(req *domain.SaveGeneratedScriptRequest) (*domain.GeneratedScript, error)
	ListGenerated(filter domain.ScriptFilter) ([]*domain.GeneratedScript, error)
	GetGenerated(id uint64) (*domain.GeneratedScript, error)

	Text(ref domain.ScriptRef) (*domain.ScriptText, error)
	// Resolve returns the owning category and platform of either variant
	Resolve(ref domain.ScriptRef) (categoryID uint64, platform string, err error)
}

type scriptService struct {
	repo       repository.ScriptRepository
	categories repository.CategoryRepository
}

// NewScriptService creates a new ScriptService
func NewScriptService(repo repository.ScriptRepository, categories repository.CategoryRepository) ScriptService {
	return &scriptService{repo: repo, categories: categories}
}

func (s *scriptService) requireCategory(id uint64) error {
	if _, err := s.categories.FindByID(id); err != nil {
		return translate(err, common.ErrCategoryNotFound)
	}
	return nil
}

func (s *scriptService) AddEffective(req *domain.CreateEffectiveScriptRequest) (*domain.EffectiveScript, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", common.ErrInvalidInput)
	}
	if err := s.requireCategory(req.CategoryID); err != nil {
		return nil, err
	}

	script := &domain.EffectiveScript{
		CategoryID:          req.CategoryID,
		Title:               req.Title,
		Hook:                req.Hook,
		MainContent:         req.MainContent,
		CallToAction:        req.CallToAction,
		ScriptContent:       domain.ComposeScriptContent(req.Hook, req.MainContent, req.CallToAction),
		Platform:            req.Platform,
		EffectivenessReason: req.EffectivenessReason,
	}
	if err := s.repo.CreateEffective(script); err != nil {
		return nil, err
	}
	return script, nil
}

func (s *scriptService) ListEffective(filter domain.ScriptFilter) ([]*domain.EffectiveScript, error) {
	return s.repo.ListEffective(filter)
}

func (s *scriptService) GetEffective(id uint64) (*domain.EffectiveScript, error) {
	script, err := s.repo.FindEffective(id)
	if err != nil {
		return nil, translate(err, common.ErrScriptNotFound)
	}
	return script, nil
}

// UpdateEffective applies the given fields and rebuilds script_content
func (s *scriptService) UpdateEffective(id uint64, req *domain.UpdateEffectiveScriptRequest) (*domain.EffectiveScript, error) {
	script, err := s.GetEffective(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		script.Title = *req.Title
	}
	if req.Hook != nil {
		script.Hook = *req.Hook
	}
	if req.MainContent != nil {
		script.MainContent = *req.MainContent
	}
	if req.CallToAction != nil {
		script.CallToAction = *req.CallToAction
	}
	if req.Platform != nil {
		script.Platform = *req.Platform
	}
	if req.EffectivenessReason != nil {
		script.EffectivenessReason = *req.EffectivenessReason
	}
	if strings.TrimSpace(script.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", common.ErrInvalidInput)
	}
	script.ScriptContent = domain.ComposeScriptContent(script.Hook, script.MainContent, script.CallToAction)

	if err := s.repo.UpdateEffective(script); err != nil {
		return nil, err
	}
	return script, nil
}

func (s *scriptService) SaveGenerated(req *domain.SaveGeneratedScriptRequest) (*domain.GeneratedScript, error) {
	if err := s.requireCategory(req.CategoryID); err != nil {
		return nil, err
	}

	script := &domain.GeneratedScript{
		CategoryID:       req.CategoryID,
		Title:            req.Title,
		Hook:             req.Hook,
		MainContent:      req.MainContent,
		CallToAction:     req.CallToAction,
		ScriptContent:    req.ScriptContent,
		Platform:         req.Platform,
		GenerationSource: req.GenerationSource,
	}
	if script.ScriptContent == "" {
		script.ScriptContent = domain.ComposeScriptContent(req.Hook, req.MainContent, req.CallToAction)
	}
	if script.GenerationSource == "" {
		script.GenerationSource = DefaultGenerationSource
	}

	if err := s.repo.CreateGenerated(script); err != nil {
		return nil, err
	}
	return script, nil
}

func (s *scriptService) ListGenerated(filter domain.ScriptFilter) ([]*domain.GeneratedScript, error) {
	return s.repo.ListGenerated(filter)
}

func (s *scriptService) GetGenerated(id uint64) (*domain.GeneratedScript, error) {
	script, err := s.repo.FindGenerated(id)
	if err != nil {
		return nil, translate(err, common.ErrScriptNotFound)
	}
	return script, nil
}

func (s *scriptService) Text(ref domain.ScriptRef) (*domain.ScriptText, error) {
	text, err := s.repo.Text(ref)
	if err != nil {
		return nil, translate(err, common.ErrScriptNotFound)
	}
	return text, nil
}

func (s *scriptService) Resolve(ref domain.ScriptRef) (uint64, string, error) {
	switch ref.Type {
	case domain.ScriptTypeEffective:
		script, err := s.GetEffective(ref.ID)
		if err != nil {
			return 0, "", err
		}
		return script.CategoryID, script.Platform, nil
	case domain.ScriptTypeGenerated:
		script, err := s.GetGenerated(ref.ID)
		if err != nil {
			return 0, "", err
		}
		return script.CategoryID, script.Platform, nil
	default:
		return 0, "", fmt.Errorf("unknown script type %q: %w", ref.Type, common.ErrInvalidInput)
	}
}

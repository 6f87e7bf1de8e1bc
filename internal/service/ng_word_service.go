package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/repository"
	"github.com/rs/zerolog"
)

// NGWordService manages regulated phrases and screens text against them
type NGWordService interface {
	Add(req *domain.CreateNGWordRequest) (*domain.NGWord, error)
	List(categoryID uint64) ([]*domain.NGWord, error)
	Delete(id uint64) error
	// Check lists the words of the category that occur in text
	Check(categoryID uint64, text string) ([]string, error)
	// Clean replaces every violation in the draft with the replacement marker
	Clean(categoryID uint64, draft domain.ScriptDraft) (domain.ScriptDraft, []string, error)
}

type ngWordService struct {
	repo       repository.NGWordRepository
	categories repository.CategoryRepository
	log        zerolog.Logger
}

// NewNGWordService creates a new NGWordService
func NewNGWordService(repo repository.NGWordRepository, categories repository.CategoryRepository, log zerolog.Logger) NGWordService {
	return &ngWordService{repo: repo, categories: categories, log: log}
}

func (s *ngWordService) Add(req *domain.CreateNGWordRequest) (*domain.NGWord, error) {
	word := strings.TrimSpace(req.Word)
	if word == "" {
		return nil, fmt.Errorf("word is required: %w", common.ErrInvalidInput)
	}

	wordType := req.WordType
	if wordType == "" {
		wordType = domain.NGWordExact
	}
	switch wordType {
	case domain.NGWordExact, domain.NGWordPartial:
	case domain.NGWordRegex:
		if _, err := regexp.Compile(word); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", word, common.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("unknown word type %q: %w", wordType, common.ErrInvalidInput)
	}

	if _, err := s.categories.FindByID(req.CategoryID); err != nil {
		return nil, translate(err, common.ErrCategoryNotFound)
	}

	ng := &domain.NGWord{
		CategoryID: req.CategoryID,
		Word:       word,
		WordType:   wordType,
		Reason:     req.Reason,
	}
	if err := s.repo.Create(ng); err != nil {
		return nil, err
	}
	return ng, nil
}

func (s *ngWordService) List(categoryID uint64) ([]*domain.NGWord, error) {
	return s.repo.FindByCategory(categoryID)
}

func (s *ngWordService) Delete(id uint64) error {
	return translate(s.repo.Delete(id), common.ErrNGWordNotFound)
}

func (s *ngWordService) Check(categoryID uint64, text string) ([]string, error) {
	words, err := s.repo.FindByCategory(categoryID)
	if err != nil {
		return nil, err
	}

	violations := []string{}
	for _, w := range words {
		m, err := matcherFor(w)
		if err != nil {
			s.log.Warn().Err(err).Uint64("ng_word_id", w.ID).Msg("skipping invalid ng word pattern")
			continue
		}
		if m.MatchString(text) {
			violations = append(violations, w.Word)
		}
	}
	return violations, nil
}

func (s *ngWordService) Clean(categoryID uint64, draft domain.ScriptDraft) (domain.ScriptDraft, []string, error) {
	words, err := s.repo.FindByCategory(categoryID)
	if err != nil {
		return draft, nil, err
	}

	violations := []string{}
	seen := map[string]bool{}

	for _, w := range words {
		m, err := matcherFor(w)
		if err != nil {
			s.log.Warn().Err(err).Uint64("ng_word_id", w.ID).Msg("skipping invalid ng word pattern")
			continue
		}

		for _, field := range []*string{&draft.Title, &draft.Hook, &draft.MainContent, &draft.CallToAction, &draft.ScriptContent} {
			if !m.MatchString(*field) {
				continue
			}
			*field = m.ReplaceAllLiteralString(*field, domain.NGWordReplacement)
			if !seen[w.Word] {
				seen[w.Word] = true
				violations = append(violations, w.Word)
			}
		}
	}
	return draft, violations, nil
}

// matcherFor compiles a word into a regexp: exact is a literal match,
// partial is a case-insensitive literal match, regex is used as written
func matcherFor(w *domain.NGWord) (*regexp.Regexp, error) {
	switch w.WordType {
	case domain.NGWordPartial:
		return regexp.Compile("(?i)" + regexp.QuoteMeta(w.Word))
	case domain.NGWordRegex:
		return regexp.Compile(w.Word)
	default:
		return regexp.Compile(regexp.QuoteMeta(w.Word))
	}
}

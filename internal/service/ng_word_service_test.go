package service

import (
	"testing"

	"github.com/adscript/adscript-backend/internal/common"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNGWordService(r *testRepos) NGWordService {
	return NewNGWordService(r.ngWords, r.categories, zerolog.Nop())
}

func TestNGWordService_Add(t *testing.T) {
	r := setupRepos(t)
	cat := seedCategory(t, r, "健康食品", domain.Targets{})
	svc := newNGWordService(r)

	word, err := svc.Add(&domain.CreateNGWordRequest{CategoryID: cat.ID, Word: " 完治 ", Reason: "薬機法"})
	require.NoError(t, err)
	assert.Equal(t, "完治", word.Word)
	assert.Equal(t, domain.NGWordExact, word.WordType)

	_, err = svc.Add(&domain.CreateNGWordRequest{CategoryID: cat.ID, Word: "(unclosed", WordType: domain.NGWordRegex})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Add(&domain.CreateNGWordRequest{CategoryID: cat.ID + 1, Word: "治る"})
	assert.ErrorIs(t, err, common.ErrCategoryNotFound)
}

func TestNGWordService_CheckAndClean(t *testing.T) {
	r := setupRepos(t)
	cat := seedCategory(t, r, "健康食品", domain.Targets{})
	svc := newNGWordService(r)

	for _, req := range []domain.CreateNGWordRequest{
		{CategoryID: cat.ID, Word: "完治", WordType: domain.NGWordExact},
		{CategoryID: cat.ID, Word: "No.1", WordType: domain.NGWordPartial},
		{CategoryID: cat.ID, Word: `絶対に?痩せる`, WordType: domain.NGWordRegex},
	} {
		_, err := svc.Add(&req)
		require.NoError(t, err)
	}
	// stored directly to bypass validation
	require.NoError(t, r.ngWords.Create(&domain.NGWord{CategoryID: cat.ID, Word: "(broken", WordType: domain.NGWordRegex}))

	violations, err := svc.Check(cat.ID, "業界no.1の実力で絶対痩せる")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"No.1", `絶対に?痩せる`}, violations)

	draft := domain.ScriptDraft{
		Title:         "完治への近道",
		Hook:          "NO.1の実績",
		MainContent:   "絶対に痩せる方法",
		CallToAction:  "今すぐ",
		ScriptContent: "完治 NO.1 絶対に痩せる",
	}
	cleaned, violations, err := svc.Clean(cat.ID, draft)
	require.NoError(t, err)

	assert.Equal(t, "[規制対象]への近道", cleaned.Title)
	assert.Equal(t, "[規制対象]の実績", cleaned.Hook)
	assert.Equal(t, "[規制対象]方法", cleaned.MainContent)
	assert.Equal(t, "今すぐ", cleaned.CallToAction)
	assert.Equal(t, "[規制対象] [規制対象] [規制対象]", cleaned.ScriptContent)
	assert.ElementsMatch(t, []string{"完治", "No.1", `絶対に?痩せる`}, violations)
}

func TestNGWordService_CleanWithoutWords(t *testing.T) {
	r := setupRepos(t)
	cat := seedCategory(t, r, "健康食品", domain.Targets{})

	draft := domain.ScriptDraft{Title: "完治"}
	cleaned, violations, err := newNGWordService(r).Clean(cat.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, draft, cleaned)
	assert.Empty(t, violations)
}

func TestNGWordService_Delete(t *testing.T) {
	r := setupRepos(t)
	cat := seedCategory(t, r, "健康食品", domain.Targets{})
	svc := newNGWordService(r)

	word, err := svc.Add(&domain.CreateNGWordRequest{CategoryID: cat.ID, Word: "完治"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(word.ID))
	assert.ErrorIs(t, svc.Delete(word.ID), common.ErrNGWordNotFound)
}

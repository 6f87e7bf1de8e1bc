package repository

import (
	"testing"

	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPlatformRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlatformRepository(db)

	tiktok := &domain.Platform{Name: "TikTok", Code: "tiktok", IsActive: true, SortOrder: 2}
	line := &domain.Platform{Name: "LINE VOOM", Code: "line_voom", IsActive: true, SortOrder: 1}
	require.NoError(t, repo.Create(tiktok))
	require.NoError(t, repo.Create(line))

	err := repo.Create(&domain.Platform{Name: "TikTok", Code: "tt"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	active, err := repo.FindActive()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "LINE VOOM", active[0].Name)

	require.NoError(t, repo.Deactivate(line.ID))
	active, err = repo.FindActive()
	require.NoError(t, err)
	require.Len(t, active, 1)

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Update(tiktok.ID, map[string]interface{}{"description": "short video"}))
	found, err := repo.FindByID(tiktok.ID)
	require.NoError(t, err)
	assert.Equal(t, "short video", found.Description)

	assert.ErrorIs(t, repo.Deactivate(999), gorm.ErrRecordNotFound)
}

func TestPlatformRepository_UsageCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlatformRepository(db)
	cat := seedCategory(t, db, "c")

	require.NoError(t, db.Create(&[]domain.EffectiveScript{
		{CategoryID: cat.ID, Title: "a", Platform: "TikTok"},
		{CategoryID: cat.ID, Title: "b", Platform: "TikTok"},
		{CategoryID: cat.ID, Title: "c", Platform: "Meta"},
	}).Error)
	require.NoError(t, db.Create(&domain.CampaignResult{Platform: "Meta"}).Error)

	usage, err := repo.UsageCounts()
	require.NoError(t, err)
	require.Len(t, usage.EffectiveScripts, 2)
	assert.Equal(t, domain.PlatformCount{Platform: "TikTok", Count: 2}, usage.EffectiveScripts[0])
	assert.Empty(t, usage.GeneratedScripts)
	assert.Equal(t, []domain.PlatformCount{{Platform: "Meta", Count: 1}}, usage.CampaignResults)
}

func TestNGWordRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNGWordRepository(db)
	a := seedCategory(t, db, "a")
	b := seedCategory(t, db, "b")

	w := &domain.NGWord{CategoryID: a.ID, Word: "絶対", WordType: domain.NGWordExact, Reason: "薬機法"}
	require.NoError(t, repo.Create(w))
	require.NoError(t, repo.Create(&domain.NGWord{CategoryID: b.ID, Word: "治る", WordType: domain.NGWordPartial}))

	words, err := repo.FindByCategory(a.ID)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "絶対", words[0].Word)
	assert.Equal(t, "a", words[0].CategoryName)

	all, err := repo.FindByCategory(0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(w.ID))
	assert.ErrorIs(t, repo.Delete(w.ID), gorm.ErrRecordNotFound)
}

func TestAPIUsageRepository_DailyUsage(t *testing.T) {
	repo := NewAPIUsageRepository(setupTestDB(t))

	empty, err := repo.DailyUsage("2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.RequestCount)
	assert.Equal(t, 0.0, empty.TotalCost)

	require.NoError(t, repo.Create(&domain.APIUsageLog{Date: "2026-10-15", RequestType: "integrated_script_generation", TokensUsed: 1000, CostJPY: 0.045}))
	require.NoError(t, repo.Create(&domain.APIUsageLog{Date: "2026-10-15", RequestType: "integrated_script_generation", TokensUsed: 2000, CostJPY: 0.09}))
	require.NoError(t, repo.Create(&domain.APIUsageLog{Date: "2026-10-14", RequestType: "integrated_script_generation", TokensUsed: 500, CostJPY: 0.0225}))

	usage, err := repo.DailyUsage("2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, int64(2), usage.RequestCount)
	assert.Equal(t, int64(3000), usage.TotalTokens)
	assert.InDelta(t, 0.135, usage.TotalCost, 1e-9)
}

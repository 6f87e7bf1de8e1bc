package migration

import (
	"github.com/adscript/adscript-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models every table owned by the service, in dependency order
func Models() []interface{} {
	return []interface{}{
		&domain.Category{},
		&domain.Platform{},
		&domain.EffectiveScript{},
		&domain.GeneratedScript{},
		&domain.CampaignResult{},
		&domain.Pattern{},
		&domain.NGWord{},
		&domain.APIUsageLog{},
	}
}

// Run executes AutoMigrate for all tables and seeds the default platforms if empty.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	for _, stmt := range keyCollationStatements(db.Dialector.Name()) {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&domain.Platform{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return SeedPlatforms(db)
	}

	return nil
}

// keyCollationStatements pins the pattern key columns to a binary collation on
// MySQL so that tokens differing only in case or width stay separate rows.
func keyCollationStatements(dialect string) []string {
	if dialect != "mysql" {
		return nil
	}
	return []string{
		"ALTER TABLE learning_patterns" +
			" MODIFY platform VARCHAR(50) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin," +
			" MODIFY pattern_type VARCHAR(20) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin," +
			" MODIFY pattern_content VARCHAR(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin",
	}
}

// DefaultPlatforms initial platform rows
func DefaultPlatforms() []domain.Platform {
	return []domain.Platform{
		{Name: "TikTok", Code: "tiktok", Description: "TikTok向けショート動画", IsActive: true, SortOrder: 1},
		{Name: "Instagram Reels", Code: "instagram", Description: "Instagram Reels向けショート動画", IsActive: true, SortOrder: 2},
		{Name: "YouTube Shorts", Code: "youtube", Description: "YouTube Shorts向けショート動画", IsActive: true, SortOrder: 3},
		{Name: "Meta", Code: "meta", Description: "Meta（Facebook）向け動画", IsActive: true, SortOrder: 4},
	}
}

// SeedPlatforms inserts the default platforms, skipping existing codes
func SeedPlatforms(db *gorm.DB) error {
	platforms := DefaultPlatforms()
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&platforms).Error
}

package main

import (
	"flag"
	"log"

	"github.com/adscript/adscript-backend/internal/config"
	"github.com/adscript/adscript-backend/internal/database"
	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/migration"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	seed := flag.Bool("seed", false, "insert default platforms missing from the platforms table")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *verbose {
		cfg.Database.LogLevel = "info"
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Migrated %d tables", len(migration.Models()))

	if *seed {
		if err := migration.SeedPlatforms(db); err != nil {
			log.Fatalf("Seeding platforms failed: %v", err)
		}
		var count int64
		db.Model(&domain.Platform{}).Count(&count)
		log.Printf("Platforms: %d rows", count)
	}
}

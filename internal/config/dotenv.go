package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env.local, then .env.<APP_ENV>, then .env from the working directory.
// godotenv never overrides variables that are already set, so the process
// environment wins and earlier files win over later ones.
// Returns the files actually loaded.
func LoadDotEnv() []string {
	return loadDotEnvFrom("", os.Getenv("APP_ENV"))
}

func loadDotEnvFrom(dir, env string) []string {
	candidates := []string{".env.local"}
	if env != "" && env != "local" {
		candidates = append(candidates, ".env."+env)
	}
	candidates = append(candidates, ".env")

	var loaded []string
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			loaded = append(loaded, path)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

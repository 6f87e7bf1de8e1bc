package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // Asia/Tokyo on hosts without zoneinfo

	"github.com/adscript/adscript-backend/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Config application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Generation GenerationConfig `yaml:"generation"`
	Learning   LearningConfig   `yaml:"learning"`
	CORS       CORSConfig       `yaml:"cors"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // debug | release | test
	Env  string `yaml:"env"`
}

// DatabaseConfig store settings; Driver is mysql or sqlite
type DatabaseConfig struct {
	Driver          string `yaml:"driver"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	Path            string `yaml:"path"` // sqlite file
	DSN             string `yaml:"dsn"`  // overrides the individual fields
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
	LogLevel        string `yaml:"log_level"`         // silent | error | warn | info
}

// RedisConfig cache and rate limit backend
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// OpenAIConfig text-generation provider
type OpenAIConfig struct {
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	Temperature     float32 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
	CostPer1KTokens float64 `yaml:"cost_per_1k_tokens_jpy"`
}

// GenerationConfig daily budgets for the provider
type GenerationConfig struct {
	DailyRequestLimit int64   `yaml:"daily_request_limit"`
	DailyCostLimitJPY float64 `yaml:"daily_cost_limit_jpy"`
	RateLimitPerMin   int     `yaml:"rate_limit_per_minute"`
	Timezone          string  `yaml:"timezone"`
}

// LearningConfig pattern ledger behaviour
type LearningConfig struct {
	LearnFromPoorResults bool `yaml:"learn_from_poor_results"`
	CacheTTLSeconds      int  `yaml:"cache_ttl_seconds"`
}

// CORSConfig allowed origins, comma separated
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// Load reads the YAML file at path, applies env overrides and defaults.
// A missing file is not an error; defaults and env still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		logger.Warn("Config file %s not found, using defaults and environment", path)
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Env, "APP_ENV")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Mode, "GIN_MODE")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Database.Path, "DB_PATH")

	setBool(&cfg.Redis.Enabled, "REDIS_ENABLED")
	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")

	setBool(&cfg.Learning.LearnFromPoorResults, "LEARN_FROM_POOR_RESULTS")
	setString(&cfg.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "local"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "debug"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/adscript.db"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 3306
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 50
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}

	if cfg.OpenAI.Temperature == 0 {
		cfg.OpenAI.Temperature = 0.7
	}
	if cfg.OpenAI.MaxTokens == 0 {
		cfg.OpenAI.MaxTokens = 1200
	}
	if cfg.OpenAI.CostPer1KTokens == 0 {
		cfg.OpenAI.CostPer1KTokens = 0.045
	}

	if cfg.Generation.DailyRequestLimit == 0 {
		cfg.Generation.DailyRequestLimit = 100
	}
	if cfg.Generation.DailyCostLimitJPY == 0 {
		cfg.Generation.DailyCostLimitJPY = 500
	}
	if cfg.Generation.RateLimitPerMin == 0 {
		cfg.Generation.RateLimitPerMin = 10
	}
	if cfg.Generation.Timezone == "" {
		cfg.Generation.Timezone = "Asia/Tokyo"
	}

	if cfg.Learning.CacheTTLSeconds == 0 {
		cfg.Learning.CacheTTLSeconds = 600
	}

	if cfg.CORS.AllowOrigins == "" {
		cfg.CORS.AllowOrigins = "http://localhost:3000"
	}
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q (want mysql or sqlite)", c.Database.Driver)
	}
	if c.Generation.DailyRequestLimit < 0 || c.Generation.DailyCostLimitJPY < 0 {
		return fmt.Errorf("generation limits must not be negative")
	}
	if _, err := time.LoadLocation(c.Generation.Timezone); err != nil {
		return fmt.Errorf("invalid generation timezone %q: %w", c.Generation.Timezone, err)
	}
	return nil
}

// IsDevelopment reports whether the server runs in a local/dev environment
func (c *Config) IsDevelopment() bool {
	switch c.Server.Env {
	case "local", "dev", "development":
		return true
	}
	return false
}

// CacheTTL ranked-pattern cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Learning.CacheTTLSeconds) * time.Second
}

// GetDSN returns the MySQL DSN built from the individual fields unless DSN is set
func (d *DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.DBName)
}

// LogResolved logs the effective configuration without secrets
func LogResolved(cfg *Config) {
	logger.Info("Config: env=%s port=%d mode=%s", cfg.Server.Env, cfg.Server.Port, cfg.Server.Mode)
	if cfg.Database.Driver == "sqlite" {
		logger.Info("Config: database=sqlite path=%s", cfg.Database.Path)
	} else {
		logger.Info("Config: database=mysql host=%s:%d db=%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}
	logger.Info("Config: redis enabled=%t %s:%d", cfg.Redis.Enabled, cfg.Redis.Host, cfg.Redis.Port)
	logger.Info("Config: openai model=%s key_set=%t", cfg.OpenAI.Model, cfg.OpenAI.APIKey != "")
	logger.Info("Config: generation daily_requests=%d daily_cost=%.0fJPY learn_from_poor=%t",
		cfg.Generation.DailyRequestLimit, cfg.Generation.DailyCostLimitJPY, cfg.Learning.LearnFromPoorResults)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*dst = b
		}
	}
}

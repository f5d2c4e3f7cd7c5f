package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"warehouse-cost-service/internal/domain"
)

// Config holds process settings read from the environment (and .env via godotenv in main).
type Config struct {
	Port string

	// file, sqlite or postgres.
	CatalogSource string
	CatalogPath   string
	DBPath        string
	DatabaseURL   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	QuoteCacheTTL time.Duration

	CORSAllowedOrigins []string
	UnsourcedPolicy    string
	Rates              domain.RateTable
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Load() (Config, error) {
	cfg := Config{
		Port:            Get("PORT", "3000"),
		CatalogSource:   strings.ToLower(Get("CATALOG_SOURCE", "file")),
		CatalogPath:     Get("CATALOG_PATH", "data/seeds/catalog.json"),
		DBPath:          Get("DB_PATH", "data/app.db"),
		DatabaseURL:     Get("DATABASE_URL", ""),
		RedisAddr:       Get("REDIS_ADDR", ""),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		UnsourcedPolicy: Get("UNSOURCED_POLICY", "reject"),
	}

	switch cfg.CatalogSource {
	case "file", "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required when CATALOG_SOURCE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("load config: CATALOG_SOURCE must be file, sqlite or postgres, got %q", cfg.CatalogSource)
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}

	if cfg.QuoteCacheTTL, err = time.ParseDuration(Get("QUOTE_CACHE_TTL", "10m")); err != nil {
		return Config{}, fmt.Errorf("load config: QUOTE_CACHE_TTL: %w", err)
	}

	for _, o := range strings.Split(Get("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if cfg.Rates, err = LoadRates(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadRates returns the default rate table with any RATE_* overrides applied.
func LoadRates() (domain.RateTable, error) {
	rates := domain.DefaultRates()
	overrides := []struct {
		key string
		dst *float64
	}{
		{"RATE_BASE", &rates.BaseRate},
		{"RATE_BASE_WEIGHT", &rates.BaseWeight},
		{"RATE_BRACKET_WEIGHT", &rates.BracketWeight},
		{"RATE_BRACKET_STEP", &rates.BracketStep},
		{"RATE_REPOSITION", &rates.RepositionRate},
	}

	var err error
	for _, o := range overrides {
		if *o.dst, err = getFloat(o.key, *o.dst); err != nil {
			return domain.RateTable{}, err
		}
	}
	if err := rates.Validate(); err != nil {
		return domain.RateTable{}, fmt.Errorf("load config: %w", err)
	}
	return rates, nil
}

func getInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	return f, nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"
	defaultDSN        = "root:password@tcp(127.0.0.1:3306)/quillmind?charset=utf8mb4&parseTime=True&loc=Local"
	defaultRedisURL   = "redis://localhost:6379/0"
)

// Load reads the YAML config file and applies defaults.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing file is fine; defaults plus env cover local development.
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = envOr("QUILLMIND_ENV", defaultEnv)
	}
	if cfg.DSN == "" {
		cfg.DSN = envOr("QUILLMIND_DSN", defaultDSN)
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = envOr("QUILLMIND_REDIS_URL", defaultRedisURL)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("QUILLMIND_JWT_SECRET")
	}

	if cfg.RateLimit.RequestsPerHour <= 0 {
		cfg.RateLimit.RequestsPerHour = 1000
	}

	if cfg.AI.AnalysisTemperature <= 0 {
		cfg.AI.AnalysisTemperature = 0.1
	}
	if cfg.AI.DefaultTemperature <= 0 {
		cfg.AI.DefaultTemperature = 0.5
	}
	for i := range cfg.AI.Providers {
		p := &cfg.AI.Providers[i]
		if p.APIKey == "" {
			p.APIKey = os.Getenv("QUILLMIND_AI_API_KEY")
		}
	}
}

func validate(cfg *AppConfig) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Env)) {
	case "development", "production":
	default:
		return fmt.Errorf("invalid env %q (want development or production)", cfg.Env)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.ToLower(strings.TrimSpace(c.Env)) != "production"
}

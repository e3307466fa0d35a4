package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int             `yaml:"port"`
	DSN            string          `yaml:"dsn"` // MySQL DSN
	RedisURL       string          `yaml:"redis_url"`
	Env            string          `yaml:"env"` // "development" | "production"
	JWTSecret      string          `yaml:"jwt_secret"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
	AI             AIConfig        `yaml:"ai"`
}

// RateLimitConfig tunes the per-user sliding-window quota for analysis requests.
type RateLimitConfig struct {
	RequestsPerHour int `yaml:"requests_per_hour"`
}

// AIConfig configures LLM providers and which model serves each concern.
type AIConfig struct {
	Providers           []AIProvider       `yaml:"providers"`
	AnalysisModel       *AIModelAssignment `yaml:"analysis_model"`
	RubricModel         *AIModelAssignment `yaml:"rubric_model"`
	AnalysisTemperature float64            `yaml:"analysis_temperature"` // 0.1: suggestions must be reproducible
	DefaultTemperature  float64            `yaml:"default_temperature"`
}

// AIProvider describes one upstream LLM endpoint.
type AIProvider struct {
	ID           string `yaml:"id"`
	Type         string `yaml:"type"` // "openai" | "anthropic" | "openai-compatible" | "openrouter"
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// AIModelAssignment pins a concern to a provider and optionally overrides its model.
type AIModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model"`
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	GeminiAPIKey string
	GroqAPIKey   string

	JWTSecret string
	JWTIssuer string

	RedisURL string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Generation GenerationConfig
	Session    SessionConfig
	RateLimit  RateLimitConfig
}

// GenerationConfig selects the generative-model provider and fallback policy.
type GenerationConfig struct {
	Provider         string `yaml:"provider"`
	Model            string `yaml:"model"`
	FallbackEnabled  bool   `yaml:"fallback_enabled"`
	FallbackProvider string `yaml:"fallback_provider"`
}

// SessionConfig bounds the in-memory session store.
type SessionConfig struct {
	TTLMinutes   int `yaml:"ttl_minutes"`
	HistoryLimit int `yaml:"history_limit"`
}

// RateLimitConfig controls the redis-backed limiter on the generate endpoint.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		GeminiAPIKey:             os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:               os.Getenv("GROQ_API_KEY"),
		JWTSecret:                os.Getenv("JWT_SECRET"),
		JWTIssuer:                os.Getenv("JWT_ISSUER"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "fitchef-ember"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.SetGenerationDefaults()
	cfg.SetSessionDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Generation GenerationConfig `yaml:"generation"`
		Session    SessionConfig    `yaml:"session"`
		RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Generation.Provider != "" {
		c.Generation.Provider = yamlConfig.Generation.Provider
	}
	if yamlConfig.Generation.Model != "" {
		c.Generation.Model = yamlConfig.Generation.Model
	}
	if yamlConfig.Generation.FallbackEnabled {
		c.Generation.FallbackEnabled = yamlConfig.Generation.FallbackEnabled
	}
	if yamlConfig.Generation.FallbackProvider != "" {
		c.Generation.FallbackProvider = yamlConfig.Generation.FallbackProvider
	}
	if yamlConfig.Session.TTLMinutes > 0 {
		c.Session.TTLMinutes = yamlConfig.Session.TTLMinutes
	}
	if yamlConfig.Session.HistoryLimit > 0 {
		c.Session.HistoryLimit = yamlConfig.Session.HistoryLimit
	}
	if yamlConfig.RateLimit.RequestsPerMinute > 0 {
		c.RateLimit.RequestsPerMinute = yamlConfig.RateLimit.RequestsPerMinute
	}

	return nil
}

func (c *Config) SetGenerationDefaults() {
	if c.Generation.Provider == "" {
		c.Generation.Provider = "gemini"
	}
	if c.Generation.Model == "" && c.Generation.Provider == "gemini" {
		c.Generation.Model = "gemini-2.0-flash"
	}
	if c.Generation.FallbackProvider == "" {
		c.Generation.FallbackProvider = "groq"
	}
}

func (c *Config) SetSessionDefaults() {
	if c.Session.TTLMinutes <= 0 {
		c.Session.TTLMinutes = 60
	}
	if c.Session.HistoryLimit <= 0 {
		c.Session.HistoryLimit = 5
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		c.RateLimit.RequestsPerMinute = 10
	}
}

func (c *Config) validate() error {
	if c.GeminiAPIKey == "" && c.GroqAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY or GROQ_API_KEY is required")
	}
	if c.Generation.Provider == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
	}
	if c.Generation.Provider == "groq" && c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required for the groq provider")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// AdapterConfig holds the connection settings for one external provider.
type AdapterConfig struct {
	BaseURL string
	APIKey  string
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL       string
	JWTSecret         string
	Port              string
	TokenTTL          time.Duration
	RateLimitPipeline RateLimitConfig

	// External providers.
	TechDetector   AdapterConfig
	PeopleLookup   AdapterConfig
	Scraper        AdapterConfig
	PageSpeedKey   string
	SearchKey      string
	SearchEngineID string
	AnthropicKey       string
	AnthropicModel     string
	AnthropicMaxTokens int64

	// AdapterTimeout bounds every outbound adapter call. A call that
	// exceeds it counts as a failed source.
	AdapterTimeout time.Duration

	// DefaultPhoneRegion is the region used to parse national phone
	// numbers during contact discovery.
	DefaultPhoneRegion string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret"),
		Port:               getEnv("PORT", "8080"),
		TokenTTL:           parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		TechDetector:       adapterFromEnv("TECH_DETECTOR"),
		PeopleLookup:       adapterFromEnv("PEOPLE_LOOKUP"),
		Scraper:            adapterFromEnv("SCRAPER"),
		PageSpeedKey:       os.Getenv("PAGESPEED_API_KEY"),
		SearchKey:          os.Getenv("SEARCH_API_KEY"),
		SearchEngineID:     os.Getenv("SEARCH_ENGINE_ID"),
		AnthropicKey:       os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		AnthropicMaxTokens: parseInt64(getEnv("ANTHROPIC_MAX_TOKENS", "2048"), 2048),
		AdapterTimeout:     parseDuration(getEnv("ADAPTER_TIMEOUT", "30s"), 30*time.Second),
		DefaultPhoneRegion: getEnv("DEFAULT_PHONE_REGION", "ID"),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_PIPELINE", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PIPELINE value: %w", err)
	}
	cfg.RateLimitPipeline = rl

	return cfg, nil
}

func adapterFromEnv(prefix string) AdapterConfig {
	return AdapterConfig{
		BaseURL: os.Getenv(prefix + "_URL"),
		APIKey:  os.Getenv(prefix + "_API_KEY"),
	}
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseInt64(input string, fallback int64) int64 {
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

type Config struct {
	Server ServerConfig
	App    AppConfig
	LLM    LLMConfig
	Cache  CacheConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Host string
	Port string
}

// Addr is the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	// MetricsReportCron is a seconds-field cron spec; empty disables the report.
	MetricsReportCron string
}

type LLMConfig struct {
	APIKey       string
	BaseURL      string
	PlannerModel string
	BuilderModel string
	VisionModel  string
	Timeout      time.Duration
	Referer      string
	Title        string
}

type CacheConfig struct {
	Backend  string // none, memory or redis
	TTL      time.Duration
	Size     int
	RedisURL string
}

type CORSConfig struct {
	Origins []string
}

var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:5174",
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "8000"),
		},
		App: AppConfig{
			Environment:       getEnv("APP_ENV", "development"),
			LogLevel:          getEnv("LOG_LEVEL", "info"),
			Version:           getEnv("APP_VERSION", "1.0.0"),
			MetricsReportCron: getEnv("METRICS_REPORT_CRON", ""),
		},
		LLM: LLMConfig{
			APIKey:       getEnv("OPENROUTER_API_KEY", ""),
			BaseURL:      getEnv("OPENROUTER_BASE_URL", openRouterBaseURL),
			PlannerModel: getEnv("PLANNER_MODEL", "anthropic/claude-3.5-sonnet"),
			BuilderModel: getEnv("BUILDER_MODEL", "anthropic/claude-3.5-sonnet"),
			VisionModel:  getEnv("VISION_MODEL", "anthropic/claude-3.5-sonnet"),
			Timeout:      getEnvAsDuration("LLM_TIMEOUT", 90*time.Second),
			Referer:      getEnv("APP_REFERER", "https://anymaps.app"),
			Title:        getEnv("APP_TITLE", "AnyMaps"),
		},
		Cache: CacheConfig{
			Backend:  strings.ToLower(getEnv("CACHE_BACKEND", "none")),
			TTL:      getEnvAsDuration("CACHE_TTL", 10*time.Minute),
			Size:     getEnvAsInt("CACHE_SIZE", 256),
			RedisURL: getEnv("REDIS_URL", ""),
		},
		CORS: CORSConfig{
			Origins: getEnvAsList("CORS_ORIGINS", defaultCORSOrigins),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.LLM.APIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required but not set")
	}
	if !strings.HasPrefix(c.LLM.APIKey, "sk-or-") {
		// Only OpenRouter keys have a known shape.
		if strings.TrimRight(c.LLM.BaseURL, "/") == openRouterBaseURL {
			return fmt.Errorf("OPENROUTER_API_KEY appears invalid (should start with 'sk-or-')")
		}
		log.Printf("Warning: OPENROUTER_API_KEY does not look like an OpenRouter key, base URL is %s", c.LLM.BaseURL)
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}

	switch c.Cache.Backend {
	case "none", "memory":
	case "redis":
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of none, memory, redis (got %q)", c.Cache.Backend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma separated value, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

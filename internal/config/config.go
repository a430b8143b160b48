package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port           string
	Env            string
	LogLevel       string
	DatabaseURL    string
	CORSOrigins    []string
	AuthJWTSecret  string
	RateLimitRPS   float64
	RateLimitBurst int

	// OpenRouter (OpenAI-compatible) provider used for chat completions and
	// embeddings.
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	ChatModel         string
	SummaryModel      string
	EmbeddingModel    string
	ProviderTimeout   time.Duration

	// Optional direct Gemini fallback when OpenRouter is down.
	GeminiAPIKey string
	GeminiModel  string

	// Optional Redis cache for comparison results.
	RedisAddr     string
	RedisPassword string
	CompareTTL    time.Duration

	// External OCR/extraction service for PDF and image uploads.
	ExtractorBaseURL string
	MaxUploadBytes   int64
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CORSOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		AuthJWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),

		OpenRouterAPIKey:  getEnv("OPEN_ROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPEN_ROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		ChatModel:         getEnv("CHAT_MODEL", "google/gemini-2.0-flash-001"),
		SummaryModel:      getEnv("SUMMARY_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		ProviderTimeout:   getEnvAsDuration("PROVIDER_TIMEOUT", 60*time.Second),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CompareTTL:    getEnvAsDuration("COMPARE_CACHE_TTL", time.Hour),

		ExtractorBaseURL: getEnv("EXTRACTOR_BASE_URL", ""),
		MaxUploadBytes:   int64(getEnvAsInt("MAX_UPLOAD_BYTES", 12*1024*1024)),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

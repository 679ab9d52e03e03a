package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Ingest   IngestConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	UploadDir          string
}

type DatabaseConfig struct {
	Connection string // empty → in-memory store
}

type APIKeys struct {
	OpenAI       string
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider       string // "openai", "gemini", "ollama" or "none"
	LLMModel          string
	OpenAIBaseURL     string
	OllamaBaseURL     string
	ClassifierTimeout time.Duration
	FallbackTimeout   time.Duration
	MaxRetries        int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type CacheConfig struct {
	RedisURL        string // empty → in-process cache
	WeatherTTL      time.Duration
	WeatherProvider string // "open-meteo" or "simulated"
	OpenMeteoURL    string
	WeatherTimeout  time.Duration
}

type IngestConfig struct {
	Topic    string
	InboxDir string // empty → watcher disabled
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", ""),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ClassifierTimeout: getEnvAsDuration("CLASSIFIER_TIMEOUT", 15*time.Second),
			FallbackTimeout:   getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
			MaxRetries:        getEnvAsInt("LLM_MAX_RETRIES", 1),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		Cache: CacheConfig{
			RedisURL:        getEnv("REDIS_URL", ""),
			WeatherTTL:      getEnvAsDuration("WEATHER_CACHE_TTL", 10*time.Minute),
			WeatherProvider: getEnv("WEATHER_PROVIDER", "open-meteo"),
			OpenMeteoURL:    getEnv("OPEN_METEO_URL", "https://api.open-meteo.com"),
			WeatherTimeout:  getEnvAsDuration("WEATHER_TIMEOUT", 5*time.Second),
		},
		Ingest: IngestConfig{
			Topic:    getEnv("DOCUMENT_PROCESS_TOPIC_NAME", "PROCESS_DOCUMENT"),
			InboxDir: getEnv("KNOWLEDGE_INBOX_DIR", ""),
		},
	}
}

// APIKeyFor returns the configured key for a provider name.
func (c *Config) APIKeyFor(provider string) string {
	switch provider {
	case "openai":
		return c.Keys.OpenAI
	case "gemini":
		return c.Keys.GoogleGemini
	default:
		return ""
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

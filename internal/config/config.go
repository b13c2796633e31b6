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
	Session  SessionConfig
	Dialogue DialogueConfig
	Ai       AIConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	DefaultLanguage    string
}

type DatabaseConfig struct {
	Connection string
}

// SessionConfig selects where per-session stage state lives.
// Store is one of "postgres", "redis", "memory".
type SessionConfig struct {
	Store string
	TTL   time.Duration
}

// DialogueConfig tunes the stage machine and the retrieval path.
type DialogueConfig struct {
	MaxShadowTurns     int
	ReadinessThreshold int
	EmbeddingDim       int
	RetrievalTimeout   time.Duration
	GenerationTimeout  time.Duration
	EmbedCacheTTL      time.Duration
}

type AIConfig struct {
	EmbeddingProvider string // "openai", "ollama" or "stub"
	EmbeddingModel    string
	OllamaBaseURL     string
	LLMProvider       string // "openai", "ollama" or "stub"
	LLMModel          string
}

type APIKeys struct {
	OpenAI          string
	EmbedChunkTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			DefaultLanguage:    getEnv("DEFAULT_LANGUAGE", "en"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Session: SessionConfig{
			Store: getEnv("SESSION_STORE", "postgres"),
			TTL:   getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Dialogue: DialogueConfig{
			MaxShadowTurns:     getEnvAsInt("MAX_SHADOW_TURNS", 2),
			ReadinessThreshold: getEnvAsInt("READINESS_THRESHOLD", 2),
			EmbeddingDim:       getEnvAsInt("EMBEDDING_DIM", 1536),
			RetrievalTimeout:   getEnvAsDuration("RETRIEVAL_TIMEOUT", 10*time.Second),
			GenerationTimeout:  getEnvAsDuration("GENERATION_TIMEOUT", 30*time.Second),
			EmbedCacheTTL:      getEnvAsDuration("EMBED_CACHE_TTL", 15*time.Minute),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		},
		Keys: APIKeys{
			OpenAI:          getEnv("OPENAI_API_KEY", ""),
			EmbedChunkTopic: getEnv("EMBED_CONTENT_CHUNK_TOPIC_NAME", "EMBED_CONTENT_CHUNK"),
		},
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

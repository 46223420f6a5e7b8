package config

import (
	"log"
	"os"
	"strconv"

	"growthboss-ai-be/internal/pkg/serverutils"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string // e.g. "gpt-4o-mini", "llama3"
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string // e.g. "text-embedding-3-small", "nomic-embed-text"
	OpenAIAPIKey      string
	OllamaBaseURL     string
}

// RetrievalConfig carries the stage toggles for the hybrid pipeline.
type RetrievalConfig struct {
	TopK         int
	CouncilK     int
	UseExpansion bool
	UseKeyword   bool
	UseRerank    bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Retrieval: RetrievalConfig{
			TopK:         getEnvAsInt("RETRIEVAL_TOP_K", 8),
			CouncilK:     getEnvAsInt("COUNCIL_TOP_K", 6),
			UseExpansion: getEnvAsBool("RETRIEVAL_USE_EXPANSION", true),
			UseKeyword:   getEnvAsBool("RETRIEVAL_USE_KEYWORD", true),
			UseRerank:    getEnvAsBool("RETRIEVAL_USE_RERANK", true),
		},
	}
}

// RequireOpenAIKey fails fast when an OpenAI-backed provider is selected
// without a key. The message tells the operator exactly how to fix it.
func (c *Config) RequireOpenAIKey() error {
	if c.Ai.LLMProvider != "openai" && c.Ai.EmbeddingProvider != "openai" {
		return nil
	}
	if c.Ai.OpenAIAPIKey != "" {
		return nil
	}
	return serverutils.NewConfigurationError(
		"OPENAI_API_KEY is not set",
		"Please:\n"+
			"  1. Create a .env file in the project root, or\n"+
			"  2. Export the environment variable: export OPENAI_API_KEY='your-key-here'\n"+
			"  3. Get your API key from: https://platform.openai.com/api-keys")
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	RagLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Anthropic string
	OpenAI    string
}

type AIConfig struct {
	PrimaryProvider   string // "anthropic" or "openai"
	AnthropicModel    string
	OpenAIModel       string
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	Temperature       float64
	MaxTokens         int
	RequestTimeoutSec int
}

// RagConfig tunes the retrieval pipeline. Reranker weights must sum to 1.0;
// they are validated in rerank.NewReranker, not here.
type RagConfig struct {
	CacheMaxSize        int
	CacheTTLHours       int
	SimilarityThreshold float64
	VectorThreshold     float64
	RetrievalLimit      int
	ContextTopK         int
	SearchTimeoutSec    int
	WeightOriginal      float64
	WeightTitle         float64
	WeightContent       float64
	WeightFreshness     float64
	WeightPopularity    float64
	WeightContext       float64
	IngestTopicName     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			RagLogFilePath:     getEnv("RAG_LOG_FILE_PATH", "logs/rag_pipeline.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Anthropic: getEnv("ANTHROPIC_API_KEY", ""),
			OpenAI:    getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			PrimaryProvider:   getEnv("LLM_PRIMARY_PROVIDER", "anthropic"),
			AnthropicModel:    getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 1000),
			RequestTimeoutSec: getEnvAsInt("LLM_TIMEOUT_SECONDS", 60),
		},
		Rag: RagConfig{
			CacheMaxSize:        getEnvAsInt("RESULT_CACHE_MAX_SIZE", 1000),
			CacheTTLHours:       getEnvAsInt("RESULT_CACHE_TTL_HOURS", 24),
			SimilarityThreshold: getEnvAsFloat("RESULT_CACHE_SIMILARITY", 0.85),
			VectorThreshold:     getEnvAsFloat("VECTOR_SCORE_THRESHOLD", 0.3),
			RetrievalLimit:      getEnvAsInt("RETRIEVAL_LIMIT", 20),
			ContextTopK:         getEnvAsInt("CONTEXT_TOP_K", 5),
			SearchTimeoutSec:    getEnvAsInt("SEARCH_TIMEOUT_SECONDS", 10),
			WeightOriginal:      getEnvAsFloat("RERANK_WEIGHT_ORIGINAL", 0.20),
			WeightTitle:         getEnvAsFloat("RERANK_WEIGHT_TITLE", 0.25),
			WeightContent:       getEnvAsFloat("RERANK_WEIGHT_CONTENT", 0.20),
			WeightFreshness:     getEnvAsFloat("RERANK_WEIGHT_FRESHNESS", 0.10),
			WeightPopularity:    getEnvAsFloat("RERANK_WEIGHT_POPULARITY", 0.10),
			WeightContext:       getEnvAsFloat("RERANK_WEIGHT_CONTEXT", 0.15),
			IngestTopicName:     getEnv("EMBED_DOCUMENT_CHUNK_TOPIC_NAME", "EMBED_DOCUMENT_CHUNK"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

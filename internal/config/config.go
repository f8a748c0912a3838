package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// It is resolved once at process start and passed by reference into the
// components that need it.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	// Vector store
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	// Embeddings
	EmbeddingBaseURL string
	EmbeddingModel   string
	EmbeddingAPIKey  string

	// Remote generation (OpenAI-compatible chat completions)
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Local generation fallback (Ollama)
	OllamaURL   string
	OllamaModel string

	// Audit log database
	DBPath string

	// RAG pipeline settings
	ChunkSize    int
	ChunkOverlap int
	TopK         int

	// Optional YAML file overriding the built-in safety keyword lists.
	SafetyKeywordsPath string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded
// automatically. Environment variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env next to go.mod (running from cmd/ subdirs)
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "8000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "yoga_knowledge_base"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModel:     getEnv("EMBEDDING_MODEL_NAME", "all-MiniLM-L6-v2"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", "dummy-key"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModel:           getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		LLMAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OllamaURL:          getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:        getEnv("OLLAMA_MODEL", "llama3.2"),
		DBPath:             getEnv("DB_PATH", "./data/yoga-rag.db"),
		SafetyKeywordsPath: getEnv("SAFETY_KEYWORDS_PATH", ""),
	}

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 500)
	if err != nil {
		return nil, err
	}
	cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 50)
	if err != nil {
		return nil, err
	}
	cfg.TopK, err = getEnvInt("TOP_K_RETRIEVAL", 3)
	if err != nil {
		return nil, err
	}

	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be non-negative and smaller than CHUNK_SIZE")
	}
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("TOP_K_RETRIEVAL must be greater than 0")
	}

	// Must match the output vector size of the embedding model. If it changes,
	// the Qdrant collection has to be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	// Create the data directory for the audit database if needed.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// UseRemoteLLM reports whether a plausible remote generation credential is
// configured. The decision is made once at startup; placeholder values from
// .env templates count as absent.
func (c *Config) UseRemoteLLM() bool {
	key := strings.TrimSpace(c.LLMAPIKey)
	if key == "" {
		return false
	}
	return !strings.Contains(key, "your_openai_api_key")
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL: %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"yoga-rag/internal/config"
	"yoga-rag/internal/embedding"
	"yoga-rag/internal/generation"
	"yoga-rag/internal/http"
	"yoga-rag/internal/rag"
	"yoga-rag/internal/retrieval"
	"yoga-rag/internal/safety"
	"yoga-rag/internal/storage"
	"yoga-rag/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize the audit database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	interactionRepo := storage.NewInteractionRepo(db)
	feedbackRepo := storage.NewFeedbackRepo(db)

	ctx := context.Background()

	// Initialize the Qdrant vector index
	index, err := vectorstore.NewQdrantIndex(cfg.QdrantURL, cfg.QdrantCollection)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := index.EnsureCollection(ctx, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := embedding.NewClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize)
	if _, err := embedder.EmbedTexts(ctx, []string{"test"}); err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	slog.Info("Embedding client validated", "model", cfg.EmbeddingModel, "vector_size", cfg.QdrantVectorSize)

	guard := newGuard(cfg)
	retriever := retrieval.NewEngine(embedder, index, cfg.TopK)
	generator := newGenerator(cfg)
	orchestrator := rag.NewOrchestrator(guard, retriever, generator, interactionRepo)
	slog.Info("Query pipeline initialized", "top_k", cfg.TopK)

	router := http.NewRouter(&http.Deps{
		Orchestrator: orchestrator,
		AuditStore:   interactionRepo,
		Feedback:     feedbackRepo,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

// newGuard builds the safety guard, applying the optional keyword override
// file when configured.
func newGuard(cfg *config.Config) *safety.Guard {
	if cfg.SafetyKeywordsPath == "" {
		return safety.New()
	}
	kw, err := safety.LoadKeywords(cfg.SafetyKeywordsPath)
	if err != nil {
		log.Fatalf("Failed to load safety keywords: %v", err)
	}
	slog.Info("Safety keywords loaded", "path", cfg.SafetyKeywordsPath)
	return safety.NewWithKeywords(kw)
}

// newGenerator selects the generation backend once at startup: a remote
// OpenAI-compatible API when a credential is configured, otherwise a local
// Ollama instance. If neither is usable the service still starts and answers
// with a diagnostic message.
func newGenerator(cfg *config.Config) *generation.Engine {
	if cfg.UseRemoteLLM() {
		slog.Info("Using remote generation backend", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel)
		return generation.NewEngine(generation.NewRemoteBackend(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel))
	}

	backend, err := generation.NewLocalBackend(cfg.OllamaURL, cfg.OllamaModel)
	if err != nil {
		slog.Error("Local generation backend unavailable, starting degraded", "url", cfg.OllamaURL, "error", err)
		return generation.NewDegradedEngine()
	}
	slog.Info("Using local generation backend", "url", cfg.OllamaURL, "model", cfg.OllamaModel)
	return generation.NewEngine(backend)
}

// Package http wires the handlers into a chi router with the shared
// middleware stack.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"yoga-rag/internal/handlers"
	"yoga-rag/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Orchestrator handlers.Answerer
	AuditStore   storage.AuditStore
	Feedback     storage.FeedbackStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Orchestrator)
	feedbackHandler := handlers.NewFeedbackHandler(deps.Feedback)
	logsHandler := handlers.NewLogsHandler(deps.AuditStore)

	r.Method(http.MethodPost, "/ask", askHandler)
	r.Method(http.MethodPost, "/feedback", feedbackHandler)
	r.Method(http.MethodGet, "/logs", logsHandler)
	r.Get("/health", handlers.Health)

	return r
}

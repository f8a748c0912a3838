package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"yoga-rag/internal/contextutil"
	"yoga-rag/internal/rag"
)

// Answerer runs one query through the full answering pipeline.
type Answerer interface {
	Answer(ctx context.Context, query string) (rag.QueryResult, error)
}

// AskHandler handles HTTP requests for yoga questions.
type AskHandler struct {
	orchestrator Answerer
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(orchestrator Answerer) *AskHandler {
	return &AskHandler{orchestrator: orchestrator}
}

// AskRequest represents the HTTP request payload for questions.
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse represents the HTTP response payload for answered questions.
type AskResponse struct {
	Answer           string   `json:"answer"`
	SafetyFlag       string   `json:"safety_flag"`
	IsUnsafe         bool     `json:"is_unsafe"`
	Sources          []string `json:"sources"`
	RetrievedContext []string `json:"retrieved_context"`
}

// ServeHTTP handles HTTP requests for yoga questions.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.orchestrator.Answer(ctx, req.Query)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyQuery) {
			logger.WarnContext(ctx, "empty query in request")
			writeError(w, http.StatusBadRequest, "Query cannot be empty")
			return
		}
		logger.ErrorContext(ctx, "failed to answer query", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process query")
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer:           result.Answer,
		SafetyFlag:       string(result.SafetyFlag),
		IsUnsafe:         result.IsUnsafe,
		Sources:          result.Sources,
		RetrievedContext: result.RetrievedContext,
	})
}

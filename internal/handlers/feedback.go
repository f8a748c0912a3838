package handlers

import (
	"encoding/json"
	"net/http"

	"yoga-rag/internal/contextutil"
	"yoga-rag/internal/storage"
)

// FeedbackHandler handles HTTP requests for answer feedback.
type FeedbackHandler struct {
	store storage.FeedbackStore
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(store storage.FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{store: store}
}

// FeedbackRequest represents the HTTP request payload for feedback.
type FeedbackRequest struct {
	Query    string `json:"query"`
	Response string `json:"response"`
	Feedback string `json:"feedback"`
}

// StatusResponse is the generic status payload for write-only endpoints.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ServeHTTP records one feedback verdict.
func (h *FeedbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.store == nil {
		writeJSON(w, http.StatusOK, StatusResponse{Status: "error", Message: "Database not connected"})
		return
	}

	fb := storage.Feedback{Query: req.Query, Response: req.Response, Feedback: req.Feedback}
	if err := h.store.Insert(ctx, fb); err != nil {
		logger.ErrorContext(ctx, "failed to store feedback", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store feedback")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "success", Message: "Feedback received"})
}

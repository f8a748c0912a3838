package handlers

import (
	"net/http"
	"strconv"
	"time"

	"yoga-rag/internal/contextutil"
	"yoga-rag/internal/storage"
)

const defaultLogLimit = 10

// LogsHandler exposes the most recent interaction records for inspection.
type LogsHandler struct {
	store storage.AuditStore
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(store storage.AuditStore) *LogsHandler {
	return &LogsHandler{store: store}
}

// LogEntry represents one interaction record in the HTTP response.
type LogEntry struct {
	Query      string `json:"query"`
	Response   string `json:"response"`
	SafetyFlag string `json:"safety_flag"`
	IsUnsafe   bool   `json:"is_unsafe"`
	Timestamp  string `json:"timestamp"`
}

// ServeHTTP lists recent interactions, newest first. A missing or unreadable
// audit store yields an empty list rather than an error.
func (h *LogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			logger.WarnContext(ctx, "invalid limit parameter", "limit", raw)
			writeError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	entries := []LogEntry{}
	if h.store != nil {
		logs, err := h.store.ListRecent(ctx, limit)
		if err != nil {
			logger.ErrorContext(ctx, "failed to fetch logs", "error", err)
			logs = nil
		}
		for _, entry := range logs {
			entries = append(entries, LogEntry{
				Query:      entry.Query,
				Response:   entry.Response,
				SafetyFlag: entry.SafetyFlag,
				IsUnsafe:   entry.IsUnsafe,
				Timestamp:  entry.Timestamp.UTC().Format(time.RFC3339),
			})
		}
	}

	writeJSON(w, http.StatusOK, entries)
}

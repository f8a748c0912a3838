package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_audit_store.go -package=mocks yoga-rag/internal/storage AuditStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// InteractionLog is one append-only audit record per answered request.
// It is written once and only ever read back for audit or debug listing.
type InteractionLog struct {
	Query           string    `json:"query"`
	Response        string    `json:"response"`
	RetrievedChunks []string  `json:"retrieved_chunks"`
	SafetyFlag      string    `json:"safety_flag"`
	IsUnsafe        bool      `json:"is_unsafe"`
	Timestamp       time.Time `json:"timestamp"`
}

// AuditStore defines the audit sink the orchestrator writes to.
// Callers treat every write as fire-and-forget and tolerate the sink being
// unavailable.
type AuditStore interface {
	// LogInteraction appends one interaction record.
	LogInteraction(ctx context.Context, entry InteractionLog) error
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]InteractionLog, error)
}

// InteractionRepo provides interaction log operations backed by SQLite.
// It implements the AuditStore interface.
type InteractionRepo struct {
	db *sql.DB
}

// NewInteractionRepo creates a new InteractionRepo.
func NewInteractionRepo(db *sql.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

// LogInteraction appends one interaction record. Retrieved chunks are stored
// as a JSON array in a single column.
func (r *InteractionRepo) LogInteraction(ctx context.Context, entry InteractionLog) error {
	chunks := entry.RetrievedChunks
	if chunks == nil {
		chunks = []string{}
	}
	chunksJSON, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("failed to marshal retrieved chunks: %w", err)
	}

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO interactions (query, response, retrieved_chunks, safety_flag, is_unsafe, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
		entry.Query, entry.Response, string(chunksJSON), entry.SafetyFlag, entry.IsUnsafe, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}

// ListRecent returns up to limit interaction records, newest first.
func (r *InteractionRepo) ListRecent(ctx context.Context, limit int) ([]InteractionLog, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT query, response, retrieved_chunks, safety_flag, is_unsafe, timestamp FROM interactions ORDER BY timestamp DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var logs []InteractionLog
	for rows.Next() {
		var entry InteractionLog
		var chunksJSON string
		if err := rows.Scan(&entry.Query, &entry.Response, &chunksJSON, &entry.SafetyFlag, &entry.IsUnsafe, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		if err := json.Unmarshal([]byte(chunksJSON), &entry.RetrievedChunks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal retrieved chunks: %w", err)
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return logs, nil
}

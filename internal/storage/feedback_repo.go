package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Feedback is a user's thumbs-up/thumbs-down verdict on an answer.
type Feedback struct {
	Query    string `json:"query"`
	Response string `json:"response"`
	Feedback string `json:"feedback"`
}

// FeedbackStore defines feedback persistence.
type FeedbackStore interface {
	Insert(ctx context.Context, fb Feedback) error
}

// FeedbackRepo provides feedback operations backed by SQLite.
// It implements the FeedbackStore interface.
type FeedbackRepo struct {
	db *sql.DB
}

// NewFeedbackRepo creates a new FeedbackRepo.
func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Insert stores a feedback record.
func (r *FeedbackRepo) Insert(ctx context.Context, fb Feedback) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO feedback (query, response, feedback) VALUES (?, ?, ?)",
		fb.Query, fb.Response, fb.Feedback,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type draftRepository struct {
	db        *sql.DB
	academyID string
	logger    *zap.Logger
}

// NewDraftRepository creates a MySQL backed draft store scoped to one academy
func NewDraftRepository(db *sql.DB, academyID string, logger *zap.Logger) *draftRepository {
	return &draftRepository{
		db:        db,
		academyID: academyID,
		logger:    logger,
	}
}

// Method Get is a draft.Storage implementation for reading a draft value from the drafts table.
func (r *draftRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `
		SELECT value
		FROM drafts
		WHERE academy_id = ? AND draft_key = ?
	`

	var value []byte
	err := r.db.QueryRowContext(ctx, query, r.academyID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("failed to query draft", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("failed to query draft: %w", err)
	}

	return value, true, nil
}

// Method Set is a draft.Storage implementation for upserting a draft value.
func (r *draftRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO drafts (academy_id, draft_key, value)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)
	`

	if _, err := r.db.ExecContext(ctx, query, r.academyID, key, value); err != nil {
		r.logger.Error("failed to save draft", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// Method Remove is a draft.Storage implementation for deleting a draft value.
func (r *draftRepository) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM drafts WHERE academy_id = ? AND draft_key = ?`

	if _, err := r.db.ExecContext(ctx, query, r.academyID, key); err != nil {
		r.logger.Error("failed to delete draft", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	return nil
}

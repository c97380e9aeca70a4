// Package visitors persists the single-row visitor counter.
package visitors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/guestbook/internal/common"
	"github.com/dmitrijs2005/guestbook/internal/dbx"
)

// Repository describes operations on counter rows, addressed by key.
type Repository interface {
	// Ensure creates the row with count 0 unless it already exists.
	Ensure(ctx context.Context, key string) error

	// Increment adds one and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)

	// Get returns the current value.
	Get(ctx context.Context, key string) (int64, error)
}

// SQLiteRepository implements Repository using a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Ensure(ctx context.Context, key string) error {
	query := `INSERT INTO visitor_count (key, count) VALUES (?, 0)
			ON CONFLICT(key) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to ensure counter %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Increment(ctx context.Context, key string) (int64, error) {
	query := `UPDATE visitor_count SET count = count + 1 WHERE key = ? RETURNING count`
	var n int64
	err := r.db.QueryRowContext(ctx, query, key).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("counter %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %q: %w", key, err)
	}
	return n, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (int64, error) {
	query := `SELECT count FROM visitor_count WHERE key = ?`
	var n int64
	err := r.db.QueryRowContext(ctx, query, key).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("counter %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %q: %w", key, err)
	}
	return n, nil
}

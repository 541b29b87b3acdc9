package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/punchclock/internal/db"
)

// SQLitePreferenceRepo implements PreferenceRepo as a key/value table.
type SQLitePreferenceRepo struct {
	db db.DBTX
}

func NewSQLitePreferenceRepo(conn db.DBTX) *SQLitePreferenceRepo {
	return &SQLitePreferenceRepo{db: conn}
}

func (r *SQLitePreferenceRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("preference %s: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading preference: %w", err)
	}
	return value, nil
}

func (r *SQLitePreferenceRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("upserting preference: %w", err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (r *SQLitePreferenceRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting preference: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

const userColumns = `id, name, email, avatar_url, created_at`

// Create inserts u. CreatedAt is set when zero.
func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = nowUTC()
	}
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.AvatarURL,
		formatTime(u.CreatedAt),
	)
	if err != nil {
		return classifyWriteErr("inserting user", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

// List returns all users, most recently registered first.
func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *SQLiteUserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var createdAtStr string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL, &createdAtStr); err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(timeLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	u.CreatedAt = createdAt
	if u.AvatarURL == "" {
		u.AvatarURL = domain.DefaultAvatarURL
	}
	return &u, nil
}

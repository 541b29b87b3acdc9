package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
)

// SQLiteLogRepo implements LogRepo using a SQLite database.
type SQLiteLogRepo struct {
	db db.DBTX
}

func NewSQLiteLogRepo(conn db.DBTX) *SQLiteLogRepo {
	return &SQLiteLogRepo{db: conn}
}

const logColumns = `id, user_id, date, time_in, time_out, break_time, status, created_at`

// Create inserts e. A second open entry for the same user and day fails
// with domain.ErrDuplicateOpenSession; an unknown user fails with ErrNotFound.
func (r *SQLiteLogRepo) Create(ctx context.Context, e *domain.LogEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = nowUTC()
	}
	if e.Status == "" {
		e.Status = domain.StatusPresent
	}
	query := `INSERT INTO logs (` + logColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.Date,
		formatTime(e.TimeIn),
		nullableTimeToString(e.TimeOut),
		e.BreakMinutes,
		string(e.Status),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return classifyWriteErr("inserting log", err)
	}
	return nil
}

func (r *SQLiteLogRepo) GetByID(ctx context.Context, id string) (*domain.LogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM logs WHERE id = ?`
	e, err := scanLog(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("log %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning log: %w", err)
	}
	return e, nil
}

func (r *SQLiteLogRepo) List(ctx context.Context, f LogFilter) ([]*domain.LogEntry, error) {
	var where []string
	var args []any
	if f.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Date != "" {
		where = append(where, "date = ?")
		args = append(args, f.Date)
	}
	if f.DateFrom != "" {
		where = append(where, "date >= ?")
		args = append(args, f.DateFrom)
	}
	if f.OpenOnly {
		where = append(where, "time_out IS NULL")
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + logColumns + ` FROM logs`)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(f.Order.clause())

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LogEntry
	for rows.Next() {
		e, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating logs: %w", err)
	}
	return entries, nil
}

func (o LogOrder) clause() string {
	switch o {
	case OrderTimeInDesc:
		return "time_in DESC, id"
	case OrderTimeInAsc:
		return "time_in ASC, id"
	default:
		return "date DESC, time_in DESC, id"
	}
}

func (r *SQLiteLogRepo) Close(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE logs SET time_out = ? WHERE id = ? AND time_out IS NULL`,
		formatTime(at), id,
	)
	if err != nil {
		return fmt.Errorf("closing log: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Nothing updated: either the entry is gone or it was already closed.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("log %s: %w", id, domain.ErrAlreadyClosed)
}

func (r *SQLiteLogRepo) Update(ctx context.Context, id string, p domain.LogPatch) error {
	var sets []string
	var args []any
	if p.TimeIn != nil {
		sets = append(sets, "time_in = ?")
		args = append(args, formatTime(*p.TimeIn))
	}
	if p.TimeOut != nil {
		sets = append(sets, "time_out = ?")
		args = append(args, formatTime(*p.TimeOut))
	}
	if p.BreakMinutes != nil {
		sets = append(sets, "break_time = ?")
		args = append(args, *p.BreakMinutes)
	}
	if len(sets) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}

	args = append(args, id)
	query := `UPDATE logs SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteErr("updating log", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("log %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteLogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("log %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteLogRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM logs WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting logs for user: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanLog(row rowScanner) (*domain.LogEntry, error) {
	var e domain.LogEntry
	var timeInStr, createdAtStr, status string
	var timeOut sql.NullString

	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &timeInStr, &timeOut, &e.BreakMinutes, &status, &createdAtStr); err != nil {
		return nil, err
	}
	return populateLog(&e, timeInStr, timeOut, status, createdAtStr)
}

// populateLog fills in parsed fields on a LogEntry after scanning raw strings.
func populateLog(e *domain.LogEntry, timeInStr string, timeOut sql.NullString, status, createdAtStr string) (*domain.LogEntry, error) {
	var err error
	if e.TimeIn, err = time.Parse(timeLayout, timeInStr); err != nil {
		return nil, fmt.Errorf("parsing time_in: %w", err)
	}
	if e.TimeOut, err = parseNullableTime(timeOut); err != nil {
		return nil, fmt.Errorf("parsing time_out: %w", err)
	}
	if e.CreatedAt, err = time.Parse(timeLayout, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.Status = domain.LogStatus(status)
	return e, nil
}

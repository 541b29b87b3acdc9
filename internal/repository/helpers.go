package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = domain.ErrNotFound

// timeLayout is fixed-width so stored timestamps sort lexically and keep
// sub-second precision.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime converts t to UTC storage text.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL or empty.
func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// classifyWriteErr maps SQLite constraint failures onto domain errors.
func classifyWriteErr(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: logs."):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicateOpenSession)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%s: user: %w", op, ErrNotFound)
	case strings.Contains(msg, "CHECK constraint failed") && strings.Contains(msg, "break_time"):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidBreakTime)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nowUTC returns the current time in UTC.
func nowUTC() time.Time {
	return time.Now().UTC()
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AdminTimestampLayout is the format accepted for administrative time edits.
const AdminTimestampLayout = "2006-01-02 15:04:05"

// ValidateBreakMinutes rejects negative break values.
func ValidateBreakMinutes(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidBreakTime, minutes)
	}
	return nil
}

// ParseBreakMinutes parses user input as a whole, non-negative number of
// minutes. Signs, trailing garbage ("12abc") and fractions are rejected.
func ParseBreakMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidBreakTime, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidBreakTime, s)
	}
	if err := ValidateBreakMinutes(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ParseAdminTimestamp parses "YYYY-MM-DD HH:mm:ss" strictly in loc.
func ParseAdminTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(AdminTimestampLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want %s)", ErrInvalidTimestamp, s, "YYYY-MM-DD HH:mm:ss")
	}
	return t, nil
}

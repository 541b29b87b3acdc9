package domain

import "errors"

var (
	// ErrNoUserSelected indicates an operation that needs a user ran without one.
	ErrNoUserSelected = errors.New("no user selected")

	// ErrDuplicateOpenSession indicates a punch-in while the user already
	// has an open entry for the day.
	ErrDuplicateOpenSession = errors.New("already punched in without punching out")

	// ErrNoOpenEntry indicates a punch-out with nothing open to close.
	ErrNoOpenEntry = errors.New("no open entry to punch out")

	// ErrAlreadyClosed indicates a punch-out of an entry that already has a time out.
	ErrAlreadyClosed = errors.New("entry already punched out")

	ErrInvalidBreakTime = errors.New("invalid break time")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidUser      = errors.New("invalid user")

	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable wraps any failure of the underlying record store.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrNothingToExport = errors.New("no logs to export")

	// ErrUnauthorized is returned by callers when the authorization gate
	// rejects a destructive operation.
	ErrUnauthorized = errors.New("incorrect admin passphrase")
)

// IsValidation reports whether err is an input error rather than a store
// failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoUserSelected) ||
		errors.Is(err, ErrInvalidBreakTime) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		errors.Is(err, ErrInvalidUser)
}

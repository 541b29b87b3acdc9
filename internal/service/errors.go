package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// storeErr passes domain errors through and marks anything else coming
// from the record store as ErrStoreUnavailable. No retry happens here.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if isDomainErr(err) || errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func isDomainErr(err error) bool {
	return domain.IsValidation(err) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicateOpenSession) ||
		errors.Is(err, domain.ErrAlreadyClosed) ||
		errors.Is(err, domain.ErrNoOpenEntry) ||
		errors.Is(err, domain.ErrNothingToExport)
}

// IsStoreFailure reports whether err came from the backend rather than
// from rejected input or state.
func IsStoreFailure(err error) bool {
	return errors.Is(err, domain.ErrStoreUnavailable)
}

package domain

import "time"

// LogPatch is a sparse administrative edit. Nil fields are left untouched.
type LogPatch struct {
	TimeIn       *time.Time
	TimeOut      *time.Time
	BreakMinutes *int
}

// Empty reports whether the patch changes nothing.
func (p LogPatch) Empty() bool {
	return p.TimeIn == nil && p.TimeOut == nil && p.BreakMinutes == nil
}

// Validate checks each present field in isolation.
func (p LogPatch) Validate() error {
	if p.TimeIn != nil && p.TimeIn.IsZero() {
		return ErrInvalidTimestamp
	}
	if p.TimeOut != nil && p.TimeOut.IsZero() {
		return ErrInvalidTimestamp
	}
	if p.BreakMinutes != nil {
		if err := ValidateBreakMinutes(*p.BreakMinutes); err != nil {
			return err
		}
	}
	return nil
}

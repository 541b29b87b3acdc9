package domain

import "time"

// DateLayout is the calendar-day format stored on log entries.
const DateLayout = "2006-01-02"

type LogStatus string

// StatusPresent is the only status produced by punch-in. Other values read
// from the store are preserved as-is.
const StatusPresent LogStatus = "Present"

type LogEntry struct {
	ID           string
	UserID       string
	Date         string
	TimeIn       time.Time
	TimeOut      *time.Time
	BreakMinutes int
	Status       LogStatus
	CreatedAt    time.Time
}

// NewLogEntry builds the open entry created by a punch-in at now.
func NewLogEntry(userID string, now time.Time) *LogEntry {
	return &LogEntry{
		UserID:       userID,
		Date:         DayOf(now),
		TimeIn:       now,
		BreakMinutes: 0,
		Status:       StatusPresent,
	}
}

// IsOpen reports whether the entry has not been punched out yet.
func (e *LogEntry) IsOpen() bool {
	return e.TimeOut == nil
}

// Close sets the punch-out time. Closing an already closed entry fails and
// leaves the entry untouched.
func (e *LogEntry) Close(now time.Time) error {
	if !e.IsOpen() {
		return ErrAlreadyClosed
	}
	e.TimeOut = &now
	return nil
}

// SetBreak records break minutes. Allowed on open and closed entries.
func (e *LogEntry) SetBreak(minutes int) error {
	if err := ValidateBreakMinutes(minutes); err != nil {
		return err
	}
	e.BreakMinutes = minutes
	return nil
}

// Worked returns the time worked on a closed entry: span minus break,
// clamped at zero. Open entries count as zero.
func (e *LogEntry) Worked() time.Duration {
	if e.TimeOut == nil {
		return 0
	}
	d := e.TimeOut.Sub(e.TimeIn) - time.Duration(e.BreakMinutes)*time.Minute
	if d < 0 {
		return 0
	}
	return d
}

// Apply writes the fields present in p onto the entry. Date is not part of
// a patch and never changes.
func (e *LogEntry) Apply(p LogPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.TimeIn != nil {
		e.TimeIn = *p.TimeIn
	}
	if p.TimeOut != nil {
		out := *p.TimeOut
		e.TimeOut = &out
	}
	if p.BreakMinutes != nil {
		e.BreakMinutes = *p.BreakMinutes
	}
	return nil
}

// DayOf formats t as a calendar day in t's own location.
func DayOf(t time.Time) string {
	return t.Format(DateLayout)
}

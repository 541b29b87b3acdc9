package metrics

import (
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// Today returns the calendar day of now in now's location.
func Today(now time.Time) string {
	return domain.DayOf(now)
}

// WeekStart returns the first day of the week containing now, where weeks
// begin on first.
func WeekStart(now time.Time, first time.Weekday) string {
	offset := (int(now.Weekday()) - int(first) + 7) % 7
	y, m, d := now.Date()
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
	return domain.DayOf(start)
}

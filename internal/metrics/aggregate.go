// Package metrics reduces log entries into work and break totals and
// computes the calendar bounds of the summary windows.
package metrics

import (
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// Compute sums worked time and break minutes over entries.
//
// Worked time counts only closed entries: (time out - time in - break),
// clamped at zero per entry. Break minutes count for every entry, open or
// closed. Hours are rounded half-up to two decimals.
func Compute(entries []*domain.LogEntry) domain.Metrics {
	var worked time.Duration
	var breakMin int
	for _, e := range entries {
		if e == nil {
			continue
		}
		worked += e.Worked()
		breakMin += e.BreakMinutes
	}
	return domain.Metrics{
		WorkHours:    RoundHours(worked),
		BreakMinutes: breakMin,
	}
}

// hundredthHour is 0.01h. RoundHours works in whole units of it.
const hundredthHour = 36 * time.Second

// RoundHours converts d to hours rounded half-up to two decimal places.
// Negative input is treated as zero.
func RoundHours(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	hundredths := (d + hundredthHour/2) / hundredthHour
	return float64(hundredths) / 100
}

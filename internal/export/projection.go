// Package export projects log entries into flat spreadsheet rows.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// ClockLayout formats time-of-day cells.
const ClockLayout = "15:04:05"

// DefaultPrefix starts export file names when none is configured.
const DefaultPrefix = "punchclock_time_logs"

// MissingTime fills the Time Out cell of an open entry.
const MissingTime = "-"

// Header is the fixed column order of an export.
var Header = []string{"User", "Date", "Time In", "Time Out", "Break (mins)", "Status"}

type Row struct {
	User         string
	Date         string
	TimeIn       string
	TimeOut      string
	BreakMinutes int
	Status       string
}

// Record returns the row as cells in Header order.
func (r Row) Record() []string {
	return []string{r.User, r.Date, r.TimeIn, r.TimeOut, strconv.Itoa(r.BreakMinutes), r.Status}
}

// Project builds one row per entry, keeping the input order. names maps user
// ID to display name; unknown IDs are written as-is. Times are rendered in
// loc. Input with no entries, nil ones aside, fails with
// domain.ErrNothingToExport.
func Project(entries []*domain.LogEntry, names map[string]string, loc *time.Location) ([]Row, error) {
	if len(entries) == 0 {
		return nil, domain.ErrNothingToExport
	}
	if loc == nil {
		loc = time.Local
	}
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		user := names[e.UserID]
		if user == "" {
			user = e.UserID
		}
		out := MissingTime
		if e.TimeOut != nil {
			out = e.TimeOut.In(loc).Format(ClockLayout)
		}
		rows = append(rows, Row{
			User:         user,
			Date:         e.Date,
			TimeIn:       e.TimeIn.In(loc).Format(ClockLayout),
			TimeOut:      out,
			BreakMinutes: e.BreakMinutes,
			Status:       string(e.Status),
		})
	}
	if len(rows) == 0 {
		return nil, domain.ErrNothingToExport
	}
	return rows, nil
}

// WriteCSV writes Header followed by rows.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FileName names an export produced on day.
func FileName(prefix, day string) string {
	return fmt.Sprintf("%s_%s.csv", prefix, day)
}

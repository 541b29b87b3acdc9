package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/export"
	"github.com/alexanderramin/punchclock/internal/metrics"
)

// ClockTime renders a time of day in loc.
func ClockTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(export.ClockLayout)
}

// TimeOut renders the time out of e, or a dim placeholder while open.
func TimeOut(e *domain.LogEntry, loc *time.Location) string {
	if e.TimeOut == nil {
		return Dim(export.MissingTime)
	}
	return ClockTime(*e.TimeOut, loc)
}

// FormatMinutes renders a minute count like "1h 5m".
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatElapsed renders a running duration as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	s := int(d%time.Minute) / int(time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatHours renders rounded work hours.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f h", h)
}

// EntryState is a colored open/closed marker.
func EntryState(e *domain.LogEntry) string {
	if e.IsOpen() {
		return StyleIn.Render("● In")
	}
	return StyleDim.Render("○ Out")
}

// FormatTodayLogs renders a user's entries for the day.
func FormatTodayLogs(entries []*domain.LogEntry, loc *time.Location) string {
	if len(entries) == 0 {
		return Dim("No entries today.")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			ClockTime(e.TimeIn, loc),
			TimeOut(e, loc),
			FormatMinutes(e.BreakMinutes),
			FormatHours(metrics.RoundHours(e.Worked())),
			EntryState(e),
		})
	}
	return RenderTable([]string{"ID", "Time In", "Time Out", "Break", "Worked", "State"}, rows)
}

// FormatAllLogs renders every entry with the owner's name.
func FormatAllLogs(entries []*domain.LogEntry, names map[string]string, loc *time.Location) string {
	if len(entries) == 0 {
		return Dim("No logs yet.")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		user := names[e.UserID]
		if user == "" {
			user = e.UserID
		}
		rows = append(rows, []string{
			e.ID,
			user,
			e.Date,
			ClockTime(e.TimeIn, loc),
			TimeOut(e, loc),
			fmt.Sprintf("%d", e.BreakMinutes),
			string(e.Status),
		})
	}
	return RenderTable([]string{"ID", "User", "Date", "Time In", "Time Out", "Break (mins)", "Status"}, rows)
}

// FormatUsers renders the user registry.
func FormatUsers(users []*domain.User) string {
	if len(users) == 0 {
		return Dim("No users registered.")
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.Email, u.CreatedAt.Local().Format("2006-01-02")})
	}
	return RenderTable([]string{"ID", "Name", "Email", "Joined"}, rows)
}

// FormatSummary renders the dashboard windows inside a box.
func FormatSummary(sum *domain.Summary, userName string) string {
	rows := make([][]string, 0, 4)
	for _, w := range sum.Windows() {
		rows = append(rows, []string{
			w.Window.Label(),
			FormatHours(w.Metrics.WorkHours),
			fmt.Sprintf("%d", w.Metrics.BreakMinutes),
		})
	}
	title := "Summary " + sum.Day
	if userName != "" {
		title = "Summary " + userName + " " + sum.Day
	}
	body := RenderTable([]string{"Window", "Work", "Break (mins)"}, rows) +
		"\n" + Dim("Week starts "+sum.WeekStart)
	return RenderBox(title, body)
}

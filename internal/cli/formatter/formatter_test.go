package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{-4, "0m"},
		{5, "5m"},
		{60, "1h"},
		{65, "1h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsed(-time.Second))
	assert.Equal(t, "01:02:03", FormatElapsed(time.Hour+2*time.Minute+3*time.Second+400*time.Millisecond))
	assert.Equal(t, "27:00:00", FormatElapsed(27*time.Hour))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "7.75 h", FormatHours(7.75))
	assert.Equal(t, "0.00 h", FormatHours(0))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "Long header"}, [][]string{{"wide cell", "x"}, {"y"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
	assert.Contains(t, lines[2], "wide cell")
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatTodayLogs(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)
	entries := []*domain.LogEntry{
		{ID: "e2", TimeIn: in.Add(9 * time.Hour)},
		{ID: "e1", TimeIn: in, TimeOut: &out, BreakMinutes: 15},
	}
	got := FormatTodayLogs(entries, time.UTC)
	assert.Contains(t, got, "e1")
	assert.Contains(t, got, "09:00:00")
	assert.Contains(t, got, "17:00:00")
	assert.Contains(t, got, "7.75 h")
	assert.Contains(t, got, "15m")
	assert.Contains(t, got, "● In")
	assert.Contains(t, FormatTodayLogs(nil, time.UTC), "No entries today.")
}

func TestFormatAllLogs_FallsBackToUserID(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	entries := []*domain.LogEntry{{ID: "e1", UserID: "ghost", Date: "2024-03-04", TimeIn: in, Status: domain.StatusPresent}}
	got := FormatAllLogs(entries, map[string]string{}, time.UTC)
	assert.Contains(t, got, "ghost")
	assert.Contains(t, got, "Present")
}

func TestFormatSummary(t *testing.T) {
	sum := &domain.Summary{
		Day:       "2024-03-04",
		WeekStart: "2024-03-03",
		UserToday: domain.Metrics{WorkHours: 7.75, BreakMinutes: 15},
		AllTime:   domain.Metrics{WorkHours: 120.5, BreakMinutes: 300},
	}
	got := FormatSummary(sum, "Ada")
	assert.Contains(t, got, "SUMMARY ADA 2024-03-04")
	assert.Contains(t, got, "User Today")
	assert.Contains(t, got, "All Users Today")
	assert.Contains(t, got, "This Week")
	assert.Contains(t, got, "Total")
	assert.Contains(t, got, "7.75 h")
	assert.Contains(t, got, "120.50 h")
	assert.Contains(t, got, "Week starts 2024-03-03")
}

func TestFormatUsers(t *testing.T) {
	assert.Contains(t, FormatUsers(nil), "No users registered.")
	got := FormatUsers([]*domain.User{{ID: "u1", Name: "Ada", Email: "ada@example.com", CreatedAt: time.Now()}})
	assert.Contains(t, got, "ada@example.com")
}

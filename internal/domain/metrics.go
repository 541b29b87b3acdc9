package domain

// Metrics is the work/break summary of a set of log entries.
type Metrics struct {
	WorkHours    float64
	BreakMinutes int
}

// Window names one of the summary periods shown on the dashboard.
type Window string

const (
	WindowUserToday Window = "user_today"
	WindowAllToday  Window = "all_today"
	WindowThisWeek  Window = "this_week"
	WindowAllTime   Window = "all_time"
)

// Summary holds the metrics for every dashboard window.
type Summary struct {
	UserID    string
	Day       string
	WeekStart string
	UserToday Metrics
	AllToday  Metrics
	ThisWeek  Metrics
	AllTime   Metrics
}

// Windows returns the summary as ordered (window, metrics) pairs.
func (s Summary) Windows() []WindowMetrics {
	return []WindowMetrics{
		{Window: WindowUserToday, Metrics: s.UserToday},
		{Window: WindowAllToday, Metrics: s.AllToday},
		{Window: WindowThisWeek, Metrics: s.ThisWeek},
		{Window: WindowAllTime, Metrics: s.AllTime},
	}
}

type WindowMetrics struct {
	Window  Window
	Metrics Metrics
}

// Label is the human-readable window name.
func (w Window) Label() string {
	switch w {
	case WindowUserToday:
		return "User Today"
	case WindowAllToday:
		return "All Users Today"
	case WindowThisWeek:
		return "This Week"
	case WindowAllTime:
		return "Total"
	default:
		return string(w)
	}
}

package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

type userJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
	CreatedAt string `json:"createdAt"`
}

func toUserJSON(u *domain.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type logJSON struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Date      string  `json:"date"`
	TimeIn    string  `json:"timeIn"`
	TimeOut   *string `json:"timeOut"`
	BreakTime int     `json:"breakTime"`
	Status    string  `json:"status"`
}

func toLogJSON(e *domain.LogEntry, loc *time.Location) logJSON {
	out := logJSON{
		ID:        e.ID,
		UserID:    e.UserID,
		Date:      e.Date,
		TimeIn:    e.TimeIn.In(loc).Format(time.RFC3339),
		BreakTime: e.BreakMinutes,
		Status:    string(e.Status),
	}
	if e.TimeOut != nil {
		s := e.TimeOut.In(loc).Format(time.RFC3339)
		out.TimeOut = &s
	}
	return out
}

func toLogsJSON(entries []*domain.LogEntry, loc *time.Location) []logJSON {
	out := make([]logJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLogJSON(e, loc))
	}
	return out
}

type windowJSON struct {
	Window       string  `json:"window"`
	Label        string  `json:"label"`
	WorkHours    float64 `json:"workHours"`
	BreakMinutes int     `json:"breakMinutes"`
}

type summaryJSON struct {
	UserID    string       `json:"userId,omitempty"`
	Day       string       `json:"day"`
	WeekStart string       `json:"weekStart"`
	Windows   []windowJSON `json:"windows"`
}

func toSummaryJSON(s *domain.Summary) summaryJSON {
	out := summaryJSON{UserID: s.UserID, Day: s.Day, WeekStart: s.WeekStart}
	for _, w := range s.Windows() {
		out.Windows = append(out.Windows, windowJSON{
			Window:       string(w.Window),
			Label:        w.Window.Label(),
			WorkHours:    w.Metrics.WorkHours,
			BreakMinutes: w.Metrics.BreakMinutes,
		})
	}
	return out
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// breakField holds breakTime as sent. Numbers and numeric strings are
// accepted; anything that is not a whole non-negative number is
// domain.ErrInvalidBreakTime.
type breakField json.RawMessage

func (b *breakField) UnmarshalJSON(data []byte) error {
	*b = append((*b)[:0], data...)
	return nil
}

// minutes returns nil when the field was absent or null.
func (b breakField) minutes() (*int, error) {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidBreakTime, raw)
		}
	}
	n, err := domain.ParseBreakMinutes(text)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

type breakRequest struct {
	BreakTime breakField `json:"breakTime"`
}

// editRequest carries admin timestamps as "YYYY-MM-DD HH:mm:ss" in the
// server's location.
type editRequest struct {
	TimeIn    *string    `json:"timeIn"`
	TimeOut   *string    `json:"timeOut"`
	BreakTime breakField `json:"breakTime"`
}

func (req editRequest) patch(loc *time.Location) (domain.LogPatch, error) {
	var p domain.LogPatch
	if req.TimeIn != nil {
		t, err := domain.ParseAdminTimestamp(*req.TimeIn, loc)
		if err != nil {
			return p, err
		}
		p.TimeIn = &t
	}
	if req.TimeOut != nil {
		t, err := domain.ParseAdminTimestamp(*req.TimeOut, loc)
		if err != nil {
			return p, err
		}
		p.TimeOut = &t
	}
	n, err := req.BreakTime.minutes()
	if err != nil {
		return p, err
	}
	p.BreakMinutes = n
	return p, nil
}

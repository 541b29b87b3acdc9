package service

import (
	"context"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/export"
)

// AttendanceService is the session manager: it owns creation and closing of
// log entries and keeps at most one entry open per user and day.
type AttendanceService interface {
	PunchIn(ctx context.Context, userID string) (*domain.LogEntry, error)
	PunchOut(ctx context.Context, entryID string) (*domain.LogEntry, error)
	PunchOutOpen(ctx context.Context, userID string) (*domain.LogEntry, error)
	CurrentOpen(ctx context.Context, userID string) (*domain.LogEntry, error)
	SetBreakTime(ctx context.Context, entryID string, minutes int) (*domain.LogEntry, error)
	AdminEdit(ctx context.Context, entryID string, patch domain.LogPatch) (*domain.LogEntry, error)
	Delete(ctx context.Context, entryID string) error
	ListToday(ctx context.Context, userID string) ([]*domain.LogEntry, error)
	ListAll(ctx context.Context) ([]*domain.LogEntry, error)
}

type UserService interface {
	Register(ctx context.Context, name, email string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type SummaryService interface {
	Summary(ctx context.Context, userID string) (*domain.Summary, error)
}

type ExportService interface {
	Rows(ctx context.Context) ([]export.Row, error)
}

// PreferenceService stores the remembered user. An empty id means none.
type PreferenceService interface {
	PreferredUser(ctx context.Context) (string, error)
	SetPreferredUser(ctx context.Context, userID string) error
}

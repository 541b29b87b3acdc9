package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// LogOrder selects the sort order of a log query.
type LogOrder int

const (
	// OrderDateDescTimeInDesc lists the newest day first, latest punch first.
	OrderDateDescTimeInDesc LogOrder = iota
	OrderTimeInDesc
	OrderTimeInAsc
)

// LogFilter narrows a log query. Zero values match everything.
type LogFilter struct {
	UserID   string
	Date     string // exact calendar day
	DateFrom string // calendar day, inclusive lower bound
	OpenOnly bool   // only entries without a time out
	Order    LogOrder
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type LogRepo interface {
	Create(ctx context.Context, e *domain.LogEntry) error
	GetByID(ctx context.Context, id string) (*domain.LogEntry, error)
	List(ctx context.Context, f LogFilter) ([]*domain.LogEntry, error)
	// Close sets time_out only while the entry is still open.
	Close(ctx context.Context, id string, at time.Time) error
	// Update writes the fields present in the patch.
	Update(ctx context.Context, id string, p domain.LogPatch) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

type PreferenceRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

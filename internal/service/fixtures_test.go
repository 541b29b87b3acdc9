package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/require"
)

// monday09 is Monday 2024-03-04 09:00 UTC.
var monday09 = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

type harness struct {
	db    *sql.DB
	uow   db.UnitOfWork
	users *repository.SQLiteUserRepo
	logs  *repository.SQLiteLogRepo
	prefs *repository.SQLitePreferenceRepo
	clock *testutil.FixedClock
	rec   *recordingObserver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &harness{
		db:    database,
		uow:   testutil.NewTestUoW(database),
		users: repository.NewSQLiteUserRepo(database),
		logs:  repository.NewSQLiteLogRepo(database),
		prefs: repository.NewSQLitePreferenceRepo(database),
		clock: testutil.NewFixedClock(monday09),
		rec:   &recordingObserver{},
	}
}

func (h *harness) attendance() AttendanceService {
	return NewAttendanceService(h.logs, h.uow, h.clock.Now, h.rec)
}

func (h *harness) seedUser(t *testing.T, name string) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name)
	require.NoError(t, h.users.Create(context.Background(), u))
	return u
}

func (h *harness) seedLog(t *testing.T, e *domain.LogEntry) *domain.LogEntry {
	t.Helper()
	require.NoError(t, h.logs.Create(context.Background(), e))
	return e
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return UseCaseEvent{}
	}
	return r.events[len(r.events)-1]
}

var errBackend = errors.New("disk I/O error")

// brokenLogRepo fails every call with errBackend.
type brokenLogRepo struct{ repository.LogRepo }

func (brokenLogRepo) Create(context.Context, *domain.LogEntry) error { return errBackend }
func (brokenLogRepo) GetByID(context.Context, string) (*domain.LogEntry, error) {
	return nil, errBackend
}
func (brokenLogRepo) List(context.Context, repository.LogFilter) ([]*domain.LogEntry, error) {
	return nil, errBackend
}
func (brokenLogRepo) Delete(context.Context, string) error { return errBackend }

// brokenUserRepo fails List with errBackend.
type brokenUserRepo struct{ repository.UserRepo }

func (brokenUserRepo) List(context.Context) ([]*domain.User, error) { return nil, errBackend }

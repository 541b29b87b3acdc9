package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/google/uuid"
)

type attendanceService struct {
	logs     repository.LogRepo
	uow      db.UnitOfWork
	now      Clock
	locks    *keyLock
	observer UseCaseObserver
}

// NewAttendanceService creates the session manager. Punch-ins for the same
// user and day are serialized in process; the store's unique open-entry
// index covers writers in other processes.
func NewAttendanceService(logs repository.LogRepo, uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) AttendanceService {
	return &attendanceService{
		logs:     logs,
		uow:      uow,
		now:      clockOrNow(clock),
		locks:    newKeyLock(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *attendanceService) PunchIn(ctx context.Context, userID string) (entry *domain.LogEntry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() {
		if entry != nil {
			fields["entry_id"] = entry.ID
		}
		observe(ctx, s.observer, "punch-in", startedAt, err, fields)
	}()

	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrNoUserSelected
	}

	now := s.now()
	day := domain.DayOf(now)
	unlock := s.locks.Lock(userID + "|" + day)
	defer unlock()

	open, err := s.logs.List(ctx, repository.LogFilter{UserID: userID, Date: day, OpenOnly: true})
	if err != nil {
		return nil, storeErr(err)
	}
	if len(open) > 0 {
		return nil, domain.ErrDuplicateOpenSession
	}

	entry = domain.NewLogEntry(userID, now)
	entry.ID = uuid.New().String()
	entry.CreatedAt = now.UTC()
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, storeErr(err)
	}
	return entry, nil
}

func (s *attendanceService) PunchOut(ctx context.Context, entryID string) (entry *domain.LogEntry, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "punch-out", startedAt, err, map[string]any{"entry_id": entryID})
	}()

	if strings.TrimSpace(entryID) == "" {
		return nil, domain.ErrNoOpenEntry
	}
	return s.closeEntry(ctx, entryID)
}

func (s *attendanceService) PunchOutOpen(ctx context.Context, userID string) (entry *domain.LogEntry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() {
		if entry != nil {
			fields["entry_id"] = entry.ID
		}
		observe(ctx, s.observer, "punch-out", startedAt, err, fields)
	}()

	open, err := s.CurrentOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.closeEntry(ctx, open.ID)
}

// closeEntry checks the entry before writing so a second punch-out is
// rejected without touching the store. The conditional update in the
// repository settles races between two closers.
func (s *attendanceService) closeEntry(ctx context.Context, entryID string) (*domain.LogEntry, error) {
	entry, err := s.logs.GetByID(ctx, entryID)
	if err != nil {
		return nil, storeErr(err)
	}
	now := s.now()
	if err := entry.Close(now); err != nil {
		return nil, err
	}
	if err := s.logs.Close(ctx, entryID, now); err != nil {
		return nil, storeErr(err)
	}
	return entry, nil
}

// CurrentOpen returns today's open entry for userID.
func (s *attendanceService) CurrentOpen(ctx context.Context, userID string) (*domain.LogEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrNoUserSelected
	}
	open, err := s.logs.List(ctx, repository.LogFilter{
		UserID:   userID,
		Date:     domain.DayOf(s.now()),
		OpenOnly: true,
		Order:    repository.OrderTimeInDesc,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if len(open) == 0 {
		return nil, domain.ErrNoOpenEntry
	}
	return open[0], nil
}

func (s *attendanceService) SetBreakTime(ctx context.Context, entryID string, minutes int) (entry *domain.LogEntry, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "set-break", startedAt, err, map[string]any{"entry_id": entryID, "minutes": minutes})
	}()

	if err := domain.ValidateBreakMinutes(minutes); err != nil {
		return nil, err
	}
	return s.patch(ctx, entryID, domain.LogPatch{BreakMinutes: &minutes})
}

func (s *attendanceService) AdminEdit(ctx context.Context, entryID string, p domain.LogPatch) (entry *domain.LogEntry, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "admin-edit", startedAt, err, map[string]any{"entry_id": entryID})
	}()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.patch(ctx, entryID, p)
}

// patch applies p and reads the entry back inside one transaction.
func (s *attendanceService) patch(ctx context.Context, entryID string, p domain.LogPatch) (*domain.LogEntry, error) {
	var entry *domain.LogEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		logs := repository.NewSQLiteLogRepo(tx)
		if err := logs.Update(ctx, entryID, p); err != nil {
			return err
		}
		var err error
		entry, err = logs.GetByID(ctx, entryID)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return entry, nil
}

func (s *attendanceService) Delete(ctx context.Context, entryID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "delete-log", startedAt, err, map[string]any{"entry_id": entryID})
	}()

	if err := s.logs.Delete(ctx, entryID); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *attendanceService) ListToday(ctx context.Context, userID string) ([]*domain.LogEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrNoUserSelected
	}
	entries, err := s.logs.List(ctx, repository.LogFilter{
		UserID: userID,
		Date:   domain.DayOf(s.now()),
		Order:  repository.OrderTimeInDesc,
	})
	if err != nil {
		return nil, storeErr(fmt.Errorf("listing today's logs: %w", err))
	}
	return entries, nil
}

func (s *attendanceService) ListAll(ctx context.Context) ([]*domain.LogEntry, error) {
	entries, err := s.logs.List(ctx, repository.LogFilter{Order: repository.OrderDateDescTimeInDesc})
	if err != nil {
		return nil, storeErr(fmt.Errorf("listing logs: %w", err))
	}
	return entries, nil
}

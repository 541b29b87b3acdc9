package service

import (
	"context"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/export"
	"github.com/alexanderramin/punchclock/internal/repository"
)

type exportService struct {
	logs     repository.LogRepo
	users    repository.UserRepo
	now      Clock
	observer UseCaseObserver
}

func NewExportService(logs repository.LogRepo, users repository.UserRepo, clock Clock, observers ...UseCaseObserver) ExportService {
	return &exportService{
		logs:     logs,
		users:    users,
		now:      clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Rows projects every log, newest day first, with user names resolved.
func (s *exportService) Rows(ctx context.Context) (rows []export.Row, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "export", startedAt, err, map[string]any{"rows": len(rows)})
	}()

	entries, err := s.logs.List(ctx, repository.LogFilter{Order: repository.OrderDateDescTimeInDesc})
	if err != nil {
		return nil, storeErr(err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrNothingToExport
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return export.Project(entries, names, s.now().Location())
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/metrics"
	"github.com/alexanderramin/punchclock/internal/repository"
)

type summaryService struct {
	logs      repository.LogRepo
	now       Clock
	weekStart time.Weekday
	observer  UseCaseObserver
}

// NewSummaryService creates the metrics aggregator. Weeks begin on weekStart.
func NewSummaryService(logs repository.LogRepo, clock Clock, weekStart time.Weekday, observers ...UseCaseObserver) SummaryService {
	return &summaryService{
		logs:      logs,
		now:       clockOrNow(clock),
		weekStart: weekStart,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Summary computes all four windows. With no userID the user window is zero.
func (s *summaryService) Summary(ctx context.Context, userID string) (sum *domain.Summary, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "summary", startedAt, err, map[string]any{"user_id": userID})
	}()

	now := s.now()
	sum = &domain.Summary{
		UserID:    userID,
		Day:       metrics.Today(now),
		WeekStart: metrics.WeekStart(now, s.weekStart),
	}

	if strings.TrimSpace(userID) != "" {
		if sum.UserToday, err = s.compute(ctx, repository.LogFilter{UserID: userID, Date: sum.Day}); err != nil {
			return nil, err
		}
	}
	if sum.AllToday, err = s.compute(ctx, repository.LogFilter{Date: sum.Day}); err != nil {
		return nil, err
	}
	if sum.ThisWeek, err = s.compute(ctx, repository.LogFilter{DateFrom: sum.WeekStart}); err != nil {
		return nil, err
	}
	if sum.AllTime, err = s.compute(ctx, repository.LogFilter{}); err != nil {
		return nil, err
	}
	return sum, nil
}

func (s *summaryService) compute(ctx context.Context, f repository.LogFilter) (domain.Metrics, error) {
	entries, err := s.logs.List(ctx, f)
	if err != nil {
		return domain.Metrics{}, storeErr(err)
	}
	return metrics.Compute(entries), nil
}

package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes service use-case events to the provided writer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		// Rejected input is expected traffic; only backend failures are errors.
		level := slog.LevelWarn
		if IsStoreFailure(event.Err) {
			level = slog.LevelError
		}
		o.logger.Log(ctx, level, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

// MultiObserver fans events out to every non-nil observer.
type MultiObserver []UseCaseObserver

func (m MultiObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range m {
		if o != nil {
			o.ObserveUseCase(ctx, event)
		}
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live MultiObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}

// observe reports one finished use case.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, err error, fields map[string]any) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

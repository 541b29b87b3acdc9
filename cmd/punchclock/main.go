package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/cli"
	"github.com/alexanderramin/punchclock/internal/config"
	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/httpapi"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/alexanderramin/punchclock/internal/telemetry"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	logRepo := repository.NewSQLiteLogRepo(database)
	prefRepo := repository.NewSQLitePreferenceRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := telemetry.NewCollector(registry)

	observers := []service.UseCaseObserver{collector}
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	gate, err := buildGate(cfg)
	if err != nil {
		return err
	}

	app := &cli.App{
		Users:        service.NewUserService(userRepo, uow, nil, observers...),
		Attendance:   service.NewAttendanceService(logRepo, uow, nil, observers...),
		Summary:      service.NewSummaryService(logRepo, nil, cfg.WeekStart, observers...),
		Export:       service.NewExportService(logRepo, userRepo, nil, observers...),
		Preferences:  service.NewPreferenceService(prefRepo, userRepo),
		Gate:         gate,
		ExportPrefix: cfg.ExportPrefix,
	}

	// Detect interactive terminal for prompts and the live clock.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Serve = func(ctx context.Context) error {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		srv := httpapi.NewServer(httpapi.Deps{
			Users:      app.Users,
			Attendance: app.Attendance,
			Summary:    app.Summary,
			Export:     app.Export,
			Gate:       gate,
			GateLimit: httpapi.GateLimitConfig{
				Rate:  rate.Limit(cfg.AuthRate),
				Burst: cfg.AuthBurst,
			},
			ExportPrefix:   cfg.ExportPrefix,
			Logger:         logger,
			Metrics:        collector,
			MetricsHandler: telemetry.Handler(registry),
		})
		logger.Info("http_listen", "addr", cfg.HTTPAddr, "db", cfg.DBPath)
		return srv.ListenAndServe(ctx, cfg.HTTPAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// buildGate prefers the bcrypt hash, then the plain passphrase. With
// neither configured every protected operation is refused.
func buildGate(cfg config.Config) (auth.Gate, error) {
	switch {
	case cfg.AdminPassphraseHash != "":
		g, err := auth.NewPassphraseGate(cfg.AdminPassphraseHash)
		if err != nil {
			return nil, fmt.Errorf("admin passphrase hash: %w", err)
		}
		return g, nil
	case cfg.AdminPassphrase != "":
		g, err := auth.NewPlainPassphraseGate(cfg.AdminPassphrase)
		if err != nil {
			return nil, fmt.Errorf("admin passphrase: %w", err)
		}
		return g, nil
	default:
		return auth.DenyAll{}, nil
	}
}

package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Users       service.UserService
	Attendance  service.AttendanceService
	Summary     service.SummaryService
	Export      service.ExportService
	Preferences service.PreferenceService

	// Gate guards user removal and log edits/removals. Nil denies all.
	Gate auth.Gate

	Clock        service.Clock
	ExportPrefix string

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool

	// Prompts replaces the huh prompts, mainly for tests.
	Prompts Prompter

	// Serve runs the HTTP API until ctx is done. Nil disables `serve`.
	Serve func(ctx context.Context) error
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) prompts() Prompter {
	if a.Prompts == nil {
		return huhPrompter{}
	}
	return a.Prompts
}

func (a *App) gate() auth.Gate {
	if a.Gate == nil {
		return auth.DenyAll{}
	}
	return a.Gate
}

// NewRootCmd creates the top-level "punchclock" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "punchclock",
		Short:         "Employee attendance: punch in, punch out, and see your hours",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newUserCmd(app),
		newPunchCmd(app),
		newBreakCmd(app),
		newLogCmd(app),
		newSummaryCmd(app),
		newExportCmd(app),
		newRememberCmd(app),
		newClockCmd(app),
		newServeCmd(app),
	)

	return root
}

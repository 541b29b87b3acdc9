package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/spf13/cobra"
)

func newPunchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "punch",
		Short: "Punch in, punch out, or show the current punch",
	}

	cmd.AddCommand(
		newPunchInCmd(app),
		newPunchOutCmd(app),
		newPunchStatusCmd(app),
	)

	return cmd
}

func newPunchInCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "in",
		Short: "Start a work entry for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, app, userFlag)
			if err != nil {
				return err
			}
			e, err := app.Attendance.PunchIn(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s (%s)\n",
				formatter.Success("Punched in"), u.DisplayName(),
				formatter.ClockTime(e.TimeIn, app.now().Location()), e.ID)
			return nil
		},
	}

	addUserFlag(cmd.Flags(), &userFlag)
	return cmd
}

func newPunchOutCmd(app *App) *cobra.Command {
	var userFlag, entryID string

	cmd := &cobra.Command{
		Use:   "out",
		Short: "Close today's open entry, or a specific entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var e *domain.LogEntry
			var err error
			if entryID != "" {
				e, err = app.Attendance.PunchOut(ctx, entryID)
			} else {
				u, uErr := resolveUser(ctx, app, userFlag)
				if uErr != nil {
					return uErr
				}
				e, err = app.Attendance.PunchOutOpen(ctx, u.ID)
			}
			if err != nil {
				return err
			}
			loc := app.now().Location()
			fmt.Fprintf(cmd.OutOrStdout(), "%s at %s, %s since %s\n",
				formatter.Success("Punched out"), formatter.ClockTime(*e.TimeOut, loc),
				formatter.FormatElapsed(e.TimeOut.Sub(e.TimeIn)), formatter.ClockTime(e.TimeIn, loc))
			return nil
		},
	}

	addUserFlag(cmd.Flags(), &userFlag)
	cmd.Flags().StringVar(&entryID, "entry", "", "Entry ID to punch out")
	cmd.MarkFlagsMutuallyExclusive("user", "entry")
	return cmd
}

func newPunchStatusCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether you are punched in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, app, userFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			e, err := app.Attendance.CurrentOpen(ctx, u.ID)
			if errors.Is(err, domain.ErrNoOpenEntry) {
				fmt.Fprintf(out, "%s is %s\n", u.DisplayName(), formatter.Dim("not punched in"))
				return nil
			}
			if err != nil {
				return err
			}
			now := app.now()
			fmt.Fprintf(out, "%s is %s since %s (%s elapsed, %s break)\n",
				u.DisplayName(), formatter.Success("punched in"),
				formatter.ClockTime(e.TimeIn, now.Location()),
				formatter.FormatElapsed(now.Sub(e.TimeIn)),
				formatter.FormatMinutes(e.BreakMinutes))
			return nil
		},
	}

	addUserFlag(cmd.Flags(), &userFlag)
	return cmd
}

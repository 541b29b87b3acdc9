package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/spf13/cobra"
)

// printBlock writes rendered output followed by exactly one newline.
func printBlock(w io.Writer, s string) {
	fmt.Fprintln(w, strings.TrimRight(s, "\n"))
}

func newBreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Record break time on an entry",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set ENTRY MINUTES",
		Short: "Replace the break minutes of an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := domain.ParseBreakMinutes(args[1])
			if err != nil {
				return err
			}
			e, err := app.Attendance.SetBreakTime(cmd.Context(), args[0], minutes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Break on %s set to %s\n", e.ID, formatter.FormatMinutes(e.BreakMinutes))
			return nil
		},
	})

	return cmd
}

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "List and administer log entries",
	}

	cmd.AddCommand(
		newLogTodayCmd(app),
		newLogListCmd(app),
		newLogEditCmd(app),
		newLogRemoveCmd(app),
	)

	return cmd
}

func newLogTodayCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's entries for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := resolveUser(ctx, app, userFlag)
			if err != nil {
				return err
			}
			entries, err := app.Attendance.ListToday(ctx, u.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(u.DisplayName()+" "+domain.DayOf(app.now())))
			printBlock(out, formatter.FormatTodayLogs(entries, app.now().Location()))
			return nil
		},
	}

	addUserFlag(cmd.Flags(), &userFlag)
	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every entry, newest day first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries, err := app.Attendance.ListAll(ctx)
			if err != nil {
				return err
			}
			names, err := userNames(ctx, app)
			if err != nil {
				return err
			}
			printBlock(cmd.OutOrStdout(), formatter.FormatAllLogs(entries, names, app.now().Location()))
			return nil
		},
	}
}

func newLogEditCmd(app *App) *cobra.Command {
	var (
		timeIn, timeOut string
		breakMinutes    string
		passphrase      string
	)

	cmd := &cobra.Command{
		Use:   "edit ENTRY",
		Short: "Correct the times or break of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.now().Location()
			var patch domain.LogPatch

			if cmd.Flags().Changed("time-in") {
				t, err := domain.ParseAdminTimestamp(timeIn, loc)
				if err != nil {
					return err
				}
				patch.TimeIn = &t
			}
			if cmd.Flags().Changed("time-out") {
				t, err := domain.ParseAdminTimestamp(timeOut, loc)
				if err != nil {
					return err
				}
				patch.TimeOut = &t
			}
			if cmd.Flags().Changed("break") {
				n, err := domain.ParseBreakMinutes(breakMinutes)
				if err != nil {
					return err
				}
				patch.BreakMinutes = &n
			}

			out := cmd.OutOrStdout()
			if patch.Empty() {
				fmt.Fprintln(out, "Nothing to change.")
				return nil
			}
			if err := authorize(app, passphrase); err != nil {
				return err
			}

			e, err := app.Attendance.AdminEdit(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated %s: %s to %s, break %s\n", e.ID,
				formatter.ClockTime(e.TimeIn, loc), formatter.TimeOut(e, loc),
				formatter.FormatMinutes(e.BreakMinutes))
			return nil
		},
	}

	cmd.Flags().StringVar(&timeIn, "time-in", "", "New time in (YYYY-MM-DD HH:mm:ss)")
	cmd.Flags().StringVar(&timeOut, "time-out", "", "New time out (YYYY-MM-DD HH:mm:ss)")
	cmd.Flags().StringVar(&breakMinutes, "break", "", "New break minutes")
	addPassphraseFlag(cmd.Flags(), &passphrase)

	return cmd
}

func newLogRemoveCmd(app *App) *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "remove ENTRY",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := authorize(app, passphrase); err != nil {
				return err
			}
			if err := app.Attendance.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s\n", args[0])
			return nil
		},
	}

	addPassphraseFlag(cmd.Flags(), &passphrase)
	return cmd
}

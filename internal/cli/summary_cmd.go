package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/export"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show work hours and breaks for today, this week and all time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var userID, name string
			u, err := resolveUser(ctx, app, userFlag)
			switch {
			case err == nil:
				userID, name = u.ID, u.DisplayName()
			case errors.Is(err, domain.ErrNoUserSelected):
				// company-wide windows only
			default:
				return err
			}

			sum, err := app.Summary.Summary(ctx, userID)
			if err != nil {
				return err
			}
			printBlock(cmd.OutOrStdout(), formatter.FormatSummary(sum, name))
			return nil
		},
	}

	addUserFlag(cmd.Flags(), &userFlag)
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every log entry to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Export.Rows(cmd.Context())
			if err != nil {
				return err
			}

			prefix := app.ExportPrefix
			if prefix == "" {
				prefix = export.DefaultPrefix
			}
			path := filepath.Join(dir, export.FileName(prefix, domain.DayOf(app.now())))

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := export.WriteCSV(f, rows); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(rows), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "out", ".", "Directory to write the CSV file into")
	return cmd
}

func newRememberCmd(app *App) *cobra.Command {
	var forget bool

	cmd := &cobra.Command{
		Use:   "remember [USER]",
		Short: "Show, set or clear the remembered user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch {
			case forget:
				if err := app.Preferences.SetPreferredUser(ctx, ""); err != nil {
					return err
				}
				fmt.Fprintln(out, "Forgot the remembered user.")
			case len(args) == 1:
				if err := app.Preferences.SetPreferredUser(ctx, args[0]); err != nil {
					return err
				}
				u, err := app.Users.Get(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Remembering %s\n", u.DisplayName())
			default:
				id, err := app.Preferences.PreferredUser(ctx)
				if err != nil {
					return err
				}
				if id == "" {
					fmt.Fprintln(out, formatter.Dim("No user remembered."))
					return nil
				}
				u, err := app.Users.Get(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Remembered user: %s (%s)\n", u.DisplayName(), u.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&forget, "clear", false, "Forget the remembered user")
	return cmd
}

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return errors.New("serve is not configured")
			}
			return app.Serve(cmd.Context())
		},
	}
}

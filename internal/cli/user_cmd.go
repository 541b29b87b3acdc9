package cli

import (
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage registered users",
	}

	cmd.AddCommand(
		newUserAddCmd(app),
		newUserListCmd(app),
		newUserRemoveCmd(app),
	)

	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Register(cmd.Context(), name, email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", u.Name, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUsers(users))
			return nil
		},
	}
}

func newUserRemoveCmd(app *App) *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a user and all of their logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := authorize(app, passphrase); err != nil {
				return err
			}
			if err := app.Users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed user %s\n", args[0])
			return nil
		},
	}

	addPassphraseFlag(cmd.Flags(), &passphrase)
	return cmd
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/spf13/pflag"
)

// addUserFlag registers the shared --user flag.
func addUserFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "user", "u", "", "User ID (defaults to the remembered user)")
}

// addPassphraseFlag registers the shared --passphrase flag.
func addPassphraseFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVar(target, "passphrase", "", "Admin passphrase for destructive operations")
}

// resolveUser picks the acting user: the flag, then the remembered user,
// then an interactive picker. A picked user becomes the remembered one.
func resolveUser(ctx context.Context, app *App, flag string) (*domain.User, error) {
	if id := strings.TrimSpace(flag); id != "" {
		return app.Users.Get(ctx, id)
	}

	if app.Preferences != nil {
		id, err := app.Preferences.PreferredUser(ctx)
		if err != nil {
			return nil, err
		}
		if id != "" {
			return app.Users.Get(ctx, id)
		}
	}

	if !app.interactive() {
		return nil, domain.ErrNoUserSelected
	}
	users, err := app.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: register one with 'punchclock user add'", domain.ErrNoUserSelected)
	}
	id, err := app.prompts().SelectUser(users)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, domain.ErrNoUserSelected
	}
	if app.Preferences != nil {
		if err := app.Preferences.SetPreferredUser(ctx, id); err != nil {
			return nil, err
		}
	}
	return app.Users.Get(ctx, id)
}

// authorize checks the admin passphrase from the flag, or a prompt when
// interactive.
func authorize(app *App, flag string) error {
	secret := flag
	if secret == "" && app.interactive() {
		var err error
		if secret, err = app.prompts().Passphrase(); err != nil {
			return err
		}
	}
	if !app.gate().Authorize(secret) {
		return domain.ErrUnauthorized
	}
	return nil
}

// userNames maps user IDs to display names for log listings.
func userNames(ctx context.Context, app *App) (map[string]string, error) {
	users, err := app.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}
	return names, nil
}

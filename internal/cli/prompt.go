package cli

import (
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Prompter asks the person at the terminal for missing input.
type Prompter interface {
	SelectUser(users []*domain.User) (string, error)
	Passphrase() (string, error)
}

// punchHuhTheme styles huh forms with the formatter palette.
func punchHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorIn)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

type huhPrompter struct{}

func (huhPrompter) SelectUser(users []*domain.User) (string, error) {
	options := make([]huh.Option[string], 0, len(users))
	for _, u := range users {
		options = append(options, huh.NewOption(fmt.Sprintf("%s <%s>", u.Name, u.Email), u.ID))
	}

	var id string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Who is punching?").
				Options(options...).
				Value(&id),
		),
	).WithTheme(punchHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return id, nil
}

func (huhPrompter) Passphrase() (string, error) {
	var secret string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Admin passphrase").
				EchoMode(huh.EchoModePassword).
				Value(&secret),
		),
	).WithTheme(punchHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return secret, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type tickMsg time.Time

type refreshedMsg struct {
	open *domain.LogEntry
	err  error
}

type punchedMsg struct {
	entry *domain.LogEntry
	in    bool
	err   error
}

var (
	clockToggleKey  = key.NewBinding(key.WithKeys("p", " "), key.WithHelp("space", "punch in/out"))
	clockRefreshKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	clockQuitKey    = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))

	clockDigitsStyle = lipgloss.NewStyle().Bold(true).Foreground(formatter.ColorFg).Padding(1, 4)
)

// clockModel is a live punch clock for one user.
type clockModel struct {
	ctx  context.Context
	app  *App
	user *domain.User

	now     time.Time
	open    *domain.LogEntry
	loading bool
	notice  string
	err     error
}

func newClockModel(ctx context.Context, app *App, user *domain.User) *clockModel {
	return &clockModel{
		ctx:     ctx,
		app:     app,
		user:    user,
		now:     app.now(),
		loading: true,
	}
}

func (m *clockModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), clockTick())
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *clockModel) refresh() tea.Cmd {
	ctx, svc, userID := m.ctx, m.app.Attendance, m.user.ID
	return func() tea.Msg {
		e, err := svc.CurrentOpen(ctx, userID)
		if errors.Is(err, domain.ErrNoOpenEntry) {
			return refreshedMsg{}
		}
		return refreshedMsg{open: e, err: err}
	}
}

func (m *clockModel) toggle() tea.Cmd {
	ctx, svc, userID, open := m.ctx, m.app.Attendance, m.user.ID, m.open
	return func() tea.Msg {
		if open != nil {
			e, err := svc.PunchOut(ctx, open.ID)
			return punchedMsg{entry: e, err: err}
		}
		e, err := svc.PunchIn(ctx, userID)
		return punchedMsg{entry: e, in: true, err: err}
	}
}

func (m *clockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, clockQuitKey):
			return m, tea.Quit
		case key.Matches(msg, clockRefreshKey):
			m.loading = true
			return m, m.refresh()
		case key.Matches(msg, clockToggleKey):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.toggle()
		}

	case tickMsg:
		m.now = m.app.now()
		return m, clockTick()

	case refreshedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.open = msg.open
		}

	case punchedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			// Another terminal may have punched first.
			return m, m.refresh()
		}
		loc := m.now.Location()
		if msg.in {
			m.open = msg.entry
			m.notice = "Punched in at " + formatter.ClockTime(msg.entry.TimeIn, loc)
		} else {
			m.open = nil
			m.notice = "Punched out at " + formatter.ClockTime(*msg.entry.TimeOut, loc)
		}
	}

	return m, nil
}

func (m *clockModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header(m.user.DisplayName()+" "+domain.DayOf(m.now)) + "\n")
	b.WriteString(clockDigitsStyle.Render(m.now.Format("15:04:05")) + "\n")

	switch {
	case m.loading && m.open == nil:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	case m.open != nil:
		fmt.Fprintf(&b, "%s since %s  %s elapsed\n",
			formatter.Success("● Punched in"),
			formatter.ClockTime(m.open.TimeIn, m.now.Location()),
			formatter.FormatElapsed(m.now.Sub(m.open.TimeIn)))
	default:
		b.WriteString(formatter.Dim("○ Not punched in") + "\n")
	}

	if m.err != nil {
		b.WriteString(formatter.Fail("Error: "+m.err.Error()) + "\n")
	} else if m.notice != "" {
		b.WriteString(m.notice + "\n")
	}

	hints := make([]string, 0, 3)
	for _, k := range []key.Binding{clockToggleKey, clockRefreshKey, clockQuitKey} {
		hints = append(hints, formatter.Dim(k.Help().Key+": "+k.Help().Desc))
	}
	b.WriteString("\n" + strings.Join(hints, "  ") + "\n")

	return b.String()
}

func newClockCmd(app *App) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Open a live punch clock in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("clock needs an interactive terminal")
			}
			ctx := cmd.Context()
			u, err := resolveUser(ctx, app, userFlag)
			if err != nil {
				return err
			}
			p := tea.NewProgram(newClockModel(ctx, app, u),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	addUserFlag(cmd.Flags(), &userFlag)
	return cmd
}

// Package teatest drives bubbletea models synchronously in tests.
//
// It calls Update directly and runs returned Cmds inline instead of going
// through tea.Program. Cmds that do not return within CmdTimeout, such as
// the one-second clock tick, are dropped so a test never waits on a timer.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 50

// CmdTimeout separates store-backed Cmds, which finish quickly, from
// timer Cmds.
const CmdTimeout = 200 * time.Millisecond

// Driver is a synchronous harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool

	// Dropped counts Cmds abandoned after CmdTimeout.
	Dropped int
}

func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	return &Driver{T: t, Model: model}
}

// DrainInit runs the model's Init command and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := run(cmd)
	if !ok {
		d.Dropped++
		return
	}
	if msg == nil {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
	default:
		updated, next := d.Model.Update(msg)
		d.Model = updated
		d.drain(next, depth+1)
	}
}

// run executes cmd, giving up after CmdTimeout.
func run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(CmdTimeout):
		return nil, false
	}
}

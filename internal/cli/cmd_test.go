package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassphrase = "1234"

// monday09 is Monday 2024-03-04 09:00 UTC.
var monday09 = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

type fakePrompter struct {
	pick       string
	passphrase string
	picked     int
}

func (f *fakePrompter) SelectUser(users []*domain.User) (string, error) {
	f.picked++
	return f.pick, nil
}

func (f *fakePrompter) Passphrase() (string, error) {
	return f.passphrase, nil
}

type testEnv struct {
	app     *App
	clock   *testutil.FixedClock
	users   *repository.SQLiteUserRepo
	prompts *fakePrompter
}

func testApp(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	users := repository.NewSQLiteUserRepo(database)
	logs := repository.NewSQLiteLogRepo(database)
	prefs := repository.NewSQLitePreferenceRepo(database)
	clock := testutil.NewFixedClock(monday09)
	prompts := &fakePrompter{}

	app := &App{
		Users:        service.NewUserService(users, uow, clock.Now),
		Attendance:   service.NewAttendanceService(logs, uow, clock.Now),
		Summary:      service.NewSummaryService(logs, clock.Now, time.Sunday),
		Export:       service.NewExportService(logs, users, clock.Now),
		Preferences:  service.NewPreferenceService(prefs, users),
		Gate:         auth.GateFunc(func(s string) bool { return s == testPassphrase }),
		Clock:        clock.Now,
		ExportPrefix: "punchclock_time_logs",
		Prompts:      prompts,
	}
	return &testEnv{app: app, clock: clock, users: users, prompts: prompts}
}

func (e *testEnv) seedUser(t *testing.T, name string) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name)
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- user ---

func TestUserAdd_ThenList(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "user", "add", "--name", "Ada", "--email", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Ada")

	out, err = executeCmd(t, env.app, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
}

func TestUserAdd_InvalidEmail(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "user", "add", "--name", "Ada", "--email", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestUserRemove_RequiresPassphrase(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")

	_, err := executeCmd(t, env.app, "user", "remove", u.ID, "--passphrase", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	out, err := executeCmd(t, env.app, "user", "remove", u.ID, "--passphrase", testPassphrase)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed user")

	_, err = env.app.Users.Get(context.Background(), u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRemove_NilGateDeniesEverything(t *testing.T) {
	env := testApp(t)
	env.app.Gate = nil
	u := env.seedUser(t, "Ada")

	_, err := executeCmd(t, env.app, "user", "remove", u.ID, "--passphrase", testPassphrase)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserRemove_PromptsWhenInteractive(t *testing.T) {
	env := testApp(t)
	env.app.IsInteractive = func() bool { return true }
	env.prompts.passphrase = testPassphrase
	u := env.seedUser(t, "Ada")

	_, err := executeCmd(t, env.app, "user", "remove", u.ID)
	require.NoError(t, err)
}

// --- punch ---

func TestPunch_InStatusOut(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")

	out, err := executeCmd(t, env.app, "punch", "in", "--user", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Punched in")
	assert.Contains(t, out, "09:00:00")

	env.clock.Advance(90 * time.Minute)
	out, err = executeCmd(t, env.app, "punch", "status", "-u", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "punched in")
	assert.Contains(t, out, "01:30:00")

	out, err = executeCmd(t, env.app, "punch", "out", "-u", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Punched out")
	assert.Contains(t, out, "at 10:30:00")

	out, err = executeCmd(t, env.app, "punch", "status", "-u", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "not punched in")
}

func TestPunchIn_TwiceIsRejected(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")

	_, err := executeCmd(t, env.app, "punch", "in", "-u", u.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "punch", "in", "-u", u.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateOpenSession)
}

func TestPunchOut_ByEntry(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")
	e, err := env.app.Attendance.PunchIn(context.Background(), u.ID)
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	_, err = executeCmd(t, env.app, "punch", "out", "--entry", e.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "punch", "out", "--entry", e.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
}

func TestPunchOut_NothingOpen(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")

	_, err := executeCmd(t, env.app, "punch", "out", "-u", u.ID)
	assert.ErrorIs(t, err, domain.ErrNoOpenEntry)
}

func TestPunchIn_NoUserSelected(t *testing.T) {
	env := testApp(t)
	env.seedUser(t, "Ada")

	_, err := executeCmd(t, env.app, "punch", "in")
	assert.ErrorIs(t, err, domain.ErrNoUserSelected)
}

func TestPunchIn_UnknownUserFlag(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "punch", "in", "-u", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPunchIn_UsesRememberedUser(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")
	require.NoError(t, env.app.Preferences.SetPreferredUser(context.Background(), u.ID))

	out, err := executeCmd(t, env.app, "punch", "in")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
}

func TestPunchIn_InteractivePickIsRemembered(t *testing.T) {
	env := testApp(t)
	env.app.IsInteractive = func() bool { return true }
	u := env.seedUser(t, "Ada")
	env.prompts.pick = u.ID

	_, err := executeCmd(t, env.app, "punch", "in")
	require.NoError(t, err)
	assert.Equal(t, 1, env.prompts.picked)

	id, err := env.app.Preferences.PreferredUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	// Second run uses the remembered user without prompting.
	_, err = executeCmd(t, env.app, "punch", "status")
	require.NoError(t, err)
	assert.Equal(t, 1, env.prompts.picked)
}

func TestPunchIn_InteractiveWithoutUsers(t *testing.T) {
	env := testApp(t)
	env.app.IsInteractive = func() bool { return true }

	_, err := executeCmd(t, env.app, "punch", "in")
	assert.ErrorIs(t, err, domain.ErrNoUserSelected)
	assert.Zero(t, env.prompts.picked)
}

// --- break ---

func TestBreakSet(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")
	e, err := env.app.Attendance.PunchIn(context.Background(), u.ID)
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "break", "set", e.ID, "45")
	require.NoError(t, err)
	assert.Contains(t, out, "45m")

	for _, bad := range []string{"12abc", "-5", "1.5"} {
		_, err = executeCmd(t, env.app, "break", "set", "--", e.ID, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidBreakTime, bad)
	}
}

// --- log ---

func seedClosedEntry(t *testing.T, env *testEnv, u *domain.User) *domain.LogEntry {
	t.Helper()
	ctx := context.Background()
	e, err := env.app.Attendance.PunchIn(ctx, u.ID)
	require.NoError(t, err)
	env.clock.Advance(2 * time.Hour)
	e, err = env.app.Attendance.PunchOut(ctx, e.ID)
	require.NoError(t, err)
	return e
}

func TestLogToday_AndList(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")
	e := seedClosedEntry(t, env, u)

	out, err := executeCmd(t, env.app, "log", "today", "-u", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, e.ID)
	assert.Contains(t, out, "2024-03-04")

	out, err = executeCmd(t, env.app, "log", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Present")
}

func TestLogEdit(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")
	e := seedClosedEntry(t, env, u)

	out, err := executeCmd(t, env.app, "log", "edit", e.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to change.")

	_, err = executeCmd(t, env.app, "log", "edit", e.ID, "--break", "15", "--passphrase", "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = executeCmd(t, env.app, "log", "edit", e.ID, "--time-in", "yesterday", "--passphrase", testPassphrase)
	assert.ErrorIs(t, err, domain.ErrInvalidTimestamp)

	out, err = executeCmd(t, env.app, "log", "edit", e.ID,
		"--time-in", "2024-03-04 08:00:00", "--break", "15", "--passphrase", testPassphrase)
	require.NoError(t, err)
	assert.Contains(t, out, "08:00:00")

	entries, err := env.app.Attendance.ListToday(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 15, entries[0].BreakMinutes)
	assert.Equal(t, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), entries[0].TimeIn.UTC())
}

func TestLogRemove(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")
	e := seedClosedEntry(t, env, u)

	_, err := executeCmd(t, env.app, "log", "remove", e.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = executeCmd(t, env.app, "log", "remove", e.ID, "--passphrase", testPassphrase)
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "log", "remove", e.ID, "--passphrase", testPassphrase)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- summary / export / remember ---

func TestSummary_WithAndWithoutUser(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")
	seedClosedEntry(t, env, u)

	out, err := executeCmd(t, env.app, "summary", "-u", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "2.00 h")
	assert.Contains(t, out, "SUMMARY ADA 2024-03-04")

	out, err = executeCmd(t, env.app, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "All Users Today")
	assert.Contains(t, out, "Week starts 2024-03-03")
}

func TestExport_WritesCSV(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")
	seedClosedEntry(t, env, u)
	dir := t.TempDir()

	out, err := executeCmd(t, env.app, "export", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 rows")

	data, err := os.ReadFile(filepath.Join(dir, "punchclock_time_logs_2024-03-04.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "User,Date,Time In,Time Out,Break (mins),Status", lines[0])
	assert.Equal(t, "Ada,2024-03-04,09:00:00,11:00:00,0,Present", lines[1])
}

func TestExport_NothingToExport(t *testing.T) {
	env := testApp(t)
	dir := t.TempDir()

	_, err := executeCmd(t, env.app, "export", "--out", dir)
	assert.ErrorIs(t, err, domain.ErrNothingToExport)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemember(t *testing.T) {
	env := testApp(t)
	u := env.seedUser(t, "Ada")

	out, err := executeCmd(t, env.app, "remember")
	require.NoError(t, err)
	assert.Contains(t, out, "No user remembered.")

	out, err = executeCmd(t, env.app, "remember", u.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Remembering Ada")

	out, err = executeCmd(t, env.app, "remember")
	require.NoError(t, err)
	assert.Contains(t, out, u.ID)

	_, err = executeCmd(t, env.app, "remember", "--clear")
	require.NoError(t, err)
	id, err := env.app.Preferences.PreferredUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestRemember_UnknownUser(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "remember", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServe_NotConfigured(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "serve")
	assert.Error(t, err)
}

func TestServe_RunsConfiguredServer(t *testing.T) {
	env := testApp(t)
	called := false
	env.app.Serve = func(ctx context.Context) error {
		called = true
		return nil
	}

	_, err := executeCmd(t, env.app, "serve")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestClock_RequiresInteractiveTerminal(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "clock")
	assert.Error(t, err)
}

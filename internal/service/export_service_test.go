package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/export"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRows(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	ada := h.seedUser(t, "Ada")
	bob := h.seedUser(t, "Bob")
	h.seedLog(t, testutil.NewTestLog(ada.ID, monday09.AddDate(0, 0, -1), testutil.WithSpan(8*time.Hour), testutil.WithBreak(30)))
	h.seedLog(t, testutil.NewTestLog(bob.ID, monday09))

	rows, err := NewExportService(h.logs, h.users, h.clock.Now).Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, export.Row{User: "Bob", Date: "2024-03-04", TimeIn: "09:00:00", TimeOut: "-", BreakMinutes: 0, Status: "Present"}, rows[0])
	assert.Equal(t, export.Row{User: "Ada", Date: "2024-03-03", TimeIn: "09:00:00", TimeOut: "17:00:00", BreakMinutes: 30, Status: "Present"}, rows[1])
}

func TestExportRows_Empty(t *testing.T) {
	h := newHarness(t)
	_, err := NewExportService(h.logs, h.users, h.clock.Now).Rows(context.Background())
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}

func TestExportRows_UserListFailure(t *testing.T) {
	h := newHarness(t)
	ada := h.seedUser(t, "Ada")
	h.seedLog(t, testutil.NewTestLog(ada.ID, monday09))

	_, err := NewExportService(h.logs, brokenUserRepo{}, h.clock.Now).Rows(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var punchNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func TestNewLogEntry_Defaults(t *testing.T) {
	e := NewLogEntry("u1", punchNow)
	assert.Equal(t, "u1", e.UserID)
	assert.Equal(t, "2025-06-15", e.Date)
	assert.Equal(t, punchNow, e.TimeIn)
	assert.Nil(t, e.TimeOut)
	assert.Equal(t, 0, e.BreakMinutes)
	assert.Equal(t, StatusPresent, e.Status)
	assert.True(t, e.IsOpen())
}

func TestClose_SetsTimeOut(t *testing.T) {
	e := NewLogEntry("u1", punchNow)
	out := punchNow.Add(8 * time.Hour)
	require.NoError(t, e.Close(out))
	require.NotNil(t, e.TimeOut)
	assert.Equal(t, out, *e.TimeOut)
	assert.False(t, e.IsOpen())
}

func TestClose_AlreadyClosed(t *testing.T) {
	e := NewLogEntry("u1", punchNow)
	first := punchNow.Add(time.Hour)
	require.NoError(t, e.Close(first))

	err := e.Close(punchNow.Add(2 * time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	assert.Equal(t, first, *e.TimeOut, "time out must not move")
}

func TestSetBreak(t *testing.T) {
	e := NewLogEntry("u1", punchNow)
	require.NoError(t, e.SetBreak(15))
	assert.Equal(t, 15, e.BreakMinutes)

	err := e.SetBreak(-1)
	assert.ErrorIs(t, err, ErrInvalidBreakTime)
	assert.Equal(t, 15, e.BreakMinutes)
}

func TestWorked(t *testing.T) {
	out := punchNow.Add(90 * time.Minute)
	cases := []struct {
		name  string
		entry LogEntry
		want  time.Duration
	}{
		{"open entry", LogEntry{TimeIn: punchNow, BreakMinutes: 10}, 0},
		{"span minus break", LogEntry{TimeIn: punchNow, TimeOut: &out, BreakMinutes: 30}, time.Hour},
		{"break exceeds span", LogEntry{TimeIn: punchNow, TimeOut: &out, BreakMinutes: 120}, 0},
		{"time out before time in", LogEntry{TimeIn: out, TimeOut: &punchNow}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.entry.Worked())
		})
	}
}

func TestApply_SparsePatch(t *testing.T) {
	e := NewLogEntry("u1", punchNow)
	out := punchNow.Add(4 * time.Hour)
	require.NoError(t, e.Close(out))
	e.BreakMinutes = 20

	newIn := punchNow.Add(-30 * time.Minute)
	require.NoError(t, e.Apply(LogPatch{TimeIn: &newIn}))
	assert.Equal(t, newIn, e.TimeIn)
	assert.Equal(t, out, *e.TimeOut, "absent fields stay untouched")
	assert.Equal(t, 20, e.BreakMinutes)
	assert.Equal(t, "2025-06-15", e.Date)
}

func TestApply_InvalidBreakLeavesEntry(t *testing.T) {
	e := NewLogEntry("u1", punchNow)
	newIn := punchNow.Add(time.Hour)
	bad := -5
	err := e.Apply(LogPatch{TimeIn: &newIn, BreakMinutes: &bad})
	assert.ErrorIs(t, err, ErrInvalidBreakTime)
	assert.Equal(t, punchNow, e.TimeIn, "no partial application")
}

func TestLogPatch_Empty(t *testing.T) {
	assert.True(t, LogPatch{}.Empty())
	b := 0
	assert.False(t, LogPatch{BreakMinutes: &b}.Empty())
}

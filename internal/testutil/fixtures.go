package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/google/uuid"
)

var testUserCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func WithCreatedAt(t time.Time) UserOption {
	return func(u *domain.User) {
		u.CreatedAt = t
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	n := testUserCounter.Add(1)
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     fmt.Sprintf("user%02d@example.com", n),
		AvatarURL: domain.DefaultAvatarURL,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Log options
type LogOption func(*domain.LogEntry)

// WithTimeOut closes the entry at t.
func WithTimeOut(t time.Time) LogOption {
	return func(e *domain.LogEntry) {
		e.TimeOut = &t
	}
}

// WithSpan closes the entry d after its time in.
func WithSpan(d time.Duration) LogOption {
	return func(e *domain.LogEntry) {
		out := e.TimeIn.Add(d)
		e.TimeOut = &out
	}
}

func WithBreak(minutes int) LogOption {
	return func(e *domain.LogEntry) {
		e.BreakMinutes = minutes
	}
}

func WithStatus(s domain.LogStatus) LogOption {
	return func(e *domain.LogEntry) {
		e.Status = s
	}
}

// WithDate overrides the calendar day derived from the time in.
func WithDate(day string) LogOption {
	return func(e *domain.LogEntry) {
		e.Date = day
	}
}

// NewTestLog builds an open entry punched in at timeIn.
func NewTestLog(userID string, timeIn time.Time, opts ...LogOption) *domain.LogEntry {
	e := domain.NewLogEntry(userID, timeIn)
	e.ID = uuid.New().String()
	e.CreatedAt = timeIn
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FixedClock returns a clock function that reports t until advanced.
type FixedClock struct {
	t atomic.Pointer[time.Time]
}

func NewFixedClock(t time.Time) *FixedClock {
	c := &FixedClock{}
	c.Set(t)
	return c
}

func (c *FixedClock) Now() time.Time {
	return *c.t.Load()
}

func (c *FixedClock) Set(t time.Time) {
	c.t.Store(&t)
}

func (c *FixedClock) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}

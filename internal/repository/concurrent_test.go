package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentCreate_OneOpenEntryWins races many inserts of an open entry
// for the same user and day against a file-backed database. The partial
// unique index must let exactly one through; every loser must see either the
// duplicate error or a busy store, never a second row.
func TestConcurrentCreate_OneOpenEntryWins(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	u := testutil.NewTestUser("Racer")
	require.NoError(t, NewSQLiteUserRepo(database).Create(ctx, u))
	repo := NewSQLiteLogRepo(database)

	base := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	var wins, dupes atomic.Int32
	const racers = 10
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Create(ctx, testutil.NewTestLog(u.ID, base.Add(time.Duration(i)*time.Second)))
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, domain.ErrDuplicateOpenSession):
				dupes.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.LessOrEqual(t, dupes.Load(), int32(racers-1))

	open, err := repo.List(ctx, LogFilter{UserID: u.ID, Date: "2025-06-18", OpenOnly: true})
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

// TestConcurrentAccess_ReadDuringWrite verifies that concurrent List calls
// see consistent rows while closed entries are being written.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	u := testutil.NewTestUser("Reader")
	require.NoError(t, NewSQLiteUserRepo(database).Create(ctx, u))
	repo := NewSQLiteLogRepo(database)
	base := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			e := testutil.NewTestLog(u.ID, base.Add(time.Duration(i)*time.Minute), testutil.WithSpan(30*time.Second))
			if err := repo.Create(ctx, e); err != nil {
				t.Errorf("writer: create log %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				entries, err := repo.List(ctx, LogFilter{UserID: u.ID})
				if err != nil {
					t.Errorf("reader %d: list: %v", reader, err)
					return
				}
				for _, e := range entries {
					if e.ID == "" || e.TimeOut == nil {
						t.Errorf("reader %d: partial row %+v", reader, e)
					}
				}
			}
		}(r)
	}
	wg.Wait()

	all, err := repo.List(ctx, LogFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

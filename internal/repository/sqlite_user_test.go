package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	u := testutil.NewTestUser("Ada", testutil.WithEmail("ada@example.com"))
	require.NoError(t, repo.Create(ctx, u))

	fetched, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.ID)
	assert.Equal(t, "Ada", fetched.Name)
	assert.Equal(t, "ada@example.com", fetched.Email)
	assert.Equal(t, domain.DefaultAvatarURL, fetched.AvatarURL)
	assert.True(t, u.CreatedAt.Equal(fetched.CreatedAt))
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	older := testutil.NewTestUser("Older", testutil.WithCreatedAt(now.Add(-time.Hour)))
	newer := testutil.NewTestUser("Newer", testutil.WithCreatedAt(now))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestUserRepo_Delete(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	u := testutil.NewTestUser("Gone")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Delete(ctx, u.ID))

	_, err := repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, u.ID), ErrNotFound, "second delete finds nothing")
}

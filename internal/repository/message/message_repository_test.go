package message

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lunaris-labs/converse/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Message{}))
	return db
}

func TestAppend_PreservesInsertionOrder(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	contents := []string{"first", "second", "third"}
	for _, c := range contents {
		_, err := repo.Append(ctx, 1, domain.RoleUser, c)
		require.NoError(t, err)
	}

	history, err := repo.FindByUserID(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, c := range contents {
		assert.Equal(t, c, history[i].Content)
	}
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp),
			"timestamps must be monotonically non-decreasing")
	}
}

func TestAppend_RejectsUnknownRole(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	_, err := repo.Append(context.Background(), 1, "system", "nope")
	assert.Error(t, err)
}

func TestFindByUserID_LimitKeepsOldest(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	for _, c := range []string{"m1", "m2", "m3", "m4"} {
		_, err := repo.Append(ctx, 1, domain.RoleUser, c)
		require.NoError(t, err)
	}

	// limit truncates from the oldest end, not the most recent.
	history, err := repo.FindByUserID(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "m1", history[0].Content)
	assert.Equal(t, "m2", history[1].Content)
}

func TestFindByUserID_IsolatedPerUser(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Append(ctx, 1, domain.RoleUser, "for one")
	require.NoError(t, err)
	_, err = repo.Append(ctx, 2, domain.RoleUser, "for two")
	require.NoError(t, err)

	history, err := repo.FindByUserID(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "for one", history[0].Content)
}

func TestDeleteByUserID(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Append(ctx, 1, domain.RoleUser, "hi")
	require.NoError(t, err)
	_, err = repo.Append(ctx, 2, domain.RoleUser, "other user")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByUserID(ctx, 1))

	count, err := repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Other logs untouched.
	count, err = repo.CountByUserID(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCountByUserID(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	count, err := repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.Append(ctx, 1, domain.RoleUser, "hi")
	require.NoError(t, err)
	_, err = repo.Append(ctx, 1, domain.RoleAssistant, "hello")
	require.NoError(t, err)

	count, err = repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

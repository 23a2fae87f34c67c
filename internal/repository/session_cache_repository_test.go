package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hangul-quiz/internal/adapter"
	"hangul-quiz/internal/cache"
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/session"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionID = "01J9ZK6Q3V8X2W4Y5Z6A7B8C9D"

func startedState(t *testing.T) session.State {
	t.Helper()
	e, err := session.New(sampleBank(), session.NewRand(1))
	require.NoError(t, err)
	e.SetID(testSessionID)
	return e.State()
}

func TestSessionCacheRepository_Redis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewSessionCacheRepository(adapter.NewRedisCacheAdapter(db), 2*time.Hour)
	ctx := context.Background()
	key := cache.SessionKey(testSessionID)

	state := startedState(t)
	raw, err := json.Marshal(state)
	require.NoError(t, err)

	t.Run("Save", func(t *testing.T) {
		mock.ExpectSet(key, string(raw), 2*time.Hour).SetVal("OK")
		assert.NoError(t, repo.Save(ctx, state))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(string(raw))
		got, err := repo.Get(ctx, testSessionID)
		require.NoError(t, err)
		assert.Equal(t, state.ID, got.ID)
		assert.Equal(t, state.Options, got.Options)
		assert.Equal(t, state.Bank, got.Bank)
		assert.True(t, state.CreatedAt.Equal(got.CreatedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		_, err := repo.Get(ctx, testSessionID)
		var de *domain.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, domain.CodeSessionNotFound, de.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Corrupt", func(t *testing.T) {
		mock.ExpectGet(key).SetVal("{")
		_, err := repo.Get(ctx, testSessionID)
		assert.Error(t, err)
		assert.Nil(t, domain.AsDomainError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(1)
		assert.NoError(t, repo.Delete(ctx, testSessionID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionCacheRepository_Memory(t *testing.T) {
	repo := NewSessionCacheRepository(adapter.NewMemoryCacheAdapter(), time.Hour)
	ctx := context.Background()

	state := startedState(t)
	require.NoError(t, repo.Save(ctx, state))

	got, err := repo.Get(ctx, testSessionID)
	require.NoError(t, err)

	e, err := session.Restore(got, session.NewRand(2))
	require.NoError(t, err)
	q, ok := e.CurrentQuestion()
	require.True(t, ok)
	assert.Contains(t, e.Options(), q.Answer)

	state.ID = ""
	assert.Error(t, repo.Save(ctx, state))
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roastbeats/internal/spotify"
)

func TestNewStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := NewStore(StoreTypeMemory)
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.NoError(t, store.Close())
	})

	t.Run("redis without client", func(t *testing.T) {
		_, err := NewStore(StoreTypeRedis)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewStore(StoreType("etcd"))
		assert.ErrorIs(t, err, ErrInvalidStoreType)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get missing returns nil, nil", func(t *testing.T) {
		store, _ := NewStore(StoreTypeMemory)
		data, err := store.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("save and get roundtrip", func(t *testing.T) {
		store, _ := NewStore(StoreTypeMemory)
		sess := &Data{
			ID:     "s1",
			Source: SourceManual,
			Manual: &ManualData{Username: "Test User", MusicInput: "I love Nickelback and silence."},
		}
		require.NoError(t, store.Save(ctx, sess))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, SourceManual, got.Source)
		require.NotNil(t, got.Manual)
		assert.Equal(t, "Test User", got.Manual.Username)
		assert.False(t, got.CreatedAt.IsZero())
		assert.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("save preserves created_at on update", func(t *testing.T) {
		store, _ := NewStore(StoreTypeMemory)
		sess := &Data{ID: "s2", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
		require.NoError(t, store.Save(ctx, sess))

		sess.Source = SourceManual
		require.NoError(t, store.Save(ctx, sess))

		got, err := store.Get(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, 2025, got.CreatedAt.Year())
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		store, _ := NewStore(StoreTypeMemory)
		require.NoError(t, store.Save(ctx, &Data{ID: "s3", Source: SourceManual}))

		got, _ := store.Get(ctx, "s3")
		got.Source = SourceAuthorized

		again, _ := store.Get(ctx, "s3")
		assert.Equal(t, SourceManual, again.Source)
	})

	t.Run("delete", func(t *testing.T) {
		store, _ := NewStore(StoreTypeMemory)
		require.NoError(t, store.Save(ctx, &Data{ID: "s4"}))
		require.NoError(t, store.Delete(ctx, "s4"))

		got, err := store.Get(ctx, "s4")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestResolvedSource(t *testing.T) {
	var nilData *Data
	assert.Equal(t, SourceAuthorized, nilData.ResolvedSource())
	assert.Equal(t, SourceAuthorized, (&Data{}).ResolvedSource())
	assert.Equal(t, SourceAuthorized, (&Data{Source: "spotify"}).ResolvedSource())
	assert.Equal(t, SourceManual, (&Data{Source: SourceManual}).ResolvedSource())
}

func TestDataTokenState(t *testing.T) {
	sess := &Data{ID: "s5"}
	assert.False(t, sess.Token.Valid())

	sess.Token = &spotify.Token{AccessToken: "at"}
	assert.True(t, sess.Token.Valid())
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RoastStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "roasts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)

	rec := &Record{
		Username:   "Tester",
		Headline:   "Peaked in High School",
		Score:      73,
		RoastBody:  "You own <b>one</b> flannel shirt.",
		DatingLife: "Will text ex at 3am",
	}
	require.NoError(t, s.Save(context.Background(), rec))

	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := &Record{
			Username:  "User",
			Headline:  "H",
			Score:     i,
			RoastBody: "B", DatingLife: "D",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.Save(ctx, rec))
	}

	records, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, 2, records[0].Score)
	assert.Equal(t, 1, records[1].Score)
}

func TestRecentEmpty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
)

func TestHistoryStore_SaveAndList(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, store.Save(ctx, domain.HistoryEntry{ID: "a", Query: "old", CreatedAt: base.Add(-time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.HistoryEntry{ID: "b", Query: "new", CreatedAt: base}))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].Query)
	assert.Equal(t, "old", entries[1].Query)
}

func TestHistoryStore_ListLimit(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, domain.HistoryEntry{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].ID)
}

func TestHistoryStore_SaveRequiresID(t *testing.T) {
	store := NewHistoryStore()

	err := store.Save(context.Background(), domain.HistoryEntry{Query: "no id"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryStore_Clear(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.HistoryEntry{ID: "a", CreatedAt: time.Now()}))
	require.NoError(t, store.Clear(ctx))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func entry(id, query string, createdAt time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:            id,
		Query:         query,
		Mode:          domain.SearchModeWeb,
		ContextSize:   domain.ContextSizeMedium,
		Text:          "answer for " + query,
		CitationCount: 2,
		Duration:      1500 * time.Millisecond,
		CreatedAt:     createdAt,
	}
}

func TestStore_SaveAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, store.Save(ctx, entry("e1", "first", now)))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, "first", got.Query)
	assert.Equal(t, domain.SearchModeWeb, got.Mode)
	assert.Equal(t, domain.ContextSizeMedium, got.ContextSize)
	assert.Equal(t, "answer for first", got.Text)
	assert.Equal(t, 2, got.CitationCount)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.WithinDuration(t, now, got.CreatedAt, time.Second)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, store.Save(ctx, entry("e1", "oldest", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, entry("e2", "newest", base)))
	require.NoError(t, store.Save(ctx, entry("e3", "middle", base.Add(-time.Hour))))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "newest", entries[0].Query)
	assert.Equal(t, "middle", entries[1].Query)
	assert.Equal(t, "oldest", entries[2].Query)
}

func TestStore_ListLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, store.Save(ctx, entry(id, id, base.Add(time.Duration(i)*time.Minute))))
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "d", entries[0].ID)
	assert.Equal(t, "c", entries[1].ID)
}

func TestStore_SaveRequiresID(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(context.Background(), domain.HistoryEntry{Query: "no id"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_SaveRejectsDuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.Save(ctx, entry("dup", "one", now)))
	assert.Error(t, store.Save(ctx, entry("dup", "two", now)))
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entry("e1", "q", time.Now().UTC())))
	require.NoError(t, store.Clear(ctx))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, entry("e1", "durable", time.Now().UTC())))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "durable", entries[0].Query)
}

func TestStore_Path(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "history.db"), store.Path())
}

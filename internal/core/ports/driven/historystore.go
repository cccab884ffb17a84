package driven

import (
	"context"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
)

// HistoryStore persists completed searches.
type HistoryStore interface {
	// Save stores a history entry.
	Save(ctx context.Context, entry domain.HistoryEntry) error

	// List returns entries ordered newest first, up to limit.
	// A non-positive limit returns all entries.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

package services

import (
	"context"
	"fmt"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driven"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
	"github.com/seekwell-labs/seekwell-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes recorded searches to front ends.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service.
// The store is optional (can be nil); without it, List returns no entries
// and Clear is a no-op.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns recent history entries, newest first. A non-positive limit
// lists all entries, matching the store contract.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		logger.Debug("History store not configured, returning no entries")
		return []domain.HistoryEntry{}, nil
	}

	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Clear removes all history entries.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	logger.Info("Search history cleared")
	return nil
}

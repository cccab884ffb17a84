package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driven"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
	"github.com/seekwell-labs/seekwell-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService orchestrates one hosted search: build the request, make
// the single external call, normalize the response, record history.
// It holds no mutable state across calls; every invocation is independent.
type SearchService struct {
	provider driven.SearchProvider
	settings driving.SettingsService
	history  driven.HistoryStore
}

// NewSearchService creates a new search service.
// The settings parameter is optional (can be nil); without it, built-in
// defaults apply.
func NewSearchService(provider driven.SearchProvider, settings driving.SettingsService) *SearchService {
	return &SearchService{
		provider: provider,
		settings: settings,
	}
}

// SetHistoryStore enables best-effort history recording.
// A nil store (the default) disables recording.
func (s *SearchService) SetHistoryStore(store driven.HistoryStore) {
	s.history = store
}

// Search builds a request from params, performs one hosted call, and
// normalizes the response into a SearchResult.
func (s *SearchService) Search(ctx context.Context, params driving.SearchParams) (*driving.SearchOutcome, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", params.Query)

	if s.provider == nil {
		return nil, fmt.Errorf("search: %w", domain.ErrAuthFailed)
	}

	req, err := BuildRequest(params, s.defaults())
	if err != nil {
		logger.Warn("Request build failed: %v", err)
		return nil, err
	}
	logger.Info("Mode: %s, context size: %s", req.Mode, req.ContextSize)
	if req.Location != nil {
		logger.Debug("Location hint: country=%q region=%q city=%q",
			req.Location.Country, req.Location.Region, req.Location.City)
	}

	start := time.Now()
	raw, err := s.provider.Search(ctx, req)
	duration := time.Since(start)
	if err != nil {
		logger.Warn("Hosted call failed after %s: %v", duration, err)
		return nil, fmt.Errorf("hosted search: %w", err)
	}
	logger.Debug("Hosted call completed in %s (%d bytes)", duration, len(raw))

	result, err := Normalize(raw, req.Mode)
	if err != nil {
		logger.Warn("Response normalization failed: %v", err)
		return nil, err
	}
	logger.Info("Answer: %d chars, %d citations", len(result.Text), len(result.Citations))

	s.record(ctx, req, result, duration)

	return &driving.SearchOutcome{
		Request:  req,
		Result:   result,
		Duration: duration,
		Raw:      raw,
	}, nil
}

// defaults reads configured search defaults. A nil or failing settings
// service falls back to built-in defaults.
func (s *SearchService) defaults() SearchDefaults {
	if s.settings == nil {
		return SearchDefaults{}
	}
	settings, err := s.settings.Get()
	if err != nil {
		logger.Warn("Settings unavailable, using built-in defaults: %v", err)
		return SearchDefaults{}
	}
	return SearchDefaults{
		Mode:          settings.Search.Mode,
		ContextSize:   settings.Search.ContextSize,
		VectorStoreID: settings.Search.VectorStoreID,
		Location:      settings.Search.Location,
		ForceWeb:      settings.Search.ForceWeb,
	}
}

// record persists a history entry. Failures are logged, never surfaced:
// a completed search is not invalidated by bookkeeping problems.
func (s *SearchService) record(ctx context.Context, req domain.SearchRequest, result domain.SearchResult, duration time.Duration) {
	if s.history == nil {
		return
	}

	entry := domain.HistoryEntry{
		ID:            uuid.NewString(),
		Query:         req.Query,
		Mode:          req.Mode,
		ContextSize:   req.ContextSize,
		Text:          result.Text,
		CitationCount: len(result.Citations),
		Duration:      duration,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.history.Save(ctx, entry); err != nil {
		logger.Warn("History write failed: %v", err)
	}
}

package cli

import (
	"context"
	"time"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
)

// mockSearchService returns canned outcomes for command tests.
type mockSearchService struct {
	outcome *driving.SearchOutcome
	err     error
	params  driving.SearchParams
	ctx     context.Context
}

func (m *mockSearchService) Search(ctx context.Context, params driving.SearchParams) (*driving.SearchOutcome, error) {
	m.ctx = ctx
	m.params = params
	if m.err != nil {
		return nil, m.err
	}
	return m.outcome, nil
}

type mockHistoryService struct {
	entries []domain.HistoryEntry
	limit   int
	cleared bool
	err     error
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.limit = limit
	return m.entries, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.cleared = true
	return m.err
}

type mockSettingsService struct {
	settings *driving.AppSettings
	saved    *driving.AppSettings
	setKey   string
	setValue string
	err      error
}

func (m *mockSettingsService) Get() (*driving.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		return &driving.AppSettings{
			Search: driving.SearchSettings{
				Mode:        domain.SearchModeCombined,
				ContextSize: domain.ContextSizeMedium,
			},
			Provider: driving.ProviderSettings{Model: "gpt-4o-mini"},
		}, nil
	}
	return m.settings, nil
}

func (m *mockSettingsService) Save(settings *driving.AppSettings) error {
	m.saved = settings
	return m.err
}

func (m *mockSettingsService) Set(key, value string) error {
	m.setKey = key
	m.setValue = value
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return []string{"search.mode", "search.context_size"}
}

func defaultOutcome() *driving.SearchOutcome {
	return &driving.SearchOutcome{
		Request: domain.SearchRequest{
			Query:       "test query",
			Mode:        domain.SearchModeWeb,
			ContextSize: domain.ContextSizeMedium,
		},
		Result: domain.SearchResult{
			Text: "The answer.",
			Citations: []domain.Citation{
				{Kind: domain.CitationKindWeb, Title: "Example", URL: "https://example.com/a"},
			},
		},
		Duration: 1200 * time.Millisecond,
		Raw:      []byte(`{"output":[]}`),
	}
}

// setupTestServices installs mock services and returns a cleanup that
// restores the previous ones.
func setupTestServices() (search *mockSearchService, history *mockHistoryService, settings *mockSettingsService, cleanup func()) {
	prevSearch := searchService
	prevHistory := historyService
	prevSettings := settingsService

	search = &mockSearchService{outcome: defaultOutcome()}
	history = &mockHistoryService{}
	settings = &mockSettingsService{}

	searchService = search
	historyService = history
	settingsService = settings

	return search, history, settings, func() {
		searchService = prevSearch
		historyService = prevHistory
		settingsService = prevSettings
	}
}

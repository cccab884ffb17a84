package driving

import (
	"context"
	"encoding/json"
	"time"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
)

// SearchParams are the raw, unvalidated user inputs to a search.
// String fields arrive as typed by the user; the request builder trims,
// parses, and validates them.
type SearchParams struct {
	// Query is the search query text.
	Query string

	// Mode is the requested search mode ("file", "web", "combined").
	// Empty falls back to the configured default.
	Mode string

	// ContextSize is the requested context size ("low", "medium", "high").
	// Empty or unrecognised values normalize to the default.
	ContextSize string

	// Country, Region, City are optional location hints for web search.
	Country string
	Region  string
	City    string

	// VectorStoreID overrides the configured default vector store.
	VectorStoreID string

	// ForceWeb forces the web search tool even when the service might
	// otherwise skip it.
	ForceWeb bool
}

// SearchOutcome bundles the normalized result with the request that
// produced it, for front ends that echo settings back to the user.
type SearchOutcome struct {
	// Request is the validated request that was sent.
	Request domain.SearchRequest

	// Result is the normalized answer and citations.
	Result domain.SearchResult

	// Duration is how long the hosted call took.
	Duration time.Duration

	// Raw is the response payload exactly as the hosted service returned
	// it, for debug output.
	Raw json.RawMessage
}

// SearchService provides hosted search to external actors.
type SearchService interface {
	// Search builds a request from params, performs one hosted call,
	// and normalizes the response.
	Search(ctx context.Context, params SearchParams) (*SearchOutcome, error)
}

// HistoryService provides access to recorded searches.
type HistoryService interface {
	// List returns recent history entries, newest first.
	// A non-positive limit returns all entries.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all history entries.
	Clear(ctx context.Context) error
}

package driving

import "github.com/seekwell-labs/seekwell-cli/internal/core/domain"

// AppSettings are the user-configurable defaults for searches and the
// hosted provider. The API key is deliberately absent: it is supplied via
// the environment only and never persisted.
type AppSettings struct {
	// Search holds default search parameters.
	Search SearchSettings

	// Provider holds hosted provider configuration.
	Provider ProviderSettings
}

// SearchSettings are default search parameters.
type SearchSettings struct {
	// Mode is the default search mode.
	Mode domain.SearchMode

	// ContextSize is the default web search context size.
	ContextSize domain.ContextSize

	// VectorStoreID is the default vector store for file searches.
	VectorStoreID string

	// Location is the default location hint for web searches.
	Location domain.Location

	// ForceWeb is the default for the force-web directive.
	ForceWeb bool
}

// ProviderSettings configure the hosted search provider.
type ProviderSettings struct {
	// Model is the hosted model that runs the search tools.
	Model string

	// BaseURL overrides the provider endpoint (e.g. for compatible APIs).
	// Empty means the provider default.
	BaseURL string
}

// SettingsService manages persisted application settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults applied.
	Get() (*AppSettings, error)

	// Save persists settings.
	Save(settings *AppSettings) error

	// Set stores a single setting by key (e.g. "search.mode").
	Set(key, value string) error

	// Keys returns all recognised setting keys.
	Keys() []string
}

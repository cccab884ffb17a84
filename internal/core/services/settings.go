package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driven"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchMode        = "search.mode"
	keySearchContextSize = "search.context_size"
	keySearchVectorStore = "search.vector_store_id"
	keySearchForceWeb    = "search.force_web"
	keyLocationCountry   = "location.country"
	keyLocationRegion    = "location.region"
	keyLocationCity      = "location.city"
	keyProviderModel     = "openai.model"
	keyProviderBaseURL   = "openai.base_url"
)

// Built-in defaults. The model matches the hosted service's cheapest model
// with both search tools enabled.
const (
	defaultModel = "gpt-4o-mini"
)

// DefaultAppSettings returns the built-in settings used when nothing is
// configured.
func DefaultAppSettings() *driving.AppSettings {
	return &driving.AppSettings{
		Search: driving.SearchSettings{
			Mode:        domain.SearchModeCombined,
			ContextSize: domain.ContextSizeMedium,
		},
		Provider: driving.ProviderSettings{
			Model: defaultModel,
		},
	}
}

// SettingsService manages application settings on top of a ConfigStore.
// The API key is environment-only and deliberately not handled here.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings with defaults applied.
func (s *SettingsService) Get() (*driving.AppSettings, error) {
	defaults := DefaultAppSettings()
	if s.configStore == nil {
		return defaults, nil
	}

	settings := &driving.AppSettings{
		Search: driving.SearchSettings{
			Mode:          s.getMode(defaults.Search.Mode),
			ContextSize:   s.getContextSize(defaults.Search.ContextSize),
			VectorStoreID: s.configStore.GetString(keySearchVectorStore),
			ForceWeb:      s.configStore.GetBool(keySearchForceWeb),
			Location: domain.Location{
				Country: s.configStore.GetString(keyLocationCountry),
				Region:  s.configStore.GetString(keyLocationRegion),
				City:    s.configStore.GetString(keyLocationCity),
			},
		},
		Provider: driving.ProviderSettings{
			Model:   s.getString(keyProviderModel, defaults.Provider.Model),
			BaseURL: s.configStore.GetString(keyProviderBaseURL),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *driving.AppSettings) error {
	if s.configStore == nil {
		return fmt.Errorf("config store not configured")
	}

	pairs := []struct {
		key   string
		value any
	}{
		{keySearchMode, settings.Search.Mode.String()},
		{keySearchContextSize, settings.Search.ContextSize.String()},
		{keySearchVectorStore, settings.Search.VectorStoreID},
		{keySearchForceWeb, settings.Search.ForceWeb},
		{keyLocationCountry, settings.Search.Location.Country},
		{keyLocationRegion, settings.Search.Location.Region},
		{keyLocationCity, settings.Search.Location.City},
		{keyProviderModel, settings.Provider.Model},
		{keyProviderBaseURL, settings.Provider.BaseURL},
	}
	for _, p := range pairs {
		if err := s.configStore.Set(p.key, p.value); err != nil {
			return fmt.Errorf("save setting %s: %w", p.key, err)
		}
	}
	return nil
}

// Set stores a single setting by key, validating enumerated values.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("config store not configured")
	}

	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	// An empty value resets any recognised key to its default.
	if value == "" {
		if !s.isKnownKey(key) {
			return fmt.Errorf("unknown setting %q", key)
		}
		return s.configStore.Delete(key)
	}

	switch key {
	case keySearchMode:
		mode, ok := domain.ParseSearchMode(value)
		if !ok {
			return domain.NewValidationError("mode", domain.ErrInvalidMode)
		}
		return s.configStore.Set(key, mode.String())

	case keySearchContextSize:
		// Unrecognised sizes normalize rather than fail, matching the
		// request builder's behaviour.
		return s.configStore.Set(key, domain.NormalizeContextSize(value).String())

	case keySearchForceWeb:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s wants true/false: %w", key, err)
		}
		return s.configStore.Set(key, b)

	case keySearchVectorStore, keyLocationCountry, keyLocationRegion,
		keyLocationCity, keyProviderModel, keyProviderBaseURL:
		return s.configStore.Set(key, value)

	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}

func (s *SettingsService) isKnownKey(key string) bool {
	for _, k := range s.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Keys returns all recognised setting keys, for help output.
func (s *SettingsService) Keys() []string {
	return []string{
		keySearchMode,
		keySearchContextSize,
		keySearchVectorStore,
		keySearchForceWeb,
		keyLocationCountry,
		keyLocationRegion,
		keyLocationCity,
		keyProviderModel,
		keyProviderBaseURL,
	}
}

func (s *SettingsService) getMode(fallback domain.SearchMode) domain.SearchMode {
	if mode, ok := domain.ParseSearchMode(s.configStore.GetString(keySearchMode)); ok {
		return mode
	}
	return fallback
}

func (s *SettingsService) getContextSize(fallback domain.ContextSize) domain.ContextSize {
	raw := s.configStore.GetString(keySearchContextSize)
	if raw == "" {
		return fallback
	}
	return domain.NormalizeContextSize(raw)
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

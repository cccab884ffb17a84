package services

import (
	"strings"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
)

// SearchDefaults are externally supplied fallback values for request
// construction. They are passed explicitly rather than read from ambient
// state so the builder stays pure and testable in isolation.
type SearchDefaults struct {
	// Mode is used when params carry no mode.
	Mode domain.SearchMode

	// ContextSize is used when params carry no context size.
	ContextSize domain.ContextSize

	// VectorStoreID is used when params carry no vector store id.
	VectorStoreID string

	// Location is used when params carry no location field at all.
	Location domain.Location

	// ForceWeb forces web search when set, even if params do not.
	ForceWeb bool
}

// BuildRequest turns raw user parameters into a validated SearchRequest.
// It is a pure transformation: no network access, no side effects.
func BuildRequest(params driving.SearchParams, defaults SearchDefaults) (domain.SearchRequest, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return domain.SearchRequest{}, domain.NewValidationError("query", domain.ErrEmptyQuery)
	}

	mode, err := resolveMode(params.Mode, defaults.Mode)
	if err != nil {
		return domain.SearchRequest{}, err
	}

	contextSize := resolveContextSize(params.ContextSize, defaults.ContextSize)

	req := domain.SearchRequest{
		Query:       query,
		Mode:        mode,
		ContextSize: contextSize,
		ForceWeb:    params.ForceWeb || defaults.ForceWeb,
	}

	if mode.RequiresVectorStore() {
		storeID := strings.TrimSpace(params.VectorStoreID)
		if storeID == "" {
			storeID = strings.TrimSpace(defaults.VectorStoreID)
		}
		if storeID == "" {
			return domain.SearchRequest{}, domain.NewValidationError("vectorStoreId", domain.ErrMissingVectorStore)
		}
		req.VectorStoreID = storeID
	}

	if mode.UsesWeb() {
		req.Location = assembleLocation(params, defaults.Location)
	}

	return req, nil
}

// resolveMode parses the requested mode, falling back to the default.
// An explicit but unrecognised mode is a validation error, not a fallback.
func resolveMode(requested string, fallback domain.SearchMode) (domain.SearchMode, error) {
	if strings.TrimSpace(requested) == "" {
		if fallback.IsValid() {
			return fallback, nil
		}
		return domain.SearchModeCombined, nil
	}

	mode, ok := domain.ParseSearchMode(requested)
	if !ok {
		return "", domain.NewValidationError("mode", domain.ErrInvalidMode)
	}
	return mode, nil
}

// resolveContextSize normalizes the requested size, falling back to the
// configured default and finally to medium. Unrecognised values are not
// an error; they normalize to the default.
func resolveContextSize(requested string, fallback domain.ContextSize) domain.ContextSize {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		if size := domain.ContextSize(strings.ToLower(requested)); size.IsValid() {
			return size
		}
	}
	if fallback.IsValid() {
		return fallback
	}
	return domain.ContextSizeMedium
}

// assembleLocation builds the optional location from non-empty fields only.
// Explicit params win wholesale: defaults apply only when the params carry
// no location field at all. Returns nil when there is nothing to send.
func assembleLocation(params driving.SearchParams, fallback domain.Location) *domain.Location {
	loc := domain.Location{
		Country: strings.TrimSpace(params.Country),
		Region:  strings.TrimSpace(params.Region),
		City:    strings.TrimSpace(params.City),
	}
	if loc.IsEmpty() {
		loc = domain.Location{
			Country: strings.TrimSpace(fallback.Country),
			Region:  strings.TrimSpace(fallback.Region),
			City:    strings.TrimSpace(fallback.City),
		}
	}
	if loc.IsEmpty() {
		return nil
	}
	return &loc
}

package driven

import (
	"context"
	"encoding/json"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
)

// SearchProvider invokes the hosted search endpoint.
//
// The returned payload is the provider's response body, passed through
// untouched: its wire format is owned by the external service and decoded
// only by the core response normalizer. Implementations own transport
// concerns (authentication, throttling, the single transient retry) and
// surface failures as domain.ErrAuthFailed or domain.ErrTransientCall.
type SearchProvider interface {
	// Search performs one hosted search call for the given request.
	Search(ctx context.Context, req domain.SearchRequest) (json.RawMessage, error)

	// Close releases resources.
	Close() error
}

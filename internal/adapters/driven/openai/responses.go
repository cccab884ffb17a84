// Package openai implements the hosted search provider against the
// OpenAI Responses API using its built-in file_search and
// web_search_preview tools.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driven"
	"github.com/seekwell-labs/seekwell-cli/internal/logger"
)

// Ensure SearchProvider implements the interface.
var _ driven.SearchProvider = (*SearchProvider)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second

	// ProactiveRate throttles outgoing calls client-side so bursts from
	// the TUI or web UI cannot trip the service rate limit.
	ProactiveRate = 2.0
)

// Tool and annotation type names used by the Responses API.
const (
	toolTypeFileSearch = "file_search"
	toolTypeWebSearch  = "web_search_preview"
)

// Config holds configuration for the Responses API provider.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for compatible APIs.
	BaseURL string

	// Model is the hosted model that runs the search tools
	// (default: gpt-4o-mini).
	Model string

	// Timeout is the per-attempt request timeout (default: 60s).
	Timeout time.Duration
}

// SearchProvider performs hosted searches via the Responses API.
// It is the application's sole network boundary.
type SearchProvider struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	model   string
}

// responsesRequest is the /responses request format.
type responsesRequest struct {
	Model      string       `json:"model"`
	Input      string       `json:"input"`
	Tools      []toolConfig `json:"tools"`
	ToolChoice any          `json:"tool_choice,omitempty"`
}

// toolConfig is a single tool entry. The file search and web search tools
// use disjoint field subsets of the same object.
type toolConfig struct {
	Type              string        `json:"type"`
	VectorStoreIDs    []string      `json:"vector_store_ids,omitempty"`
	SearchContextSize string        `json:"search_context_size,omitempty"`
	UserLocation      *userLocation `json:"user_location,omitempty"`
}

// userLocation is the approximate location hint for the web search tool.
// Empty fields are omitted: the service treats empty strings as
// provided-but-invalid hints.
type userLocation struct {
	Type    string `json:"type"`
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

// toolChoice forces the service to run a specific tool.
type toolChoice struct {
	Type string `json:"type"`
}

// NewSearchProvider creates a new Responses API provider.
// A missing API key is an authentication error: it fails here, before any
// network access, and is never retried.
func NewSearchProvider(cfg Config) (*SearchProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai: %w: no API key configured (set OPENAI_API_KEY)", domain.ErrAuthFailed)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &SearchProvider{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Search performs one hosted search call. On a transient failure (transport
// error, timeout, 429 or 5xx) it retries once with identical parameters;
// a second failure surfaces as domain.ErrTransientCall. Authentication
// rejections surface immediately as domain.ErrAuthFailed without retry.
func (p *SearchProvider) Search(ctx context.Context, req domain.SearchRequest) (json.RawMessage, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransientCall, err)
	}

	tools, choice := buildToolConfigs(req)
	body, err := json.Marshal(responsesRequest{
		Model:      p.model,
		Input:      req.Query,
		Tools:      tools,
		ToolChoice: choice,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		if attempt > 1 {
			logger.Debug("Retrying hosted search call after transient failure: %v", lastErr)
		}

		raw, retryable, err := p.doRequest(ctx, body)
		if err == nil {
			return raw, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err

		// A dead context makes a second attempt pointless.
		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrTransientCall, lastErr)
}

// doRequest performs a single attempt. The boolean reports whether the
// failure is transient and worth one retry.
func (p *SearchProvider) doRequest(ctx context.Context, body []byte) (json.RawMessage, bool, error) {
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/responses",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, true, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return respBody, false, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// The credential itself must never appear in the message.
		return nil, false, fmt.Errorf("openai: %w (status %d): %s",
			domain.ErrAuthFailed, resp.StatusCode, errorMessage(respBody))

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("openai: status %d: %s", resp.StatusCode, errorMessage(respBody))

	default:
		return nil, false, fmt.Errorf("openai: unexpected status %d: %s", resp.StatusCode, errorMessage(respBody))
	}
}

// buildToolConfigs maps a validated request onto the tool configurations
// the mode requires. File mode always forces its tool; web and combined
// modes force the web tool only under the ForceWeb directive, otherwise
// the service decides ("auto").
func buildToolConfigs(req domain.SearchRequest) ([]toolConfig, any) {
	var tools []toolConfig

	if req.Mode.RequiresVectorStore() {
		tools = append(tools, toolConfig{
			Type:           toolTypeFileSearch,
			VectorStoreIDs: []string{req.VectorStoreID},
		})
	}

	if req.Mode.UsesWeb() {
		web := toolConfig{
			Type:              toolTypeWebSearch,
			SearchContextSize: req.ContextSize.String(),
		}
		if req.Location != nil {
			web.UserLocation = &userLocation{
				Type:    "approximate",
				Country: req.Location.Country,
				Region:  req.Location.Region,
				City:    req.Location.City,
			}
		}
		tools = append(tools, web)
	}

	switch {
	case req.Mode == domain.SearchModeFile:
		return tools, toolChoice{Type: toolTypeFileSearch}
	case req.ForceWeb:
		return tools, toolChoice{Type: toolTypeWebSearch}
	default:
		return tools, "auto"
	}
}

// errorMessage pulls the human-readable message out of an API error body,
// falling back to the (truncated) raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		cut := 200
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "..."
	}
	return msg
}

// Close releases resources.
func (p *SearchProvider) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

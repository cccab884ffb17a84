package domain

import "strings"

const unknownDescription = "Unknown"

// SearchMode selects which hosted search capability a request invokes.
type SearchMode string

// Available search modes.
const (
	// SearchModeFile queries a hosted vector store of indexed files.
	SearchModeFile SearchMode = "file"

	// SearchModeWeb queries the live web.
	SearchModeWeb SearchMode = "web"

	// SearchModeCombined enables both capabilities in a single call and
	// lets the hosted service decide how to blend results.
	SearchModeCombined SearchMode = "combined"
)

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeFile, SearchModeWeb, SearchModeCombined:
		return true
	default:
		return false
	}
}

// RequiresVectorStore returns true if this mode needs a vector store id.
func (m SearchMode) RequiresVectorStore() bool {
	return m == SearchModeFile || m == SearchModeCombined
}

// UsesWeb returns true if this mode invokes the web search capability,
// which is where location hints apply.
func (m SearchMode) UsesWeb() bool {
	return m == SearchModeWeb || m == SearchModeCombined
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchModeFile:
		return "File (vector store search)"
	case SearchModeWeb:
		return "Web (live web search)"
	case SearchModeCombined:
		return "Combined (file + web search)"
	default:
		return unknownDescription
	}
}

// AllSearchModes returns every recognised mode, in menu order.
func AllSearchModes() []SearchMode {
	return []SearchMode{SearchModeFile, SearchModeWeb, SearchModeCombined}
}

// ParseSearchMode converts user input to a SearchMode.
// Returns false if the input is not a recognised mode.
func ParseSearchMode(s string) (SearchMode, bool) {
	mode := SearchMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", false
	}
	return mode, true
}

// ContextSize hints how much supporting context the web search capability
// gathers before answering.
type ContextSize string

// Available context sizes.
const (
	ContextSizeLow    ContextSize = "low"
	ContextSizeMedium ContextSize = "medium"
	ContextSizeHigh   ContextSize = "high"
)

// IsValid returns true if the context size is recognised.
func (c ContextSize) IsValid() bool {
	switch c {
	case ContextSizeLow, ContextSizeMedium, ContextSizeHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c ContextSize) String() string {
	return string(c)
}

// NormalizeContextSize maps user input to one of the three levels,
// defaulting to medium on an empty or unrecognised value.
func NormalizeContextSize(s string) ContextSize {
	size := ContextSize(strings.ToLower(strings.TrimSpace(s)))
	if !size.IsValid() {
		return ContextSizeMedium
	}
	return size
}

// Location is an approximate user location hint for web search.
// Only non-empty fields are sent to the hosted service; an entirely
// empty location must be omitted from the request, not sent as empty
// strings, because the service treats empty strings as provided-but-invalid
// location hints.
type Location struct {
	// Country is an ISO-3166 alpha-2 code, e.g. "US".
	Country string

	// Region is a free-form region or state name.
	Region string

	// City is a free-form city name.
	City string
}

// IsEmpty returns true if no location field is set.
func (l Location) IsEmpty() bool {
	return l.Country == "" && l.Region == "" && l.City == ""
}

// SearchRequest is a validated, ready-to-send hosted search request.
// Instances are constructed by the request builder and immutable after
// construction. Each request is independent: no caching, no cross-request
// state.
type SearchRequest struct {
	// Query is the trimmed, non-empty user query.
	Query string

	// Mode is which capability/capabilities to invoke.
	Mode SearchMode

	// ContextSize is the web search context hint.
	ContextSize ContextSize

	// Location is the optional approximate user location.
	// Nil when no location field was supplied.
	Location *Location

	// VectorStoreID identifies the hosted document collection.
	// Required for file and combined modes.
	VectorStoreID string

	// ForceWeb disables the service's heuristic to skip web search.
	ForceWeb bool
}

// CitationKind tags the provenance of a citation.
type CitationKind string

// Citation provenance kinds.
const (
	// CitationKindWeb is a web page reference.
	CitationKindWeb CitationKind = "web"

	// CitationKindFile is a vector store file reference.
	CitationKindFile CitationKind = "file"
)

// Citation is a reference to a source backing part of the answer text.
// Web citations carry Title and URL; file citations carry Filename and Quote.
type Citation struct {
	// Kind is the provenance tag.
	Kind CitationKind

	// Title is the web page title (web citations).
	Title string

	// URL is the web page address (web citations).
	URL string

	// Filename is the source file name or id (file citations).
	Filename string

	// Quote is the cited snippet from the file (file citations).
	Quote string
}

// SearchResult is the uniform result every front end consumes.
type SearchResult struct {
	// Text is the assembled answer. Empty text is a valid result;
	// the caller decides how to render it.
	Text string

	// Citations are in order of first appearance in the raw response,
	// with duplicates removed (first occurrence wins).
	Citations []Citation
}

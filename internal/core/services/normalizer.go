package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
)

// The hosted service returns one of a small family of payload shapes
// depending on which tools ran: an object with an "output" item list
// (file-only, web-only, and combined calls all use it, with different item
// types inside), or a bare item list. The decoder below unifies them; front
// ends never see these types.

// rawItem is one entry of the response "output" list.
type rawItem struct {
	Type    string           `json:"type"`
	Content []rawContentPart `json:"content"`
}

// rawContentPart is one content part of a message item.
type rawContentPart struct {
	Type        string          `json:"type"`
	Text        string          `json:"text"`
	Annotations []rawAnnotation `json:"annotations"`
}

// rawAnnotation is a single citation annotation. The service uses different
// field subsets for web and file citations; unused fields decode to "".
type rawAnnotation struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	FileID   string `json:"file_id"`
	Quote    string `json:"quote"`
}

// Normalize maps a raw hosted-service payload to the uniform SearchResult.
//
// A recognisable payload with no text or no citations is a valid empty
// result. An unrecognisable payload (not JSON, or nothing resembling an
// output item list) returns a domain.MalformedResponseError carrying the
// raw bytes; it is never silently converted to an empty result.
func Normalize(raw json.RawMessage, mode domain.SearchMode) (domain.SearchResult, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return domain.SearchResult{}, &domain.MalformedResponseError{Reason: "empty payload", Raw: raw}
	}

	items, err := decodeItems(trimmed)
	if err != nil {
		return domain.SearchResult{}, &domain.MalformedResponseError{Reason: err.Error(), Raw: raw}
	}

	var texts []string
	var citations []domain.Citation
	seen := make(map[string]bool)

	for _, item := range items {
		if item.Type != "message" {
			// Tool call bookkeeping items (web_search_call,
			// file_search_call) carry no answer content.
			continue
		}
		for _, part := range item.Content {
			if part.Type != "output_text" {
				continue
			}
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
			for _, ann := range part.Annotations {
				citation, ok := classifyAnnotation(ann, mode)
				if !ok {
					continue
				}
				key := citationKey(citation)
				if seen[key] {
					continue
				}
				seen[key] = true
				citations = append(citations, citation)
			}
		}
	}

	return domain.SearchResult{
		Text:      strings.Join(texts, "\n\n"),
		Citations: citations,
	}, nil
}

// decodeItems accepts either the enveloped shape {"output": [...]} or a
// bare item list [...]. Anything else is unrecognisable.
func decodeItems(trimmed []byte) ([]rawItem, error) {
	switch trimmed[0] {
	case '{':
		var envelope struct {
			Output *[]rawItem `json:"output"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, errNotJSON
		}
		if envelope.Output == nil {
			return nil, errNoOutput
		}
		return *envelope.Output, nil
	case '[':
		var items []rawItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, errNotJSON
		}
		return items, nil
	default:
		return nil, errNotJSON
	}
}

// Decoder failure reasons, surfaced inside MalformedResponseError.
var (
	errNotJSON  = reasonError("payload is not a JSON object or item list")
	errNoOutput = reasonError("payload has no output item list")
)

type reasonError string

func (e reasonError) Error() string { return string(e) }

// classifyAnnotation tags an annotation as a web or file citation and
// extracts its display fields. Returns false for annotations that carry
// no usable reference.
func classifyAnnotation(ann rawAnnotation, mode domain.SearchMode) (domain.Citation, bool) {
	if ann.URL != "" {
		return domain.Citation{
			Kind:  domain.CitationKindWeb,
			Title: ann.Title,
			URL:   ann.URL,
		}, true
	}

	filename := ann.Filename
	if filename == "" {
		filename = ann.FileID
	}
	if filename != "" {
		return domain.Citation{
			Kind:     domain.CitationKindFile,
			Filename: filename,
			Quote:    ann.Quote,
		}, true
	}

	// No URL and no file reference. A bare title is still attributable:
	// in file mode it names a document, otherwise a page without an
	// extractable URL.
	if ann.Title != "" {
		if mode == domain.SearchModeFile {
			return domain.Citation{
				Kind:     domain.CitationKindFile,
				Filename: ann.Title,
				Quote:    ann.Quote,
			}, true
		}
		return domain.Citation{
			Kind:  domain.CitationKindWeb,
			Title: ann.Title,
		}, true
	}

	return domain.Citation{}, false
}

// citationKey returns the de-duplication key for a citation.
func citationKey(c domain.Citation) string {
	if c.Kind == domain.CitationKindWeb {
		if c.URL == "" {
			return "web\x00title\x00" + c.Title
		}
		return "web\x00" + webCitationKey(c.URL)
	}
	return "file\x00" + fileCitationKey(c.Filename, c.Quote)
}

// webCitationKey normalizes a URL for equality: two web citations are
// duplicates if their URLs match after trimming trailing slashes.
func webCitationKey(url string) string {
	return strings.TrimRight(url, "/")
}

// fileCitationKey keys a file citation on exact filename and quote.
func fileCitationKey(filename, quote string) string {
	return filename + "\x00" + quote
}

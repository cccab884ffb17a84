package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
)

// responsePayload builds a minimal hosted-service payload with one message
// carrying the given text and annotations.
func responsePayload(text string, annotations []map[string]any) json.RawMessage {
	payload := map[string]any{
		"output": []map[string]any{
			{"type": "web_search_call", "status": "completed"},
			{
				"type": "message",
				"content": []map[string]any{
					{
						"type":        "output_text",
						"text":        text,
						"annotations": annotations,
					},
				},
			},
		},
	}
	raw, _ := json.Marshal(payload)
	return raw
}

func TestNormalize_TextAndWebCitation(t *testing.T) {
	raw := responsePayload("Sunny in Boston.", []map[string]any{
		{"type": "url_citation", "title": "Weather", "url": "https://weather.example/boston"},
	})

	result, err := Normalize(raw, domain.SearchModeWeb)

	require.NoError(t, err)
	assert.Equal(t, "Sunny in Boston.", result.Text)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, domain.CitationKindWeb, result.Citations[0].Kind)
	assert.Equal(t, "Weather", result.Citations[0].Title)
	assert.Equal(t, "https://weather.example/boston", result.Citations[0].URL)
}

func TestNormalize_FileCitation(t *testing.T) {
	raw := responsePayload("From the handbook.", []map[string]any{
		{"type": "file_citation", "filename": "handbook.pdf", "quote": "section 3"},
	})

	result, err := Normalize(raw, domain.SearchModeFile)

	require.NoError(t, err)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, domain.CitationKindFile, result.Citations[0].Kind)
	assert.Equal(t, "handbook.pdf", result.Citations[0].Filename)
	assert.Equal(t, "section 3", result.Citations[0].Quote)
}

func TestNormalize_FileCitationFallsBackToFileID(t *testing.T) {
	raw := responsePayload("text", []map[string]any{
		{"type": "file_citation", "file_id": "file-abc123"},
	})

	result, err := Normalize(raw, domain.SearchModeFile)

	require.NoError(t, err)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, "file-abc123", result.Citations[0].Filename)
}

func TestNormalize_DeduplicatesKeepingFirst(t *testing.T) {
	// [A, A, B] must normalize to [A, B] in that order.
	a := map[string]any{"type": "url_citation", "title": "A", "url": "https://a.example/page"}
	b := map[string]any{"type": "url_citation", "title": "B", "url": "https://b.example/page"}
	raw := responsePayload("text", []map[string]any{a, a, b})

	result, err := Normalize(raw, domain.SearchModeWeb)

	require.NoError(t, err)
	require.Len(t, result.Citations, 2)
	assert.Equal(t, "A", result.Citations[0].Title)
	assert.Equal(t, "B", result.Citations[1].Title)
}

func TestNormalize_TrailingSlashURLsAreDuplicates(t *testing.T) {
	raw := responsePayload("text", []map[string]any{
		{"type": "url_citation", "title": "first", "url": "https://example.com/page/"},
		{"type": "url_citation", "title": "second", "url": "https://example.com/page"},
	})

	result, err := Normalize(raw, domain.SearchModeWeb)

	require.NoError(t, err)
	require.Len(t, result.Citations, 1)
	// First occurrence wins; the later duplicate is dropped, not merged.
	assert.Equal(t, "first", result.Citations[0].Title)
	assert.Equal(t, "https://example.com/page/", result.Citations[0].URL)
}

func TestNormalize_FileCitationsEqualOnFilenameAndQuote(t *testing.T) {
	raw := responsePayload("text", []map[string]any{
		{"type": "file_citation", "filename": "a.txt", "quote": "alpha"},
		{"type": "file_citation", "filename": "a.txt", "quote": "alpha"},
		{"type": "file_citation", "filename": "a.txt", "quote": "beta"},
	})

	result, err := Normalize(raw, domain.SearchModeFile)

	require.NoError(t, err)
	assert.Len(t, result.Citations, 2)
}

func TestNormalize_MixedCitationsPreserveOrderAndKind(t *testing.T) {
	raw := responsePayload("combined answer", []map[string]any{
		{"type": "url_citation", "title": "Boston Weather", "url": "https://weather.example"},
		{"type": "file_citation", "filename": "climate.md", "quote": "historic averages"},
	})

	result, err := Normalize(raw, domain.SearchModeCombined)

	require.NoError(t, err)
	require.Len(t, result.Citations, 2)
	assert.Equal(t, domain.CitationKindWeb, result.Citations[0].Kind)
	assert.Equal(t, domain.CitationKindFile, result.Citations[1].Kind)
}

func TestNormalize_NoCitationsIsValid(t *testing.T) {
	raw := responsePayload("an answer without sources", nil)

	result, err := Normalize(raw, domain.SearchModeWeb)

	require.NoError(t, err)
	assert.Equal(t, "an answer without sources", result.Text)
	assert.Empty(t, result.Citations)
}

func TestNormalize_EmptyOutputIsValidEmpty(t *testing.T) {
	result, err := Normalize(json.RawMessage(`{"output": []}`), domain.SearchModeWeb)

	require.NoError(t, err)
	assert.Empty(t, result.Text)
	assert.Empty(t, result.Citations)
}

func TestNormalize_MessageWithoutTextIsValidEmpty(t *testing.T) {
	raw := json.RawMessage(`{"output": [{"type": "message", "content": []}]}`)

	result, err := Normalize(raw, domain.SearchModeFile)

	require.NoError(t, err)
	assert.Empty(t, result.Text)
	assert.Empty(t, result.Citations)
}

func TestNormalize_BareItemList(t *testing.T) {
	raw := json.RawMessage(`[
		{"type": "message", "content": [
			{"type": "output_text", "text": "listed", "annotations": []}
		]}
	]`)

	result, err := Normalize(raw, domain.SearchModeWeb)

	require.NoError(t, err)
	assert.Equal(t, "listed", result.Text)
}

func TestNormalize_MultipleMessagesConcatenate(t *testing.T) {
	raw := json.RawMessage(`{"output": [
		{"type": "message", "content": [{"type": "output_text", "text": "part one"}]},
		{"type": "message", "content": [{"type": "output_text", "text": "part two"}]}
	]}`)

	result, err := Normalize(raw, domain.SearchModeCombined)

	require.NoError(t, err)
	assert.Equal(t, "part one\n\npart two", result.Text)
}

func TestNormalize_MalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"not json", "<html>rate limited</html>"},
		{"scalar", `"just a string"`},
		{"object without output", `{"id": "resp_1", "status": "completed"}`},
		{"broken json", `{"output": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(json.RawMessage(tt.raw), domain.SearchModeWeb)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)

			var merr *domain.MalformedResponseError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.raw, string(merr.Raw))
		})
	}
}

func TestNormalize_MalformedDistinctFromValidEmpty(t *testing.T) {
	// Recognisable shape with empty fields: valid empty result.
	_, validErr := Normalize(json.RawMessage(`{"output": []}`), domain.SearchModeWeb)
	assert.NoError(t, validErr)

	// Unrecognisable shape: malformed, never an empty result.
	_, malformedErr := Normalize(json.RawMessage(`{"foo": "bar"}`), domain.SearchModeWeb)
	assert.ErrorIs(t, malformedErr, domain.ErrMalformedResponse)
}

func TestNormalize_SkipsUnusableAnnotations(t *testing.T) {
	raw := responsePayload("text", []map[string]any{
		{"type": "url_citation"},
		{"type": "url_citation", "url": "https://kept.example"},
	})

	result, err := Normalize(raw, domain.SearchModeWeb)

	require.NoError(t, err)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, "https://kept.example", result.Citations[0].URL)
}

func TestNormalize_TitleOnlyAnnotationFollowsMode(t *testing.T) {
	ann := []map[string]any{{"type": "file_citation", "title": "quarterly-report"}}

	result, err := Normalize(responsePayload("t", ann), domain.SearchModeFile)
	require.NoError(t, err)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, domain.CitationKindFile, result.Citations[0].Kind)
	assert.Equal(t, "quarterly-report", result.Citations[0].Filename)

	result, err = Normalize(responsePayload("t", ann), domain.SearchModeWeb)
	require.NoError(t, err)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, domain.CitationKindWeb, result.Citations[0].Kind)
}

func TestWebCitationKey(t *testing.T) {
	assert.Equal(t, webCitationKey("https://a.example/p"), webCitationKey("https://a.example/p/"))
	assert.Equal(t, webCitationKey("https://a.example/p"), webCitationKey("https://a.example/p//"))
	assert.NotEqual(t, webCitationKey("https://a.example/p"), webCitationKey("https://a.example/q"))
}

func TestFileCitationKey(t *testing.T) {
	assert.Equal(t, fileCitationKey("a.txt", "x"), fileCitationKey("a.txt", "x"))
	assert.NotEqual(t, fileCitationKey("a.txt", "x"), fileCitationKey("a.txt", "y"))
	assert.NotEqual(t, fileCitationKey("a.txt", "x"), fileCitationKey("b.txt", "x"))
}

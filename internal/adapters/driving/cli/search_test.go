package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
)

func execute(args ...string) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf, err
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, _, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasModeFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("mode")
	require.NotNil(t, flag, "mode flag should exist")
	assert.Equal(t, "m", flag.Shorthand)
}

func TestSearchCmd_PrintsAnswerAndCitations(t *testing.T) {
	_, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf, err := execute("search", "test query")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "The answer.")
	assert.Contains(t, buf.String(), "Sources:")
	assert.Contains(t, buf.String(), "https://example.com/a")
	assert.Contains(t, buf.String(), "1 citation(s)")
}

func TestSearchCmd_PassesFlagsAsParams(t *testing.T) {
	search, _, _, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search",
		"--mode", "combined",
		"--context", "high",
		"--store", "vs_123",
		"--country", "US",
		"--city", "Boston",
		"--force-web",
		"flag query")
	require.NoError(t, err)

	assert.Equal(t, "flag query", search.params.Query)
	assert.Equal(t, "combined", search.params.Mode)
	assert.Equal(t, "high", search.params.ContextSize)
	assert.Equal(t, "vs_123", search.params.VectorStoreID)
	assert.Equal(t, "US", search.params.Country)
	assert.Equal(t, "Boston", search.params.City)
	assert.True(t, search.params.ForceWeb)

	// Reset shared flag state for later tests.
	searchMode, searchContext, searchStore = "", "", ""
	searchCountry, searchCity = "", ""
	searchForceWeb = false
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf, err := execute("search", "--json", "test query")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Text": "The answer."`)

	searchJSON = false
}

func TestSearchCmd_DebugDumpsRawResponse(t *testing.T) {
	_, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf, err := execute("search", "--debug", "test query")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"output": []`)
	assert.Contains(t, buf.String(), "The answer.")

	searchDebug = false
}

func TestSearchCmd_SurfacesServiceError(t *testing.T) {
	search, _, _, cleanup := setupTestServices()
	defer cleanup()
	search.outcome = nil
	search.err = domain.NewValidationError("query", domain.ErrEmptyQuery)

	_, err := execute("search", "   ")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestSearchCmd_NoService(t *testing.T) {
	prev := searchService
	searchService = nil
	defer func() { searchService = prev }()

	_, err := execute("search", "query")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSearchCmd_EmptyResult(t *testing.T) {
	search, _, _, cleanup := setupTestServices()
	defer cleanup()
	search.outcome.Result = domain.SearchResult{}

	buf, err := execute("search", "nothing")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found.")
}

func TestFormatCitation(t *testing.T) {
	web := domain.Citation{Kind: domain.CitationKindWeb, Title: "Docs", URL: "https://example.com"}
	assert.Equal(t, "Docs - https://example.com", formatCitation(web))

	untitled := domain.Citation{Kind: domain.CitationKindWeb, URL: "https://example.com"}
	assert.Equal(t, "https://example.com", formatCitation(untitled))

	file := domain.Citation{Kind: domain.CitationKindFile, Filename: "notes.md", Quote: "a quote"}
	assert.Equal(t, `notes.md: "a quote"`, formatCitation(file))

	bare := domain.Citation{Kind: domain.CitationKindFile, Filename: "notes.md"}
	assert.Equal(t, "notes.md", formatCitation(bare))
}

func TestExecute_PropagatesContext(t *testing.T) {
	search, _, _, cleanup := setupTestServices()
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cobra caches the context on a command after it executes; earlier
	// tests ran searchCmd, so clear it or ExecuteContext cannot
	// propagate a fresh context to it.
	searchCmd.SetContext(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "q"})
	defer rootCmd.SetArgs(nil)

	err := Execute(ctx)

	require.NoError(t, err)
	require.NotNil(t, search.ctx)
	assert.ErrorIs(t, search.ctx.Err(), context.Canceled)
}

func TestSearchCmd_WrapsError(t *testing.T) {
	search, _, _, cleanup := setupTestServices()
	defer cleanup()
	search.outcome = nil
	search.err = errors.New("boom")

	_, err := execute("search", "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

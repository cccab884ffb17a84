package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
)

var (
	searchMode     string
	searchContext  string
	searchStore    string
	searchCountry  string
	searchRegion   string
	searchCity     string
	searchForceWeb bool
	searchJSON     bool
	searchDebug    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a hosted search",
	Long: `Runs a search through the hosted model and prints the answer with
its citations.

Modes:
  file      - Search only your uploaded files (requires a vector store)
  web       - Search only the live web
  combined  - Let the model use both (requires a vector store)

Flags override configured defaults for a single run.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "", "search mode: file, web or combined")
	searchCmd.Flags().StringVar(&searchContext, "context", "", "web search context size: low, medium or high")
	searchCmd.Flags().StringVar(&searchStore, "store", "", "vector store ID for file search")
	searchCmd.Flags().StringVar(&searchCountry, "country", "", "approximate location: country code")
	searchCmd.Flags().StringVar(&searchRegion, "region", "", "approximate location: region")
	searchCmd.Flags().StringVar(&searchCity, "city", "", "approximate location: city")
	searchCmd.Flags().BoolVar(&searchForceWeb, "force-web", false, "force the web search tool to run")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output result as JSON")
	searchCmd.Flags().BoolVar(&searchDebug, "debug", false, "dump the raw provider response before the answer")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	params := driving.SearchParams{
		Query:         args[0],
		Mode:          searchMode,
		ContextSize:   searchContext,
		VectorStoreID: searchStore,
		Country:       searchCountry,
		Region:        searchRegion,
		City:          searchCity,
		ForceWeb:      searchForceWeb,
	}

	outcome, err := searchService.Search(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchDebug {
		outputRawResponse(cmd, outcome.Raw)
	}

	if searchJSON {
		return outputSearchJSON(cmd, outcome)
	}

	return outputSearchText(cmd, outcome)
}

// outputRawResponse dumps the provider payload verbatim, re-indented when
// it is valid JSON.
func outputRawResponse(cmd *cobra.Command, raw json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		cmd.Println(string(raw))
	} else {
		cmd.Println(buf.String())
	}
	cmd.Println()
}

func outputSearchJSON(cmd *cobra.Command, outcome *driving.SearchOutcome) error {
	data, err := json.MarshalIndent(outcome.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, outcome *driving.SearchOutcome) error {
	if outcome.Result.Text == "" && len(outcome.Result.Citations) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println(outcome.Result.Text)

	if len(outcome.Result.Citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, c := range outcome.Result.Citations {
			cmd.Printf("  [%d] %s\n", i+1, formatCitation(c))
		}
	}

	cmd.Println()
	cmd.Printf("(%s search, %d citation(s), %s)\n",
		outcome.Request.Mode, len(outcome.Result.Citations), outcome.Duration.Round(time.Millisecond))

	return nil
}

func formatCitation(c domain.Citation) string {
	switch c.Kind {
	case domain.CitationKindWeb:
		if c.Title != "" {
			return fmt.Sprintf("%s - %s", c.Title, c.URL)
		}
		return c.URL
	case domain.CitationKindFile:
		if c.Quote != "" {
			return fmt.Sprintf("%s: %q", c.Filename, truncateQuote(c.Quote))
		}
		return c.Filename
	default:
		return c.Title
	}
}

func truncateQuote(quote string) string {
	const maxQuote = 80
	if len(quote) <= maxQuote {
		return quote
	}
	return quote[:maxQuote] + "..."
}

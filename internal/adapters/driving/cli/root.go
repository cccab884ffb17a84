// Package cli implements the command-line interface using cobra.
// Commands depend on driving port interfaces, wired in by main.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
	"github.com/seekwell-labs/seekwell-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	searchService   driving.SearchService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "seekwell",
	Short: "Hosted search with file and web grounding",
	Long: `Seekwell runs searches through a hosted model that can ground its
answers in your uploaded files, the live web, or both, and returns
the answer text together with its citations.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetSearchService injects the search service.
func SetSearchService(s driving.SearchService) {
	searchService = s
}

// SetHistoryService injects the history service.
func SetHistoryService(s driving.HistoryService) {
	historyService = s
}

// SetSettingsService injects the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. The context is propagated to commands
// via cmd.Context(), so long-running commands like serve stop when it
// is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seekwell-labs/seekwell-cli/internal/adapters/driving/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local web UI",
	Long: `Starts a local HTTP server with a browser UI for running searches
and browsing history. The server binds to localhost by default and
shuts down cleanly on Ctrl-C.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	server, err := web.NewServer(web.Ports{
		Search:   searchService,
		History:  historyService,
		Settings: settingsService,
	}, serveAddr)
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	cmd.Printf("Serving on http://%s (Ctrl-C to stop)\n", serveAddr)
	return server.Run(cmd.Context())
}

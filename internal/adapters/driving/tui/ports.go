// Package tui provides an interactive terminal user interface for seekwell.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Search runs hosted searches.
	Search driving.SearchService

	// History lists recent searches. Optional.
	History driving.HistoryService

	// Settings provides configured defaults. Optional.
	Settings driving.SettingsService
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/seekwell-labs/seekwell-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure default search parameters and provider options.

Use 'settings set <key> <value>' for a single value or run the
interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by key. An empty value resets the key to its
default. Run 'settings keys' to list recognised keys.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognised setting keys",
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Mode: %s\n", settings.Search.Mode.Description())
	cmd.Printf("  Context size: %s\n", settings.Search.ContextSize)
	if settings.Search.VectorStoreID != "" {
		cmd.Printf("  Vector store: %s\n", settings.Search.VectorStoreID)
	} else {
		cmd.Printf("  Vector store: (not set)\n")
	}
	cmd.Printf("  Force web: %t\n", settings.Search.ForceWeb)
	cmd.Println()

	cmd.Println("[Location]")
	if settings.Search.Location.IsEmpty() {
		cmd.Println("  (not set)")
	} else {
		if settings.Search.Location.Country != "" {
			cmd.Printf("  Country: %s\n", settings.Search.Location.Country)
		}
		if settings.Search.Location.Region != "" {
			cmd.Printf("  Region: %s\n", settings.Search.Location.Region)
		}
		if settings.Search.Location.City != "" {
			cmd.Printf("  City: %s\n", settings.Search.Location.City)
		}
	}
	cmd.Println()

	cmd.Println("[Provider]")
	cmd.Printf("  Model: %s\n", settings.Provider.Model)
	if settings.Provider.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Provider.BaseURL)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cmd.Printf("  API Key: %s (from environment)\n", maskAPIKey(key))
	} else {
		cmd.Printf("  API Key: (not set, export OPENAI_API_KEY)\n")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	value := ""
	if len(args) > 1 {
		value = args[1]
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if value == "" {
		cmd.Printf("Reset %s to default.\n", key)
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Seekwell Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	// Step 1: Search Mode
	cmd.Println("Step 1: Default Search Mode")
	cmd.Println("---------------------------")
	modes := domain.AllSearchModes()
	for i, mode := range modes {
		cmd.Printf("  %d. %s\n", i+1, mode.Description())
	}
	cmd.Print("\nEnter choice [3]: ")
	input := readLine(reader)
	modeIdx := parseChoice(input, len(modes), 3)
	settings.Search.Mode = modes[modeIdx-1]
	cmd.Printf("Default mode: %s\n\n", settings.Search.Mode.Description())

	// Step 2: Vector store for file-grounded modes
	if settings.Search.Mode.RequiresVectorStore() {
		cmd.Println("Step 2: Vector Store")
		cmd.Println("--------------------")
		cmd.Println("File and combined searches need a vector store with your uploaded files.")
		cmd.Printf("Enter vector store ID [%s]: ", settings.Search.VectorStoreID)
		if id := readLine(reader); id != "" {
			settings.Search.VectorStoreID = id
		}
		if settings.Search.VectorStoreID == "" {
			cmd.Println("Warning: no vector store set; file and combined searches will fail.")
		}
		cmd.Println()
	} else {
		cmd.Println("Step 2: Vector Store (skipped)")
		cmd.Println("------------------------------")
		cmd.Println("Not required for web-only search mode.")
		cmd.Println()
	}

	// Step 3: Web search tuning
	if settings.Search.Mode.UsesWeb() {
		cmd.Println("Step 3: Web Search")
		cmd.Println("------------------")
		cmd.Printf("Context size (low/medium/high) [%s]: ", settings.Search.ContextSize)
		if size := readLine(reader); size != "" {
			settings.Search.ContextSize = domain.NormalizeContextSize(size)
		}
		cmd.Printf("Location country (blank to skip) [%s]: ", settings.Search.Location.Country)
		if country := readLine(reader); country != "" {
			settings.Search.Location.Country = country
		}
		cmd.Printf("Location city (blank to skip) [%s]: ", settings.Search.Location.City)
		if city := readLine(reader); city != "" {
			settings.Search.Location.City = city
		}
		cmd.Println()
	}

	// Step 4: API key check (environment only, never stored)
	cmd.Println("Step 4: API Key")
	cmd.Println("---------------")
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cmd.Printf("Using OPENAI_API_KEY from environment: %s\n", maskAPIKey(key))
	} else {
		cmd.Print("Enter API key to verify it reads correctly (not stored): ")
		key := readPassword()
		cmd.Println()
		if key == "" {
			cmd.Println("No key entered. Export OPENAI_API_KEY before searching.")
		} else {
			cmd.Printf("Key reads as %s. Export it as OPENAI_API_KEY; keys are never written to disk.\n", maskAPIKey(key))
		}
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("Settings saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

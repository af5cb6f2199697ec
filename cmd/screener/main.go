// Package main provides the entry point for the candidate screener CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	databaseURL   string
	apiKey        string
	embedProvider string
	verbose       bool
	jsonLogs      bool
	jsonOutput    bool
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Candidate screening and ranking",
	Long: `Screener scores resumes against job descriptions, flags duplicated or templated
submissions, decides on each application and keeps per-job rankings current.

Configuration can be loaded from a JSON file using --config. Command-line flags override config file values.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config.json file")
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	flags.StringVar(&apiKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	flags.StringVar(&embedProvider, "embedding-provider", "", "Embedding provider: gemini or hash")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed progress information")
	flags.BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
	flags.BoolVar(&jsonOutput, "json", false, "Write results as JSON instead of formatted text")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

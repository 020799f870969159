package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/argotchat/argot/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	dbPath     string
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "argot",
	Short: "Chat with an LLM and keep every conversation",
	Long: `A terminal chat client backed by a streaming completion endpoint.

Every conversation is a named session stored in a local SQLite
database. Replies stream from the configured endpoint and land in the
transcript together with your messages, so sessions survive restarts
and can be listed, renamed, cleared, deleted and exported.

Quick Start:
  argot chat                      # Talk in the selected session
  argot ask "is the earth flat?"  # One-shot question
  argot list                      # List all sessions
  argot show <session-id>         # View a transcript
  argot export --format md        # Export sessions as Markdown

Configuration lives in ~/.argot/config.yaml; the API key can also be
set via the ARGOT_API_KEY environment variable or a .env file.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Custom session database path")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Custom config file path")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// openStore opens the session database (honoring --db) and wraps it in
// a store. The caller closes the returned handle.
func openStore() (*internal.Store, *sql.DB, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = internal.DefaultDatabasePath()
		if err != nil {
			return nil, nil, err
		}
	}
	db, err := internal.OpenDatabase(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session database: %w", err)
	}
	return internal.NewStore(db), db, nil
}

// newClient loads the transport config (honoring --config) and builds
// the streaming client.
func newClient() (*internal.Client, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = internal.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return internal.NewClient(cfg)
}

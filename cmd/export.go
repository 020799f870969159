package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/argotchat/argot/internal"
	"github.com/argotchat/argot/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	sessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to file",
	Long: `Export chat sessions to various formats (jsonl, md, yaml, json).

You can export all sessions or a specific session by ID.
Use 'argot list' to see available session IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		var sessions []*internal.Session
		if sessionID != "" {
			sess, err := store.GetSession(sessionID)
			if err != nil {
				return fmt.Errorf("session not found: %s (use 'argot list' to see available sessions)", sessionID)
			}
			sessions = []*internal.Session{sess}
		} else {
			if sessions, err = store.ListSessions(); err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
		}

		// Create exporter
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		// Ensure output directory exists
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		err = internal.ShowProgress(cmd.Context(), fmt.Sprintf("Exporting %d session(s) to %s", len(sessions), outputDir), func() error {
			for _, session := range sessions {
				filename := fmt.Sprintf("session_%s.%s", session.ID, exporter.Extension())
				path := filepath.Join(outputDir, filename)

				file, err := os.Create(path)
				if err != nil {
					internal.LogError("Failed to create file %s: %v", path, err)
					continue
				}

				if err := exporter.Export(session, file); err != nil {
					_ = file.Close()
					internal.LogError("Failed to export session %s: %v", session.ID, err)
					continue
				}

				if err := file.Close(); err != nil {
					internal.LogWarn("Failed to close file %s: %v", path, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) exported to %s", len(sessions), outputDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Export a single session by ID")
}

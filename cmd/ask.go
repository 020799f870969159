package cmd

import (
	"fmt"
	"strings"

	"github.com/argotchat/argot/internal"
	"github.com/spf13/cobra"
)

var askSession string

// askCmd represents the one-shot ask command
var askCmd = &cobra.Command{
	Use:   "ask <text>...",
	Short: "Run a single exchange",
	Long: `Send one message and print the reply. The exchange lands in the
selected session (or the one named with --session), like any chat
turn.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return internal.ErrEmptyMessage
		}

		store, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		client, err := newClient()
		if err != nil {
			return err
		}

		var sess *internal.Session
		if askSession != "" {
			if sess, err = store.GetSession(askSession); err != nil {
				return fmt.Errorf("failed to load session: %w", err)
			}
		} else {
			if sess, err = store.EnsureSelected(); err != nil {
				return fmt.Errorf("failed to resolve session: %w", err)
			}
		}

		coordinator := internal.NewCoordinator(store, client)
		var reply *internal.Message
		err = internal.ShowProgress(cmd.Context(), "Waiting for reply", func() error {
			var exchangeErr error
			reply, exchangeErr = coordinator.Exchange(cmd.Context(), sess.ID, text)
			return exchangeErr
		})
		if err != nil {
			return fmt.Errorf("exchange failed: %w", err)
		}

		printMessage(*reply)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "", "Session id to ask in (defaults to the selected session)")
	rootCmd.AddCommand(askCmd)
}

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/argotchat/argot/internal"
	"github.com/spf13/cobra"
)

var promptStyle = userMessageStyle

// chatCmd represents the interactive chat command
var chatCmd = &cobra.Command{
	Use:   "chat [session-id]",
	Short: "Chat interactively in a session",
	Long: `Start an interactive chat in the given session, or in the currently
selected session when no id is given (a session is created if none
exists). Each line you type is one exchange; the reply is appended to
the transcript. Type /quit (or press Ctrl-D) to leave.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		if len(args) == 1 {
			if sess, err = store.GetSession(args[0]); err != nil {
				return fmt.Errorf("failed to load session: %w", err)
			}
			if err := store.SetSelectedSession(sess.ID); err != nil {
				return fmt.Errorf("failed to select session: %w", err)
			}
		} else {
			if sess, err = store.EnsureSelected(); err != nil {
				return fmt.Errorf("failed to resolve session: %w", err)
			}
		}

		printSessionHeader(sess)
		for _, msg := range sess.Messages {
			printMessage(msg)
		}

		coordinator := internal.NewCoordinator(store, client)
		return chatLoop(cmd, coordinator, sess.ID)
	},
}

func chatLoop(cmd *cobra.Command, coordinator *internal.Coordinator, sessionID string) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(promptStyle.Render(">") + " ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return nil
		}

		var reply *internal.Message
		err := internal.ShowProgress(cmd.Context(), "Waiting for reply", func() error {
			var exchangeErr error
			reply, exchangeErr = coordinator.Exchange(cmd.Context(), sessionID, line)
			return exchangeErr
		})
		if err != nil {
			if errors.Is(err, internal.ErrTurnInFlight) {
				fmt.Println(errorMessageStyle.Render("Previous exchange still running, try again"))
				continue
			}
			return fmt.Errorf("exchange failed: %w", err)
		}
		printMessage(*reply)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

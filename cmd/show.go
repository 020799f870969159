package cmd

import (
	"fmt"
	"time"

	"github.com/argotchat/argot/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	showLimit int
)

var (
	// Styles for transcript rendering
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific session",
	Long:  `Display the transcript of a chat session.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		sess, err := store.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		printSessionHeader(sess)

		messages := sess.Messages
		if showLimit > 0 && len(messages) > showLimit {
			fmt.Println(sessionMetaStyle.Render(fmt.Sprintf("(showing last %d of %d messages)", showLimit, len(messages))))
			messages = messages[len(messages)-showLimit:]
		}

		for _, msg := range messages {
			printMessage(msg)
		}
		return nil
	},
}

func printSessionHeader(sess *internal.Session) {
	fmt.Println(sessionHeaderStyle.Render(sess.Title))
	meta := fmt.Sprintf("%s · %d message(s) · created %s",
		sess.ID, sess.MessageCount(), sess.CreatedAt.Local().Format(time.RFC822))
	fmt.Println(sessionMetaStyle.Render(meta))
}

func printMessage(msg internal.Message) {
	label := "You"
	style := userMessageStyle
	switch {
	case msg.IsError:
		label = "Error"
		style = errorMessageStyle
	case msg.Role == internal.RoleAssistant:
		label = "Assistant"
		style = assistantMessageStyle
	}

	ts := timestampStyle.Render(msg.CreatedAt.Local().Format("15:04:05"))
	fmt.Println(style.Render(label) + " " + ts)
	fmt.Println(messageContentStyle.Render(msg.Content))
}

func init() {
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Show only the last N messages")
	rootCmd.AddCommand(showCmd)
}

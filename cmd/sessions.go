package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var newSelect bool

var newCmd = &cobra.Command{
	Use:   "new [title]...",
	Short: "Create a new session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		sess, err := store.CreateSession(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		if newSelect {
			if err := store.SetSelectedSession(sess.ID); err != nil {
				return fmt.Errorf("failed to select session: %w", err)
			}
		}

		fmt.Println(titleStyle.Render(sess.Title) + " " + idStyle.Render(sess.ID))
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <session-id> <title>...",
	Short: "Rename a session",
	Long: `Rename a session. A blank title is rejected and the existing title
is kept.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		id := args[0]
		title := strings.Join(args[1:], " ")
		if err := store.RenameSession(id, title); err != nil {
			return fmt.Errorf("failed to rename session: %w", err)
		}

		sess, err := store.GetSession(id)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		fmt.Println(titleStyle.Render(sess.Title) + " " + idStyle.Render(sess.ID))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and all its messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.DeleteSession(args[0]); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		fmt.Println("Deleted", idStyle.Render(args[0]))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <session-id>",
	Short: "Remove all messages from a session",
	Long:  `Remove every message from a session while keeping the session itself.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.ClearMessages(args[0]); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		fmt.Println("Cleared", idStyle.Render(args[0]))
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <session-id>",
	Short: "Make a session the default for chat and ask",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.SetSelectedSession(args[0]); err != nil {
			return fmt.Errorf("failed to select session: %w", err)
		}
		fmt.Println("Selected", idStyle.Render(args[0]))
		return nil
	},
}

func init() {
	newCmd.Flags().BoolVar(&newSelect, "select", true, "Select the new session")
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(selectCmd)
}

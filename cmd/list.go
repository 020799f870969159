package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/argotchat/argot/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available sessions",
	Long:  `List all chat sessions, most recent activity first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		sessions, err := store.ListSessions()
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		selected, err := store.SelectedSession()
		if err != nil {
			return fmt.Errorf("failed to read selection: %w", err)
		}

		displaySessions(sessions, selected)
		return nil
	},
}

func displaySessions(sessions []*internal.Session, selected string) {
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("No sessions found — start one with `argot new`"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(sessions)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns with better spacing
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Last activity")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, sess := range sessions {
		title := sess.Title

		// Truncate long titles but keep them readable
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		if sess.ID == selected {
			title = selectedStyle.Render("* " + title)
		} else {
			title = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(title)
		}

		msgCount := countStyle.Render(strconv.Itoa(sess.MessageCount()))
		activity := dateStyle.Render(humanTime(sess.LastActivity()))

		_, _ = fmt.Fprintln(w, idStyle.Render(sess.ID)+"\t"+title+"\t"+msgCount+"\t"+activity+"\t")
	}

	_ = w.Flush()
}

// humanTime formats a timestamp relative to now, the way the session
// list reads best.
func humanTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	t = t.Local()
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}

package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/argotchat/argot/internal"
)

// MarkdownExporter renders a session as a readable Markdown document:
// a metadata header, then one block per message separated by rules.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", session.Title)
	fmt.Fprintf(&b, "**Session:** %s  \n", session.ID)
	fmt.Fprintf(&b, "**Created:** %s  \n", session.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "**Messages:** %d\n\n", len(session.Messages))
	b.WriteString("---\n\n")

	for i, msg := range session.Messages {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		label := string(msg.Role)
		if msg.IsError {
			label += " (error)"
		}
		fmt.Fprintf(&b, "**%s:** (%s)\n\n%s\n\n",
			label, msg.CreatedAt.Format(time.RFC3339), escapeMarkdown(msg.Content))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// escapeMarkdown neutralizes emphasis markers outside fenced code
// blocks so message content renders literally.
func escapeMarkdown(text string) string {
	var (
		out     []string
		inFence bool
	)
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "```"):
			inFence = !inFence
		case !inFence:
			line = strings.ReplaceAll(line, "**", `\*\*`)
			line = strings.ReplaceAll(line, "__", `\_\_`)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}

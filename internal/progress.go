package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates on stderr until stopped. Only one line is ever
// occupied; the final status overwrites the last frame.
type spinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
}

func startSpinner(message string) *spinner {
	s := &spinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", progressStyle.Render(frame), s.message)
			}
		}
	}()
	return s
}

func (s *spinner) finish(ok bool) {
	close(s.stop)
	<-s.done
	mark := successStyle.Render("✓")
	if !ok {
		mark = errStyle.Render("✗")
	}
	fmt.Fprintf(os.Stderr, "\r%s %s\n", mark, s.message)
}

// ShowProgress runs fn with a spinner and message on stderr. Outside a
// TTY it just logs the message and runs fn.
func ShowProgress(ctx context.Context, message string, fn func() error) error {
	if !isTerminal(os.Stderr) {
		LogInfo("%s", message)
		return fn()
	}

	s := startSpinner(message)
	result := make(chan error, 1)
	go func() { result <- fn() }()

	select {
	case err := <-result:
		s.finish(err == nil)
		return err
	case <-ctx.Done():
		s.finish(false)
		return ctx.Err()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// PrintSuccess prints a check-marked message to stdout.
func PrintSuccess(message string) {
	if isTerminal(os.Stdout) {
		fmt.Printf("%s %s\n", successStyle.Render("✓"), message)
		return
	}
	fmt.Println(message)
}

// PrintError prints a cross-marked message to stderr.
func PrintError(message string) {
	if isTerminal(os.Stderr) {
		fmt.Fprintf(os.Stderr, "%s %s\n", errStyle.Render("✗"), message)
		return
	}
	fmt.Fprintln(os.Stderr, message)
}

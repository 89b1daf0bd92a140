// Package display formats assistant output for the terminal. Answers
// go to stdout; errors, warnings, and the spinner go to stderr so
// piped output stays clean.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// renderer is set by InitRenderer when markdown output is requested.
var renderer *glamour.TermRenderer

// InitRenderer prepares the markdown renderer. ShowContentRendered
// falls back to plain output until this has been called.
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize markdown renderer: %w", err)
	}
	renderer = r
	return nil
}

// renderMarkdown renders content for the terminal. Returns the content
// unchanged when the renderer is unavailable or rendering fails.
func renderMarkdown(content string) string {
	if renderer == nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// ShowContent prints content to stdout as-is.
func ShowContent(content string) {
	fmt.Println(content)
}

// ShowContentRendered prints content to stdout through the markdown
// renderer.
func ShowContentRendered(content string) {
	rendered := renderMarkdown(content)
	if rendered == content {
		fmt.Println(content)
		return
	}
	fmt.Print(rendered)
}

// ShowError prints an error message to stderr.
func ShowError(message string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", message)
}

// ShowWarning prints a warning message to stderr.
func ShowWarning(message string) {
	fmt.Fprintf(os.Stderr, "⚠ %s\n", message)
}

package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRenderer returns a function that renders markdown using glamour.
// When styled is false, or the renderer cannot be built, markdown is returned unchanged.
func NewRenderer(styled bool) func(string) (string, error) {
	plain := func(markdown string) (string, error) {
		return markdown, nil
	}
	if !styled {
		return plain
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return plain
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

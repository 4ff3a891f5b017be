package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// formatColors cycles through the banner palette.
var formatColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// FormatList writes one output format per line, coloured for the terminal
// profile of w. Redirected output carries no escape codes.
func FormatList(w io.Writer, formats []string, describe func(string) string) error {
	out := termenv.NewOutput(w)
	for i, f := range formats {
		name := out.String(fmt.Sprintf("%-6s", f)).Foreground(out.Color(formatColors[i%len(formatColors)])).Bold()
		line := name.String()
		if describe != nil {
			if d := describe(f); d != "" {
				line += "  " + d
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// PrintBanner outputs the espalier banner.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []string{
		"                       _ _",
		"  ___  ___ _ __   __ _| (_) ___ _ __",
		" / _ \\/ __| '_ \\ / _` | | |/ _ \\ '__|",
		"|  __/\\__ \\ |_) | (_| | | |  __/ |",
		" \\___||___/ .__/ \\__,_|_|_|\\___|_|",
		"          |_|",
	}

	fmt.Fprintln(w)
	for i, l := range lines {
		fmt.Fprintln(w, out.String(l).Foreground(out.Color(formatColors[i%len(formatColors)])))
	}
	fmt.Fprintln(w)
}

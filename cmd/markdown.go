/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// markdown.go renders markdown output for terminals.

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// PrintMarkdown writes markdown to the output writer, rendered with glamour
// when stdout is a terminal and raw otherwise, so pipes and LLM clients get
// plain markdown.
func PrintMarkdown(content string) {
	if out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, err := glamour.Render(content, "dark")
		if err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprint(out, content)
}

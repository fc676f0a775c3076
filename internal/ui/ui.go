// Package ui owns the interactive text surface: lipgloss styles, the
// quiet-aware printer, and the control legend shown for '?'.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Core styles for interactive output
var (
	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("75"))

	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	Errored = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	Legend = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	Shortcut = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))
)

// Printer writes user-facing interaction text. Say respects the quiet flag,
// Must is always shown (prompts, errors, anything the user has to see to keep
// operating the loop).
type Printer struct {
	out   io.Writer
	quiet bool
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, quiet bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out, quiet: quiet}
}

// Say prints a line unless quiet mode suppresses it.
func (p *Printer) Say(format string, args ...interface{}) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Must prints a line regardless of the quiet flag.
func (p *Printer) Must(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Inline prints without a trailing newline, for the "path -> " prompt that
// the decision echo completes.
func (p *Printer) Inline(s string) {
	fmt.Fprint(p.out, s)
}

// Out exposes the underlying writer for components that render directly.
func (p *Printer) Out() io.Writer {
	return p.out
}

// ShortcutLister is what the legend needs from the shortcut store.
type ShortcutLister interface {
	Keys() []string
	Resolve(key string) (string, bool)
}

// ShowControls prints the current shortcuts and the control legend. Shown for
// '?' and before the first prompt, so it ignores the quiet flag for the parts
// the user cannot operate without.
func (p *Printer) ShowControls(store ShortcutLister, historyPath string, historyEnabled bool) {
	p.Must("Type one of the following shortcut keys to move a file to that location:")
	for _, key := range store.Keys() {
		dir, _ := store.Resolve(key)
		p.Say("- %s: %s", Shortcut.Render(key), dir)
	}
	p.Must("")
	p.Say("Other keys:")
	p.Must(Legend.Render("Left:  Go back to the previous file"))
	p.Must(Legend.Render("Right: Skip current file"))
	p.Must(Legend.Render("Up:    Add new shortcut(s)"))
	if historyEnabled {
		p.Must(Legend.Render(fmt.Sprintf("Down:  Save file's current location to %s", historyPath)))
	}
	p.Must(Legend.Render("Enter: Preview the file"))
	p.Must(Legend.Render("-:     Delete the file"))
	p.Must(Legend.Render("?:     This text"))
	p.Say("For more information, use --help")
}

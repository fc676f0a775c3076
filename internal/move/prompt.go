package move

import (
	"strings"

	"declutter/internal/ui"
)

// LineReader supplies one line of input per call, used by the interactive
// collision dialog.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// PromptResolver implements the collision sub-dialog against the terminal:
// ask whether to rename, then read the replacement filename.
type PromptResolver struct {
	lines LineReader
	out   *ui.Printer
}

// NewPromptResolver creates a resolver reading answers from lines.
func NewPromptResolver(lines LineReader, out *ui.Printer) *PromptResolver {
	return &PromptResolver{lines: lines, out: out}
}

// Rename asks the user to rename the colliding target. Anything not starting
// with "y" declines, as does end of input.
func (p *PromptResolver) Rename(target string) (string, bool) {
	answer, err := p.lines.ReadLine(ui.Warning.Render(target+" exists!") + " Rename? (y/n) ")
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
		return "", false
	}

	name, err := p.lines.ReadLine("Rename: ")
	if err != nil || strings.TrimSpace(name) == "" {
		return "", false
	}
	return strings.TrimSpace(name), true
}

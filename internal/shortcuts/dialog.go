package shortcuts

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"declutter/internal/errors"
	"declutter/internal/ui"
)

const dialogPrompt = "Enter a shortcut and path (empty line when done): "

// LineReader supplies one line of cooked-mode input per call. io.EOF ends
// the dialog.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ParseEntry parses a dialog line of the form `<key> <path>`. The key is the
// first whitespace-delimited token; everything after the following whitespace
// run is the path, so directories with spaces stay intact.
func ParseEntry(line string) (key, path string, err error) {
	trimmed := strings.TrimSpace(line)
	cut := strings.IndexFunc(trimmed, unicode.IsSpace)
	if cut < 0 {
		return "", "", errors.NewInputError("expected a key and a directory", trimmed, errors.MalformedInput)
	}
	key = trimmed[:cut]
	path = strings.TrimSpace(trimmed[cut:])
	return key, expandTilde(path), nil
}

// RunDialog reads shortcut entries until an empty line or end of input.
// Each valid entry is merged into the live store immediately, so a shortcut
// added mid-session can be used as soon as the dialog closes or, for later
// entries in the same dialog, validated against the already-updated store.
// Invalid entries report a category-matched message and re-prompt; they never
// abort the dialog. Returns the number of bindings added.
func RunDialog(lines LineReader, store *Store, out *ui.Printer) int {
	added := 0
	for {
		line, err := lines.ReadLine(dialogPrompt)
		if err != nil {
			// End of input (Ctrl-D) finishes the dialog
			if err == io.EOF {
				return added
			}
			out.Must("%s", ui.Errored.Render("input error: "+err.Error()))
			return added
		}
		if strings.TrimSpace(line) == "" {
			return added
		}

		key, path, err := ParseEntry(line)
		if err == nil {
			err = store.Add(key, path)
		}
		if err == nil {
			added++
			continue
		}

		switch errors.KindOf(err) {
		case errors.MalformedInput:
			out.Must("Please enter a single character followed by a directory, eg:")
			out.Must("d ~/Downloads")
		case errors.InvalidKeyLength:
			out.Must("Shortcut keys must be a single character")
		case errors.ReservedKey:
			out.Must("That key is reserved, choose another")
		case errors.NotADirectory:
			out.Must("The path entered is not a directory")
		case errors.PermissionDenied:
			out.Must("You do not have sufficient permissions to move files there")
		default:
			out.Must("%s", ui.Errored.Render(err.Error()))
		}
	}
}

func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

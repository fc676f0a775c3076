// Package term turns raw terminal input into logical key events. One call,
// one keypress: printable runes come back as themselves, arrow keys and
// delete are decoded from their escape sequences, Ctrl-C becomes a cancel
// event. A cooked-mode line reader over the same source serves the dialogs.
package term

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// EventKind classifies a logical key event.
type EventKind int

// Key event kinds
const (
	KindRune EventKind = iota
	KindUp
	KindDown
	KindLeft
	KindRight
	KindEnter
	KindDelete
	KindCancel
	KindIgnore
)

// Key is one logical keypress.
type Key struct {
	Kind EventKind
	Rune rune
}

// Reader reads logical keys and dialog lines from a single input source.
// When the source is a real terminal, ReadKey flips it into raw mode for the
// duration of the read so a single keypress arrives without a newline.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewReader creates a reader over in, echoing prompts to out. Raw mode is
// only used when in is a terminal; piped input (and tests) read the same
// byte protocol without touching terminal state.
func NewReader(in io.Reader, out io.Writer) *Reader {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Reader{
		in:  bufio.NewReader(in),
		out: out,
		fd:  fd,
	}
}

// ReadKey blocks for one logical keypress.
//
// Decoding follows the usual VT sequences: a lone byte is a literal key,
// ESC '[' A/B/C/D are the arrows, ESC '[' 3 '~' is delete. Ctrl-C maps to
// KindCancel rather than killing the process, so the session can end
// cleanly and still save what was resolved.
func (r *Reader) ReadKey() (Key, error) {
	if r.fd >= 0 {
		oldState, err := term.MakeRaw(r.fd)
		if err != nil {
			return Key{Kind: KindIgnore}, err
		}
		defer term.Restore(r.fd, oldState)
	}
	return r.decodeKey()
}

func (r *Reader) decodeKey() (Key, error) {
	c, _, err := r.in.ReadRune()
	if err != nil {
		return Key{Kind: KindIgnore}, err
	}

	switch c {
	case 0x03: // Ctrl-C
		return Key{Kind: KindCancel}, nil
	case '\r', '\n':
		return Key{Kind: KindEnter}, nil
	case 0x1b:
		return r.decodeEscape()
	}
	return Key{Kind: KindRune, Rune: c}, nil
}

func (r *Reader) decodeEscape() (Key, error) {
	b, err := r.in.ReadByte()
	if err != nil {
		// A bare ESC at end of input is nothing actionable
		return Key{Kind: KindIgnore}, nil
	}
	if b != '[' {
		r.in.UnreadByte()
		return Key{Kind: KindIgnore}, nil
	}

	b, err = r.in.ReadByte()
	if err != nil {
		return Key{Kind: KindIgnore}, nil
	}
	switch b {
	case 'A':
		return Key{Kind: KindUp}, nil
	case 'B':
		return Key{Kind: KindDown}, nil
	case 'C':
		return Key{Kind: KindRight}, nil
	case 'D':
		return Key{Kind: KindLeft}, nil
	case '3':
		if tilde, err := r.in.ReadByte(); err == nil && tilde == '~' {
			return Key{Kind: KindDelete}, nil
		}
		return Key{Kind: KindIgnore}, nil
	}
	return Key{Kind: KindIgnore}, nil
}

// ReadLine prints prompt and reads one cooked-mode line. Returns io.EOF when
// input is exhausted before any content arrives.
func (r *Reader) ReadLine(prompt string) (string, error) {
	if prompt != "" && r.out != nil {
		io.WriteString(r.out, prompt)
	}

	line, err := r.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

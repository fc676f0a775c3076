// Package preview shows a file's content without consuming the filing
// decision. On a terminal the content is paged in a viewport; piped output
// gets a plain head-dump. Binary files get a summary instead of a dump.
package preview

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// previewLimit bounds how much of a file is read for display.
const previewLimit = 256 * 1024

// plainLines is how many lines the non-TTY fallback dumps.
const plainLines = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type model struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.viewport.View(), m.footerView())
}

func (m model) headerView() string {
	return titleStyle.Render(m.title)
}

func (m model) footerView() string {
	return footerStyle.Render(fmt.Sprintf("%3.f%% · q to close", m.viewport.ScrollPercent()*100))
}

// Show previews the file at path, writing to out. Returns once the user
// closes the pager (or immediately for the non-TTY fallback).
func Show(path string, out io.Writer) error {
	content, err := load(path)
	if err != nil {
		return err
	}

	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		m := model{title: path, content: content}
		p := tea.NewProgram(m, tea.WithOutput(f), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	// Piped output: dump the head and get out of the way
	lines := strings.SplitN(content, "\n", plainLines+1)
	if len(lines) > plainLines {
		lines = append(lines[:plainLines], "...")
	}
	fmt.Fprintln(out, strings.Join(lines, "\n"))
	return nil
}

// load reads up to previewLimit bytes and renders binary or directory
// inputs as a summary line rather than raw bytes.
func load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s: directory, %d entries\n", path, len(entries))
		for _, entry := range entries {
			fmt.Fprintf(&b, "  %s\n", entry.Name())
		}
		return b.String(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, previewLimit)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	buf = buf[:n]

	if isBinary(buf) {
		return fmt.Sprintf("%s: binary file, %d bytes", path, info.Size()), nil
	}
	content := string(buf)
	if int64(n) < info.Size() {
		content += fmt.Sprintf("\n... (%d more bytes)", info.Size()-int64(n))
	}
	return content, nil
}

// isBinary sniffs for a NUL byte in the first 512 bytes.
func isBinary(data []byte) bool {
	if len(data) > 512 {
		data = data[:512]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// Package nav owns the interactive filing loop: the cursor over the working
// path list, the interpretation of key events into actions, and the
// bookkeeping that reconciles in-session decisions with loaded history.
package nav

import (
	"io"

	"declutter/internal/errors"
	"declutter/internal/history"
	"declutter/internal/log"
	"declutter/internal/move"
	"declutter/internal/shortcuts"
	"declutter/internal/term"
	"declutter/internal/ui"
)

// Entry is one path in the working list: the current location of the file
// and whether that location has been accepted as final. The path value is
// rewritten in place when the file moves, so backward navigation re-displays
// a moved file at its new location.
type Entry struct {
	Path     string
	Resolved bool
}

// KeyReader supplies one logical keypress per call.
type KeyReader interface {
	ReadKey() (term.Key, error)
}

// Mover is the filesystem side of filing decisions.
type Mover interface {
	Relocate(path, destDir string, resolver move.CollisionResolver) move.Outcome
	Delete(path string) error
}

// Config wires an Engine. Everything is passed explicitly; the engine keeps
// no ambient state.
type Config struct {
	Store       *shortcuts.Store
	History     *history.Record // loaded record; consulted for silent skips
	UseHistory  bool
	HistoryPath string
	Keys        KeyReader
	Mover       Mover
	Resolver    move.CollisionResolver
	Preview     func(path string) error
	Dialog      func() int // the add-shortcuts pause; returns bindings added
	Out         *ui.Printer
}

// Engine drives one session over an ordered list of paths.
type Engine struct {
	cfg      Config
	entries  []*Entry
	cursor   int
	finished bool
	session  *history.Record // accumulator of newly resolved paths

	handlers map[Action]func(key term.Key)
}

// New creates an engine over paths. The action dispatch table is resolved
// once here; keys are interpreted against it on every iteration.
func New(paths []string, cfg Config) *Engine {
	entries := make([]*Entry, len(paths))
	for i, p := range paths {
		entries[i] = &Entry{Path: p}
	}
	e := &Engine{
		cfg:     cfg,
		entries: entries,
		session: history.NewRecord(),
	}
	e.handlers = map[Action]func(key term.Key){
		ActionMove:         e.doMove,
		ActionKeep:         e.doKeep,
		ActionSkip:         e.doSkip,
		ActionBack:         e.doBack,
		ActionDelete:       e.doDelete,
		ActionAddShortcuts: e.doAddShortcuts,
		ActionPreview:      e.doPreview,
		ActionHelp:         e.doHelp,
		ActionCancel:       e.doCancel,
	}
	return e
}

// Run walks the path list to completion (cursor past the end) or early
// cancellation. Nothing inside the loop is fatal; per-file problems are
// reported and the traversal continues.
func (e *Engine) Run() error {
	for !e.finished && e.cursor < len(e.entries) {
		if e.cursor < 0 {
			e.cursor = 0
		}
		entry := e.entries[e.cursor]

		// Paths the loaded history already resolved are skipped without a
		// prompt; that is how repeat runs pass over organized files. Only
		// the loaded record is consulted, so a file moved earlier in this
		// session still re-prompts when navigated back to.
		if e.cfg.UseHistory && e.cfg.History.Resolved(entry.Path) {
			log.WithField("path", entry.Path).Debug("already organized, skipping")
			e.cursor++
			continue
		}

		e.cfg.Out.Inline(ui.Prompt.Render(entry.Path) + " -> ")
		e.step(entry)
	}
	return nil
}

// step blocks for key events until one of them amounts to a decision (or an
// explicit re-prompt). Unrecognized keys are swallowed without disturbing
// the prompt line.
func (e *Engine) step(entry *Entry) {
	for {
		key, err := e.cfg.Keys.ReadKey()
		if err != nil {
			if err != io.EOF {
				e.cfg.Out.Must("%s", ui.Errored.Render("input error: "+err.Error()))
			}
			e.finished = true
			return
		}

		action := e.actionFor(key)
		if action == ActionIgnore {
			continue
		}
		e.handlers[action](key)
		return
	}
}

// actionFor maps a key event to an action tag. Printable runes are either
// the help key, the delete key, or a shortcut known to the store; anything
// else is ignored.
func (e *Engine) actionFor(key term.Key) Action {
	switch key.Kind {
	case term.KindUp:
		return ActionAddShortcuts
	case term.KindDown:
		return ActionKeep
	case term.KindRight:
		return ActionSkip
	case term.KindLeft:
		return ActionBack
	case term.KindEnter:
		return ActionPreview
	case term.KindDelete:
		return ActionDelete
	case term.KindCancel:
		return ActionCancel
	case term.KindRune:
		switch key.Rune {
		case '?':
			return ActionHelp
		case '-':
			return ActionDelete
		}
		if _, ok := e.cfg.Store.Resolve(string(key.Rune)); ok {
			return ActionMove
		}
	}
	return ActionIgnore
}

func (e *Engine) doMove(key term.Key) {
	entry := e.entries[e.cursor]
	destDir, _ := e.cfg.Store.Resolve(string(key.Rune))

	outcome := e.cfg.Mover.Relocate(entry.Path, destDir, e.cfg.Resolver)
	switch outcome.Status {
	case move.Moved:
		e.cfg.Out.Say("%s", ui.Success.Render(outcome.NewPath))
		entry.Path = outcome.NewPath
		entry.Resolved = true
		e.session.AddPath(outcome.NewPath)
		e.cursor++
	case move.Aborted:
		// Explicit skip of the rename dialog: stay on this file so the
		// user can pick a different destination
		e.cfg.Out.Must("move aborted")
	case move.Failed:
		e.cfg.Out.Must("%s", ui.Errored.Render(outcome.Err.Error()))
		if errors.IsPermissionDenied(outcome.Err) {
			e.cfg.Out.Must("Correct the permissions and re-run, or leave the file where it is")
		}
		e.cursor++
	}
}

func (e *Engine) doKeep(term.Key) {
	entry := e.entries[e.cursor]
	e.cfg.Out.Must("%s", entry.Path)
	entry.Resolved = true
	e.session.AddPath(entry.Path)
	e.cursor++
}

func (e *Engine) doSkip(term.Key) {
	e.cfg.Out.Must("skipping...")
	e.cursor++
}

func (e *Engine) doBack(term.Key) {
	e.cfg.Out.Must("going back...")
	e.cursor--
}

func (e *Engine) doDelete(term.Key) {
	entry := e.entries[e.cursor]
	if err := e.cfg.Mover.Delete(entry.Path); err != nil {
		e.cfg.Out.Must("%s", ui.Errored.Render(err.Error()))
		return
	}
	e.cfg.Out.Must("deleted %s", entry.Path)
	// Removing the entry leaves the cursor pointing at the next item
	e.entries = append(e.entries[:e.cursor], e.entries[e.cursor+1:]...)
}

func (e *Engine) doAddShortcuts(term.Key) {
	e.cfg.Out.Must("...")
	added := e.cfg.Dialog()
	log.Debug("shortcut dialog added %d binding(s)", added)
	// Same cursor position; the pause is not a file decision
}

func (e *Engine) doPreview(term.Key) {
	entry := e.entries[e.cursor]
	e.cfg.Out.Must("...")
	if err := e.cfg.Preview(entry.Path); err != nil {
		e.cfg.Out.Must("%s", ui.Errored.Render("cannot preview: "+err.Error()))
	}
}

func (e *Engine) doHelp(term.Key) {
	e.cfg.Out.Must("...")
	e.cfg.Out.ShowControls(e.cfg.Store, e.cfg.HistoryPath, e.cfg.UseHistory)
}

func (e *Engine) doCancel(term.Key) {
	e.cfg.Out.Must("cancelled")
	e.finished = true
}

// Session returns the record of paths newly resolved during this run.
func (e *Engine) Session() *history.Record {
	return e.session
}

// NewlyResolved reports how many paths this run resolved.
func (e *Engine) NewlyResolved() int {
	return len(e.session.SavedPaths)
}

// Entries exposes the working list, for callers and tests inspecting the
// final state.
func (e *Engine) Entries() []Entry {
	out := make([]Entry, len(e.entries))
	for i, entry := range e.entries {
		out[i] = *entry
	}
	return out
}

// Cursor returns the current cursor position.
func (e *Engine) Cursor() int {
	return e.cursor
}

package nav

// Action is the closed set of things a keypress can mean inside the filing
// loop. Keys resolve to actions through the dispatch table built at engine
// construction; there is no reflective lookup.
type Action int

// Actions
const (
	ActionIgnore Action = iota
	ActionMove
	ActionKeep
	ActionSkip
	ActionBack
	ActionDelete
	ActionAddShortcuts
	ActionPreview
	ActionHelp
	ActionCancel
)

// String returns the action name, for logs.
func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionKeep:
		return "keep"
	case ActionSkip:
		return "skip"
	case ActionBack:
		return "back"
	case ActionDelete:
		return "delete"
	case ActionAddShortcuts:
		return "add-shortcuts"
	case ActionPreview:
		return "preview"
	case ActionHelp:
		return "help"
	case ActionCancel:
		return "cancel"
	}
	return "ignore"
}

package watcher

// ActionKind tells which variant an Action holds
type ActionKind int

const (
	// KindNone is the zero Action: the matched path itself is the result
	KindNone ActionKind = iota
	// KindNoArg actions are called without arguments
	KindNoArg
	// KindWithMatch actions are called with the Match
	KindWithMatch
)

// String returns the kind name
func (k ActionKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNoArg:
		return "no-arg"
	case KindWithMatch:
		return "with-match"
	default:
		return "unknown"
	}
}

// Action is the transformation of a watcher. Its shape is fixed when it is
// built; the zero value is NoAction.
type Action struct {
	kind      ActionKind
	noArg     func() (interface{}, error)
	withMatch func(Match) (interface{}, error)
	label     string
}

// NoAction is the absent action
var NoAction = Action{}

// NoArg builds an action that ignores the match
func NoArg(fn func() (interface{}, error)) Action {
	if fn == nil {
		return NoAction
	}
	return Action{kind: KindNoArg, noArg: fn}
}

// WithMatch builds an action that receives the match and its capture groups
func WithMatch(fn func(Match) (interface{}, error)) Action {
	if fn == nil {
		return NoAction
	}
	return Action{kind: KindWithMatch, withMatch: fn}
}

// Labeled returns a copy of the action carrying a human readable label,
// used when listing watchers
func (a Action) Labeled(label string) Action {
	a.label = label
	return a
}

// Kind returns the variant
func (a Action) Kind() ActionKind {
	return a.kind
}

// IsZero reports whether a is NoAction
func (a Action) IsZero() bool {
	return a.kind == KindNone
}

// String returns the label, or the kind when the action has none
func (a Action) String() string {
	if a.label != "" {
		return a.label
	}
	if a.kind == KindNone {
		return ""
	}
	return a.kind.String()
}

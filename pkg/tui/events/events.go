package events

import (
	"fmt"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// Describer is implemented by messages that know how to render themselves for
// the debug log.
type Describer interface {
	Describe() string
}

// Describe renders msg for logs, falling back to its Go type.
func Describe(msg any) string {
	if d, ok := msg.(Describer); ok {
		return fmt.Sprintf("%T %s", msg, d.Describe())
	}
	return fmt.Sprintf("%T", msg)
}

// UpdateType classifies how much of the board a model notification touches.
type UpdateType int

const (
	// Patch means exactly one row changed without affecting order.
	Patch UpdateType = iota
	// Minor means membership or order may have changed; keep the sort.
	Minor
	// Major is Minor plus a reset of derived view state (the sort).
	Major
	// Init is the first successful load.
	Init
)

func (u UpdateType) String() string {
	switch u {
	case Patch:
		return "PATCH"
	case Minor:
		return "MINOR"
	case Major:
		return "MAJOR"
	case Init:
		return "INIT"
	default:
		return fmt.Sprintf("UpdateType(%d)", int(u))
	}
}

// UserAction is the intent attached to every presenter to model dispatch.
type UserAction int

const (
	ActionAdd UserAction = iota
	ActionUpdate
	ActionDelete
)

func (a UserAction) String() string {
	switch a {
	case ActionAdd:
		return "ADD"
	case ActionUpdate:
		return "UPDATE"
	case ActionDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("UserAction(%d)", int(a))
	}
}

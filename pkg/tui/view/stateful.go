package view

// Stateful is a view with editable state kept apart from the entity it was
// built from.
type Stateful[S any] struct {
	Base
	state S
}

// State returns the current state.
func (s *Stateful[S]) State() S { return s.state }

// SetState merges patch into the state without re-rendering.
func (s *Stateful[S]) SetState(patch func(*S)) {
	if patch != nil {
		patch(&s.state)
	}
}

// UpdateElement merges patch, drops the current node, renders a fresh one
// from the merged state and mounts it in the old node's slot. The remove
// hook runs for the old node and the restore hook binds the new one. A view
// that was never rendered only merges state.
func (s *Stateful[S]) UpdateElement(patch func(*S)) {
	s.SetState(patch)
	prev := s.node
	if prev == nil {
		return
	}
	if s.Removed != nil {
		s.Removed()
	}
	s.node = nil
	next := s.Element()
	if err := swap(prev, next); err != nil {
		// Not mounted: nothing to swap, the fresh node waits for Render.
		prev.parent = nil
	}
}

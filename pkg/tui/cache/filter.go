package cache

import (
	"fmt"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/events"
)

// Filter holds the active filter selection. Changes are synchronous.
type Filter struct {
	current point.FilterType
	subject events.Subject[point.FilterType]
}

// NewFilter starts on FilterEverything.
func NewFilter() *Filter {
	return &Filter{current: point.FilterEverything}
}

// Current returns the active filter.
func (f *Filter) Current() point.FilterType { return f.current }

// SetFilter changes the selection and notifies observers with ut. Selecting
// the active filter again is a no-op.
func (f *Filter) SetFilter(ut events.UpdateType, ft point.FilterType) error {
	if _, err := point.ParseFilterType(string(ft)); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if ft == f.current {
		return nil
	}
	f.current = ft
	f.subject.Notify(ut, ft)
	return nil
}

// Subscribe registers fn for filter changes.
func (f *Filter) Subscribe(fn events.Observer[point.FilterType]) events.Handle {
	return f.subject.Subscribe(fn)
}

// Unsubscribe removes a previously registered observer.
func (f *Filter) Unsubscribe(h events.Handle) {
	f.subject.Unsubscribe(h)
}

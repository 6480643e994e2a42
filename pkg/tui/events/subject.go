package events

import "slices"

// Handle identifies one subscription on a Subject.
type Handle uint64

// Observer receives a notification classification and its payload.
type Observer[T any] func(UpdateType, T)

// Subject is an ordered set of observers. It is not safe for concurrent use;
// everything that touches it runs on the Bubble Tea update loop.
type Subject[T any] struct {
	next Handle
	subs []subscription[T]
}

type subscription[T any] struct {
	handle Handle
	fn     Observer[T]
}

// Subscribe appends fn and returns its handle.
func (s *Subject[T]) Subscribe(fn Observer[T]) Handle {
	s.next++
	s.subs = append(s.subs, subscription[T]{handle: s.next, fn: fn})
	return s.next
}

// Unsubscribe removes the observer registered under h. Unknown handles are
// ignored.
func (s *Subject[T]) Unsubscribe(h Handle) {
	s.subs = slices.DeleteFunc(s.subs, func(sub subscription[T]) bool {
		return sub.handle == h
	})
}

// Notify calls every observer in subscription order. Observers added or
// removed during delivery take effect on the next Notify.
func (s *Subject[T]) Notify(ut UpdateType, payload T) {
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(ut, payload)
	}
}

// Len reports the number of observers.
func (s *Subject[T]) Len() int {
	return len(s.subs)
}

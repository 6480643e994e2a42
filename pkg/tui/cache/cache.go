package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/events"
)

// Remote is the asynchronous CRUD contract the model synchronises with. Every
// call may fail; success returns the canonical stored representation.
type Remote interface {
	List(ctx context.Context) ([]point.Point, error)
	Catalog(ctx context.Context) (point.Catalog, error)
	Create(ctx context.Context, p point.Point) (point.Point, error)
	Replace(ctx context.Context, p point.Point) (point.Point, error)
	Delete(ctx context.Context, id string) error
}

// State is the loaded marker of the model.
type State int

const (
	Loading State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "loading"
}

// Points owns the trip point collection and the reference catalog. It is the
// only thing that mutates the collection, and it does so only after the
// remote confirmed the change. Remote calls run inside tea.Cmds; their results
// come back as messages that the owner hands to the matching Resolve method on
// the update loop.
type Points struct {
	remote Remote

	state   State
	loadErr error
	points  []point.Point
	catalog point.Catalog

	seq     uint64
	subject events.Subject[point.Point]
}

// New creates a model in the loading state.
func New(remote Remote) *Points {
	return &Points{remote: remote}
}

// LoadedMsg carries the initial load result.
type LoadedMsg struct {
	Points  []point.Point
	Catalog point.Catalog
	Err     error
}

// Describe implements the logging helper.
func (m LoadedMsg) Describe() string {
	return fmt.Sprintf(`points:%d destinations:%d offers:%d err:%v`, len(m.Points), len(m.Catalog.Destinations), len(m.Catalog.Offers), m.Err)
}

// MutationMsg carries the outcome of one AddPoint, UpdatePoint or
// DeletePoint call.
type MutationMsg struct {
	Seq        uint64
	Action     events.UserAction
	UpdateType events.UpdateType
	// Point is what was sent; Result is what the remote stored.
	Point  point.Point
	Result point.Point
	Err    error
}

// Describe implements the logging helper.
func (m MutationMsg) Describe() string {
	return fmt.Sprintf(`seq:%d action:%q update:%q id:%q err:%v`, m.Seq, m.Action, m.UpdateType, m.Point.ID, m.Err)
}

// Subscribe registers fn for every notification.
func (m *Points) Subscribe(fn events.Observer[point.Point]) events.Handle {
	return m.subject.Subscribe(fn)
}

// Unsubscribe removes a previously registered observer.
func (m *Points) Unsubscribe(h events.Handle) {
	m.subject.Unsubscribe(h)
}

// State reports whether the initial load finished.
func (m *Points) State() State { return m.state }

// LoadErr is the error the initial load ended with, if any.
func (m *Points) LoadErr() error { return m.loadErr }

// Points returns a snapshot of the collection in remote order.
func (m *Points) Points() []point.Point {
	out := make([]point.Point, len(m.points))
	for i, p := range m.points {
		out[i] = p.Clone()
	}
	return out
}

// Point looks up one point by id.
func (m *Points) Point(id string) (point.Point, bool) {
	if i := m.index(id); i >= 0 {
		return m.points[i].Clone(), true
	}
	return point.Point{}, false
}

// Catalog returns the reference data snapshot.
func (m *Points) Catalog() point.Catalog { return m.catalog.Clone() }

// Destinations returns the destination catalog.
func (m *Points) Destinations() []point.Destination { return m.Catalog().Destinations }

// Offers returns the offer catalog.
func (m *Points) Offers() []point.Offer { return m.Catalog().Offers }

// Init loads points and catalog from the remote.
func (m *Points) Init(ctx context.Context) tea.Cmd {
	remote := m.remote
	return func() tea.Msg {
		points, catalog, err := fetch(ctx, remote)
		return LoadedMsg{Points: points, Catalog: catalog, Err: err}
	}
}

// ResolveLoad applies the initial load. The loading to ready transition and
// the Init notification happen exactly once; later calls are ignored and
// report false. A failed load still reaches ready, with an empty collection.
func (m *Points) ResolveLoad(msg LoadedMsg) bool {
	if m.state == Ready {
		return false
	}
	m.state = Ready
	if msg.Err != nil {
		m.loadErr = msg.Err
		m.points = nil
		m.catalog = point.Catalog{}
	} else {
		m.points = clonePoints(msg.Points)
		m.catalog = msg.Catalog.Clone()
	}
	m.subject.Notify(events.Init, point.Point{})
	return true
}

// AddPoint creates p on the remote. The returned sequence number is echoed in
// the MutationMsg.
func (m *Points) AddPoint(ctx context.Context, ut events.UpdateType, p point.Point) (uint64, tea.Cmd) {
	return m.mutate(ctx, events.ActionAdd, ut, p, func(ctx context.Context) (point.Point, error) {
		return m.remote.Create(ctx, p)
	})
}

// UpdatePoint replaces p on the remote.
func (m *Points) UpdatePoint(ctx context.Context, ut events.UpdateType, p point.Point) (uint64, tea.Cmd) {
	return m.mutate(ctx, events.ActionUpdate, ut, p, func(ctx context.Context) (point.Point, error) {
		return m.remote.Replace(ctx, p)
	})
}

// DeletePoint removes p from the remote.
func (m *Points) DeletePoint(ctx context.Context, ut events.UpdateType, p point.Point) (uint64, tea.Cmd) {
	return m.mutate(ctx, events.ActionDelete, ut, p, func(ctx context.Context) (point.Point, error) {
		return p, m.remote.Delete(ctx, p.ID)
	})
}

func (m *Points) mutate(ctx context.Context, action events.UserAction, ut events.UpdateType, p point.Point, call func(context.Context) (point.Point, error)) (uint64, tea.Cmd) {
	m.seq++
	seq := m.seq
	p = p.Clone()
	return seq, func() tea.Msg {
		result, err := call(ctx)
		return MutationMsg{Seq: seq, Action: action, UpdateType: ut, Point: p, Result: result, Err: err}
	}
}

// Resolve applies a confirmed mutation and notifies observers with the
// update type it was dispatched with. On failure the collection is left
// untouched, nobody is notified and the remote error is returned.
func (m *Points) Resolve(msg MutationMsg) error {
	if msg.Err != nil {
		return msg.Err
	}
	payload := msg.Result.Clone()
	switch msg.Action {
	case events.ActionAdd, events.ActionUpdate:
		// A reload may already have picked the point up.
		if i := m.index(payload.ID); i >= 0 {
			m.points[i] = payload.Clone()
		} else {
			m.points = append(m.points, payload.Clone())
		}
	case events.ActionDelete:
		payload = msg.Point.Clone()
		if i := m.index(payload.ID); i >= 0 {
			m.points = slices.Delete(m.points, i, i+1)
		}
	default:
		return fmt.Errorf("cache: unknown action %v", msg.Action)
	}
	m.subject.Notify(msg.UpdateType, payload)
	return nil
}

func (m *Points) index(id string) int {
	return slices.IndexFunc(m.points, func(p point.Point) bool { return p.ID == id })
}

func fetch(ctx context.Context, remote Remote) ([]point.Point, point.Catalog, error) {
	if remote == nil {
		return nil, point.Catalog{}, errors.New("cache: remote unavailable")
	}
	catalog, err := remote.Catalog(ctx)
	if err != nil {
		return nil, point.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	points, err := remote.List(ctx)
	if err != nil {
		return nil, point.Catalog{}, fmt.Errorf("load points: %w", err)
	}
	return points, catalog, nil
}

func clonePoints(in []point.Point) []point.Point {
	out := make([]point.Point, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

package store

import (
	"context"
	"fmt"
	"sync"

	"tableflip.dev/trip/pkg/point"
)

// Memory is a Persistence that keeps everything in process. It backs the
// `--memory` demo mode and tests.
type Memory struct {
	mu      sync.RWMutex
	points  map[string]point.Point
	catalog point.Catalog
	subs    []chan Event
}

var _ Persistence = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{points: make(map[string]point.Point)}
}

func (m *Memory) ListPoints(ctx context.Context) ([]point.Point, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]point.Point, 0, len(m.points))
	for _, p := range m.points {
		all = append(all, p.Clone())
	}
	sortPoints(all)
	return all, ctx.Err()
}

func (m *Memory) ReadPoint(id string) (point.Point, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.points[id]
	if !ok {
		return point.Point{}, fmt.Errorf("%w: point %q", ErrNotFound, id)
	}
	return p.Clone(), nil
}

func (m *Memory) StorePoint(p point.Point) error {
	if p.ID == "" {
		return fmt.Errorf("store: point id required")
	}
	m.mu.Lock()
	m.points[p.ID] = p.Clone()
	m.mu.Unlock()
	m.publish(Event{Type: EventPointsChanged, Bucket: pointsBucket})
	return nil
}

func (m *Memory) DeletePoint(id string) error {
	m.mu.Lock()
	if _, ok := m.points[id]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: point %q", ErrNotFound, id)
	}
	delete(m.points, id)
	m.mu.Unlock()
	m.publish(Event{Type: EventPointsChanged, Bucket: pointsBucket})
	return nil
}

func (m *Memory) Catalog(ctx context.Context) (point.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog.Clone(), ctx.Err()
}

func (m *Memory) StoreCatalog(c point.Catalog) error {
	m.mu.Lock()
	m.catalog = c.Clone()
	m.mu.Unlock()
	m.publish(Event{Type: EventCatalogChanged, Bucket: catalogBucket})
	return nil
}

// Watch streams change events until ctx is cancelled.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, sub := range m.subs {
			if sub == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) publish(ev Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sub := range m.subs {
		select {
		case sub <- ev:
		default:
		}
	}
}

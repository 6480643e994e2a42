package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/point"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsPointChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	start := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	pt := point.Point{ID: "p-1", Type: point.Taxi, Destination: "Geneva", Start: start, Finish: start.Add(time.Hour)}
	if err := p.StorePoint(pt); err != nil {
		t.Fatalf("store point: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventPointsChanged {
				if evt.Bucket != pointsBucket {
					t.Fatalf("expected bucket %q, got %q", pointsBucket, evt.Bucket)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for point change event")
		}
	}
}

func TestMemoryWatchPublishesAndCloses(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := m.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := m.StoreCatalog(point.Catalog{}); err != nil {
		t.Fatalf("store catalog: %v", err)
	}
	if evt := <-ch; evt.Type != EventCatalogChanged {
		t.Fatalf("expected catalog event, got %v", evt.Type)
	}
	cancel()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

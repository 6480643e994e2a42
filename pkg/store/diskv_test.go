package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/point"
)

func TestDiskvStoresPointsInStartOrder(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	start := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	later := point.Point{ID: "0b6c-later", Type: point.Bus, Destination: "Geneva", Start: start.Add(time.Hour), Finish: start.Add(2 * time.Hour), Offers: []string{"meal"}}
	earlier := point.Point{ID: "9f2a-earlier", Type: point.Taxi, Destination: "Amsterdam", Start: start, Finish: start.Add(time.Hour)}
	for _, pt := range []point.Point{later, earlier} {
		if err := p.StorePoint(pt); err != nil {
			t.Fatalf("store %s: %v", pt.ID, err)
		}
	}

	all, err := p.ListPoints(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != earlier.ID || all[1].ID != later.ID {
		t.Fatalf("unexpected listing: %+v", all)
	}
	if !all[1].Start.Equal(later.Start) || len(all[1].Offers) != 1 {
		t.Fatalf("point fields not preserved: %+v", all[1])
	}

	if err := p.DeletePoint(earlier.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.ReadPoint(earlier.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := p.DeletePoint(earlier.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestDiskvCatalogDefaultsToEmpty(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c, err := p.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(c.Destinations) != 0 || len(c.Offers) != 0 {
		t.Fatalf("expected empty catalog, got %+v", c)
	}

	want := point.Catalog{
		Destinations: []point.Destination{{Name: "Geneva", Description: "Lake."}},
		Offers:       []point.Offer{{ID: "meal", Title: "Add meal", Price: 15, Types: []point.Type{point.Train}}},
	}
	if err := p.StoreCatalog(want); err != nil {
		t.Fatalf("store catalog: %v", err)
	}
	c, err = p.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if _, ok := c.Destination("geneva"); !ok {
		t.Fatalf("destination not stored: %+v", c)
	}
	if len(c.OffersFor(point.Train)) != 1 {
		t.Fatalf("offer not stored: %+v", c)
	}
}

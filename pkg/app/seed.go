package app

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/trip/pkg/point"
)

// DefaultCatalog is the reference data written by `trip seed`.
func DefaultCatalog() point.Catalog {
	transport := []point.Type{point.Taxi, point.Bus, point.Train, point.Ship, point.Drive, point.Flight}
	return point.Catalog{
		Destinations: []point.Destination{
			{Name: "Amsterdam", Description: "Canals, bicycles and narrow houses leaning over the water."},
			{Name: "Chamonix", Description: "Alpine town at the foot of Mont Blanc."},
			{Name: "Geneva", Description: "Lakeside city with a famous fountain and old town."},
			{Name: "Lisbon", Description: "Hills, trams and tiled facades above the Tagus."},
			{Name: "Vienna", Description: "Coffee houses, palaces and the opera."},
		},
		Offers: []point.Offer{
			{ID: "luggage", Title: "Add luggage", Price: 30, Types: []point.Type{point.Flight, point.Train, point.Bus}},
			{ID: "comfort", Title: "Switch to comfort class", Price: 100, Types: []point.Type{point.Flight, point.Train}},
			{ID: "meal", Title: "Add meal", Price: 15, Types: []point.Type{point.Flight, point.Train, point.Ship}},
			{ID: "seats", Title: "Choose seats", Price: 5, Types: transport},
			{ID: "uber", Title: "Order Uber", Price: 20, Types: []point.Type{point.Taxi}},
			{ID: "rent", Title: "Rent a car", Price: 200, Types: []point.Type{point.Drive}},
			{ID: "breakfast", Title: "Add breakfast", Price: 50, Types: []point.Type{point.CheckIn}},
			{ID: "tickets", Title: "Book tickets", Price: 40, Types: []point.Type{point.Sightseeing}},
			{ID: "lunch", Title: "Lunch in city", Price: 30, Types: []point.Type{point.Sightseeing, point.Restaurant}},
		},
	}
}

// SamplePoints returns a short itinerary around now, with past, present and
// future points so every filter has something to show.
func SamplePoints(now time.Time) []point.Point {
	day := now.Truncate(time.Hour)
	return []point.Point{
		{Type: point.Flight, Destination: "Amsterdam", Start: day.Add(-72 * time.Hour), Finish: day.Add(-70 * time.Hour), Price: 320, Offers: []string{"luggage", "meal"}},
		{Type: point.CheckIn, Destination: "Amsterdam", Start: day.Add(-69 * time.Hour), Finish: day.Add(-68 * time.Hour), Price: 90, Offers: []string{"breakfast"}},
		{Type: point.Train, Destination: "Geneva", Start: day.Add(-time.Hour), Finish: day.Add(3 * time.Hour), Price: 140, Offers: []string{"comfort"}},
		{Type: point.Sightseeing, Destination: "Geneva", Start: day.Add(24 * time.Hour), Finish: day.Add(27 * time.Hour), Price: 25},
		{Type: point.Drive, Destination: "Chamonix", Start: day.Add(48 * time.Hour), Finish: day.Add(50 * time.Hour), Price: 60, Offers: []string{"rent"}},
		{Type: point.Restaurant, Destination: "Chamonix", Start: day.Add(52 * time.Hour), Finish: day.Add(54 * time.Hour), Price: 75},
	}
}

// Seed stores the default catalog and, when samples is set, the sample
// points. It bypasses the simulated latency and failures.
func (s *Service) Seed(ctx context.Context, now time.Time, samples bool) (int, error) {
	if s.Persistence == nil {
		return 0, fmt.Errorf("app: no persistence configured")
	}
	if err := s.Persistence.StoreCatalog(DefaultCatalog()); err != nil {
		return 0, fmt.Errorf("app: store catalog: %w", err)
	}
	if !samples {
		return 0, nil
	}
	quiet := &Service{Persistence: s.Persistence, NewID: s.NewID}
	n := 0
	for _, p := range SamplePoints(now) {
		if _, err := quiet.Create(ctx, p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

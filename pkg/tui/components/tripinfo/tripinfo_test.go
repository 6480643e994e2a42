package tripinfo

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/theme"
)

var start = time.Date(2025, time.March, 18, 10, 0, 0, 0, time.UTC)

func stop(dest string, day int, price int, offers ...string) point.Point {
	s := start.AddDate(0, 0, day)
	return point.Point{Type: point.Flight, Destination: dest, Start: s, Finish: s.Add(time.Hour), Price: price, Offers: offers}
}

func TestRoute(t *testing.T) {
	short := []point.Point{stop("Amsterdam", 0, 0), stop("Amsterdam", 1, 0), stop("Geneva", 2, 0)}
	if got := Route(short); got != "Amsterdam - Geneva" {
		t.Fatalf("short route %q", got)
	}
	long := append(short, stop("Chamonix", 3, 0), stop("Lisbon", 4, 0))
	if got := Route(long); got != "Amsterdam - ... - Lisbon" {
		t.Fatalf("long route %q", got)
	}
}

func TestHeaderIncludesOffersInTotal(t *testing.T) {
	c := point.Catalog{Offers: []point.Offer{{ID: "meal", Price: 15, Types: []point.Type{point.Flight}}}}
	points := []point.Point{stop("Amsterdam", 0, 100, "meal"), stop("Geneva", 2, 50)}
	out := New(points, c, theme.Default().Header).Element().Text()
	for _, want := range []string{"Amsterdam - Geneva", "Mar 18 - 20", "€ 165"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q: %s", want, out)
		}
	}
	if New(nil, c, theme.Default().Header).Element().Text() != "" {
		t.Fatal("empty trip must render nothing")
	}
}

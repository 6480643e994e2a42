// Package point defines trip points and the reference catalog they draw on.
package point

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrValidation is returned when a point breaks one of its invariants.
var ErrValidation = errors.New("point: validation error")

// Type is the kind of activity a point describes.
type Type string

const (
	Taxi        Type = "taxi"
	Bus         Type = "bus"
	Train       Type = "train"
	Ship        Type = "ship"
	Drive       Type = "drive"
	Flight      Type = "flight"
	CheckIn     Type = "check-in"
	Sightseeing Type = "sightseeing"
	Restaurant  Type = "restaurant"
)

// Types lists every activity kind in display order.
func Types() []Type {
	return []Type{Taxi, Bus, Train, Ship, Drive, Flight, CheckIn, Sightseeing, Restaurant}
}

// ParseType resolves a user supplied type name.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Types(), t) {
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown type %q", ErrValidation, s)
}

// Title renders the type the way rows and forms print it.
func (t Type) Title() string {
	return title(string(t))
}

// title upper-cases the first letter of an enum value.
func title(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Point is a single itinerary entry. Destination and Offers reference the
// Catalog by name and id.
type Point struct {
	ID          string    `json:"id" diff:"id,identifier"`
	Type        Type      `json:"type" diff:"type"`
	Destination string    `json:"destination" diff:"destination"`
	Start       time.Time `json:"start" diff:"start"`
	Finish      time.Time `json:"finish" diff:"finish"`
	Price       int       `json:"price" diff:"price"`
	Offers      []string  `json:"offers,omitempty" diff:"offers"`
}

// Blank returns the template used by the creation form.
func Blank(now time.Time) Point {
	start := now.Truncate(time.Hour)
	return Point{
		Type:   Flight,
		Start:  start,
		Finish: start.Add(time.Hour),
	}
}

// Duration is the length of the point's time window.
func (p Point) Duration() time.Duration {
	return p.Finish.Sub(p.Start)
}

// Clone returns a copy that shares no slices with p.
func (p Point) Clone() Point {
	p.Offers = slices.Clone(p.Offers)
	return p
}

// HasOffer reports whether the offer id is selected.
func (p Point) HasOffer(id string) bool {
	return slices.Contains(p.Offers, id)
}

// AffectsOrder reports whether replacing prev with next can move the point
// within a sorted or filtered list.
func AffectsOrder(prev, next Point) bool {
	return !prev.Start.Equal(next.Start) ||
		!prev.Finish.Equal(next.Finish) ||
		prev.Price != next.Price
}

// Validate checks p against its own invariants and the catalog.
func Validate(p Point, c Catalog) error {
	var problems []string
	if !slices.Contains(Types(), p.Type) {
		problems = append(problems, fmt.Sprintf("unknown type %q", p.Type))
	}
	if strings.TrimSpace(p.Destination) == "" {
		problems = append(problems, "destination required")
	} else if _, ok := c.Destination(p.Destination); !ok {
		problems = append(problems, fmt.Sprintf("unknown destination %q", p.Destination))
	}
	if p.Start.IsZero() || p.Finish.IsZero() {
		problems = append(problems, "start and finish required")
	} else if p.Finish.Before(p.Start) {
		problems = append(problems, "finish before start")
	}
	if p.Price < 0 {
		problems = append(problems, "negative price")
	}
	for _, id := range p.Offers {
		o, ok := c.Offer(id)
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown offer %q", id))
			continue
		}
		if !o.AppliesTo(p.Type) {
			problems = append(problems, fmt.Sprintf("offer %q not available for %s", id, p.Type))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

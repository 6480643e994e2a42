package point

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortType selects the board ordering.
type SortType string

const (
	SortDay   SortType = "day"
	SortTime  SortType = "time"
	SortPrice SortType = "price"

	// SortDefault is restored whenever the filter changes.
	SortDefault = SortDay
)

// SortTypes lists the sort options in display order.
func SortTypes() []SortType {
	return []SortType{SortDay, SortTime, SortPrice}
}

// ParseSortType resolves a sort name.
func ParseSortType(s string) (SortType, error) {
	st := SortType(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortTypes(), st) {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown sort %q", ErrValidation, s)
}

// Title renders the sort name for the sort bar.
func (s SortType) Title() string {
	return title(string(s))
}

// Compare is the comparator for s: day orders by start ascending, time by
// duration ascending and price by price descending.
func (s SortType) Compare(a, b Point) int {
	switch s {
	case SortTime:
		return cmp.Compare(a.Duration(), b.Duration())
	case SortPrice:
		return cmp.Compare(b.Price, a.Price)
	default:
		return a.Start.Compare(b.Start)
	}
}

// Sort returns a sorted copy of points. Ties keep their input order.
func Sort(points []Point, s SortType) []Point {
	out := slices.Clone(points)
	slices.SortStableFunc(out, s.Compare)
	return out
}

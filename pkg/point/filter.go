package point

import (
	"fmt"
	"strings"
	"time"
)

// FilterType selects which points the board shows.
type FilterType string

const (
	FilterEverything FilterType = "everything"
	FilterFuture     FilterType = "future"
	FilterPresent    FilterType = "present"
	FilterPast       FilterType = "past"
)

// FilterTypes lists the filters in display order.
func FilterTypes() []FilterType {
	return []FilterType{FilterEverything, FilterFuture, FilterPresent, FilterPast}
}

// ParseFilterType resolves a filter name.
func ParseFilterType(s string) (FilterType, error) {
	ft := FilterType(strings.ToLower(strings.TrimSpace(s)))
	for _, candidate := range FilterTypes() {
		if candidate == ft {
			return ft, nil
		}
	}
	return "", fmt.Errorf("%w: unknown filter %q", ErrValidation, s)
}

// Title renders the filter name for the filter bar.
func (f FilterType) Title() string {
	return title(string(f))
}

// EmptyMessage is shown in place of the list when the filter matches nothing.
func (f FilterType) EmptyMessage() string {
	switch f {
	case FilterFuture:
		return "There are no future events now"
	case FilterPresent:
		return "There are no present events now"
	case FilterPast:
		return "There are no past events now"
	default:
		return "Press n to create your first point"
	}
}

// Match reports whether p passes the filter at the instant now.
func (f FilterType) Match(p Point, now time.Time) bool {
	switch f {
	case FilterFuture:
		return p.Start.After(now)
	case FilterPresent:
		return !p.Start.After(now) && !p.Finish.Before(now)
	case FilterPast:
		return p.Finish.Before(now)
	default:
		return true
	}
}

// Filter returns the points that pass f, preserving their order.
func Filter(points []Point, f FilterType, now time.Time) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if f.Match(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// Count returns how many points pass each filter.
func Count(points []Point, now time.Time) map[FilterType]int {
	counts := make(map[FilterType]int, len(FilterTypes()))
	for _, f := range FilterTypes() {
		for _, p := range points {
			if f.Match(p, now) {
				counts[f]++
			}
		}
	}
	return counts
}

// Package tripinfo renders the trip header: route, dates and total cost.
package tripinfo

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/timeutil"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/view"
)

const (
	maxRouteStops = 3
	routeWidth    = 60
)

// Info summarises the whole trip, independent of filter and sort.
type Info struct {
	view.Base

	points  []point.Point
	catalog point.Catalog
	theme   theme.HeaderTheme
}

// New builds a header for points, which must be in day order.
func New(points []point.Point, catalog point.Catalog, th theme.HeaderTheme) *Info {
	i := &Info{points: points, catalog: catalog, theme: th}
	i.Template = i.template
	return i
}

// Route joins the destinations in order, collapsing consecutive repeats.
// Long routes keep only the first and last stop.
func Route(points []point.Point) string {
	var stops []string
	for _, p := range points {
		if len(stops) > 0 && strings.EqualFold(stops[len(stops)-1], p.Destination) {
			continue
		}
		stops = append(stops, p.Destination)
	}
	if len(stops) > maxRouteStops {
		stops = []string{stops[0], "...", stops[len(stops)-1]}
	}
	return strings.Join(stops, " - ")
}

// Total is the cost of every point including its selected offers.
func Total(points []point.Point, c point.Catalog) int {
	total := 0
	for _, p := range points {
		total += c.Cost(p)
	}
	return total
}

func (i *Info) template() string {
	if len(i.points) == 0 {
		return ""
	}
	first, last := i.points[0], i.points[len(i.points)-1]
	finish := last.Finish
	for _, p := range i.points {
		if p.Finish.After(finish) {
			finish = p.Finish
		}
	}
	title := i.theme.Title.Render(truncate.StringWithTail(Route(i.points), routeWidth, "…"))
	dates := i.theme.Dates.Render(timeutil.Span(first.Start, finish))
	cost := i.theme.Cost.Render(fmt.Sprintf("Total: € %d", Total(i.points, i.catalog)))
	return i.theme.Frame.Render(title + "\n" + dates + "   " + cost)
}

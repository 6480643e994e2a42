package presenter

import (
	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/cache"
	"tableflip.dev/trip/pkg/tui/components/tripinfo"
	"tableflip.dev/trip/pkg/tui/events"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/view"
)

// Info re-renders the trip header on every model change.
type Info struct {
	points *cache.Points
	theme  theme.HeaderTheme

	slot   view.Container
	header *tripinfo.Info
	handle events.Handle
}

// NewInfo builds the header presenter.
func NewInfo(points *cache.Points, th theme.HeaderTheme) *Info {
	return &Info{points: points, theme: th}
}

// Init subscribes and renders.
func (i *Info) Init() {
	i.handle = i.points.Subscribe(func(events.UpdateType, point.Point) { i.render() })
	i.render()
}

// Close drops the subscription.
func (i *Info) Close() {
	i.points.Unsubscribe(i.handle)
	if i.header != nil {
		view.Remove(i.header)
		i.header = nil
	}
}

// View renders the header, empty while there are no points.
func (i *Info) View() string { return i.slot.String() }

func (i *Info) render() {
	if i.header != nil {
		view.Remove(i.header)
	}
	points := point.Sort(i.points.Points(), point.SortDay)
	i.header = tripinfo.New(points, i.points.Catalog(), i.theme)
	view.Render(i.header, &i.slot, view.BeforeEnd)
}

package presenter

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/logging"
	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/cache"
	"tableflip.dev/trip/pkg/tui/components/filterbar"
	"tableflip.dev/trip/pkg/tui/events"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/uiutil"
	"tableflip.dev/trip/pkg/tui/view"
)

// Filters keeps the filter bar in step with the filter and point models.
// Filters with no matching points are disabled, except the active one.
type Filters struct {
	points *cache.Points
	filter *cache.Filter
	theme  theme.BarTheme
	now    uiutil.Clock
	log    *slog.Logger

	slot view.Container
	bar  *filterbar.Bar

	pointsHandle events.Handle
	filterHandle events.Handle
}

// NewFilters builds the filter presenter.
func NewFilters(points *cache.Points, filter *cache.Filter, th theme.BarTheme, now uiutil.Clock, log *slog.Logger) *Filters {
	if log == nil {
		log = logging.Discard()
	}
	return &Filters{points: points, filter: filter, theme: th, now: uiutil.OrNow(now), log: log}
}

// Init subscribes and renders.
func (f *Filters) Init() {
	f.pointsHandle = f.points.Subscribe(func(events.UpdateType, point.Point) { f.render() })
	f.filterHandle = f.filter.Subscribe(func(events.UpdateType, point.FilterType) { f.render() })
	f.render()
}

// Close drops the subscriptions.
func (f *Filters) Close() {
	f.points.Unsubscribe(f.pointsHandle)
	f.filter.Unsubscribe(f.filterHandle)
	if f.bar != nil {
		view.Remove(f.bar)
		f.bar = nil
	}
}

// Items is what the bar currently offers.
func (f *Filters) Items() []filterbar.Item {
	counts := point.Count(f.points.Points(), f.now())
	current := f.filter.Current()
	items := make([]filterbar.Item, 0, len(point.FilterTypes()))
	for _, ft := range point.FilterTypes() {
		items = append(items, filterbar.Item{
			Type:     ft,
			Count:    counts[ft],
			Disabled: counts[ft] == 0 && ft != current,
		})
	}
	return items
}

// HandleKey forwards a key to the bar.
func (f *Filters) HandleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if f.bar == nil {
		return nil, false
	}
	return f.bar.Element().Dispatch(msg)
}

// View renders the bar.
func (f *Filters) View() string { return f.slot.String() }

func (f *Filters) render() {
	if f.bar != nil {
		view.Remove(f.bar)
	}
	f.bar = filterbar.New(f.Items(), f.filter.Current(), f.theme, f.handleChange)
	view.Render(f.bar, &f.slot, view.BeforeEnd)
}

func (f *Filters) handleChange(ft point.FilterType) tea.Cmd {
	if err := f.filter.SetFilter(events.Major, ft); err != nil {
		f.log.Error("set filter", "filter", ft, "err", err)
	}
	return nil
}

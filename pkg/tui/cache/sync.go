package cache

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	odiff "github.com/r3labs/diff/v3"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/events"
)

// ReloadedMsg carries a fresh copy of the remote state after an external
// change.
type ReloadedMsg struct {
	Points  []point.Point
	Catalog point.Catalog
	Err     error
}

// Describe implements the logging helper.
func (m ReloadedMsg) Describe() string {
	return fmt.Sprintf(`points:%d err:%v`, len(m.Points), m.Err)
}

// Reload re-reads the remote.
func (m *Points) Reload(ctx context.Context) tea.Cmd {
	remote := m.remote
	return func() tea.Msg {
		points, catalog, err := fetch(ctx, remote)
		return ReloadedMsg{Points: points, Catalog: catalog, Err: err}
	}
}

// ResolveReload reconciles the model with msg. Observers get a single Minor
// notification, and only when something differs. It returns the changed
// paths for logging. Reloads before the initial load are ignored.
func (m *Points) ResolveReload(msg ReloadedMsg) ([]string, error) {
	if msg.Err != nil {
		return nil, msg.Err
	}
	if m.state != Ready {
		return nil, nil
	}
	differ, err := odiff.NewDiffer()
	if err != nil {
		return nil, err
	}
	pointChanges, err := differ.Diff(m.points, msg.Points)
	if err != nil {
		return nil, fmt.Errorf("cache: diff points: %w", err)
	}
	catalogChanges, err := differ.Diff(m.catalog, msg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("cache: diff catalog: %w", err)
	}
	if len(pointChanges) == 0 && len(catalogChanges) == 0 {
		return nil, nil
	}
	changed := make([]string, 0, len(pointChanges)+len(catalogChanges))
	for _, c := range pointChanges {
		changed = append(changed, c.Type+" points."+strings.Join(c.Path, "."))
	}
	for _, c := range catalogChanges {
		changed = append(changed, c.Type+" catalog."+strings.Join(c.Path, "."))
	}
	m.points = clonePoints(msg.Points)
	m.catalog = msg.Catalog.Clone()
	m.loadErr = nil
	m.subject.Notify(events.Minor, point.Point{})
	return changed, nil
}

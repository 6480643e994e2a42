// Package filterbar renders the filter selector with per-filter counts.
package filterbar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/view"
)

// Item is one selectable filter.
type Item struct {
	Type     point.FilterType
	Count    int
	Disabled bool
}

// Bar binds the keys 1..n to the items in order.
type Bar struct {
	view.Base

	items    []Item
	current  point.FilterType
	theme    theme.BarTheme
	onChange func(point.FilterType) tea.Cmd
}

// New builds a bar for items.
func New(items []Item, current point.FilterType, th theme.BarTheme, onChange func(point.FilterType) tea.Cmd) *Bar {
	b := &Bar{items: items, current: current, theme: th, onChange: onChange}
	b.Template = b.template
	b.Restore = b.restore
	return b
}

// Key returns the key bound to item i.
func Key(i int) string { return fmt.Sprint(i + 1) }

func (b *Bar) restore(n *view.Node) {
	for i, item := range b.items {
		if item.Disabled {
			continue
		}
		n.On(Key(i), func(tea.KeyPressMsg) tea.Cmd {
			if b.onChange == nil {
				return nil
			}
			return b.onChange(item.Type)
		})
	}
}

func (b *Bar) template() string {
	parts := []string{b.theme.Label.Render("Filter")}
	for i, item := range b.items {
		label := fmt.Sprintf("%s %s (%d)", Key(i), item.Type.Title(), item.Count)
		switch {
		case item.Type == b.current:
			parts = append(parts, b.theme.Selected.Render(label))
		case item.Disabled:
			parts = append(parts, b.theme.Disabled.Render(label))
		default:
			parts = append(parts, b.theme.Item.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

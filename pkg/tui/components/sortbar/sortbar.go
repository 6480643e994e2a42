// Package sortbar renders the sort selector above the point list.
package sortbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/view"
)

// Keys maps each sort to the key that selects it.
var Keys = map[point.SortType]string{
	point.SortDay:   "d",
	point.SortTime:  "t",
	point.SortPrice: "p",
}

// Bar shows the available sorts with the current one highlighted.
type Bar struct {
	view.Base

	current  point.SortType
	theme    theme.BarTheme
	onChange func(point.SortType) tea.Cmd
}

// New builds a bar with current selected.
func New(current point.SortType, th theme.BarTheme, onChange func(point.SortType) tea.Cmd) *Bar {
	b := &Bar{current: current, theme: th, onChange: onChange}
	b.Template = b.template
	b.Restore = b.restore
	return b
}

// Current is the highlighted sort.
func (b *Bar) Current() point.SortType { return b.current }

func (b *Bar) restore(n *view.Node) {
	for _, st := range point.SortTypes() {
		n.On(Keys[st], func(tea.KeyPressMsg) tea.Cmd {
			if b.onChange == nil {
				return nil
			}
			return b.onChange(st)
		})
	}
}

func (b *Bar) template() string {
	parts := []string{b.theme.Label.Render("Sort")}
	for _, st := range point.SortTypes() {
		label := Keys[st] + " " + st.Title()
		if st == b.current {
			parts = append(parts, b.theme.Selected.Render(label))
			continue
		}
		parts = append(parts, b.theme.Item.Render(label))
	}
	return strings.Join(parts, "  ")
}

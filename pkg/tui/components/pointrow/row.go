// Package pointrow renders one point on the board in display mode.
package pointrow

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/timeutil"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/view"
)

const destinationWidth = 14

// State is the transient display state of a row.
type State struct {
	Cursor   bool
	Aborting bool
}

// Row is a single display-mode point.
type Row struct {
	view.Stateful[State]

	point   point.Point
	catalog point.Catalog
	theme   theme.RowTheme
	onEdit  func() tea.Cmd
}

// New builds a row. onEdit fires when the user asks to edit the point.
func New(p point.Point, catalog point.Catalog, th theme.RowTheme, onEdit func() tea.Cmd) *Row {
	r := &Row{point: p.Clone(), catalog: catalog, theme: th, onEdit: onEdit}
	r.Template = r.template
	r.Restore = r.restore
	return r
}

// Point is the point the row was built from.
func (r *Row) Point() point.Point { return r.point.Clone() }

// SetCursor highlights the row.
func (r *Row) SetCursor(on bool) {
	if r.State().Cursor == on {
		return
	}
	r.UpdateElement(func(s *State) { s.Cursor = on })
}

// SetAborting toggles the error flash shown after a failed delete from
// display mode.
func (r *Row) SetAborting(on bool) {
	r.UpdateElement(func(s *State) { s.Aborting = on })
}

func (r *Row) restore(n *view.Node) {
	n.On("enter", func(tea.KeyPressMsg) tea.Cmd {
		if r.onEdit == nil {
			return nil
		}
		return r.onEdit()
	})
}

func (r *Row) template() string {
	p := r.point
	st := r.State()

	dest := truncate.StringWithTail(p.Destination, destinationWidth, "…")
	title := fmt.Sprintf("%s %s", r.theme.Type.Render(p.Type.Title()), padding.String(dest, destinationWidth))
	times := r.theme.Time.Render(fmt.Sprintf("%s %s-%s %s",
		p.Start.Format(timeutil.DateLayout),
		p.Start.Format(timeutil.TimeLayout),
		p.Finish.Format(timeutil.TimeLayout),
		padding.String(timeutil.FormatLength(p.Duration()), 11),
	))
	price := r.theme.Price.Render(fmt.Sprintf("€ %d", p.Price))

	var offers []string
	for _, id := range p.Offers {
		if o, ok := r.catalog.Offer(id); ok {
			offers = append(offers, fmt.Sprintf("%s +€%d", o.Title, o.Price))
		}
	}
	line := strings.Join([]string{times, padding.String(title, 26), price}, "  ")
	if len(offers) > 0 {
		line += "  " + r.theme.Offer.Render(strings.Join(offers, ", "))
	}

	style := r.theme.Normal
	switch {
	case st.Aborting:
		style = r.theme.Aborting
		line = "! " + line
	case st.Cursor:
		style = r.theme.Cursor
		line = "> " + line
	default:
		line = "  " + line
	}
	return style.Render(line)
}

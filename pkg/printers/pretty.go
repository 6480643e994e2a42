package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(color.Output, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(color.Output, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(color.Output, title)
	_, _ = c.Fprintf(color.Output, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(color.Output, " point")
	default:
		_, _ = c.Fprintln(color.Output, " points")
	}
}

// Points prints one row per point in the order given, followed by the
// trip total.
func (pp *PrettyPrint) Points(c point.Catalog, points ...point.Point) {
	if len(points) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Day"), bold.Sprint("Type"), bold.Sprint("Destination"),
		bold.Sprint("Time"), bold.Sprint("Length"), bold.Sprint("Price"), bold.Sprint("Offers")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	total := 0
	for _, p := range points {
		cost := c.Cost(p)
		total += cost
		row := []interface{}{
			p.Start.Format(timeutil.DateLayout),
			p.Type.Title(),
			p.Destination,
			fmt.Sprintf("%s - %s", p.Start.Format(timeutil.TimeLayout), p.Finish.Format(timeutil.TimeLayout)),
			timeutil.FormatLength(p.Duration()),
			fmt.Sprintf("€ %d", cost),
			offerTitles(c, p),
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(p.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(len(header) - 2)

	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = bold.Fprintf(color.Output, "\nTotal: € %d\n\n", total)
}

// Catalog prints the destinations and offers points may reference.
func (pp *PrettyPrint) Catalog(c point.Catalog) {
	bold := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Destination"), bold.Sprint("Description"), bold.Sprint("Photos"))
	for _, d := range c.Destinations {
		tbl.AddRow(d.Name, d.Description, len(d.Photos))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Offer"), bold.Sprint("Title"), bold.Sprint("Price"), bold.Sprint("Types"))
	for _, o := range c.Offers {
		types := make([]string, 0, len(o.Types))
		for _, t := range o.Types {
			types = append(types, string(t))
		}
		tbl.AddRow(f.Sprint(o.ID), o.Title, fmt.Sprintf("€ %d", o.Price), strings.Join(types, ", "))
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func offerTitles(c point.Catalog, p point.Point) string {
	titles := make([]string, 0, len(p.Offers))
	for _, id := range p.Offers {
		if o, ok := c.Offer(id); ok {
			titles = append(titles, o.Title)
		}
	}
	return strings.Join(titles, ", ")
}

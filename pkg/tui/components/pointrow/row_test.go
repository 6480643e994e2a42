package pointrow

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/view"
)

func sample() (point.Point, point.Catalog) {
	start := time.Date(2025, time.March, 18, 10, 30, 0, 0, time.UTC)
	p := point.Point{ID: "1", Type: point.Taxi, Destination: "Amsterdam", Start: start, Finish: start.Add(30 * time.Minute), Price: 20, Offers: []string{"uber"}}
	c := point.Catalog{Offers: []point.Offer{{ID: "uber", Title: "Order Uber", Price: 20, Types: []point.Type{point.Taxi}}}}
	return p, c
}

func TestRowRendersPointDetails(t *testing.T) {
	p, c := sample()
	r := New(p, c, theme.Default().Row, nil)
	out := r.Element().Text()
	for _, want := range []string{"Mar 18", "10:30-11:00", "30M", "Taxi", "Amsterdam", "€ 20", "Order Uber +€20"} {
		if !strings.Contains(out, want) {
			t.Errorf("row missing %q: %s", want, out)
		}
	}
}

func TestRowEnterRequestsEdit(t *testing.T) {
	p, c := sample()
	edits := 0
	r := New(p, c, theme.Default().Row, func() tea.Cmd { edits++; return nil })
	var board view.Container
	view.Render(r, &board, view.BeforeEnd)

	r.Element().Dispatch(tea.KeyPressMsg{Code: tea.KeyEnter})
	r.SetCursor(true)
	r.Element().Dispatch(tea.KeyPressMsg{Code: tea.KeyEnter})

	if edits != 2 {
		t.Fatalf("expected 2 edit intents, got %d", edits)
	}
	if !strings.Contains(board.String(), "> ") {
		t.Fatalf("cursor not rendered: %q", board.String())
	}
	r.SetAborting(true)
	if !strings.HasPrefix(strings.TrimSpace(stripANSI(board.String())), "!") {
		t.Fatalf("aborting flag not rendered: %q", board.String())
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			skip = false
		case !skip:
			b.WriteRune(r)
		}
	}
	return b.String()
}

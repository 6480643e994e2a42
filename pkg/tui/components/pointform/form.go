// Package pointform is the stateful edit and create form for a point.
package pointform

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/timeutil"
	"tableflip.dev/trip/pkg/tui/components/datepicker"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/view"
)

// Field is the focused form field.
type Field int

const (
	FieldType Field = iota
	FieldDestination
	FieldPrice
	FieldOffers
	fieldCount
)

const maxPrice = 1_000_000

// State is the form's editable copy of a point plus UI-only flags.
type State struct {
	point.Point

	Available   []point.Offer
	Field       Field
	OfferCursor int

	IsNew      bool
	IsSaving   bool
	IsDeleting bool
	IsDisabled bool
	IsAborting bool
	Problem    string
}

// FromPoint derives form state from p.
func FromPoint(p point.Point, catalog point.Catalog, isNew bool) State {
	return State{
		Point:     p.Clone(),
		Available: catalog.OffersFor(p.Type),
		IsNew:     isNew,
	}
}

// Callbacks are the intents the form emits.
type Callbacks struct {
	// Submit receives a validated point.
	Submit func(point.Point) tea.Cmd
	// Delete is "delete" for existing points and "cancel" for new ones.
	Delete func(point.Point) tea.Cmd
	Close  func() tea.Cmd
}

// Form edits one point.
type Form struct {
	view.Stateful[State]

	catalog point.Catalog
	theme   theme.FormTheme
	cb      Callbacks

	start, finish *datepicker.Picker
}

// New builds a form for p.
func New(p point.Point, catalog point.Catalog, isNew bool, th theme.FormTheme, cb Callbacks) *Form {
	f := &Form{catalog: catalog, theme: th, cb: cb}
	f.SetState(func(s *State) { *s = FromPoint(p, catalog, isNew) })
	f.Template = f.template
	f.Restore = f.restore
	f.Removed = f.destroyPickers
	return f
}

// Reset re-derives the state from p and re-renders.
func (f *Form) Reset(p point.Point) {
	isNew := f.State().IsNew
	f.UpdateElement(func(s *State) { *s = FromPoint(p, f.catalog, isNew) })
}

// SetSaving shows the busy state for a pending save.
func (f *Form) SetSaving() {
	f.UpdateElement(func(s *State) {
		s.IsSaving, s.IsDisabled, s.IsAborting = true, true, false
	})
}

// SetDeleting shows the busy state for a pending delete.
func (f *Form) SetDeleting() {
	f.UpdateElement(func(s *State) {
		s.IsDeleting, s.IsDisabled, s.IsAborting = true, true, false
	})
}

// SetAborting flags the failed action. Entered values stay untouched.
func (f *Form) SetAborting() {
	f.UpdateElement(func(s *State) { s.IsAborting = true })
}

// ClearFlags returns the form to an editable state.
func (f *Form) ClearFlags() {
	f.UpdateElement(func(s *State) {
		s.IsSaving, s.IsDeleting, s.IsDisabled, s.IsAborting = false, false, false, false
	})
}

// Pickers exposes the attached date pickers. Both are nil while unrendered.
func (f *Form) Pickers() (start, finish *datepicker.Picker) {
	return f.start, f.finish
}

func (f *Form) destroyPickers() {
	f.start.Destroy()
	f.finish.Destroy()
	f.start, f.finish = nil, nil
}

func (f *Form) restore(n *view.Node) {
	st := f.State()
	if st.IsDisabled {
		return
	}
	f.start = datepicker.Attach(n, datepicker.Options{
		EarlierKey: "[",
		LaterKey:   "]",
		Initial:    st.Start,
		OnChange: func(t time.Time) tea.Cmd {
			f.SetState(func(s *State) {
				s.Start = t
				if s.Finish.Before(t) {
					s.Finish = t
				}
			})
			f.UpdateElement(nil)
			return nil
		},
	})
	f.finish = datepicker.Attach(n, datepicker.Options{
		EarlierKey: "{",
		LaterKey:   "}",
		Initial:    st.Finish,
		OnChange: func(t time.Time) tea.Cmd {
			f.SetState(func(s *State) {
				if t.Before(s.Start) {
					t = s.Start
				}
				s.Finish = t
			})
			f.UpdateElement(nil)
			return nil
		},
	})

	n.On("tab", func(tea.KeyPressMsg) tea.Cmd {
		f.UpdateElement(func(s *State) { s.Field = (s.Field + 1) % fieldCount })
		return nil
	})
	n.On("shift+tab", func(tea.KeyPressMsg) tea.Cmd {
		f.UpdateElement(func(s *State) { s.Field = (s.Field + fieldCount - 1) % fieldCount })
		return nil
	})
	n.On("left", func(tea.KeyPressMsg) tea.Cmd { f.UpdateElement(func(s *State) { f.step(s, -1) }); return nil })
	n.On("right", func(tea.KeyPressMsg) tea.Cmd { f.UpdateElement(func(s *State) { f.step(s, 1) }); return nil })
	n.On("space", func(tea.KeyPressMsg) tea.Cmd { f.UpdateElement(toggleOffer); return nil })
	n.On("backspace", func(tea.KeyPressMsg) tea.Cmd {
		f.UpdateElement(func(s *State) {
			if s.Field == FieldPrice {
				s.Price /= 10
			}
		})
		return nil
	})
	for d := '0'; d <= '9'; d++ {
		digit := int(d - '0')
		n.On(string(d), func(tea.KeyPressMsg) tea.Cmd {
			f.UpdateElement(func(s *State) {
				if s.Field == FieldPrice && s.Price*10+digit <= maxPrice {
					s.Price = s.Price*10 + digit
				}
			})
			return nil
		})
	}
	n.On("enter", func(tea.KeyPressMsg) tea.Cmd { return f.submit() })
	n.On("ctrl+d", func(tea.KeyPressMsg) tea.Cmd {
		if f.cb.Delete == nil {
			return nil
		}
		return f.cb.Delete(f.State().Point.Clone())
	})
	n.On("esc", func(tea.KeyPressMsg) tea.Cmd {
		if f.cb.Close == nil {
			return nil
		}
		return f.cb.Close()
	})
}

func (f *Form) submit() tea.Cmd {
	p := f.State().Point.Clone()
	if err := point.Validate(p, f.catalog); err != nil {
		f.UpdateElement(func(s *State) { s.Problem = strings.TrimPrefix(err.Error(), point.ErrValidation.Error()+": ") })
		return nil
	}
	f.SetState(func(s *State) { s.Problem = "" })
	if f.cb.Submit == nil {
		return nil
	}
	return f.cb.Submit(p)
}

// step moves the focused field's value by delta.
func (f *Form) step(s *State, delta int) {
	switch s.Field {
	case FieldType:
		types := point.Types()
		i := slices.Index(types, s.Type)
		next := types[wrap(i+delta, len(types))]
		if next == s.Type {
			return
		}
		s.Type = next
		s.Available = f.catalog.OffersFor(next)
		s.Offers = slices.DeleteFunc(s.Offers, func(id string) bool {
			o, ok := f.catalog.Offer(id)
			return !ok || !o.AppliesTo(next)
		})
		s.OfferCursor = 0
	case FieldDestination:
		dests := f.catalog.Destinations
		if len(dests) == 0 {
			return
		}
		i := slices.IndexFunc(dests, func(d point.Destination) bool { return strings.EqualFold(d.Name, s.Destination) })
		if i < 0 && delta < 0 {
			i = 0
		}
		s.Destination = dests[wrap(i+delta, len(dests))].Name
	case FieldPrice:
		s.Price = max(0, s.Price+delta*10)
	case FieldOffers:
		if len(s.Available) > 0 {
			s.OfferCursor = wrap(s.OfferCursor+delta, len(s.Available))
		}
	}
}

func toggleOffer(s *State) {
	if s.Field != FieldOffers || len(s.Available) == 0 {
		return
	}
	id := s.Available[s.OfferCursor].ID
	if i := slices.Index(s.Offers, id); i >= 0 {
		s.Offers = slices.Delete(s.Offers, i, i+1)
		return
	}
	s.Offers = append(s.Offers, id)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (f *Form) template() string {
	st := f.State()
	th := f.theme

	field := func(which Field, label, value string) string {
		style := th.Field
		marker := "  "
		if st.Field == which && !st.IsDisabled {
			style = th.Focused
			marker = "› "
		}
		return marker + th.Label.Render(label) + style.Render(value)
	}

	lines := []string{
		field(FieldType, "Type", "‹ "+st.Type.Title()+" ›"),
		field(FieldDestination, "Destination", "‹ "+orDash(st.Destination)+" ›"),
	}
	if d, ok := f.catalog.Destination(st.Destination); ok && d.Description != "" {
		lines = append(lines, "  "+th.Label.Render("")+th.Muted.Render(d.Description))
	}
	lines = append(lines,
		"  "+th.Label.Render("From")+th.Field.Render(st.Start.Format(timeutil.InputLayout))+th.Muted.Render("  [ ]"),
		"  "+th.Label.Render("To")+th.Field.Render(st.Finish.Format(timeutil.InputLayout))+th.Muted.Render("  { }"),
		field(FieldPrice, "Price", fmt.Sprintf("€ %d", st.Price)),
	)

	if len(st.Available) == 0 {
		lines = append(lines, field(FieldOffers, "Offers", th.Muted.Render("none for this type")))
	}
	for i, o := range st.Available {
		box := "[ ]"
		if st.HasOffer(o.ID) {
			box = "[x]"
		}
		label := ""
		if i == 0 {
			label = "Offers"
		}
		text := fmt.Sprintf("%s %s +€%d", box, o.Title, o.Price)
		style := th.Field
		marker := "  "
		if st.Field == FieldOffers && i == st.OfferCursor && !st.IsDisabled {
			style = th.Focused
			marker = "› "
		}
		lines = append(lines, marker+th.Label.Render(label)+style.Render(text))
	}

	lines = append(lines, "", f.buttons(st))
	if st.Problem != "" {
		lines = append(lines, th.Problem.Render(st.Problem))
	}

	frame := th.Frame
	if st.IsAborting {
		frame = th.Aborting
	}
	return frame.Render(strings.Join(lines, "\n"))
}

func (f *Form) buttons(st State) string {
	save := "enter Save"
	if st.IsSaving {
		save = "Saving..."
	}
	del := "ctrl+d Delete"
	switch {
	case st.IsNew:
		del = "ctrl+d Cancel"
	case st.IsDeleting:
		del = "Deleting..."
	}
	parts := []string{save, del}
	if !st.IsNew {
		parts = append(parts, "esc Close")
	}
	style := f.theme.Muted
	if st.IsDisabled {
		style = f.theme.Busy
	}
	return style.Render(strings.Join(parts, "   "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

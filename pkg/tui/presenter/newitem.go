package presenter

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/components/pointform"
	"tableflip.dev/trip/pkg/tui/constants"
	"tableflip.dev/trip/pkg/tui/events"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/uiutil"
	"tableflip.dev/trip/pkg/tui/view"
)

// NewItem owns the creation form. Cancelling never talks to the model.
type NewItem struct {
	container *view.Container
	catalog   point.Catalog
	theme     theme.Theme
	tick      uiutil.TickFunc
	log       *slog.Logger
	onAction  ActionFunc
	onDestroy func()

	form     *pointform.Form
	mode     Mode
	abortGen int
}

// Active reports whether the form is open.
func (n *NewItem) Active() bool { return n.form != nil }

// Mode is the presenter's current state.
func (n *NewItem) Mode() Mode { return n.mode }

// Form exposes the creation form while it is open.
func (n *NewItem) Form() *pointform.Form { return n.form }

// Init opens an empty form at the top of the container.
func (n *NewItem) Init(now time.Time) {
	if n.form != nil {
		return
	}
	n.form = pointform.New(point.Blank(now), n.catalog, true, n.theme.Form, pointform.Callbacks{
		Submit: n.handleSubmit,
		Delete: n.handleCancel,
		Close: func() tea.Cmd {
			n.Destroy()
			return nil
		},
	})
	n.mode = Editing
	view.Render(n.form, n.container, view.AfterBegin)
}

// Destroy closes the form. Safe to call when already closed.
func (n *NewItem) Destroy() {
	if n.form == nil {
		return
	}
	n.abortGen++
	view.Remove(n.form)
	n.form = nil
	n.mode = Viewing
	if n.onDestroy != nil {
		n.onDestroy()
	}
}

// SetSaving flags the pending add.
func (n *NewItem) SetSaving() {
	if n.form == nil {
		return
	}
	n.mode = Saving
	n.form.SetSaving()
}

// SetAborting flashes the failure and keeps what the user typed.
func (n *NewItem) SetAborting() tea.Cmd {
	if n.form == nil {
		return nil
	}
	n.abortGen++
	gen := n.abortGen
	n.mode = Aborting
	n.form.SetAborting()
	return n.tick(constants.AbortShake, func(time.Time) tea.Msg {
		return AbortDoneMsg{ID: constants.NewPointID, Gen: gen}
	})
}

// FinishAbort makes the form editable again.
func (n *NewItem) FinishAbort(gen int) {
	if n.form == nil || gen != n.abortGen || n.mode != Aborting {
		return
	}
	n.mode = Editing
	n.form.ClearFlags()
}

func (n *NewItem) handleSubmit(p point.Point) tea.Cmd {
	return n.onAction(events.ActionAdd, events.Minor, p)
}

func (n *NewItem) handleCancel(point.Point) tea.Cmd {
	n.Destroy()
	return nil
}

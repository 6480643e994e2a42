package presenter

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/components/pointform"
	"tableflip.dev/trip/pkg/tui/components/pointrow"
	"tableflip.dev/trip/pkg/tui/constants"
	"tableflip.dev/trip/pkg/tui/events"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/uiutil"
	"tableflip.dev/trip/pkg/tui/view"
)

// Mode is the state of an item presenter.
type Mode int

const (
	Viewing Mode = iota
	Editing
	Saving
	Deleting
	Aborting
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case Deleting:
		return "deleting"
	case Aborting:
		return "aborting"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ActionFunc hands a user intent to the board.
type ActionFunc func(action events.UserAction, ut events.UpdateType, p point.Point) tea.Cmd

// AbortDoneMsg ends the error flash of the presenter with ID.
type AbortDoneMsg struct {
	ID  string
	Gen int
}

// Describe implements the logging helper.
func (m AbortDoneMsg) Describe() string {
	return fmt.Sprintf(`id:%q gen:%d`, m.ID, m.Gen)
}

type itemDeps struct {
	container *view.Container
	catalog   point.Catalog
	theme     theme.Theme
	tick      uiutil.TickFunc
	log       *slog.Logger
	onAction  ActionFunc
	// onModeChange runs before the presenter enters editing.
	onModeChange func()
}

// Item toggles one point between its row and its form.
type Item struct {
	itemDeps

	point point.Point
	row   *pointrow.Row
	form  *pointform.Form
	mode  Mode

	cursor   bool
	abortGen int
}

func newItem(deps itemDeps) *Item {
	return &Item{itemDeps: deps}
}

// Mode is the presenter's current state.
func (it *Item) Mode() Mode { return it.mode }

// Point is the point the presenter was last initialised with.
func (it *Item) Point() point.Point { return it.point.Clone() }

// Element is the node currently mounted for this presenter.
func (it *Item) Element() *view.Node {
	if it.mode == Viewing {
		return it.row.Element()
	}
	return it.form.Element()
}

// Form exposes the edit form.
func (it *Item) Form() *pointform.Form { return it.form }

// Init renders p, or re-renders in place when already rendered. A
// presenter that was busy or editing goes back to viewing.
func (it *Item) Init(p point.Point) {
	prevRow, prevForm := it.row, it.form
	it.point = p.Clone()
	it.row = pointrow.New(it.point, it.catalog, it.theme.Row, it.handleEdit)
	it.form = pointform.New(it.point, it.catalog, false, it.theme.Form, pointform.Callbacks{
		Submit: it.handleSubmit,
		Delete: it.handleDelete,
		Close:  it.handleClose,
	})
	it.abortGen++
	if it.cursor {
		it.row.SetCursor(true)
	}

	if prevRow == nil {
		view.Render(it.row, it.container, view.BeforeEnd)
		return
	}
	prev := view.View(prevRow)
	if it.mode != Viewing {
		prev = prevForm
	}
	if err := view.Replace(it.row, prev); err != nil {
		it.log.Error("replace item view", "id", it.point.ID, "mode", it.mode, "err", err)
	}
	it.mode = Viewing
	view.Remove(prevRow)
	view.Remove(prevForm)
}

// Destroy unmounts the presenter.
func (it *Item) Destroy() {
	it.abortGen++
	view.Remove(it.row)
	view.Remove(it.form)
}

// SetCursor highlights the row.
func (it *Item) SetCursor(on bool) {
	it.cursor = on
	it.row.SetCursor(on)
}

// ResetView closes the form, discarding edits. It only acts while editing or
// aborting; busy presenters wait for their result.
func (it *Item) ResetView() {
	if it.mode != Editing && it.mode != Aborting {
		return
	}
	it.abortGen++
	it.replaceFormToRow()
}

// SetSaving flags a pending update.
func (it *Item) SetSaving() {
	it.mode = Saving
	it.form.SetSaving()
}

// SetDeleting flags a pending delete.
func (it *Item) SetDeleting() {
	it.mode = Deleting
	it.form.SetDeleting()
}

// SetAborting flashes the error state after a failed action and schedules
// the return to editing.
func (it *Item) SetAborting() tea.Cmd {
	it.abortGen++
	gen := it.abortGen
	if it.mode == Viewing {
		it.row.SetAborting(true)
	} else {
		it.mode = Aborting
		it.form.SetAborting()
	}
	id := it.point.ID
	return it.tick(constants.AbortShake, func(time.Time) tea.Msg {
		return AbortDoneMsg{ID: id, Gen: gen}
	})
}

// FinishAbort returns control to the user with their edits intact.
func (it *Item) FinishAbort(gen int) {
	if gen != it.abortGen {
		return
	}
	switch it.mode {
	case Viewing:
		it.row.SetAborting(false)
	case Aborting:
		it.mode = Editing
		it.form.ClearFlags()
	}
}

func (it *Item) replaceFormToRow() {
	if err := view.Replace(it.row, it.form); err != nil {
		it.log.Error("close item form", "id", it.point.ID, "err", err)
	}
	view.Remove(it.form)
	it.form.Reset(it.point)
	it.mode = Viewing
}

func (it *Item) handleEdit() tea.Cmd {
	if it.mode != Viewing {
		return nil
	}
	if it.onModeChange != nil {
		it.onModeChange()
	}
	if err := view.Replace(it.form, it.row); err != nil {
		it.log.Error("open item form", "id", it.point.ID, "err", err)
		return nil
	}
	it.mode = Editing
	return nil
}

func (it *Item) handleSubmit(p point.Point) tea.Cmd {
	ut := events.Patch
	if point.AffectsOrder(it.point, p) {
		ut = events.Minor
	}
	return it.onAction(events.ActionUpdate, ut, p)
}

func (it *Item) handleDelete(p point.Point) tea.Cmd {
	return it.onAction(events.ActionDelete, events.Minor, p)
}

func (it *Item) handleClose() tea.Cmd {
	it.ResetView()
	return nil
}

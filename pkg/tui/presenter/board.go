// Package presenter wires the point model to its views. The board owns the
// per-point presenters, the creation form and the sort; the filter and info
// presenters keep the header bars in step with the model.
package presenter

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/logging"
	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/blocker"
	"tableflip.dev/trip/pkg/tui/cache"
	"tableflip.dev/trip/pkg/tui/components/notice"
	"tableflip.dev/trip/pkg/tui/components/sortbar"
	"tableflip.dev/trip/pkg/tui/constants"
	"tableflip.dev/trip/pkg/tui/events"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/uiutil"
	"tableflip.dev/trip/pkg/tui/view"
)

// BoardState is what the board area currently shows.
type BoardState int

const (
	BoardLoading BoardState = iota
	BoardEmpty
	BoardPopulated
	BoardFailed
)

func (s BoardState) String() string {
	switch s {
	case BoardLoading:
		return "loading"
	case BoardEmpty:
		return "empty"
	case BoardPopulated:
		return "populated"
	case BoardFailed:
		return "failed"
	default:
		return fmt.Sprintf("BoardState(%d)", int(s))
	}
}

// Options configures a Board.
type Options struct {
	Context context.Context
	Points  *cache.Points
	Filter  *cache.Filter
	Blocker *blocker.Blocker
	// Create is toggled off while the creation form is open or input is
	// blocked.
	Create blocker.Affordance
	Theme  theme.Theme
	Now    uiutil.Clock
	Tick   uiutil.TickFunc
	Logger *slog.Logger
}

type pendingAction struct {
	token  blocker.Token
	action events.UserAction
	id     string
}

// Board presents the filtered, sorted point list.
type Board struct {
	ctx     context.Context
	points  *cache.Points
	filter  *cache.Filter
	blocker *blocker.Blocker
	create  blocker.Affordance
	theme   theme.Theme
	now     uiutil.Clock
	tick    uiutil.TickFunc
	log     *slog.Logger

	formSlot view.Container
	root     view.Container

	state   BoardState
	sort    point.SortType
	sortBar *sortbar.Bar
	notice  *notice.Notice
	list    *view.Base

	items    map[string]*Item
	order    []string
	cursor   int
	cursorID string

	newItem       *NewItem
	pending       map[uint64]pendingAction
	createEnabled bool

	pointsHandle events.Handle
	filterHandle events.Handle
}

// NewBoard builds a board in the loading state. Call Init to subscribe.
func NewBoard(opts Options) *Board {
	b := &Board{
		ctx:     opts.Context,
		points:  opts.Points,
		filter:  opts.Filter,
		blocker: opts.Blocker,
		create:  opts.Create,
		theme:   opts.Theme,
		now:     uiutil.OrNow(opts.Now),
		tick:    uiutil.OrTick(opts.Tick),
		log:     opts.Logger,
		sort:    point.SortDefault,
		items:   map[string]*Item{},
		pending: map[uint64]pendingAction{},
	}
	if b.ctx == nil {
		b.ctx = context.Background()
	}
	if b.log == nil {
		b.log = logging.Discard()
	}
	if b.blocker == nil {
		b.blocker = blocker.New(blocker.WithLogger(b.log))
	}
	b.newItem = &NewItem{
		container: &b.formSlot,
		theme:     b.theme,
		tick:      b.tick,
		log:       b.log,
		onAction:  b.handleViewAction,
		onDestroy: b.refreshCreate,
	}
	b.blocker.Register(blocker.AffordanceFunc(func(bool) { b.refreshCreate() }))
	return b
}

// Init subscribes to the models and renders the current state.
func (b *Board) Init() {
	b.pointsHandle = b.points.Subscribe(func(ut events.UpdateType, p point.Point) {
		b.handleModelEvent(ut, p)
	})
	b.filterHandle = b.filter.Subscribe(func(ut events.UpdateType, _ point.FilterType) {
		b.handleModelEvent(ut, point.Point{})
	})
	b.renderBoard()
	b.refreshCreate()
}

// Close drops the subscriptions and every view.
func (b *Board) Close() {
	b.points.Unsubscribe(b.pointsHandle)
	b.filter.Unsubscribe(b.filterHandle)
	b.clearBoard(false)
}

// State is what the board shows.
func (b *Board) State() BoardState { return b.state }

// Sort is the active sort.
func (b *Board) Sort() point.SortType { return b.sort }

// Order lists the displayed point ids top to bottom.
func (b *Board) Order() []string { return slices.Clone(b.order) }

// Item returns the presenter for id while it is displayed.
func (b *Board) Item(id string) (*Item, bool) {
	it, ok := b.items[id]
	return it, ok
}

// NewItem returns the creation form presenter.
func (b *Board) NewItem() *NewItem { return b.newItem }

// SortBar is the mounted sort bar, nil unless populated.
func (b *Board) SortBar() *sortbar.Bar { return b.sortBar }

// Notice is the mounted notice, nil when populated.
func (b *Board) Notice() *notice.Notice { return b.notice }

// CreateEnabled reports the state last pushed to the create affordance.
func (b *Board) CreateEnabled() bool { return b.createEnabled }

// Cursor is the id under the cursor, or "".
func (b *Board) Cursor() string {
	if b.cursor < 0 || b.cursor >= len(b.order) {
		return ""
	}
	return b.order[b.cursor]
}

// Editing reports whether any form holds user input.
func (b *Board) Editing() bool {
	return b.newItem.Active() || b.editor() != nil
}

// View renders the creation form above the list.
func (b *Board) View() string {
	parts := make([]string, 0, 2)
	if s := b.formSlot.String(); s != "" {
		parts = append(parts, s)
	}
	if s := b.root.String(); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n")
}

// Update consumes mutation results and abort timers.
func (b *Board) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case cache.MutationMsg:
		return b.resolveMutation(msg), true
	case AbortDoneMsg:
		if msg.ID == constants.NewPointID {
			b.newItem.FinishAbort(msg.Gen)
		} else if it, ok := b.items[msg.ID]; ok {
			it.FinishAbort(msg.Gen)
		}
		return nil, true
	}
	return nil, false
}

// HandleKey routes a key to the open form, then to the board itself.
func (b *Board) HandleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if b.newItem.Active() {
		cmd, _ := b.newItem.Form().Element().Dispatch(msg)
		return cmd, true
	}
	if it := b.editor(); it != nil {
		cmd, _ := it.Element().Dispatch(msg)
		return cmd, true
	}

	switch msg.String() {
	case "up", "k":
		b.moveCursor(-1)
		return nil, true
	case "down", "j":
		b.moveCursor(1)
		return nil, true
	case "n":
		return b.CreatePoint(), true
	case "enter":
		id := b.Cursor()
		if id == "" {
			return nil, false
		}
		return b.items[id].Element().Dispatch(msg)
	}
	if b.sortBar != nil {
		return b.sortBar.Element().Dispatch(msg)
	}
	return nil, false
}

// CreatePoint opens the creation form on an unfiltered, default-sorted board.
func (b *Board) CreatePoint() tea.Cmd {
	if !b.createEnabled || b.newItem.Active() {
		return nil
	}
	b.handleModeChange()
	if b.filter.Current() != point.FilterEverything {
		if err := b.filter.SetFilter(events.Major, point.FilterEverything); err != nil {
			b.log.Error("reset filter", "err", err)
		}
	} else if b.sort != point.SortDefault {
		b.clearBoard(true)
		b.renderBoard()
	}
	b.newItem.catalog = b.points.Catalog()
	b.newItem.Init(b.now())
	b.refreshCreate()
	return nil
}

func (b *Board) handleModelEvent(ut events.UpdateType, p point.Point) {
	b.log.Debug("board update", "type", ut, "id", p.ID)
	switch ut {
	case events.Patch:
		if it, ok := b.items[p.ID]; ok {
			it.Init(p)
		}
	case events.Minor, events.Init:
		b.clearBoard(false)
		b.renderBoard()
	case events.Major:
		b.clearBoard(true)
		b.renderBoard()
	}
	b.refreshCreate()
}

func (b *Board) handleSortChange(st point.SortType) tea.Cmd {
	if st == b.sort {
		return nil
	}
	b.sort = st
	b.clearBoard(false)
	b.renderBoard()
	return nil
}

// handleModeChange closes every open form before one enters editing.
func (b *Board) handleModeChange() {
	b.newItem.Destroy()
	for _, it := range b.items {
		it.ResetView()
	}
}

func (b *Board) handleViewAction(action events.UserAction, ut events.UpdateType, p point.Point) tea.Cmd {
	if b.blocker.Blocked() {
		b.log.Warn("dispatch rejected while blocked", "action", action, "id", p.ID)
		return nil
	}
	tok, timeout := b.blocker.Block()

	var (
		seq uint64
		cmd tea.Cmd
	)
	id := p.ID
	switch action {
	case events.ActionAdd:
		id = constants.NewPointID
		b.newItem.SetSaving()
		seq, cmd = b.points.AddPoint(b.ctx, ut, p)
	case events.ActionUpdate:
		if it, ok := b.items[p.ID]; ok {
			it.SetSaving()
		}
		seq, cmd = b.points.UpdatePoint(b.ctx, ut, p)
	case events.ActionDelete:
		if it, ok := b.items[p.ID]; ok {
			it.SetDeleting()
		}
		seq, cmd = b.points.DeletePoint(b.ctx, ut, p)
	default:
		return b.blocker.Unblock(tok)
	}
	b.pending[seq] = pendingAction{token: tok, action: action, id: id}
	b.log.Info("dispatch", "seq", seq, "action", action, "update", ut, "id", id)
	return tea.Batch(cmd, timeout)
}

func (b *Board) resolveMutation(msg cache.MutationMsg) tea.Cmd {
	pend, ok := b.pending[msg.Seq]
	delete(b.pending, msg.Seq)

	var cmds []tea.Cmd
	if err := b.points.Resolve(msg); err != nil {
		b.log.Error("mutation failed", "seq", msg.Seq, "action", msg.Action, "id", msg.Point.ID, "err", err)
		if ok {
			cmds = appendCmd(cmds, b.abort(pend))
		}
	}
	if ok {
		cmds = appendCmd(cmds, b.blocker.Unblock(pend.token))
	}
	return tea.Batch(cmds...)
}

// abort hands a failed action back to its presenter. After a forced release
// the user may have opened another form meanwhile; it is closed first so the
// failed form is the only editor.
func (b *Board) abort(pend pendingAction) tea.Cmd {
	if pend.action == events.ActionAdd {
		if !b.newItem.Active() {
			return nil
		}
		for _, it := range b.items {
			it.ResetView()
		}
		return b.newItem.SetAborting()
	}
	it, ok := b.items[pend.id]
	if !ok {
		return nil
	}
	if it.Mode() != Viewing {
		b.newItem.Destroy()
		for id, other := range b.items {
			if id != pend.id {
				other.ResetView()
			}
		}
	}
	return it.SetAborting()
}

func (b *Board) editor() *Item {
	for _, it := range b.items {
		if it.Mode() == Editing || it.Mode() == Aborting {
			return it
		}
	}
	return nil
}

func (b *Board) refreshCreate() {
	// a failed load leaves no catalog, so no new point could validate.
	b.createEnabled = b.points.State() == cache.Ready && b.points.LoadErr() == nil &&
		!b.blocker.Blocked() && !b.newItem.Active()
	if b.create != nil {
		b.create.SetEnabled(b.createEnabled)
	}
}

func (b *Board) clearBoard(resetSort bool) {
	b.newItem.Destroy()
	for id, it := range b.items {
		it.Destroy()
		delete(b.items, id)
	}
	b.order = nil
	if b.sortBar != nil {
		view.Remove(b.sortBar)
		b.sortBar = nil
	}
	if b.notice != nil {
		view.Remove(b.notice)
		b.notice = nil
	}
	if b.list != nil {
		view.Remove(b.list)
		b.list = nil
	}
	if resetSort {
		b.sort = point.SortDefault
	}
}

func (b *Board) renderBoard() {
	if b.points.State() != cache.Ready {
		b.showNotice(BoardLoading, notice.Loading)
		return
	}
	all := b.points.Points()
	if b.points.LoadErr() != nil && len(all) == 0 {
		b.showNotice(BoardFailed, notice.Failed)
		return
	}
	shown := point.Sort(point.Filter(all, b.filter.Current(), b.now()), b.sort)
	if len(shown) == 0 {
		b.showNotice(BoardEmpty, b.filter.Current().EmptyMessage())
		return
	}

	b.state = BoardPopulated
	b.sortBar = sortbar.New(b.sort, b.theme.Bar, b.handleSortChange)
	view.Render(b.sortBar, &b.root, view.BeforeEnd)
	b.list = &view.Base{}
	view.Render(b.list, &b.root, view.BeforeEnd)

	catalog := b.points.Catalog()
	for _, p := range shown {
		it := newItem(itemDeps{
			container:    b.list.Element().Children(),
			catalog:      catalog,
			theme:        b.theme,
			tick:         b.tick,
			log:          b.log,
			onAction:     b.handleViewAction,
			onModeChange: b.handleModeChange,
		})
		it.Init(p)
		b.items[p.ID] = it
		b.order = append(b.order, p.ID)
	}
	b.placeCursor()
}

func (b *Board) showNotice(state BoardState, message string) {
	b.state = state
	b.notice = notice.New(message, b.theme.Notice)
	view.Render(b.notice, &b.root, view.BeforeEnd)
}

// placeCursor keeps the cursor on the same point across rebuilds, falling
// back to the same slot.
func (b *Board) placeCursor() {
	if len(b.order) == 0 {
		b.cursor = 0
		return
	}
	i := slices.Index(b.order, b.cursorID)
	if i < 0 {
		i = min(max(b.cursor, 0), len(b.order)-1)
	}
	b.cursor = i
	b.cursorID = b.order[i]
	b.items[b.cursorID].SetCursor(true)
}

func (b *Board) moveCursor(delta int) {
	if len(b.order) == 0 {
		return
	}
	next := min(max(b.cursor+delta, 0), len(b.order)-1)
	if next == b.cursor {
		return
	}
	if it, ok := b.items[b.Cursor()]; ok {
		it.SetCursor(false)
	}
	b.cursor = next
	b.cursorID = b.order[next]
	b.items[b.cursorID].SetCursor(true)
}

func appendCmd(cmds []tea.Cmd, cmd tea.Cmd) []tea.Cmd {
	if cmd == nil {
		return cmds
	}
	return append(cmds, cmd)
}

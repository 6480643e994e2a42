package presenter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/tui/blocker"
	"tableflip.dev/trip/pkg/tui/cache"
	"tableflip.dev/trip/pkg/tui/components/notice"
	"tableflip.dev/trip/pkg/tui/events"
	"tableflip.dev/trip/pkg/tui/theme"
)

var now = time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)

type fakeRemote struct {
	points   []point.Point
	catalog  point.Catalog
	fail     error
	nextID   int
	replaced int
}

func (f *fakeRemote) List(context.Context) ([]point.Point, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([]point.Point, len(f.points))
	for i, p := range f.points {
		out[i] = p.Clone()
	}
	return out, nil
}

func (f *fakeRemote) Catalog(context.Context) (point.Catalog, error) {
	if f.fail != nil {
		return point.Catalog{}, f.fail
	}
	return f.catalog.Clone(), nil
}

func (f *fakeRemote) Create(_ context.Context, p point.Point) (point.Point, error) {
	if f.fail != nil {
		return point.Point{}, f.fail
	}
	f.nextID++
	p.ID = fmt.Sprintf("new-%d", f.nextID)
	return p, nil
}

func (f *fakeRemote) Replace(_ context.Context, p point.Point) (point.Point, error) {
	f.replaced++
	if f.fail != nil {
		return point.Point{}, f.fail
	}
	return p, nil
}

func (f *fakeRemote) Delete(context.Context, string) error {
	return f.fail
}

type toggle struct{ states []bool }

func (t *toggle) SetEnabled(enabled bool) { t.states = append(t.states, enabled) }

func (t *toggle) last() bool { return len(t.states) > 0 && t.states[len(t.states)-1] }

func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(now) }
}

func testCatalog() point.Catalog {
	return point.Catalog{
		Destinations: []point.Destination{{Name: "Amsterdam"}, {Name: "Geneva"}, {Name: "Lisbon"}},
		Offers: []point.Offer{
			{ID: "meal", Title: "Add meal", Price: 15, Types: []point.Type{point.Flight, point.Train}},
		},
	}
}

// past 1, present 3, future 2.
func testPoints() []point.Point {
	return []point.Point{
		{ID: "1", Type: point.Taxi, Destination: "Geneva", Start: now.Add(-48 * time.Hour), Finish: now.Add(-47 * time.Hour), Price: 100},
		{ID: "2", Type: point.Flight, Destination: "Amsterdam", Start: now.Add(24 * time.Hour), Finish: now.Add(26 * time.Hour), Price: 300},
		{ID: "3", Type: point.Train, Destination: "Lisbon", Start: now.Add(-time.Hour), Finish: now.Add(time.Hour), Price: 50},
	}
}

type harness struct {
	t       *testing.T
	remote  *fakeRemote
	points  *cache.Points
	filter  *cache.Filter
	blocker *blocker.Blocker
	create  *toggle
	board   *Board
}

func newHarness(t *testing.T, pts []point.Point, loadErr error) *harness {
	t.Helper()
	clock := func() time.Time { return now }
	h := &harness{
		t:      t,
		remote: &fakeRemote{points: pts, catalog: testCatalog(), fail: loadErr},
		filter: cache.NewFilter(),
		create: &toggle{},
	}
	h.points = cache.New(h.remote)
	h.blocker = blocker.New(
		blocker.WithClock(clock),
		blocker.WithTick(immediateTick),
		blocker.WithLimits(0, time.Second),
	)
	h.board = NewBoard(Options{
		Points:  h.points,
		Filter:  h.filter,
		Blocker: h.blocker,
		Create:  h.create,
		Theme:   theme.Default(),
		Now:     clock,
		Tick:    immediateTick,
	})
	h.board.Init()
	require.Equal(t, BoardLoading, h.board.State())

	msg := h.points.Init(context.Background())()
	require.True(t, h.points.ResolveLoad(msg.(cache.LoadedMsg)))
	h.remote.fail = nil
	return h
}

func press(k string) tea.KeyPressMsg {
	switch k {
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "ctrl+d":
		return tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}
	}
	return tea.KeyPressMsg{Text: k, Code: rune(k[0])}
}

// keys sends each key to the board and returns the last command.
func (h *harness) keys(keys ...string) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		last, _ = h.board.HandleKey(press(k))
	}
	return last
}

// run executes cmd and feeds the board the messages it owns. Blocker timers
// are dropped so nothing is forced open behind the test's back.
func (h *harness) run(cmd tea.Cmd) {
	for _, msg := range drain(cmd) {
		switch msg.(type) {
		case blocker.TimeoutMsg, blocker.ReleaseMsg:
			continue
		}
		next, _ := h.board.Update(msg)
		h.run(next)
	}
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestInitialLoadRendersDaySortedBoard(t *testing.T) {
	h := newHarness(t, testPoints(), nil)

	assert.Equal(t, BoardPopulated, h.board.State())
	assert.Equal(t, []string{"1", "3", "2"}, h.board.Order())
	assert.Equal(t, point.SortDay, h.board.Sort())
	assert.NotNil(t, h.board.SortBar())
	assert.Nil(t, h.board.Notice())
	assert.Equal(t, "1", h.board.Cursor())
	assert.True(t, h.create.last())
}

func TestFailedLoadShowsFailedNotice(t *testing.T) {
	h := newHarness(t, testPoints(), errors.New("offline"))

	assert.Equal(t, BoardFailed, h.board.State())
	require.NotNil(t, h.board.Notice())
	assert.Equal(t, notice.Failed, h.board.Notice().Message())
	assert.Nil(t, h.board.SortBar())
}

func TestPatchReinitialisesOnlyThatItem(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	first, _ := h.board.Item("1")
	third, _ := h.board.Item("3")
	second, _ := h.board.Item("2")
	thirdNode, secondNode := third.Element(), second.Element()

	// destination Geneva -> Lisbon does not move the point.
	cmd := h.keys("enter", "tab", "right", "enter")
	require.Equal(t, Saving, first.Mode())
	h.run(cmd)

	got, ok := h.board.Item("1")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, Viewing, got.Mode())
	assert.Equal(t, "Lisbon", got.Point().Destination)
	assert.Same(t, thirdNode, third.Element())
	assert.Same(t, secondNode, second.Element())
	assert.Equal(t, []string{"1", "3", "2"}, h.board.Order())
	assert.False(t, h.blocker.Blocked())
}

func TestMinorUpdateReordersAndKeepsSort(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	h.keys("p")
	require.Equal(t, []string{"2", "1", "3"}, h.board.Order())

	// price of 3: 50 -> 500.
	cmd := h.keys("down", "enter", "tab", "tab", "0", "enter")
	h.run(cmd)

	assert.Equal(t, point.SortPrice, h.board.Sort())
	assert.Equal(t, []string{"3", "2", "1"}, h.board.Order())
	p, _ := h.points.Point("3")
	assert.Equal(t, 500, p.Price)
}

func TestMajorResetsSort(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	h.keys("p")
	require.Equal(t, point.SortPrice, h.board.Sort())

	require.NoError(t, h.filter.SetFilter(events.Major, point.FilterFuture))

	assert.Equal(t, point.SortDay, h.board.Sort())
	assert.Equal(t, []string{"2"}, h.board.Order())
}

func TestSelectingActiveSortIsNoop(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	first, _ := h.board.Item("1")
	node := first.Element()

	h.keys("d")

	got, _ := h.board.Item("1")
	assert.Same(t, first, got)
	assert.Same(t, node, got.Element())
}

func TestAtMostOneEditorIsOpen(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	first, _ := h.board.Item("1")
	third, _ := h.board.Item("3")

	h.keys("enter")
	require.Equal(t, Editing, first.Mode())
	third.handleEdit()
	assert.Equal(t, Viewing, first.Mode())
	assert.Equal(t, Editing, third.Mode())

	third.ResetView()
	h.board.CreatePoint()
	require.True(t, h.board.NewItem().Active())
	first.handleEdit()
	assert.False(t, h.board.NewItem().Active())
	assert.Equal(t, Editing, first.Mode())

	editors := 0
	for _, id := range h.board.Order() {
		it, _ := h.board.Item(id)
		if it.Mode() == Editing {
			editors++
		}
	}
	assert.Equal(t, 1, editors)
}

func TestFailedAddKeepsEnteredValues(t *testing.T) {
	h := newHarness(t, testPoints(), nil)

	h.keys("n")
	ni := h.board.NewItem()
	require.True(t, ni.Active())
	assert.False(t, h.create.last())

	h.remote.fail = errors.New("remote down")
	// destination Amsterdam, price 75.
	cmd := h.keys("tab", "right", "tab", "7", "5", "enter")
	require.Equal(t, Saving, ni.Mode())
	h.run(cmd)

	assert.Len(t, h.points.Points(), 3)
	require.True(t, ni.Active())
	assert.Equal(t, Editing, ni.Mode())
	st := ni.Form().State()
	assert.Equal(t, "Amsterdam", st.Destination)
	assert.Equal(t, 75, st.Price)
	assert.False(t, st.IsDisabled)
	assert.False(t, h.blocker.Blocked())

	h.remote.fail = nil
	h.run(h.keys("enter"))

	assert.False(t, ni.Active())
	assert.Len(t, h.points.Points(), 4)
	assert.Contains(t, h.board.Order(), "new-1")
	assert.True(t, h.create.last())
}

func TestCreateResetsFilterAndSort(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	h.keys("p")
	require.NoError(t, h.filter.SetFilter(events.Major, point.FilterPast))
	h.keys("p")
	require.Equal(t, point.SortPrice, h.board.Sort())

	h.keys("n")

	assert.Equal(t, point.FilterEverything, h.filter.Current())
	assert.Equal(t, point.SortDay, h.board.Sort())
	assert.True(t, h.board.NewItem().Active())
	assert.Equal(t, []string{"1", "3", "2"}, h.board.Order())
}

func TestCancelNewPointNeverTouchesModel(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	h.keys("n")
	cmd := h.keys("ctrl+d")

	assert.Nil(t, cmd)
	assert.False(t, h.board.NewItem().Active())
	assert.False(t, h.blocker.Blocked())
	assert.Len(t, h.points.Points(), 3)
	assert.True(t, h.create.last())
}

func TestFutureFilterEmptyStateHidesSortBar(t *testing.T) {
	pts := testPoints()
	pts = []point.Point{pts[0], pts[2]}
	h := newHarness(t, pts, nil)

	require.NoError(t, h.filter.SetFilter(events.Major, point.FilterFuture))

	assert.Equal(t, BoardEmpty, h.board.State())
	assert.Nil(t, h.board.SortBar())
	require.NotNil(t, h.board.Notice())
	assert.Equal(t, point.FilterFuture.EmptyMessage(), h.board.Notice().Message())
	assert.NotContains(t, h.board.View(), "Sort")
}

func TestFailedUpdateReturnsToEditing(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	first, _ := h.board.Item("1")
	h.remote.fail = errors.New("remote down")

	h.run(h.keys("enter", "tab", "right", "enter"))

	assert.Equal(t, Editing, first.Mode())
	assert.Equal(t, "Lisbon", first.Form().State().Destination)
	p, _ := h.points.Point("1")
	assert.Equal(t, "Geneva", p.Destination)
	assert.False(t, h.blocker.Blocked())
}

func TestDispatchRejectedWhileDeletePending(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	second, _ := h.board.Item("2")

	del := h.keys("down", "down", "enter", "ctrl+d")
	require.NotNil(t, del)
	require.Equal(t, Deleting, second.Mode())
	require.True(t, h.blocker.Blocked())

	third, _ := h.board.Item("3")
	cmd := h.keys("up", "enter", "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, Editing, third.Mode())
	assert.Equal(t, Deleting, second.Mode())
	assert.Zero(t, h.remote.replaced)

	h.run(del)
	assert.Equal(t, []string{"1", "3"}, h.board.Order())
	assert.False(t, h.blocker.Blocked())
}

// forceRelease runs cmd, hands the blocker its timeout and returns the
// mutation result so the caller can deliver it late.
func (h *harness) forceRelease(cmd tea.Cmd) cache.MutationMsg {
	h.t.Helper()
	var result *cache.MutationMsg
	for _, msg := range drain(cmd) {
		switch msg := msg.(type) {
		case blocker.TimeoutMsg:
			h.blocker.Update(msg)
		case cache.MutationMsg:
			result = &msg
		}
	}
	require.NotNil(h.t, result)
	require.False(h.t, h.blocker.Blocked())
	return *result
}

func (h *harness) editors() int {
	n := 0
	if h.board.NewItem().Active() && h.board.NewItem().Mode() != Saving {
		n++
	}
	for _, id := range h.board.Order() {
		it, _ := h.board.Item(id)
		if it.Mode() == Editing || it.Mode() == Aborting {
			n++
		}
	}
	return n
}

func TestLateFailureAfterTimeoutClosesOtherEditor(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	first, _ := h.board.Item("1")
	third, _ := h.board.Item("3")
	h.remote.fail = errors.New("remote down")

	late := h.forceRelease(h.keys("enter", "tab", "right", "enter"))
	require.Equal(t, Saving, first.Mode())

	h.keys("down", "enter")
	require.Equal(t, Editing, third.Mode())

	next, _ := h.board.Update(late)
	h.run(next)

	assert.Equal(t, Editing, first.Mode())
	assert.Equal(t, "Lisbon", first.Form().State().Destination)
	assert.Equal(t, Viewing, third.Mode())
	assert.Equal(t, 1, h.editors())
	assert.False(t, h.blocker.Blocked())
}

func TestLateFailureAfterTimeoutClosesCreationForm(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	first, _ := h.board.Item("1")
	h.remote.fail = errors.New("remote down")

	late := h.forceRelease(h.keys("enter", "tab", "right", "enter"))
	h.keys("n")
	require.True(t, h.board.NewItem().Active())

	next, _ := h.board.Update(late)
	h.run(next)

	assert.False(t, h.board.NewItem().Active())
	assert.Equal(t, Editing, first.Mode())
	assert.Equal(t, 1, h.editors())
	assert.True(t, h.create.last())
}

func TestLateAddFailureLeavesRowEditorAlone(t *testing.T) {
	h := newHarness(t, testPoints(), nil)
	h.keys("n")
	ni := h.board.NewItem()
	h.remote.fail = errors.New("remote down")

	late := h.forceRelease(h.keys("tab", "right", "enter"))
	require.Equal(t, Saving, ni.Mode())

	// opening a row closes the busy creation form.
	third, _ := h.board.Item("3")
	third.handleEdit()
	require.False(t, ni.Active())

	next, _ := h.board.Update(late)
	h.run(next)

	assert.False(t, ni.Active())
	assert.Equal(t, Editing, third.Mode())
	assert.Equal(t, 1, h.editors())
	assert.Len(t, h.points.Points(), 3)
}

func TestFailedLoadDisablesCreate(t *testing.T) {
	h := newHarness(t, testPoints(), errors.New("offline"))

	assert.False(t, h.board.CreateEnabled())
	assert.False(t, h.create.last())
	assert.Nil(t, h.board.CreatePoint())
	assert.False(t, h.board.NewItem().Active())
}

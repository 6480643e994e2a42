// Package teaui hosts the Bubble Tea program for the trip planner TUI.
package teaui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/logging"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/tui/blocker"
	"tableflip.dev/trip/pkg/tui/cache"
	"tableflip.dev/trip/pkg/tui/events"
	"tableflip.dev/trip/pkg/tui/presenter"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/tui/uiutil"
)

// Options configures the root model.
type Options struct {
	Context context.Context
	Service *app.Service
	Logger  *slog.Logger
	Now     uiutil.Clock
	Tick    uiutil.TickFunc

	// Lower and Upper bound how long input stays blocked around a remote
	// call. Zero values use the blocker defaults.
	Lower, Upper time.Duration
}

// switchAffordance records the enabled state pushed to it.
type switchAffordance struct{ enabled bool }

func (s *switchAffordance) SetEnabled(enabled bool) { s.enabled = enabled }

// Model is the root of the TUI. It owns the models and presenters, gates
// input while a remote call is in flight and reloads on store changes.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
	theme  theme.Theme

	points  *cache.Points
	filter  *cache.Filter
	blocker *blocker.Blocker

	info    *presenter.Info
	filters *presenter.Filters
	board   *presenter.Board

	gate   *switchAffordance
	create *switchAffordance

	keys keyMap
	help help.Model

	watchCh       <-chan store.Event
	watchCancel   context.CancelFunc
	reloadPending bool

	status   string
	quitting bool
}

// New wires the models and presenters around svc.
func New(opts Options) *Model {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	var remote cache.Remote
	if opts.Service != nil {
		remote = opts.Service
	}

	lower, upper := opts.Lower, opts.Upper
	if lower == 0 && upper == 0 {
		lower, upper = blocker.DefaultLower, blocker.DefaultUpper
	}
	blk := blocker.New(
		blocker.WithLimits(lower, upper),
		blocker.WithClock(opts.Now),
		blocker.WithTick(opts.Tick),
		blocker.WithLogger(log),
	)
	th := theme.Default()
	m := &Model{
		svc:     opts.Service,
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
		theme:   th,
		points:  cache.New(remote),
		filter:  cache.NewFilter(),
		blocker: blk,
		gate:    &switchAffordance{enabled: true},
		create:  &switchAffordance{},
		keys:    defaultKeys(),
		help:    help.New(),
	}
	m.blocker.Register(m.gate)

	m.info = presenter.NewInfo(m.points, th.Header)
	m.filters = presenter.NewFilters(m.points, m.filter, th.Bar, opts.Now, log)
	m.board = presenter.NewBoard(presenter.Options{
		Context: ctx,
		Points:  m.points,
		Filter:  m.filter,
		Blocker: m.blocker,
		Create:  m.create,
		Theme:   th,
		Now:     opts.Now,
		Tick:    opts.Tick,
		Logger:  log,
	})
	m.info.Init()
	m.filters.Init()
	m.board.Init()
	return m
}

// Init loads the trip and starts watching the store.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.points.Init(m.ctx), startWatchCmd(m.ctx, m.svc))
}

// Update routes messages to the models, the blocker and the presenters.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.log.Debug("update", "msg", events.Describe(msg))
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// layout is width independent.
	case cache.LoadedMsg:
		if m.points.ResolveLoad(msg) && msg.Err != nil {
			m.log.Error("initial load failed", "err", msg.Err)
			m.setStatus("load failed: " + msg.Err.Error())
		}
	case cache.ReloadedMsg:
		changes, err := m.points.ResolveReload(msg)
		switch {
		case err != nil:
			m.log.Warn("reload failed", "err", err)
		case len(changes) > 0:
			m.log.Info("reloaded", "changes", changes)
		}
	case blocker.ReleaseMsg, blocker.TimeoutMsg:
		m.blocker.Update(msg)
	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn("watch unavailable", "err", msg.err)
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = appendCmd(cmds, m.waitForWatch())
	case watchEventMsg:
		m.log.Debug("store changed", "type", msg.event.Type, "bucket", msg.event.Bucket)
		m.reloadPending = true
		cmds = appendCmd(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
		if m.ctx.Err() == nil {
			cmds = appendCmd(cmds, startWatchCmd(m.ctx, m.svc))
		}
	case tea.KeyPressMsg:
		cmds = appendCmd(cmds, m.handleKey(msg))
	default:
		if cmd, ok := m.board.Update(msg); ok {
			cmds = appendCmd(cmds, cmd)
		}
	}

	cmds = appendCmd(cmds, m.flushReload())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Force) {
		return m.quit()
	}
	if !m.gate.enabled {
		m.log.Debug("key dropped while blocked", "key", msg.String())
		return nil
	}
	if m.board.Editing() {
		cmd, _ := m.board.HandleKey(msg)
		return cmd
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	if cmd, ok := m.board.HandleKey(msg); ok {
		return cmd
	}
	if cmd, ok := m.filters.HandleKey(msg); ok {
		return cmd
	}
	return nil
}

// flushReload runs a deferred reload once nothing would be clobbered by it.
func (m *Model) flushReload() tea.Cmd {
	if !m.reloadPending || m.blocker.Blocked() || m.board.Editing() || m.points.State() != cache.Ready {
		return nil
	}
	m.reloadPending = false
	return m.points.Reload(m.ctx)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.stopWatch()
	m.cancel()
	return tea.Quit
}

func (m *Model) setStatus(s string) {
	m.status = s
}

// View renders the header, the bars, the board and the footer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var sections []string
	for _, s := range []string{m.info.View(), m.filters.View(), m.board.View()} {
		if strings.TrimSpace(s) != "" {
			sections = append(sections, s)
		}
	}
	sections = append(sections, m.footer())
	return strings.Join(sections, "\n\n")
}

func (m *Model) footer() string {
	th := m.theme.Footer
	var lines []string
	if m.blocker.Blocked() {
		lines = append(lines, th.Blocked.Render("Working..."))
	} else if m.status != "" {
		lines = append(lines, th.Status.Render(m.status))
	}
	if m.board.Editing() {
		lines = append(lines, th.Help.Render(m.help.ShortHelpView(formKeys)))
	} else {
		m.keys.Create.SetEnabled(m.create.enabled)
		lines = append(lines, th.Help.Render(m.help.View(m.keys)))
	}
	return strings.Join(lines, "\n")
}

// Run launches the interactive TUI program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func appendCmd(cmds []tea.Cmd, cmd tea.Cmd) []tea.Cmd {
	if cmd == nil {
		return cmds
	}
	return append(cmds, cmd)
}

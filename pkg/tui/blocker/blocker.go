// Package blocker gates user input while a remote mutation is outstanding.
//
// Block disables every registered affordance and arms an upper-limit timer.
// Unblock re-enables them once the outermost block is released, but never
// before the lower limit has elapsed so the busy state does not flicker. If
// the upper limit passes first the blocker releases on its own and every
// outstanding token goes stale.
package blocker

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/logging"
	"tableflip.dev/trip/pkg/tui/uiutil"
)

const (
	DefaultLower = 350 * time.Millisecond
	DefaultUpper = time.Second
)

// Affordance is an input surface the blocker switches on and off.
type Affordance interface {
	SetEnabled(enabled bool)
}

// AffordanceFunc adapts a plain function to Affordance.
type AffordanceFunc func(enabled bool)

func (f AffordanceFunc) SetEnabled(enabled bool) { f(enabled) }

// Token is returned by Block and handed back to Unblock.
type Token struct {
	gen uint64
}

// ReleaseMsg fires when a deferred release is due.
type ReleaseMsg struct{ Gen uint64 }

// Describe implements the logging helper.
func (m ReleaseMsg) Describe() string { return fmt.Sprintf("gen:%d", m.Gen) }

// TimeoutMsg fires when the upper limit of a block passes.
type TimeoutMsg struct{ Gen uint64 }

// Describe implements the logging helper.
func (m TimeoutMsg) Describe() string { return fmt.Sprintf("gen:%d", m.Gen) }

// Blocker is reentrant: nested Block/Unblock pairs collapse into a single
// disable/enable transition around the outermost pair. It is driven from the
// Bubble Tea update loop and is not safe for concurrent use.
type Blocker struct {
	lower, upper time.Duration
	now          uiutil.Clock
	tick         uiutil.TickFunc
	log          *slog.Logger

	affordances []Affordance

	gen       uint64
	depth     int
	pending   bool
	blockedAt time.Time
}

// Option configures a Blocker.
type Option func(*Blocker)

// WithLimits overrides the lower and upper limits.
func WithLimits(lower, upper time.Duration) Option {
	return func(b *Blocker) {
		b.lower, b.upper = lower, upper
	}
}

// WithClock overrides time.Now.
func WithClock(c uiutil.Clock) Option {
	return func(b *Blocker) { b.now = c }
}

// WithTick overrides tea.Tick.
func WithTick(t uiutil.TickFunc) Option {
	return func(b *Blocker) { b.tick = t }
}

// WithLogger sets the logger used for forced releases.
func WithLogger(l *slog.Logger) Option {
	return func(b *Blocker) { b.log = l }
}

// New builds a Blocker with the default limits.
func New(opts ...Option) *Blocker {
	b := &Blocker{lower: DefaultLower, upper: DefaultUpper}
	for _, opt := range opts {
		opt(b)
	}
	b.now = uiutil.OrNow(b.now)
	b.tick = uiutil.OrTick(b.tick)
	if b.log == nil {
		b.log = logging.Discard()
	}
	return b
}

// Register adds affordances. They are disabled straight away if a block is
// in progress.
func (b *Blocker) Register(affordances ...Affordance) {
	for _, a := range affordances {
		if a == nil {
			continue
		}
		b.affordances = append(b.affordances, a)
		if b.Blocked() {
			a.SetEnabled(false)
		}
	}
}

// Blocked reports whether input is currently disabled.
func (b *Blocker) Blocked() bool {
	return b.depth > 0 || b.pending
}

// Block disables input. The returned command arms the upper-limit timer and
// is nil for nested blocks.
func (b *Blocker) Block() (Token, tea.Cmd) {
	if b.depth > 0 {
		b.depth++
		return Token{gen: b.gen}, nil
	}
	wasBlocked := b.pending
	b.gen++
	b.depth = 1
	b.pending = false
	b.blockedAt = b.now()
	if !wasBlocked {
		b.setEnabled(false)
	}
	gen := b.gen
	return Token{gen: gen}, b.tick(b.upper, func(time.Time) tea.Msg { return TimeoutMsg{Gen: gen} })
}

// Unblock releases one level of blocking. Stale tokens, from before a forced
// release, are ignored. The outermost release is deferred until the lower
// limit has elapsed, in which case the returned command delivers ReleaseMsg.
func (b *Blocker) Unblock(tok Token) tea.Cmd {
	if tok.gen != b.gen || b.depth == 0 {
		return nil
	}
	b.depth--
	if b.depth > 0 {
		return nil
	}
	elapsed := b.now().Sub(b.blockedAt)
	if elapsed >= b.lower {
		b.release()
		return nil
	}
	b.pending = true
	gen := b.gen
	return b.tick(b.lower-elapsed, func(time.Time) tea.Msg { return ReleaseMsg{Gen: gen} })
}

// Update consumes the blocker's own timer messages.
func (b *Blocker) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ReleaseMsg:
		if msg.Gen == b.gen && b.pending && b.depth == 0 {
			b.release()
		}
		return true
	case TimeoutMsg:
		if msg.Gen == b.gen && b.Blocked() {
			b.log.Warn("blocker upper limit reached, forcing release", "depth", b.depth, "upper", b.upper)
			b.release()
		}
		return true
	}
	return false
}

func (b *Blocker) release() {
	b.depth = 0
	b.pending = false
	b.gen++
	b.setEnabled(true)
}

func (b *Blocker) setEnabled(enabled bool) {
	for _, a := range b.affordances {
		a.SetEnabled(enabled)
	}
}

package blocker

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type tick struct {
	d   time.Duration
	msg tea.Msg
}

type recorder struct{ ticks []tick }

func (r *recorder) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	msg := fn(time.Time{})
	r.ticks = append(r.ticks, tick{d: d, msg: msg})
	return func() tea.Msg { return msg }
}

type toggle struct{ states []bool }

func (t *toggle) SetEnabled(enabled bool) { t.states = append(t.states, enabled) }

func (t *toggle) enabled() bool {
	return len(t.states) == 0 || t.states[len(t.states)-1]
}

func setup() (*Blocker, *fakeClock, *recorder, *toggle) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	rec := &recorder{}
	tg := &toggle{}
	b := New(WithClock(clock.now), WithTick(rec.tick), WithLimits(350*time.Millisecond, time.Second))
	b.Register(tg)
	return b, clock, rec, tg
}

func TestBlockDisablesAndArmsTimeout(t *testing.T) {
	b, _, rec, tg := setup()
	_, cmd := b.Block()
	if cmd == nil || !b.Blocked() || tg.enabled() {
		t.Fatalf("expected blocked with timeout command")
	}
	if len(rec.ticks) != 1 || rec.ticks[0].d != time.Second {
		t.Fatalf("expected upper-limit tick, got %+v", rec.ticks)
	}
	if _, ok := rec.ticks[0].msg.(TimeoutMsg); !ok {
		t.Fatalf("expected TimeoutMsg, got %T", rec.ticks[0].msg)
	}
}

func TestUnblockWaitsForLowerLimit(t *testing.T) {
	b, clock, rec, tg := setup()
	tok, _ := b.Block()
	clock.advance(100 * time.Millisecond)

	cmd := b.Unblock(tok)
	if cmd == nil || !b.Blocked() {
		t.Fatal("release must be deferred before the lower limit")
	}
	last := rec.ticks[len(rec.ticks)-1]
	if last.d != 250*time.Millisecond {
		t.Fatalf("expected remaining 250ms, got %v", last.d)
	}
	if !b.Update(cmd()) {
		t.Fatal("release message not consumed")
	}
	if b.Blocked() || !tg.enabled() {
		t.Fatal("expected released after ReleaseMsg")
	}
}

func TestUnblockAfterLowerLimitReleasesImmediately(t *testing.T) {
	b, clock, _, tg := setup()
	tok, _ := b.Block()
	clock.advance(500 * time.Millisecond)
	if cmd := b.Unblock(tok); cmd != nil {
		t.Fatal("no deferral expected past the lower limit")
	}
	if b.Blocked() || !tg.enabled() {
		t.Fatal("expected immediate release")
	}
}

func TestNestedBlocksCollapse(t *testing.T) {
	b, clock, _, tg := setup()
	outer, _ := b.Block()
	inner, cmd := b.Block()
	if cmd != nil {
		t.Fatal("nested block must not arm another timeout")
	}
	clock.advance(time.Hour)
	b.Unblock(inner)
	if !b.Blocked() {
		t.Fatal("inner unblock released the outer block")
	}
	b.Unblock(outer)
	if b.Blocked() {
		t.Fatal("outer unblock must release")
	}
	if len(tg.states) != 2 || tg.states[0] || !tg.states[1] {
		t.Fatalf("expected exactly one disable/enable pair, got %v", tg.states)
	}
}

func TestTimeoutForcesReleaseAndStalesTokens(t *testing.T) {
	b, _, _, tg := setup()
	tok, timeout := b.Block()

	b.Update(timeout())
	if b.Blocked() || !tg.enabled() {
		t.Fatal("timeout must force release")
	}

	next, _ := b.Block()
	if cmd := b.Unblock(tok); cmd != nil || !b.Blocked() {
		t.Fatal("stale token must not release a newer block")
	}
	b.Update(timeout())
	if !b.Blocked() {
		t.Fatal("stale timeout must not release a newer block")
	}
	_ = next
}

func TestBlockDuringPendingReleaseKeepsInputDisabled(t *testing.T) {
	b, clock, _, tg := setup()
	tok, _ := b.Block()
	release := b.Unblock(tok)
	if release == nil {
		t.Fatal("expected deferred release")
	}
	second, timeout := b.Block()
	if timeout == nil {
		t.Fatal("new outermost block must arm its own timeout")
	}
	b.Update(release())
	if !b.Blocked() {
		t.Fatal("old release must not end the new block")
	}
	clock.advance(time.Second)
	b.Unblock(second)
	if b.Blocked() || !tg.enabled() {
		t.Fatal("expected release")
	}
	if len(tg.states) != 2 {
		t.Fatalf("affordance toggled more than once: %v", tg.states)
	}
}

func TestRegisterWhileBlockedDisablesNewAffordance(t *testing.T) {
	b, _, _, _ := setup()
	b.Block()
	late := &toggle{}
	b.Register(late)
	if late.enabled() {
		t.Fatal("late affordance must start disabled")
	}
	if b.Update(tea.KeyPressMsg{}) {
		t.Fatal("unrelated messages must not be consumed")
	}
}

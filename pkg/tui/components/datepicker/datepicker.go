// Package datepicker shifts an instant with a pair of keys bound to a view
// node. Owners must Destroy pickers when the node goes away.
package datepicker

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/tui/view"
)

// Options configures a picker.
type Options struct {
	EarlierKey string
	LaterKey   string
	// Step defaults to one hour.
	Step    time.Duration
	Initial time.Time
	// OnChange receives every newly picked instant.
	OnChange func(time.Time) tea.Cmd
}

// Picker is attached to exactly one node.
type Picker struct {
	node    *view.Node
	opts    Options
	current time.Time
}

// Attach binds the picker's keys on node.
func Attach(node *view.Node, opts Options) *Picker {
	if opts.Step <= 0 {
		opts.Step = time.Hour
	}
	p := &Picker{node: node, opts: opts, current: opts.Initial}
	node.On(opts.EarlierKey, func(tea.KeyPressMsg) tea.Cmd { return p.shift(-opts.Step) })
	node.On(opts.LaterKey, func(tea.KeyPressMsg) tea.Cmd { return p.shift(opts.Step) })
	return p
}

// Value is the currently picked instant.
func (p *Picker) Value() time.Time { return p.current }

// Destroy unbinds the picker's keys. It is safe to call more than once.
func (p *Picker) Destroy() {
	if p == nil || p.node == nil {
		return
	}
	p.node.Off(p.opts.EarlierKey)
	p.node.Off(p.opts.LaterKey)
	p.node = nil
}

// Active reports whether the picker is still attached.
func (p *Picker) Active() bool { return p != nil && p.node != nil }

func (p *Picker) shift(d time.Duration) tea.Cmd {
	p.current = p.current.Add(d)
	if p.opts.OnChange == nil {
		return nil
	}
	return p.opts.OnChange(p.current)
}

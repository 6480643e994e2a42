// Package view is a small retained-mode layer on top of Bubble Tea. A
// rendered Node is immutable text plus the key handlers bound to it; nodes
// live in ordered Containers, and the root model prints the tree from its
// View method. Re-rendering always produces a fresh Node, so handlers are
// bound again after every render.
package view

import (
	"errors"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// ErrNotMounted is returned when replacing a view that is not in a container.
var ErrNotMounted = errors.New("view: element not mounted")

// Handler reacts to a key press routed to a node.
type Handler func(tea.KeyPressMsg) tea.Cmd

// Node is one rendered element.
type Node struct {
	text     string
	handlers map[string]Handler
	children *Container
	parent   *Container
}

// NewNode wraps rendered text.
func NewNode(text string) *Node {
	return &Node{text: text, handlers: map[string]Handler{}}
}

// Text is the node's own rendering, without children.
func (n *Node) Text() string { return n.text }

// Mounted reports whether the node sits in a container.
func (n *Node) Mounted() bool { return n.parent != nil }

// Children returns the node's mount point, creating it on first use.
func (n *Node) Children() *Container {
	if n.children == nil {
		n.children = &Container{}
	}
	return n.children
}

// On binds h to key, replacing any previous binding.
func (n *Node) On(key string, h Handler) {
	n.handlers[key] = h
}

// Off removes the binding for key.
func (n *Node) Off(key string) {
	delete(n.handlers, key)
}

// Bound reports whether key has a handler.
func (n *Node) Bound(key string) bool {
	_, ok := n.handlers[key]
	return ok
}

// Dispatch runs the handler bound to msg, if any.
func (n *Node) Dispatch(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	h, ok := n.handlers[msg.String()]
	if !ok {
		return nil, false
	}
	return h(msg), true
}

func (n *Node) String() string {
	if n.children == nil || n.children.Len() == 0 {
		return n.text
	}
	if n.text == "" {
		return n.children.String()
	}
	return n.text + "\n" + n.children.String()
}

// Position selects where Render inserts a node.
type Position int

const (
	BeforeEnd Position = iota
	AfterBegin
)

// Container is an ordered mount point.
type Container struct {
	nodes []*Node
}

// Len is the number of mounted nodes.
func (c *Container) Len() int { return len(c.nodes) }

// Nodes returns the mounted nodes in order.
func (c *Container) Nodes() []*Node { return slices.Clone(c.nodes) }

// Index returns the slot of n, or -1.
func (c *Container) Index(n *Node) int { return slices.Index(c.nodes, n) }

func (c *Container) String() string {
	parts := make([]string, 0, len(c.nodes))
	for _, n := range c.nodes {
		if s := n.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func (c *Container) insert(n *Node, pos Position) {
	detach(n)
	n.parent = c
	if pos == AfterBegin {
		c.nodes = slices.Insert(c.nodes, 0, n)
		return
	}
	c.nodes = append(c.nodes, n)
}

func detach(n *Node) {
	if n == nil || n.parent == nil {
		return
	}
	c := n.parent
	if i := c.Index(n); i >= 0 {
		c.nodes = slices.Delete(c.nodes, i, i+1)
	}
	n.parent = nil
}

// swap puts next into prev's slot.
func swap(prev, next *Node) error {
	c := prev.parent
	if c == nil {
		return ErrNotMounted
	}
	i := c.Index(prev)
	if i < 0 {
		return ErrNotMounted
	}
	if prev == next {
		return nil
	}
	detach(next)
	// detaching next may have shifted prev.
	i = c.Index(prev)
	c.nodes[i] = next
	next.parent = c
	prev.parent = nil
	return nil
}

// View is anything that renders into a Node.
type View interface {
	// Element renders lazily and returns the current node.
	Element() *Node
	// RemoveElement unmounts and drops the node, running remove hooks.
	RemoveElement()
}

// Render mounts v's element into c.
func Render(v View, c *Container, pos Position) {
	c.insert(v.Element(), pos)
}

// Replace mounts next's element in the slot occupied by prev's element.
// prev keeps its node so it can be swapped back later.
func Replace(next, prev View) error {
	if next == nil || prev == nil {
		return errors.New("view: cannot replace missing views")
	}
	return swap(prev.Element(), next.Element())
}

// Remove unmounts v and drops its node. Nil views are ignored.
func Remove(v View) {
	if v == nil {
		return
	}
	v.RemoveElement()
}

// Base renders a template into a node on first use. Components embed it and
// fill in Template, and optionally Restore and Removed.
type Base struct {
	// Template produces the markup from the component's current data.
	Template func() string
	// Restore binds handlers to a freshly rendered node.
	Restore func(*Node)
	// Removed runs whenever the node goes away, to tear down collaborators.
	Removed func()

	node *Node
}

// Element implements View.
func (b *Base) Element() *Node {
	if b.node == nil {
		text := ""
		if b.Template != nil {
			text = b.Template()
		}
		b.node = NewNode(text)
		if b.Restore != nil {
			b.Restore(b.node)
		}
	}
	return b.node
}

// Rendered reports whether the view currently holds a node.
func (b *Base) Rendered() bool { return b.node != nil }

// RemoveElement implements View.
func (b *Base) RemoveElement() {
	if b.node == nil {
		return
	}
	if b.Removed != nil {
		b.Removed()
	}
	detach(b.node)
	b.node = nil
}

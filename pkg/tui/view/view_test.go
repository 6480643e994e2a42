package view

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
)

type label struct {
	Base
	text string
}

func newLabel(text string) *label {
	l := &label{text: text}
	l.Template = func() string { return l.text }
	return l
}

type counterState struct {
	Count int
	Note  string
}

type counter struct {
	Stateful[counterState]
	restores int
	removes  int
}

func newCounter() *counter {
	c := &counter{}
	c.Template = func() string { return fmt.Sprintf("count=%d note=%s", c.State().Count, c.State().Note) }
	c.Restore = func(n *Node) {
		c.restores++
		n.On("+", func(tea.KeyPressMsg) tea.Cmd {
			c.UpdateElement(func(s *counterState) { s.Count++ })
			return nil
		})
	}
	c.Removed = func() { c.removes++ }
	return c
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: s, Code: rune(s[0])}
}

func TestRenderPositions(t *testing.T) {
	var c Container
	Render(newLabel("b"), &c, BeforeEnd)
	Render(newLabel("a"), &c, AfterBegin)
	Render(newLabel("c"), &c, BeforeEnd)
	if got := c.String(); got != "a\nb\nc" {
		t.Fatalf("unexpected order %q", got)
	}
}

func TestReplaceSwapsInPlace(t *testing.T) {
	var c Container
	a, b, x := newLabel("a"), newLabel("b"), newLabel("x")
	Render(a, &c, BeforeEnd)
	Render(b, &c, BeforeEnd)

	if err := Replace(x, a); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := c.String(); got != "x\nb" {
		t.Fatalf("unexpected after replace %q", got)
	}
	if a.Element().Mounted() {
		t.Fatal("replaced node still mounted")
	}
	if err := Replace(newLabel("y"), newLabel("never")); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("expected ErrNotMounted, got %v", err)
	}
}

func TestRemoveDropsNodeAndRunsHook(t *testing.T) {
	var c Container
	v := newCounter()
	Render(v, &c, BeforeEnd)
	Remove(v)
	if c.Len() != 0 || v.Rendered() || v.removes != 1 {
		t.Fatalf("len=%d rendered=%v removes=%d", c.Len(), v.Rendered(), v.removes)
	}
	Remove(nil)
}

func TestUpdateElementReplacesNodeAndRebinds(t *testing.T) {
	var c Container
	Render(newLabel("top"), &c, BeforeEnd)
	v := newCounter()
	Render(v, &c, BeforeEnd)
	Render(newLabel("bottom"), &c, BeforeEnd)
	first := v.Element()

	if _, ok := first.Dispatch(key("+")); !ok {
		t.Fatal("handler not bound")
	}
	second := v.Element()
	if second == first {
		t.Fatal("expected a fresh node after UpdateElement")
	}
	if first.Mounted() || c.Index(second) != 1 {
		t.Fatalf("new node not in old slot: %d", c.Index(second))
	}
	if got := c.String(); got != "top\ncount=1 note=\nbottom" {
		t.Fatalf("stale render %q", got)
	}
	if v.restores != 2 || v.removes != 1 {
		t.Fatalf("restores=%d removes=%d", v.restores, v.removes)
	}
	if _, ok := second.Dispatch(key("+")); !ok {
		t.Fatal("handler lost after re-render")
	}
	if v.State().Count != 2 {
		t.Fatalf("count=%d", v.State().Count)
	}
}

func TestSetStateDoesNotRender(t *testing.T) {
	var c Container
	v := newCounter()
	Render(v, &c, BeforeEnd)
	node := v.Element()

	v.SetState(func(s *counterState) { s.Note = "draft" })
	if v.Element() != node || c.String() != "count=0 note=" {
		t.Fatalf("SetState re-rendered: %q", c.String())
	}
	v.UpdateElement(nil)
	if c.String() != "count=0 note=draft" {
		t.Fatalf("UpdateElement must show merged state, got %q", c.String())
	}
}

func TestNodeChildrenAndHandlers(t *testing.T) {
	n := NewNode("list")
	Render(newLabel("row"), n.Children(), BeforeEnd)
	if n.String() != "list\nrow" {
		t.Fatalf("unexpected %q", n.String())
	}
	n.On("x", func(tea.KeyPressMsg) tea.Cmd { return nil })
	if !n.Bound("x") {
		t.Fatal("expected binding")
	}
	n.Off("x")
	if _, ok := n.Dispatch(key("x")); ok {
		t.Fatal("handler survived Off")
	}
}

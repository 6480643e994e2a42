package teaui

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Create key.Binding
	Sort   key.Binding
	Filter key.Binding
	Help   key.Binding
	Quit   key.Binding
	Force  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Create: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new point")),
		Sort:   key.NewBinding(key.WithKeys("d", "t", "p"), key.WithHelp("d/t/p", "sort")),
		Filter: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "filter")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Create, k.Edit, k.Sort, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Edit},
		{k.Create, k.Sort, k.Filter},
		{k.Help, k.Quit, k.Force},
	}
}

// formKeys describe the open form; they are handled by the form itself.
var formKeys = []key.Binding{
	key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "change")),
	key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle offer")),
	key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[ ]", "start")),
	key.NewBinding(key.WithKeys("{", "}"), key.WithHelp("{ }", "end")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
}

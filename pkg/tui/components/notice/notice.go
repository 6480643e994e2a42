// Package notice renders the loading, empty and failed banners that stand in
// for the point list.
package notice

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/trip/pkg/tui/view"
)

const (
	Loading = "Loading..."
	Failed  = "Failed to load latest route information"
)

// Notice is a single line message.
type Notice struct {
	view.Base
	message string
}

// New builds a notice.
func New(message string, style lipgloss.Style) *Notice {
	n := &Notice{message: message}
	n.Template = func() string { return style.Render(n.message) }
	return n
}

// Message is the text shown.
func (n *Notice) Message() string { return n.message }

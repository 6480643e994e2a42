package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Bar    BarTheme
	Row    RowTheme
	Form   FormTheme
	Notice lipgloss.Style
	Footer FooterTheme
}

// HeaderTheme styles the trip summary at the top of the screen.
type HeaderTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Dates lipgloss.Style
	Cost  lipgloss.Style
}

// BarTheme styles the filter and sort bars.
type BarTheme struct {
	Label    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
}

// RowTheme styles point rows on the board.
type RowTheme struct {
	Normal   lipgloss.Style
	Cursor   lipgloss.Style
	Aborting lipgloss.Style
	Type     lipgloss.Style
	Time     lipgloss.Style
	Price    lipgloss.Style
	Offer    lipgloss.Style
}

// FormTheme styles the edit and create form.
type FormTheme struct {
	Frame    lipgloss.Style
	Aborting lipgloss.Style
	Label    lipgloss.Style
	Field    lipgloss.Style
	Focused  lipgloss.Style
	Muted    lipgloss.Style
	Busy     lipgloss.Style
	Problem  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Blocked lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("244")
	danger := lipgloss.Color("203")

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Frame: lipgloss.NewStyle().Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Dates: lipgloss.NewStyle().Foreground(muted),
			Cost:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		},
		Bar: BarTheme{
			Label:    lipgloss.NewStyle().Foreground(muted),
			Item:     lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true),
			Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		},
		Row: RowTheme{
			Normal:   lipgloss.NewStyle(),
			Cursor:   lipgloss.NewStyle().Reverse(true),
			Aborting: lipgloss.NewStyle().Foreground(danger).Bold(true),
			Type:     lipgloss.NewStyle().Bold(true),
			Time:     lipgloss.NewStyle().Foreground(muted),
			Price:    lipgloss.NewStyle().Foreground(accent),
			Offer:    lipgloss.NewStyle().Foreground(muted),
		},
		Form: FormTheme{
			Frame:    frame,
			Aborting: frame.BorderForeground(danger),
			Label:    lipgloss.NewStyle().Foreground(muted).Width(13),
			Field:    lipgloss.NewStyle(),
			Focused:  lipgloss.NewStyle().Foreground(accent).Bold(true),
			Muted:    lipgloss.NewStyle().Foreground(muted),
			Busy:     lipgloss.NewStyle().Foreground(muted).Italic(true),
			Problem:  lipgloss.NewStyle().Foreground(danger),
		},
		Notice: lipgloss.NewStyle().Padding(1, 2).Foreground(muted),
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:  lipgloss.NewStyle().Foreground(muted),
			Blocked: lipgloss.NewStyle().Foreground(danger),
		},
	}
}

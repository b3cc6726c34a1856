package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: warm paper reds and golds, readable for young learners.
var (
	Primary   = lipgloss.Color("#E11D48") // Cinnabar
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Gold
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#FDF8F0") // Rice paper
	TextDim   = lipgloss.Color("#A8A29E") // Stone
	BgDark    = lipgloss.Color("#1C1917") // Ink
	BgCard    = lipgloss.Color("#292524") // Inkstone
	Border    = lipgloss.Color("#44403C") // Stone dark
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Prompt frames the character or pinyin a question asks about.
	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 4)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Star = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Combo = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Difficulty returns the accent color for a difficulty name.
func Difficulty(name string) lipgloss.Style {
	switch name {
	case "medium":
		return lipgloss.NewStyle().Foreground(Accent).Bold(true)
	case "hard":
		return lipgloss.NewStyle().Foreground(Primary).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	}
}

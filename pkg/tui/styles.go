package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/stefanpenner/brandpilot/pkg/program"
)

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorOrange      = lipgloss.Color("#D19A66")
)

// chartColors cycles per brand, largest first.
var chartColors = []lipgloss.Color{
	"#7D56F4", "#25A065", "#E5C07B", "#56B6C2", "#E05252",
	"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
}

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusMsgStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)
)

// Filter bar styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorPurple).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Padding(0, 1)

	SearchBarStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	SearchCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)
)

// Column header colors, one per status
var statusColors = map[program.Status]lipgloss.Color{
	program.StatusActive:  ColorBlue,
	program.StatusPending: ColorYellow,
	program.StatusEnded:   ColorGray,
}

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGrayDim).
			Padding(0, 1)

	SelectedCardStyle = CardStyle.
				BorderForeground(ColorPurple)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	CardMutedStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	RemainingStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	OverTargetStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)
)

// Payment badge styles, keyed by display variant
var badgeStyles = map[program.BadgeVariant]lipgloss.Style{
	program.BadgeDefault: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(ColorPurple).
		Padding(0, 1),
	program.BadgeSecondary: lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorGrayDim).
		Padding(0, 1),
	program.BadgeOutline: lipgloss.NewStyle().
		Foreground(ColorOffWhite).
		Padding(0, 1),
}

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	ModalLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(18)

	ModalFocusedLabelStyle = ModalLabelStyle.
				Foreground(ColorPurple).
				Bold(true)

	ModalValueStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// Input styles
var (
	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true)
)

// Card heights are fixed so columns can be windowed by card count.
const cardHeight = 12

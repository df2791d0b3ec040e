package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the board.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Detail    key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Search    key.Binding
	NextBrand key.Binding
	PrevBrand key.Binding
	Chart     key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add program"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit program"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextBrand: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "next brand"),
		),
		PrevBrand: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "previous brand"),
		),
		Chart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle chart"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload catalog"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "←→ column  ↑↓ card  a add  e edit  d delete  / search  b/B brand  c chart  ? help"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k", "Previous card"},
		{"↓/j", "Next card"},
		{"←/h", "Previous column"},
		{"→/l", "Next column"},
		{"enter", "Program details"},
		{"a", "Add program"},
		{"e", "Edit program"},
		{"d", "Delete program (with confirmation)"},
		{"/", "Search brand, description or id"},
		{"b", "Next brand filter"},
		{"B", "Previous brand filter"},
		{"c", "Toggle brand chart"},
		{"R", "Reload catalog"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}

// FormHelp returns the footer help text while the program form is open.
func (k KeyMap) FormHelp() string {
	return "tab/↓ next  shift+tab/↑ prev  ←→ choose  alt+enter newline  enter/ctrl+s save  esc cancel"
}

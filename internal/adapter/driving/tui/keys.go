package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Dashboard
	Up     key.Binding
	Down   key.Binding
	Submit key.Binding // Add the typed repository
	Open   key.Binding // Open the selected repository or issue
	Focus  key.Binding // Toggle between input and list

	// Repository
	PrevPage key.Binding
	NextPage key.Binding
	Back     key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
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
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch focus"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
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

// dashboardKeys adapts KeyMap to help.KeyMap for the dashboard.
type dashboardKeys struct {
	KeyMap
	inputFocused bool
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	if k.inputFocused {
		return []key.Binding{k.Submit, k.Focus, k.Help}
	}
	return []key.Binding{k.Up, k.Down, k.Open, k.Focus, k.Quit}
}

func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Focus},
		{k.Up, k.Down, k.Open},
		{k.Help, k.Quit},
	}
}

// repositoryKeys adapts KeyMap to help.KeyMap for the repository screen.
type repositoryKeys struct {
	KeyMap
}

func (k repositoryKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.PrevPage, k.NextPage, k.Back, k.Quit}
}

func (k repositoryKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.PrevPage, k.NextPage},
		{k.Back, k.Help, k.Quit},
	}
}

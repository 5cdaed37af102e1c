package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Enter   key.Binding
	Back    key.Binding
	Cancel  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Home    key.Binding
	Faves   key.Binding
	Profile key.Binding

	// Actions
	Quit     key.Binding
	Help     key.Binding
	Favorite key.Binding
	Remove   key.Binding
	Refresh  key.Binding
	Login    key.Binding
	Register key.Binding
	Edit     key.Binding
	Logout   key.Binding
	Account  key.Binding

	// Forms
	SwitchToRegister key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "h", "left"),
			key.WithHelp("esc", "back"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "previous tab"),
		),
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Faves: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "favorites"),
		),
		Profile: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "profile"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f", "favorite"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "f"),
			key.WithHelp("x", "remove"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Login: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "log in"),
		),
		Register: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "register"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit profile"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Account: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "account"),
		),

		// Forms
		SwitchToRegister: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "create an account"),
		),

		// Confirmations
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

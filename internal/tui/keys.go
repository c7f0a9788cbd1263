package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	SwitchPane key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Landing    key.Binding
	Catalog    key.Binding
	Account    key.Binding
	About      key.Binding

	// Actions
	Quit    key.Binding
	Help    key.Binding
	Escape  key.Binding
	Enter   key.Binding
	Borrow  key.Binding
	Buy     key.Binding
	Remove  key.Binding
	Return  key.Binding
	Renew   key.Binding
	Logout  key.Binding
	Refresh key.Binding

	// Catalog filtering
	Filter      key.Binding
	Sort        key.Binding
	Subject     key.Binding
	WithCover   key.Binding
	WithAuthor  key.Binding
	Readable    key.Binding
	Classic     key.Binding
	Popular     key.Binding
	ShortTitle  key.Binding
	ClearFilter key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("h", "l", "left", "right"),
			key.WithHelp("h/l", "switch list"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous page"),
		),
		Landing: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Catalog: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "catalog"),
		),
		Account: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "account"),
		),
		About: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "about"),
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
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Borrow: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "borrow"),
		),
		Buy: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "buy"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
		Return: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "return"),
		),
		Renew: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "renew"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),

		// Catalog filtering
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Subject: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "subject"),
		),
		WithCover: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "has cover"),
		),
		WithAuthor: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "has author"),
		),
		Readable: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "readable"),
		),
		Classic: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "classic"),
		),
		Popular: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "popular"),
		),
		ShortTitle: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "short title"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "clear filters"),
		),
	}
}

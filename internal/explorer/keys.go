package explorer

import "github.com/charmbracelet/bubbles/key"

// inputKeys holds key bindings while the topic field has focus.
type inputKeys struct {
	Submit key.Binding
	Tab    key.Binding
	Quit   key.Binding
}

// ShortHelp returns the input bindings for the help bar.
func (k inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Tab, k.Quit}
}

// FullHelp returns the input bindings grouped for expanded help.
func (k inputKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit}, {k.Tab, k.Quit}}
}

// listKeys holds key bindings while the subtopic list has focus.
type listKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Remove key.Binding
	Open   key.Binding
	Tab    key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns the list bindings for the help bar.
func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Remove, k.Open, k.Tab, k.Help, k.Quit}
}

// FullHelp returns the list bindings grouped for expanded help.
func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Remove, k.Open},
		{k.Tab, k.Help, k.Quit},
	}
}

// InputKeyMap returns the key bindings for the topic field.
func InputKeyMap() inputKeys {
	return inputKeys{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab", "subtopics"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ListKeyMap returns the key bindings for the subtopic list.
func ListKeyMap() listKeys {
	return listKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "resources"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open link"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "/"),
			key.WithHelp("tab", "topic"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

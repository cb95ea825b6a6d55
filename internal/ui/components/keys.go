package components

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings shared by the quiz screens.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Submit key.Binding
	Back   key.Binding
	Toggle key.Binding
}

// DefaultKeyMap returns the standard bindings.
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
			key.WithHelp("Enter", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scenario"),
		),
	}
}

// Keys is the shared key map.
var Keys = DefaultKeyMap()

package explorer

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help.KeyMap for the focused widget,
// providing context-aware help bar content.
func HelpBindings(focus Focus) help.KeyMap {
	if focus == FocusList {
		return ListKeyMap()
	}
	return InputKeyMap()
}

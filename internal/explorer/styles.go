package explorer

import "github.com/charmbracelet/lipgloss"

// CursorMarker is the prefix shown on the selected subtopic row.
const CursorMarker = "▸ "

// RemoveMarker is the remove control shown on every subtopic row.
const RemoveMarker = "✕"

var (
	accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedText   = lipgloss.NewStyle().Foreground(dim)
	linkStyle   = lipgloss.NewStyle().Foreground(accent).Underline(true)
	sectionText = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})

	findStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})
	hideStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"})
	loadingStyle = lipgloss.NewStyle().Foreground(dim)
	removeStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	buttonStyle     = lipgloss.NewStyle().Foreground(accent).Bold(true)
	busyButtonStyle = lipgloss.NewStyle().Foreground(dim)
)

// ControlBadge renders the resource control label for a subtopic state.
func ControlBadge(state SubtopicState) string {
	switch state {
	case Loading:
		return loadingStyle.Render("[" + LabelLoading + "]")
	case Expanded:
		return hideStyle.Render("[" + LabelHide + "]")
	default:
		return findStyle.Render("[" + LabelFind + "]")
	}
}

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent)
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}

package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/learnpath/internal/backend"
)

// LandingTitle is the heading shown while no subtopics are listed.
const LandingTitle = "AI Resource Finder"

// GeneratingLabel replaces the generate control while a plan is outstanding.
const GeneratingLabel = "Generating…"

// View renders the heading, topic field, subtopic list and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	listStyle := UnfocusedBorder()
	if m.focus == FocusList {
		listStyle = FocusedBorder()
	}
	listStyle = listStyle.
		Width(max(m.width-borderChrome, 0)).
		Height(m.listHeight())

	parts := []string{
		m.viewHeading(),
		m.viewTopicRow(),
		"",
		listStyle.Render(m.viewport.View()),
		m.help.View(HelpBindings(m.focus)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeading() string {
	if m.session.Len() == 0 {
		return headerStyle.Render(LandingTitle)
	}
	return headerStyle.Render("Learning plan: ") + titleStyle.Render(m.session.Topic())
}

// viewTopicRow renders the topic field and the generate control.
func (m Model) viewTopicRow() string {
	control := buttonStyle.Render("[ Generate ]")
	if m.session.Generating() {
		control = busyButtonStyle.Render(m.spinner.View() + " " + GeneratingLabel)
	}
	return m.input.View() + "  " + control
}

// renderList renders every subtopic row with its resource panel and returns
// the content along with the line index of the selected row.
func (m Model) renderList() (string, int) {
	items := m.session.Subtopics()
	if len(items) == 0 {
		if m.session.Generating() {
			return mutedText.Render("Generating subtopics..."), 0
		}
		return mutedText.Render("Enter a topic and press enter to generate subtopics."), 0
	}

	var lines []string
	cursorLine := 0
	for i, st := range items {
		prefix := "  "
		if i == m.cursor && m.focus == FocusList {
			prefix = CursorMarker
		}
		if i == m.cursor {
			cursorLine = len(lines)
		}
		state := m.session.State(st.Title)
		badge := ControlBadge(state)
		if state == Loading {
			badge = m.spinner.View() + " " + badge
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s  %s",
			prefix, titleStyle.Render(st.Title), badge, removeStyle.Render(RemoveMarker)))

		if bundle, ok := m.session.Bundle(st.Title); ok {
			lines = append(lines, renderPanel(bundle)...)
		}
	}
	return strings.Join(lines, "\n"), cursorLine
}

// renderPanel renders a resource bundle as indented lines.
func renderPanel(b backend.ResourceBundle) []string {
	const indent = "    "
	var lines []string

	lines = append(lines, indent+sectionText.Render("MIT OCW"))
	courses := b.Courses()
	if len(courses) == 0 {
		lines = append(lines, indent+"  "+mutedText.Render("No courses found."))
	}
	for _, c := range courses {
		lines = append(lines, indent+"  "+c.Title+"  "+linkStyle.Render(c.Href()))
	}

	lines = append(lines, indent+sectionText.Render("YouTube"))
	if len(b.Videos) == 0 {
		lines = append(lines, indent+"  "+mutedText.Render("No videos found."))
	}
	for _, v := range b.Videos {
		lines = append(lines, indent+"  "+v.Title+"  "+linkStyle.Render(v.Link))
		if v.Thumbnail != "" {
			lines = append(lines, indent+"    "+mutedText.Render("thumbnail: "+v.Thumbnail))
		}
	}
	return lines
}

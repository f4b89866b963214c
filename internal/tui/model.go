package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LookupStatus is the progress state of one subtopic's resource lookup.
type LookupStatus string

const (
	StatusPending LookupStatus = "pending"
	StatusRunning LookupStatus = "running"
	StatusFound   LookupStatus = "found"
	StatusFailed  LookupStatus = "failed"
)

// LookupState tracks the display state of a single subtopic lookup.
type LookupState struct {
	Subtopic string
	Status   LookupStatus
	Duration time.Duration
	Summary  string
}

// Model is the Bubble Tea model for resource lookup progress.
type Model struct {
	lookups    []LookupState
	spinner    spinner.Model
	width      int
	done       bool
	aborting   bool
	err        error
	cancelFunc context.CancelFunc
}

// StatusUpdateMsg reports a lookup transition for one subtopic.
type StatusUpdateMsg struct {
	Subtopic string
	Status   LookupStatus
	Progress string // "n/total" position of the subtopic
	Duration time.Duration
	Summary  string // resource counts, set when found
	Err      error  // set when failed
}

// DoneMsg signals that every lookup has settled.
type DoneMsg struct{}

// ErrorMsg signals that the batch was aborted with an error.
type ErrorMsg struct {
	Err error
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithCancelFunc sets the function called on the first quit keypress.
// Without one, quit exits immediately.
func WithCancelFunc(cancel context.CancelFunc) ModelOption {
	return func(m *Model) { m.cancelFunc = cancel }
}

// NewModel creates a Model with every subtopic pending.
func NewModel(subtopics []string, opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	lookups := make([]LookupState, len(subtopics))
	for i, name := range subtopics {
		lookups[i] = LookupState{Subtopic: name, Status: StatusPending}
	}

	m := Model{
		lookups: lookups,
		spinner: s,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusUpdateMsg:
		for i := range m.lookups {
			if m.lookups[i].Subtopic == msg.Subtopic {
				m.lookups[i].Status = msg.Status
				if msg.Duration > 0 {
					m.lookups[i].Duration = msg.Duration
				}
				if msg.Summary != "" {
					m.lookups[i].Summary = msg.Summary
				}
				break
			}
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.aborting = false
		return m, tea.Quit

	case ErrorMsg:
		m.done = true
		m.aborting = false
		m.err = msg.Err
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.done {
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancelFunc == nil || m.aborting {
				m.done = true
				return m, tea.Quit
			}
			m.aborting = true
			m.cancelFunc()
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders one line per subtopic with a status indicator.
func (m Model) View() string {
	var b strings.Builder

	for _, l := range m.lookups {
		indicator := statusIndicator(l.Status, m.spinner.View())
		line := fmt.Sprintf("  %s %s", indicator, l.Subtopic)
		if l.Summary != "" {
			line += " (" + l.Summary + ")"
		}
		if l.Duration > 0 {
			line += fmt.Sprintf(" %.1fs", l.Duration.Seconds())
		}
		b.WriteString(line + "\n")
	}

	if m.aborting && !m.done {
		b.WriteString("\n  Aborting... (press q again to force quit)\n")
	}

	if m.done {
		b.WriteString(m.footer())
	}

	return b.String()
}

// footer summarizes the found count and the total lookup time.
func (m Model) footer() string {
	found := 0
	var total time.Duration
	for _, l := range m.lookups {
		if l.Status == StatusFound {
			found++
		}
		total += l.Duration
	}
	s := fmt.Sprintf("\n  %d/%d found in %.1fs\n", found, len(m.lookups), total.Seconds())
	if m.err != nil {
		s += fmt.Sprintf("  Error: %s\n", m.err)
	}
	return s
}

// statusIndicator returns the Unicode indicator for a lookup status.
func statusIndicator(status LookupStatus, spinnerView string) string {
	switch status {
	case StatusPending:
		return "○"
	case StatusRunning:
		return spinnerView
	case StatusFound:
		return "✓"
	case StatusFailed:
		return "✗"
	default:
		return "?"
	}
}

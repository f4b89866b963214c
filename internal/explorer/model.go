package explorer

import (
	"context"
	"io"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// topChrome is the number of lines above the list: heading, topic field, gap.
const topChrome = 3

// LinkOpener opens a URL outside the terminal, typically in a browser.
type LinkOpener func(url string) error

// Option configures a Model.
type Option func(*Model)

// WithBackend sets the backend used for plan and resource requests.
func WithBackend(b Backend) Option {
	return func(m *Model) { m.backend = b }
}

// WithLogger sets the diagnostic logger. Defaults to discarding output.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithLinkOpener sets the function used by the open-link key.
func WithLinkOpener(fn LinkOpener) Option {
	return func(m *Model) { m.openLink = fn }
}

// WithInitialTopic prefills the topic field and submits it on start.
func WithInitialTopic(topic string) Option {
	return func(m *Model) { m.initialTopic = topic }
}

// WithContext sets the context passed to backend requests.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// Model is the root Bubble Tea model for the explorer TUI.
type Model struct {
	session  *Session
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	viewport viewport.Model
	inputMap inputKeys
	listMap  listKeys

	focus    Focus
	cursor   int
	width    int
	height   int
	spinning bool

	ctx          context.Context
	backend      Backend
	logger       *log.Logger
	openLink     LinkOpener
	initialTopic string
}

// NewModel creates an explorer Model with the topic field focused.
func NewModel(opts ...Option) Model {
	m := Model{
		ctx:    context.Background(),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&m)
	}

	ti := textinput.New()
	ti.Placeholder = "Enter a topic, e.g. Artificial Intelligence"
	ti.Prompt = "Topic: "
	ti.SetValue(m.initialTopic)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	m.input = ti
	m.spinner = s
	m.help = help.New()
	m.inputMap = InputKeyMap()
	m.listMap = ListKeyMap()
	m.viewport = viewport.New(0, 0)
	m.focus = FocusInput
	m.session = NewSession(m.ctx, m.backend, m.logger)
	return m
}

// Session exposes the explorer state, mainly for tests and embedding.
func (m Model) Session() *Session {
	return m.session
}

// Init blinks the cursor and submits the initial topic, if any.
func (m Model) Init() tea.Cmd {
	if m.initialTopic == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, func() tea.Msg { return submitMsg{} })
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-20, 10)
		m.viewport.Width = max(msg.Width-borderChrome, 0)
		m.viewport.Height = m.listHeight()
		m.refresh()
		return m, nil

	case submitMsg:
		return m.submit()

	case PlanMsg:
		if m.session.ApplyPlan(msg) {
			m.cursor = 0
			m.setFocus(FocusList)
			m.viewport.GotoTop()
		}
		m.refresh()
		return m, nil

	case ResourcesMsg:
		m.session.ApplyResources(msg)
		m.refresh()
		return m, nil

	case LinkOpenedMsg:
		if msg.Err != nil {
			m.logger.Printf("open %s: %v", msg.URL, msg.Err)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case tea.KeyMsg:
		if m.focus == FocusList {
			return m.handleListKey(msg)
		}
		return m.handleInputKey(msg)
	}

	if m.focus == FocusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleInputKey processes keys while the topic field has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputMap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.inputMap.Submit):
		return m.submit()
	case key.Matches(msg, m.inputMap.Tab):
		if m.session.Len() > 0 {
			m.setFocus(FocusList)
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleListKey processes keys while the subtopic list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.session.Len()

	switch {
	case key.Matches(msg, m.listMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.listMap.Tab):
		m.setFocus(FocusInput)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.listMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.listMap.Up):
		if n > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = n - 1
			}
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.listMap.Down):
		if n > 0 {
			m.cursor++
			if m.cursor >= n {
				m.cursor = 0
			}
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.listMap.Toggle):
		title := m.session.TitleAt(m.cursor)
		if title == "" {
			return m, nil
		}
		cmd := m.session.Toggle(title)
		m.refresh()
		return m, tea.Batch(cmd, m.startSpinner())

	case key.Matches(msg, m.listMap.Remove):
		title := m.session.TitleAt(m.cursor)
		if title == "" {
			return m, nil
		}
		m.session.Remove(title)
		if m.cursor >= m.session.Len() {
			m.cursor = max(m.session.Len()-1, 0)
		}
		if m.session.Len() == 0 {
			m.setFocus(FocusInput)
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.listMap.Open):
		bundle, ok := m.session.Bundle(m.session.TitleAt(m.cursor))
		if !ok || m.openLink == nil {
			return m, nil
		}
		link := bundle.FirstLink()
		if link == "" {
			return m, nil
		}
		open := m.openLink
		return m, func() tea.Msg {
			return LinkOpenedMsg{URL: link, Err: open(link)}
		}
	}

	return m, nil
}

// submit sends the topic field value to the backend.
func (m Model) submit() (tea.Model, tea.Cmd) {
	cmd := m.session.Submit(m.input.Value())
	if cmd == nil {
		return m, nil
	}
	m.refresh()
	return m, tea.Batch(cmd, m.startSpinner())
}

// startSpinner begins the spinner tick chain when something is in flight
// and no chain is running yet.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.session.Busy() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// setFocus moves keyboard focus, blurring or focusing the topic field.
func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

// listHeight returns the usable height for the subtopic list,
// accounting for the top chrome, border chrome, and the help bar.
func (m Model) listHeight() int {
	h := m.height - topChrome - borderChrome - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// refresh re-renders the list into the viewport and scrolls the
// selected row into view.
func (m *Model) refresh() {
	content, cursorLine := m.renderList()
	m.viewport.SetContent(content)
	if m.viewport.Height <= 0 {
		return
	}
	switch {
	case cursorLine < m.viewport.YOffset:
		m.viewport.SetYOffset(cursorLine)
	case cursorLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}

package explorer

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/smileynet/learnpath/internal/backend"
)

// stubBackend serves canned plans and bundles and records every call.
type stubBackend struct {
	mu        sync.Mutex
	plans     map[string][]backend.Subtopic
	bundles   map[string]backend.ResourceBundle
	planErr   error
	resErr    error
	planCalls []string
	resCalls  []string
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		plans:   make(map[string][]backend.Subtopic),
		bundles: make(map[string]backend.ResourceBundle),
	}
}

func (s *stubBackend) GeneratePlan(_ context.Context, topic string) (backend.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.planCalls = append(s.planCalls, topic)
	if s.planErr != nil {
		return backend.Plan{}, s.planErr
	}
	return backend.Plan{Subtopics: s.plans[topic]}, nil
}

func (s *stubBackend) FetchResources(_ context.Context, subtopic string) (backend.ResourceBundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resCalls = append(s.resCalls, subtopic)
	if s.resErr != nil {
		return backend.ResourceBundle{}, s.resErr
	}
	return s.bundles[subtopic], nil
}

func (s *stubBackend) planCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.planCalls)
}

func (s *stubBackend) resCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resCalls)
}

// aiBackend returns a stub answering the Artificial Intelligence scenario.
func aiBackend() *stubBackend {
	b := newStubBackend()
	b.plans["Artificial Intelligence"] = subtopics("Machine Learning", "Neural Networks")
	b.bundles["Machine Learning"] = backend.ResourceBundle{
		Course: &backend.CourseRef{Title: "6.034", Link: "ocw.mit.edu/x"},
		Videos: []backend.VideoRef{{Title: "NN intro", Link: "https://yt/1"}},
	}
	b.bundles["Neural Networks"] = backend.ResourceBundle{
		Course: &backend.CourseRef{Title: "6.S191", Link: "https://ocw.mit.edu/nn"},
	}
	return b
}

func subtopics(titles ...string) []backend.Subtopic {
	out := make([]backend.Subtopic, len(titles))
	for i, t := range titles {
		out[i] = backend.Subtopic{Title: t}
	}
	return out
}

func titlesOf(items []backend.Subtopic) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

// stripANSI removes terminal escape sequences so assertions see plain text.
func stripANSI(s string) string {
	return ansi.Strip(s)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// execBatch executes a tea.Cmd, handling both single commands and batch
// commands. It returns all resulting messages. Spinner ticks are skipped
// to avoid infinite recursion.
func execBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			if c != nil {
				msgs = append(msgs, execBatch(t, c)...)
			}
		}
		return msgs
	}
	if _, isTick := msg.(spinner.TickMsg); isTick {
		return nil
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T in msgs.
func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func bundleWithExtras() backend.ResourceBundle {
	return backend.ResourceBundle{
		Course: &backend.CourseRef{Title: "6.034", Link: "ocw.mit.edu/x"},
		ExtraCourses: []backend.CourseRef{
			{Title: "6.036", Link: "https://ocw.mit.edu/y"},
			{Title: "No link"},
		},
		Videos: []backend.VideoRef{{Title: "NN intro", Link: "https://yt/1", Thumbnail: "https://img/1.jpg"}},
	}
}

func emptyBundle() backend.ResourceBundle {
	return backend.ResourceBundle{}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

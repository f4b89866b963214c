package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

func TestNewModel_InitializesLookups(t *testing.T) {
	subtopics := []string{"Machine Learning", "Neural Networks", "Robotics"}
	m := NewModel(subtopics)

	if got := len(m.lookups); got != 3 {
		t.Fatalf("lookups count = %d, want 3", got)
	}
	for i, name := range subtopics {
		if m.lookups[i].Subtopic != name {
			t.Errorf("lookups[%d].Subtopic = %q, want %q", i, m.lookups[i].Subtopic, name)
		}
		if m.lookups[i].Status != StatusPending {
			t.Errorf("lookups[%d].Status = %q, want %q", i, m.lookups[i].Status, StatusPending)
		}
	}
	if m.done {
		t.Error("new model should not be done")
	}
}

func TestNewModel_Empty(t *testing.T) {
	m := NewModel(nil)
	if len(m.lookups) != 0 {
		t.Fatalf("lookups count = %d, want 0", len(m.lookups))
	}
}

func TestModel_Init_ReturnsTickCmd(t *testing.T) {
	m := NewModel([]string{"ML"})
	if m.Init() == nil {
		t.Fatal("Init() should return a non-nil Cmd for the spinner")
	}
}

func TestModel_Update_StatusUpdateMsg_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		status LookupStatus
	}{
		{name: "running", status: StatusRunning},
		{name: "found", status: StatusFound},
		{name: "failed", status: StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel([]string{"ML"})

			newModel, _ := m.Update(StatusUpdateMsg{Subtopic: "ML", Status: tt.status})
			updated := newModel.(Model)

			if updated.lookups[0].Status != tt.status {
				t.Errorf("status = %q, want %q", updated.lookups[0].Status, tt.status)
			}
		})
	}
}

func TestModel_Update_StatusUpdateMsg_UnknownSubtopic(t *testing.T) {
	m := NewModel([]string{"ML"})

	newModel, _ := m.Update(StatusUpdateMsg{Subtopic: "unknown", Status: StatusRunning})
	updated := newModel.(Model)

	// Should not crash, lookups remain unchanged
	if updated.lookups[0].Status != StatusPending {
		t.Errorf("status = %q, want %q (unchanged)", updated.lookups[0].Status, StatusPending)
	}
}

func TestModel_Update_StatusUpdateMsg_KeepsSummaryAndDuration(t *testing.T) {
	m := NewModel([]string{"ML"})

	newModel, _ := m.Update(StatusUpdateMsg{
		Subtopic: "ML",
		Status:   StatusFound,
		Duration: 2 * time.Second,
		Summary:  "1 course, 1 video",
	})
	updated := newModel.(Model)

	if updated.lookups[0].Duration != 2*time.Second {
		t.Errorf("duration = %v, want 2s", updated.lookups[0].Duration)
	}
	if updated.lookups[0].Summary != "1 course, 1 video" {
		t.Errorf("summary = %q", updated.lookups[0].Summary)
	}
}

func TestModel_Update_DoneMsg(t *testing.T) {
	m := NewModel([]string{"ML"})

	newModel, cmd := m.Update(DoneMsg{})
	updated := newModel.(Model)

	if !updated.done {
		t.Error("model should be done after DoneMsg")
	}
	if cmd == nil {
		t.Error("DoneMsg should produce a quit Cmd")
	}
}

func TestModel_Update_ErrorMsg(t *testing.T) {
	m := NewModel([]string{"ML"})

	newModel, cmd := m.Update(ErrorMsg{Err: errors.New("backend failed")})
	updated := newModel.(Model)

	if !updated.done {
		t.Error("model should be done after ErrorMsg")
	}
	if updated.err == nil || updated.err.Error() != "backend failed" {
		t.Errorf("err = %v, want 'backend failed'", updated.err)
	}
	if cmd == nil {
		t.Error("ErrorMsg should produce a quit Cmd")
	}
}

func TestModel_View_StatusIndicators(t *testing.T) {
	tests := []struct {
		status LookupStatus
		want   string
	}{
		{StatusPending, "○"},
		{StatusFound, "✓"},
		{StatusFailed, "✗"},
	}
	for _, tt := range tests {
		m := NewModel([]string{"ML"})
		m.lookups[0].Status = tt.status

		if view := m.View(); !strings.Contains(view, tt.want) {
			t.Errorf("status %q: view should contain %q, got:\n%s", tt.status, tt.want, view)
		}
	}
}

func TestModel_View_SummaryAndDuration(t *testing.T) {
	m := NewModel([]string{"ML"})
	m.lookups[0].Status = StatusFound
	m.lookups[0].Summary = "2 courses, 0 videos"
	m.lookups[0].Duration = 1200 * time.Millisecond

	view := m.View()

	if !strings.Contains(view, "(2 courses, 0 videos)") {
		t.Errorf("view should show summary, got:\n%s", view)
	}
	if !strings.Contains(view, "1.2s") {
		t.Errorf("view should show duration, got:\n%s", view)
	}
}

func TestModel_View_Footer(t *testing.T) {
	m := NewModel([]string{"ML", "NN", "RL"})
	m.lookups[0].Status = StatusFound
	m.lookups[0].Duration = 1500 * time.Millisecond
	m.lookups[1].Status = StatusFailed
	m.lookups[1].Duration = 2500 * time.Millisecond
	m.lookups[2].Status = StatusFound
	m.lookups[2].Duration = 500 * time.Millisecond
	m.done = true

	view := m.View()

	// Total: 4.5s - unique to footer (lookup lines show 1.5s, 2.5s, 0.5s)
	if !strings.Contains(view, "2/3 found in 4.5s") {
		t.Errorf("footer should show found count and total, got:\n%s", view)
	}
}

func TestModel_View_FooterNotShownWhileRunning(t *testing.T) {
	m := NewModel([]string{"ML"})
	m.lookups[0].Status = StatusRunning

	if strings.Contains(m.View(), "found in") {
		t.Error("footer should not appear while lookups are running")
	}
}

func TestModel_View_DoneWithError(t *testing.T) {
	m := NewModel([]string{"ML"})
	m.done = true
	m.err = errors.New("lookup aborted")

	if view := m.View(); !strings.Contains(view, "Error: lookup aborted") {
		t.Errorf("view should show error, got:\n%s", view)
	}
}

// --- Abort tests ---

func TestModel_Update_KeyMsg_Q_WithoutCancel_ImmediateQuit(t *testing.T) {
	m := NewModel([]string{"ML"})

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	updated := newModel.(Model)

	if !updated.done {
		t.Error("q without cancelFunc should set done")
	}
	if cmd == nil {
		t.Error("q without cancelFunc should produce quit Cmd")
	}
}

func TestModel_Update_KeyMsg_WithCancel_SetsAborting(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{name: "q", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{name: "ctrl+c", key: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cancelled := false
			m := NewModel([]string{"ML"}, WithCancelFunc(func() { cancelled = true }))

			newModel, cmd := m.Update(tt.key)
			updated := newModel.(Model)

			if !updated.aborting {
				t.Error("first press with cancelFunc should set aborting")
			}
			if updated.done {
				t.Error("first press with cancelFunc should not set done")
			}
			if !cancelled {
				t.Error("first press should call cancelFunc")
			}
			if cmd != nil {
				t.Error("first press should not produce quit Cmd")
			}
		})
	}
}

func TestModel_Update_KeyMsg_DoublePress_ForcesQuit(t *testing.T) {
	m := NewModel([]string{"ML"}, WithCancelFunc(func() {}))
	m.aborting = true

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	updated := newModel.(Model)

	if !updated.done {
		t.Error("double-press should set done")
	}
	if cmd == nil {
		t.Error("double-press should produce quit Cmd")
	}
}

func TestModel_Update_KeyMsg_WhenDone_Ignored(t *testing.T) {
	m := NewModel([]string{"ML"}, WithCancelFunc(func() {}))
	m.done = true

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	updated := newModel.(Model)

	if updated.aborting {
		t.Error("pressing q when done should not set aborting")
	}
	if cmd != nil {
		t.Error("pressing q when done should not produce cmd")
	}
}

func TestModel_View_AbortingState(t *testing.T) {
	m := NewModel([]string{"ML"})
	m.aborting = true
	m.lookups[0].Status = StatusRunning

	if view := m.View(); !strings.Contains(view, "Aborting") {
		t.Errorf("view should show 'Aborting' when aborting, got:\n%s", view)
	}
}

func TestModel_Update_ErrorMsg_ClearsAborting(t *testing.T) {
	m := NewModel([]string{"ML"}, WithCancelFunc(func() {}))
	m.aborting = true

	newModel, cmd := m.Update(ErrorMsg{Err: context.Canceled})
	updated := newModel.(Model)

	if !updated.done {
		t.Error("ErrorMsg should set done even when aborting")
	}
	if updated.aborting {
		t.Error("ErrorMsg should clear aborting")
	}
	if cmd == nil {
		t.Error("ErrorMsg should produce quit Cmd")
	}
	if strings.Contains(updated.View(), "Aborting") {
		t.Error("View should not show Aborting when done")
	}
}

func TestModel_Update_WindowSizeMsg(t *testing.T) {
	m := NewModel([]string{"ML"})

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated := newModel.(Model)

	if updated.width != 120 {
		t.Errorf("width = %d, want 120", updated.width)
	}
}

// TestModel_Teatest_FullBatch verifies the model processes messages in sequence via teatest.
func TestModel_Teatest_FullBatch(t *testing.T) {
	subtopics := []string{"Machine Learning", "Neural Networks"}
	m := NewModel(subtopics)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	for _, name := range subtopics {
		tm.Send(StatusUpdateMsg{Subtopic: name, Status: StatusRunning})
		tm.Send(StatusUpdateMsg{Subtopic: name, Status: StatusFound, Summary: "1 course, 1 video"})
	}
	tm.Send(DoneMsg{})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	for i, name := range subtopics {
		if final.lookups[i].Status != StatusFound {
			t.Errorf("lookup %q status = %q, want %q", name, final.lookups[i].Status, StatusFound)
		}
	}
	if !final.done {
		t.Error("final model should be done")
	}
}

package explorer

import (
	"context"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/learnpath/internal/backend"
)

// Session owns the explorer state: the subtopic list, the resource cache,
// the pending tracker and the generate flow. Every mutation goes through its
// methods, which must only be called from the Bubble Tea update loop.
// Network work is returned as tea.Cmds that never touch the Session.
type Session struct {
	ctx     context.Context
	backend Backend
	logger  *log.Logger

	list    *SubtopicList
	cache   *ResourceCache
	pending *PendingTracker

	topic      string // topic of the committed list
	generating bool
	planSeq    uint64 // latest issued plan request
	epoch      uint64 // bumped on every list replacement
}

// NewSession creates a Session backed by b. A nil logger discards output.
func NewSession(ctx context.Context, b Backend, logger *log.Logger) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		ctx:     ctx,
		backend: b,
		logger:  logger,
		list:    NewSubtopicList(),
		cache:   NewResourceCache(),
		pending: NewPendingTracker(),
	}
}

// Submit starts plan generation for topic. Blank topics are a no-op and
// return nil. A submit while another is outstanding supersedes it.
func (s *Session) Submit(topic string) tea.Cmd {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" || s.backend == nil {
		return nil
	}
	s.planSeq++
	s.generating = true

	ctx, b, seq := s.ctx, s.backend, s.planSeq
	return func() tea.Msg {
		plan, err := b.GeneratePlan(ctx, trimmed)
		return PlanMsg{Seq: seq, Topic: trimmed, Subtopics: plan.Subtopics, Err: err}
	}
}

// ApplyPlan commits a plan settlement. Settlements of superseded submits are
// dropped. It reports whether the subtopic list was replaced.
func (s *Session) ApplyPlan(msg PlanMsg) bool {
	if msg.Seq != s.planSeq {
		s.logger.Printf("discarding stale plan for %q (seq %d, latest %d)", msg.Topic, msg.Seq, s.planSeq)
		return false
	}
	s.generating = false
	if msg.Err != nil {
		s.logger.Printf("generate plan for %q: %v", msg.Topic, msg.Err)
		return false
	}
	s.topic = msg.Topic
	s.list.Replace(msg.Subtopics)
	s.cache.ClearAll()
	s.pending.Clear()
	s.epoch++
	return true
}

// Toggle flips the resource panel of title. An expanded panel collapses
// locally; a collapsed one starts a fetch. Unknown or loading titles are a
// no-op. The returned Cmd is nil when no fetch is needed.
func (s *Session) Toggle(title string) tea.Cmd {
	if !s.list.Has(title) || s.pending.IsPending(title) {
		return nil
	}
	if s.cache.Has(title) {
		s.cache.ClearOne(title)
		return nil
	}
	if s.backend == nil {
		return nil
	}
	s.pending.SetPending(title, true)

	ctx, b, epoch := s.ctx, s.backend, s.epoch
	return func() tea.Msg {
		bundle, err := b.FetchResources(ctx, title)
		return ResourcesMsg{Title: title, Epoch: epoch, Bundle: bundle, Err: err}
	}
}

// ApplyResources commits a fetch settlement if the subtopic is still the one
// the fetch was issued for. Stale settlements leave all state untouched.
// It reports whether a bundle was cached.
func (s *Session) ApplyResources(msg ResourcesMsg) bool {
	if msg.Epoch != s.epoch || !s.list.Has(msg.Title) || !s.pending.IsPending(msg.Title) {
		s.logger.Printf("discarding stale resources for %q", msg.Title)
		return false
	}
	s.pending.SetPending(msg.Title, false)
	if msg.Err != nil {
		s.logger.Printf("fetch resources for %q: %v", msg.Title, msg.Err)
		return false
	}
	s.cache.Set(msg.Title, msg.Bundle)
	return true
}

// Remove drops title from the list along with its bundle and pending flag.
// Removing a missing title is a no-op.
func (s *Session) Remove(title string) {
	s.list.Remove(title)
	s.cache.ClearOne(title)
	s.pending.SetPending(title, false)
}

// State returns the derived display state of title.
func (s *Session) State(title string) SubtopicState {
	switch {
	case s.pending.IsPending(title):
		return Loading
	case s.cache.Has(title):
		return Expanded
	default:
		return Collapsed
	}
}

// ControlLabel returns the resource control label for title.
func (s *Session) ControlLabel(title string) string {
	switch s.State(title) {
	case Loading:
		return LabelLoading
	case Expanded:
		return LabelHide
	default:
		return LabelFind
	}
}

// Bundle returns the cached bundle for title, if expanded.
func (s *Session) Bundle(title string) (backend.ResourceBundle, bool) {
	return s.cache.Get(title)
}

// Subtopics returns the current subtopics in order.
func (s *Session) Subtopics() []backend.Subtopic {
	return s.list.Items()
}

// Len returns the number of subtopics.
func (s *Session) Len() int {
	return s.list.Len()
}

// TitleAt returns the subtopic title at index i, or "".
func (s *Session) TitleAt(i int) string {
	return s.list.At(i)
}

// Generating reports whether the latest plan request is outstanding.
func (s *Session) Generating() bool {
	return s.generating
}

// Busy reports whether any request the view should animate is outstanding.
func (s *Session) Busy() bool {
	return s.generating || s.pending.Len() > 0
}

// Topic returns the topic of the plan currently shown.
func (s *Session) Topic() string {
	return s.topic
}

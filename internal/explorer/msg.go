// Package explorer implements the interactive topic explorer: a topic field
// that generates a list of subtopics, and per-subtopic resource panels that
// are fetched on demand. All state lives in a Session owned by the Bubble Tea
// update loop; network calls run as tea.Cmds and report back as messages.
package explorer

import (
	"context"

	"github.com/smileynet/learnpath/internal/backend"
)

// Focus represents which widget has keyboard focus.
type Focus int

const (
	FocusInput Focus = iota // Topic field has focus.
	FocusList               // Subtopic list has focus.
)

// SubtopicState is the derived display state of one subtopic.
type SubtopicState int

const (
	Collapsed SubtopicState = iota // No bundle cached, no fetch in flight.
	Loading                        // Resource fetch in flight.
	Expanded                       // Bundle cached and shown.
)

func (s SubtopicState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Expanded:
		return "expanded"
	default:
		return "collapsed"
	}
}

// Control labels for the per-subtopic resource control.
const (
	LabelFind    = "Find Resources"
	LabelHide    = "Hide Resources"
	LabelLoading = "Loading..."
)

// --- Consumer-side interfaces ---

// Backend generates plans and looks up resources.
type Backend interface {
	GeneratePlan(ctx context.Context, topic string) (backend.Plan, error)
	FetchResources(ctx context.Context, subtopic string) (backend.ResourceBundle, error)
}

// --- tea.Msg types ---

// PlanMsg carries the settlement of a GeneratePlan call.
// Seq identifies the submission it answers.
type PlanMsg struct {
	Seq       uint64
	Topic     string
	Subtopics []backend.Subtopic
	Err       error
}

// ResourcesMsg carries the settlement of a FetchResources call.
// Epoch is the list epoch at the time the fetch was issued.
type ResourcesMsg struct {
	Title  string
	Epoch  uint64
	Bundle backend.ResourceBundle
	Err    error
}

// LinkOpenedMsg reports the outcome of opening a link in the browser.
type LinkOpenedMsg struct {
	URL string
	Err error
}

// submitMsg asks the model to submit the current topic field value.
// Init emits it when the model starts with an initial topic.
type submitMsg struct{}

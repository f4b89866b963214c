// Package tui renders progress for non-interactive resource lookups, either
// as a Bubble Tea status list on a terminal or as plain text lines.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// DisplayEvent is anything a lookup batch reports to its Display: a
// per-subtopic StatusUpdateMsg, then exactly one DoneMsg or ErrorMsg.
type DisplayEvent interface {
	isDisplayEvent()
}

func (StatusUpdateMsg) isDisplayEvent() {}
func (DoneMsg) isDisplayEvent()         {}
func (ErrorMsg) isDisplayEvent()        {}

// Display shows the progress of a lookup batch.
type Display interface {
	Run(ctx context.Context, events <-chan DisplayEvent) error
}

// DisplayOptions selects and seeds a Display.
type DisplayOptions struct {
	Writer     io.Writer // defaults to os.Stdout
	ForcePlain bool
	// Subtopics seeds the status list in plan order.
	Subtopics []string
	// CancelFunc aborts the batch on the first q or ctrl+c; only the TUI uses it.
	CancelFunc context.CancelFunc
}

// NewDisplay returns a TUI display when the writer is a TTY, or a plain text
// display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return &PlainDisplay{w: opts.Writer}
	}

	return &TUIDisplay{subtopics: opts.Subtopics, w: opts.Writer, cancelFunc: opts.CancelFunc}
}

// IsTerminal reports whether w is connected to a terminal.
func IsTerminal(w io.Writer) bool {
	return isTTY(w)
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Bridge carries events from lookup workers to a Display.
// Send is safe for concurrent use; Done and Error must be called once,
// after every Send has returned.
type Bridge struct {
	ch chan DisplayEvent
}

// NewBridge creates a Bridge with a buffered event channel.
func NewBridge() *Bridge {
	return &Bridge{ch: make(chan DisplayEvent, 16)}
}

// Events is the channel passed to Display.Run.
func (b *Bridge) Events() <-chan DisplayEvent {
	return b.ch
}

// Send reports one subtopic's progress. It blocks while the buffer is full.
func (b *Bridge) Send(msg StatusUpdateMsg) {
	b.ch <- msg
}

// Done signals that every lookup settled and closes the channel.
func (b *Bridge) Done() {
	b.ch <- DoneMsg{}
	close(b.ch)
}

// Error signals an aborted batch and closes the channel.
func (b *Bridge) Error(err error) {
	b.ch <- ErrorMsg{Err: err}
	close(b.ch)
}

// PlainDisplay prints one line per status change and a closing tally, for
// pipes, CI logs, and --no-tui runs.
type PlainDisplay struct {
	w      io.Writer
	found  int
	failed int
}

// Run consumes events until the batch settles. It returns the batch error
// when the batch was aborted and ctx.Err() when ctx is cancelled first.
func (d *PlainDisplay) Run(ctx context.Context, events <-chan DisplayEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch msg := ev.(type) {
			case StatusUpdateMsg:
				d.record(msg)
			case DoneMsg:
				d.tally()
				return nil
			case ErrorMsg:
				return msg.Err
			}
		}
	}
}

func (d *PlainDisplay) record(su StatusUpdateMsg) {
	line := fmt.Sprintf("[%s] [%s] %s %s", time.Now().Format("15:04:05"), su.Progress, su.Subtopic, su.Status)
	if su.Duration > 0 {
		line += fmt.Sprintf(" %.1fs", su.Duration.Seconds())
	}
	_, _ = fmt.Fprintln(d.w, line)

	switch su.Status {
	case StatusFound:
		d.found++
		if su.Summary != "" {
			_, _ = fmt.Fprintf(d.w, "         resources: %s\n", su.Summary)
		}
	case StatusFailed:
		d.failed++
		if su.Err != nil {
			_, _ = fmt.Fprintf(d.w, "         error: %s\n", su.Err)
		}
	}
}

// tally prints how many settled lookups found resources.
func (d *PlainDisplay) tally() {
	settled := d.found + d.failed
	if settled == 0 {
		return
	}
	_, _ = fmt.Fprintf(d.w, "%d/%d found\n", d.found, settled)
}

// TUIDisplay shows a live status list, falling back to PlainDisplay when
// the program cannot start.
type TUIDisplay struct {
	subtopics  []string
	w          io.Writer
	cancelFunc context.CancelFunc
}

// Run drives the status list until the batch settles or the user quits.
func (d *TUIDisplay) Run(ctx context.Context, events <-chan DisplayEvent) error {
	var opts []ModelOption
	if d.cancelFunc != nil {
		opts = append(opts, WithCancelFunc(d.cancelFunc))
	}
	model := NewModel(d.subtopics, opts...)
	p := tea.NewProgram(model, tea.WithOutput(d.w))

	// The relay stops on failure so the fallback reads the remaining events.
	fwd := make(chan DisplayEvent, 16)
	stop := make(chan struct{})

	go func() {
		defer close(fwd)
		for ev := range events {
			select {
			case fwd <- ev:
			case <-stop:
				return
			}
		}
	}()

	go func() {
		for ev := range fwd {
			p.Send(ev)
		}
	}()

	final, err := p.Run()
	if err != nil {
		close(stop)
		return (&PlainDisplay{w: d.w}).Run(ctx, events)
	}

	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

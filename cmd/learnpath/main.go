package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"golang.org/x/sync/errgroup"

	"github.com/smileynet/learnpath/internal/backend"
	"github.com/smileynet/learnpath/internal/config"
	"github.com/smileynet/learnpath/internal/explorer"
	"github.com/smileynet/learnpath/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	BackendURL string `name:"backend-url" help:"Learning-plan service URL (overrides config)."`
	Timeout    string `help:"Per-request timeout such as 30s; 0 disables (overrides config)."`
}

// CLI is the top-level command structure for learnpath.
type CLI struct {
	Globals

	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Explore   ExploreCmd       `cmd:"" default:"withargs" help:"Explore a topic interactively (default)."`
	Plan      PlanCmd          `cmd:"" help:"Print the subtopics of a topic."`
	Resources ResourcesCmd     `cmd:"" help:"Print the resources for one subtopic."`
}

// loadConfig loads layered config from user and project paths with env and
// flag overrides, then validates the result.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/learnpath/config.yaml"),
		".learnpath/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g != nil {
		if g.BackendURL != "" {
			cfg.Backend.URL = g.BackendURL
		}
		if g.Timeout != "" {
			d, err := time.ParseDuration(g.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid --timeout %q: %w", g.Timeout, err)
			}
			cfg.Backend.Timeout = d
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the backend client from config.
func newClient(cfg *config.Config) *backend.Client {
	return backend.NewClient(cfg.Backend.URL, backend.WithTimeout(cfg.Backend.Timeout))
}

// --- Explore command ---

// ExploreCmd opens the interactive explorer TUI.
type ExploreCmd struct {
	Topic []string `arg:"" optional:"" help:"Topic to generate on start."`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the explorer TUI.
func (e *ExploreCmd) Run(g *Globals) error {
	if !tui.IsTerminal(os.Stdout) {
		return fmt.Errorf("explore: requires a terminal (TTY); use 'learnpath plan' instead")
	}

	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("explore: %w", err)
	}

	logger, closeLog, err := newLogger(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := explorer.NewModel(
		explorer.WithContext(ctx),
		explorer.WithBackend(newClient(cfg)),
		explorer.WithLogger(logger),
		explorer.WithLinkOpener(browser.OpenURL),
		explorer.WithInitialTopic(strings.Join(e.Topic, " ")),
	)

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	return e.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (e *ExploreCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("explore: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}

// newLogger returns the explorer's diagnostic logger. With no path, output
// is discarded so the alt screen stays clean.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := tea.LogToFile(path, "learnpath")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return log.Default(), func() { _ = f.Close() }, nil
}

// --- Plan command ---

// PlanCmd generates subtopics for a topic and optionally looks up their resources.
type PlanCmd struct {
	Topic       []string `arg:"" help:"Topic to break into subtopics."`
	Resources   bool     `help:"Also look up resources for every subtopic." short:"r"`
	NoTUI       bool     `name:"no-tui" help:"Force plain text progress even if stdout is a TTY."`
	Concurrency int      `help:"Parallel resource lookups (overrides config)." default:"0"`
}

// Run executes the plan command.
func (p *PlanCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	if p.Concurrency > 0 {
		cfg.Plan.Concurrency = p.Concurrency
	}

	// The cancel func is passed to the progress TUI so keyboard abort
	// (q / Ctrl+C) stops outstanding lookups.
	lookupCtx, lookupCancel := context.WithCancel(context.Background())
	defer lookupCancel()
	ctx, stop := signal.NotifyContext(lookupCtx, os.Interrupt)
	defer stop()

	return p.run(ctx, os.Stdout, os.Stderr, newClient(cfg), cfg.Plan.Concurrency, lookupCancel)
}

// run generates the plan and, if requested, fetches every bundle with
// bounded concurrency while streaming progress to a Display.
func (p *PlanCmd) run(ctx context.Context, w, errW io.Writer, client explorer.Backend, concurrency int, cancel context.CancelFunc) error {
	topic := strings.TrimSpace(strings.Join(p.Topic, " "))
	if topic == "" {
		return errors.New("plan: topic cannot be blank")
	}

	plan, err := client.GeneratePlan(ctx, topic)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	if err := tui.WritePlan(w, topic, plan.Subtopics); err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	if !p.Resources || len(plan.Subtopics) == 0 {
		return nil
	}

	titles := make([]string, len(plan.Subtopics))
	for i, st := range plan.Subtopics {
		titles[i] = st.Title
	}

	bridge := tui.NewBridge()
	display := tui.NewDisplay(tui.DisplayOptions{
		Writer:     w,
		ForcePlain: p.NoTUI,
		Subtopics:  titles,
		CancelFunc: cancel,
	})

	displayDone := make(chan error, 1)
	go func() {
		displayDone <- display.Run(context.Background(), bridge.Events())
	}()

	results, lookupErr := lookupAll(ctx, client, titles, concurrency, bridge)
	if lookupErr != nil {
		bridge.Error(lookupErr)
	} else {
		bridge.Done()
	}

	// Wait for display to finish (so it releases the terminal).
	<-displayDone

	if lookupErr != nil {
		return fmt.Errorf("plan: %w", lookupErr)
	}

	var failed []lookupResult
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, r)
			continue
		}
		if err := tui.WriteBundle(w, r.title, r.bundle); err != nil {
			return fmt.Errorf("plan: %w", err)
		}
	}
	for _, r := range failed {
		_, _ = fmt.Fprintf(errW, "warning: resources for %q: %v\n", r.title, r.err)
	}
	if len(failed) > 0 {
		return fmt.Errorf("plan: %d of %d resource lookups failed: %w", len(failed), len(titles), failed[0].err)
	}
	return nil
}

// lookupResult is the settlement of one subtopic's resource lookup.
type lookupResult struct {
	title  string
	bundle backend.ResourceBundle
	err    error
}

// lookupAll fetches bundles for titles, at most concurrency at a time.
// Individual failures are recorded in the results; only cancellation
// aborts the batch.
func lookupAll(ctx context.Context, client explorer.Backend, titles []string, concurrency int, bridge *tui.Bridge) ([]lookupResult, error) {
	results := make([]lookupResult, len(titles))
	total := len(titles)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, title := range titles {
		progress := fmt.Sprintf("%d/%d", i+1, total)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bridge.Send(tui.StatusUpdateMsg{Subtopic: title, Status: tui.StatusRunning, Progress: progress})

			start := time.Now()
			bundle, err := client.FetchResources(gctx, title)
			elapsed := time.Since(start)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				results[i] = lookupResult{title: title, err: err}
				bridge.Send(tui.StatusUpdateMsg{
					Subtopic: title, Status: tui.StatusFailed, Progress: progress,
					Duration: elapsed, Err: err,
				})
				return nil
			}
			results[i] = lookupResult{title: title, bundle: bundle}
			bridge.Send(tui.StatusUpdateMsg{
				Subtopic: title, Status: tui.StatusFound, Progress: progress,
				Duration: elapsed, Summary: bundle.Summary(),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// --- Resources command ---

// ResourcesCmd looks up resources for a single subtopic.
type ResourcesCmd struct {
	Subtopic []string `arg:"" help:"Subtopic to look up."`
}

// Run executes the resources command.
func (r *ResourcesCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return r.run(ctx, os.Stdout, newClient(cfg))
}

// run fetches and prints one bundle, enabling testable wiring.
func (r *ResourcesCmd) run(ctx context.Context, w io.Writer, client explorer.Backend) error {
	subtopic := strings.TrimSpace(strings.Join(r.Subtopic, " "))
	if subtopic == "" {
		return errors.New("resources: subtopic cannot be blank")
	}

	bundle, err := client.FetchResources(ctx, subtopic)
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}
	if err := tui.WriteBundle(w, subtopic, bundle); err != nil {
		return fmt.Errorf("resources: %w", err)
	}
	return nil
}

const (
	exitSuccess = 0
	exitBackend = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var re *backend.RequestError
	if errors.As(err, &re) {
		return exitBackend
	}
	return exitSetup
}

func main() {
	// Browser launchers write to the terminal the TUI owns.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("learnpath"),
		kong.Description("Break a topic into subtopics and find courses and videos for each."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

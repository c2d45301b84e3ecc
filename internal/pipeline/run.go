// Package pipeline provides the staged roadmap-generation workflow:
// Analyzing -> Generating -> Complete. It orchestrates the completion client
// and the deterministic synthesizer so the user always ends up with a
// roadmap, then persists the result as a draft awaiting confirmation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/roadmap"
	"github.com/jonathan/career-coach/internal/store"
	"github.com/jonathan/career-coach/internal/types"
)

// Stage identifies a pipeline phase
type Stage string

// Pipeline stages in order
const (
	StageAnalyzing  Stage = "analyzing"
	StageGenerating Stage = "generating"
	StageComplete   Stage = "complete"
)

// Progress percentages surfaced per stage for UI reporting
const (
	percentAnalyzing  = 33
	percentGenerating = 66
	percentComplete   = 100
)

// defaultAnalyzeDwell is the minimum time spent in Analyzing. This exists
// for perceived-latency pacing, not computation; tests inject a no-op Sleeper.
const defaultAnalyzeDwell = 1500 * time.Millisecond

// Sentinel errors
var (
	// ErrRunInProgress is returned when Run is called while another run is active
	ErrRunInProgress = errors.New("pipeline run already in progress")
	// ErrNoDraft is returned by Confirm when no roadmap has been generated
	ErrNoDraft = errors.New("no roadmap draft to confirm")
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage    Stage  `json:"stage"`
	Percent  int    `json:"percent"`
	Message  string `json:"message"`
	Fallback bool   `json:"fallback,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Sleeper abstracts the pacing delay so tests run synchronously
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Options configures a Pipeline
type Options struct {
	// AnalyzeDwell overrides the Analyzing minimum-dwell interval
	AnalyzeDwell time.Duration
	// Sleeper overrides the delay implementation (tests)
	Sleeper Sleeper
	// OnProgress receives stage events; may be nil
	OnProgress ProgressCallback
}

// Pipeline drives staged roadmap generation. At most one run may be active;
// a second Run while one is in progress returns ErrRunInProgress rather than
// interleaving.
type Pipeline struct {
	client  coach.Completer
	state   *store.State
	sleeper Sleeper
	dwell   time.Duration
	onEvent ProgressCallback

	mu      sync.Mutex
	running bool
}

// New creates a Pipeline
func New(client coach.Completer, state *store.State, opts Options) *Pipeline {
	p := &Pipeline{
		client:  client,
		state:   state,
		sleeper: opts.Sleeper,
		dwell:   opts.AnalyzeDwell,
		onEvent: opts.OnProgress,
	}
	if p.sleeper == nil {
		p.sleeper = realSleeper{}
	}
	if p.dwell <= 0 {
		p.dwell = defaultAnalyzeDwell
	}
	return p
}

// Run executes the staged workflow and persists the resulting draft.
// It never surfaces a "no roadmap" outcome: any classified completion
// failure falls back to deterministic synthesis. Cancellation is the one
// terminal outcome that writes nothing.
func (p *Pipeline) Run(ctx context.Context, profile *types.Profile) (*types.Roadmap, error) {
	return p.run(ctx, profile, p.onEvent)
}

// RunWithCallback is Run with a per-run progress callback in place of the
// configured one.
func (p *Pipeline) RunWithCallback(ctx context.Context, profile *types.Profile, cb ProgressCallback) (*types.Roadmap, error) {
	if cb == nil {
		cb = p.onEvent
	}
	return p.run(ctx, profile, cb)
}

func (p *Pipeline) run(ctx context.Context, profile *types.Profile, cb ProgressCallback) (*types.Roadmap, error) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil, ErrRunInProgress
	}
	p.running = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	gaps := analyzeSkillGaps(profile)
	notify(cb, ProgressEvent{
		Stage:   StageAnalyzing,
		Percent: percentAnalyzing,
		Message: analysisMessage(gaps),
	})

	// Minimum dwell before the Generating transition; purely pacing.
	if err := p.sleeper.Sleep(ctx, p.dwell); err != nil {
		return nil, err
	}

	notify(cb, ProgressEvent{
		Stage:   StageGenerating,
		Percent: percentGenerating,
		Message: "Generating your personalized roadmap",
	})

	result, usedFallback := p.generate(ctx, profile)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.state.SetRoadmap(result); err != nil {
		return nil, fmt.Errorf("failed to persist roadmap draft: %w", err)
	}

	notify(cb, ProgressEvent{
		Stage:    StageComplete,
		Percent:  percentComplete,
		Message:  fmt.Sprintf("Roadmap ready: %d projects", len(result.Projects)),
		Fallback: usedFallback,
	})
	return result, nil
}

// generate tries the completion path and falls back to synthesis on any
// classified failure. The second return reports whether the fallback ran.
func (p *Pipeline) generate(ctx context.Context, profile *types.Profile) (*types.Roadmap, bool) {
	if !p.client.Available() {
		return roadmap.Synthesize(profile), true
	}

	raw, err := p.client.GenerateRoadmap(ctx, profile)
	if err != nil {
		return roadmap.Synthesize(profile), true
	}

	parsed, err := roadmap.Parse(raw)
	if err != nil {
		return roadmap.Synthesize(profile), true
	}
	return parsed, false
}

// Confirm promotes the stored draft to active and points progress at the
// first project. A later Run replaces the stored roadmap with a fresh draft
// under the same key, which is what makes re-entry idempotent.
func (p *Pipeline) Confirm() error {
	r, err := p.state.Roadmap()
	if err != nil {
		return err
	}
	if r == nil || len(r.Projects) == 0 {
		return ErrNoDraft
	}

	r.Status = types.RoadmapActive
	if err := p.state.SetRoadmap(r); err != nil {
		return fmt.Errorf("failed to activate roadmap: %w", err)
	}

	progress, err := p.state.Progress()
	if err != nil {
		return err
	}
	first := r.Projects[0]
	progress.CurrentProjectID = first.ID
	progress.NextGoal = first.Title
	return p.state.SetProgress(progress)
}

func notify(cb ProgressCallback, event ProgressEvent) {
	if cb != nil {
		cb(event)
	}
}

// analyzeSkillGaps is the deterministic local content of the Analyzing
// stage: improvement areas and goals the profile does not already list as
// current skills.
func analyzeSkillGaps(profile *types.Profile) []string {
	have := make(map[string]bool, len(profile.CurrentSkills))
	for _, s := range profile.CurrentSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	var gaps []string
	seen := make(map[string]bool)
	wants := make([]string, 0, len(profile.ImprovementAreas)+len(profile.CareerGoals))
	wants = append(wants, profile.ImprovementAreas...)
	wants = append(wants, profile.CareerGoals...)
	for _, want := range wants {
		key := strings.ToLower(strings.TrimSpace(want))
		if key == "" || have[key] || seen[key] {
			continue
		}
		seen[key] = true
		gaps = append(gaps, strings.TrimSpace(want))
	}
	return gaps
}

func analysisMessage(gaps []string) string {
	if len(gaps) == 0 {
		return "Analyzing your profile"
	}
	return fmt.Sprintf("Analyzing your profile: %d growth areas identified", len(gaps))
}

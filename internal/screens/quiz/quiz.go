// Package quiz is the screen that runs the pipeline on one excerpt and
// lets the user answer the generated question.
package quiz

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questioner/internal/llm"
	"github.com/abhisek/questioner/internal/pipeline"
	"github.com/abhisek/questioner/internal/router"
	"github.com/abhisek/questioner/internal/screen"
	"github.com/abhisek/questioner/internal/ui/components"
	"github.com/abhisek/questioner/internal/ui/layout"
)

// RunFunc runs the pipeline once, reporting every state to observe.
type RunFunc func(ctx context.Context, raw string, observe pipeline.Observer) (*pipeline.Result, error)

// Phase is where the screen is in its lifecycle.
type Phase int

const (
	PhaseGenerating Phase = iota // Pipeline run in flight
	PhaseRejected                // Excerpt judged unsuitable
	PhaseFailed                  // Run aborted with an error
	PhaseAnswering               // Question shown, awaiting an answer
	PhaseFeedback                // Answer submitted, analysis shown
)

// stageLabels line up with stageIndex.
var stageLabels = []string{"Assessing excerpt", "Rewriting scenario", "Writing question"}

func stageIndex(s pipeline.State) int {
	switch s {
	case pipeline.StateAssessing:
		return 0
	case pipeline.StateRewriting:
		return 1
	case pipeline.StateGenerating:
		return 2
	default:
		return len(stageLabels)
	}
}

// QuizScreen owns one pipeline run and the answer to its question.
type QuizScreen struct {
	raw string
	run RunFunc

	phase        Phase
	stages       components.StageList
	states       chan pipeline.State
	ctx          context.Context
	cancel       context.CancelFunc
	result       *pipeline.Result
	err          error
	choice       components.MultiChoice
	showScenario bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen for raw. The run starts in Init.
func New(raw string, run RunFunc) *QuizScreen {
	return &QuizScreen{
		raw:    raw,
		run:    run,
		stages: components.NewStageList(stageLabels...),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.states = make(chan pipeline.State, 8)
	return tea.Batch(s.startRun(), waitForState(s.states), spinnerTick())
}

// startRun runs the pipeline off the UI goroutine. States are forwarded
// through the channel, which is closed when the run returns.
func (s *QuizScreen) startRun() tea.Cmd {
	ctx, raw, run, states := s.ctx, s.raw, s.run, s.states
	return func() tea.Msg {
		defer close(states)
		res, err := run(ctx, raw, func(st pipeline.State) { states <- st })
		return runDoneMsg{Result: res, Err: err}
	}
}

func waitForState(states <-chan pipeline.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-states
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// Close cancels the run if it is still in flight.
func (s *QuizScreen) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *QuizScreen) Title() string {
	switch s.phase {
	case PhaseGenerating:
		return "Generating"
	case PhaseRejected:
		return "Excerpt Rejected"
	case PhaseFailed:
		return "Generation Failed"
	default:
		return "Question"
	}
}

// Phase reports the current lifecycle phase.
func (s *QuizScreen) Phase() Phase { return s.phase }

// Result returns the run result once the run has finished.
func (s *QuizScreen) Result() *pipeline.Result { return s.result }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case PhaseGenerating:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case PhaseAnswering:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "A-D", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "s", Description: "Scenario"},
			{Key: "Esc", Description: "Back"},
		}
	case PhaseFeedback:
		return []layout.KeyHint{
			{Key: "s", Description: "Scenario"},
			{Key: "r", Description: "Regenerate"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		s.stages.Current = stageIndex(pipeline.State(msg))
		return s, waitForState(s.states)

	case runDoneMsg:
		return s.handleRunDone(msg)

	case spinnerTickMsg:
		if s.phase != PhaseGenerating {
			return s, nil
		}
		s.stages = s.stages.Tick()
		return s, spinnerTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleRunDone(msg runDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.err = msg.Err
		s.phase = PhaseFailed
		s.stages.Failed = true
		return s, nil
	}

	s.result = msg.Result
	if msg.Result.Rejected() {
		s.phase = PhaseRejected
		return s, nil
	}

	q := msg.Result.Question
	s.choice = components.NewMultiChoice(q.OptionKeys(), q.Options, q.Answer)
	s.phase = PhaseAnswering
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if key.Matches(msg, components.Keys.Back) {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.phase {
	case PhaseAnswering:
		if key.Matches(msg, components.Keys.Toggle) {
			s.showScenario = !s.showScenario
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			s.phase = PhaseFeedback
		}
		return s, cmd

	case PhaseFeedback:
		switch msg.String() {
		case "s":
			s.showScenario = !s.showScenario
		case "r":
			return s, s.restart()
		}

	case PhaseRejected, PhaseFailed:
		if msg.String() == "r" {
			return s, s.restart()
		}
	}
	return s, nil
}

// restart replaces this screen with a fresh run on the same excerpt.
func (s *QuizScreen) restart() tea.Cmd {
	next := New(s.raw, s.run)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// errorKind names the failure class for display.
func errorKind(err error) string {
	var transport *llm.ErrTransport
	var format *llm.ErrResponseFormat
	var unavailable *llm.ErrBackendUnavailable
	switch {
	case errors.Is(err, context.Canceled):
		return "Cancelled"
	case errors.As(err, &transport) && transport.RateLimited():
		return "Rate limited by the backend"
	case errors.As(err, &transport):
		return "Backend request failed"
	case errors.As(err, &format):
		return "The model returned an unusable answer"
	case errors.As(err, &unavailable):
		return "Backend unavailable"
	default:
		return "Generation failed"
	}
}

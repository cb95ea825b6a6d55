package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questioner/internal/llm"
	"github.com/abhisek/questioner/internal/pipeline"
	"github.com/abhisek/questioner/internal/problemgen"
	"github.com/abhisek/questioner/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testResult() *pipeline.Result {
	scenario := "Three groups of patients (N=200) were compared on a binary outcome."
	return &pipeline.Result{
		Assessment:     &problemgen.AssessmentResult{IsSuitable: true},
		CleanedContext: &scenario,
		Question: &problemgen.Question{
			Stem: "Which test fits?",
			Options: map[string]string{
				"A": "One-way ANOVA",
				"B": "Chi-square test",
				"C": "t-test",
				"D": "Pearson correlation",
			},
			Answer:   "B",
			Analysis: "Binary outcome across categorical groups.",
		},
		RunID: "run-1",
	}
}

func staticRun(res *pipeline.Result, err error) RunFunc {
	return func(_ context.Context, _ string, observe pipeline.Observer) (*pipeline.Result, error) {
		observe(pipeline.StateAssessing)
		observe(pipeline.StateRewriting)
		observe(pipeline.StateGenerating)
		return res, err
	}
}

func answeringScreen(t *testing.T) *QuizScreen {
	t.Helper()
	s := New("excerpt", staticRun(testResult(), nil))
	s.Update(runDoneMsg{Result: testResult()})
	if s.Phase() != PhaseAnswering {
		t.Fatalf("expected answering phase, got %d", s.Phase())
	}
	return s
}

func TestQuizScreen_RunForwardsStates(t *testing.T) {
	s := New("excerpt", staticRun(testResult(), nil))
	s.Init()
	defer s.Close()

	msg := s.startRun()()
	done, ok := msg.(runDoneMsg)
	if !ok {
		t.Fatalf("expected runDoneMsg, got %T", msg)
	}

	var seen []pipeline.State
	for {
		m := waitForState(s.states)()
		if m == nil {
			break
		}
		st := m.(stateMsg)
		seen = append(seen, pipeline.State(st))
		s.Update(st)
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 states, got %v", seen)
	}
	if s.stages.Current != 2 {
		t.Errorf("expected stage 2 in flight, got %d", s.stages.Current)
	}

	s.Update(done)
	if s.Phase() != PhaseAnswering {
		t.Errorf("expected answering phase, got %d", s.Phase())
	}
}

func TestQuizScreen_AnswerByLetter(t *testing.T) {
	s := answeringScreen(t)

	s.Update(keyPress('b'))

	if s.Phase() != PhaseFeedback {
		t.Fatalf("expected feedback phase, got %d", s.Phase())
	}
	if !s.choice.IsCorrect() {
		t.Error("expected B to be correct")
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Correct!") {
		t.Error("expected correct feedback in view")
	}
	if !strings.Contains(view, "Binary outcome across categorical groups.") {
		t.Error("expected analysis in view")
	}
}

func TestQuizScreen_AnswerByArrows(t *testing.T) {
	s := answeringScreen(t)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))

	if s.Phase() != PhaseFeedback {
		t.Fatalf("expected feedback phase, got %d", s.Phase())
	}
	if s.choice.Chosen != "C" {
		t.Errorf("expected C chosen, got %q", s.choice.Chosen)
	}
	if s.choice.IsCorrect() {
		t.Error("expected C to be wrong")
	}
	if !strings.Contains(s.View(100, 40), "The answer is B.") {
		t.Error("expected the correct key in the feedback")
	}
}

func TestQuizScreen_ToggleScenario(t *testing.T) {
	s := answeringScreen(t)
	if strings.Contains(s.View(100, 40), "N=200") {
		t.Fatal("scenario should be hidden by default")
	}
	s.Update(keyPress('s'))
	if !strings.Contains(s.View(100, 40), "N=200") {
		t.Error("expected scenario after toggle")
	}
	if s.Phase() != PhaseAnswering {
		t.Error("toggling must not submit an answer")
	}
}

func TestQuizScreen_Rejected(t *testing.T) {
	s := New("excerpt", nil)
	s.Update(runDoneMsg{Result: &pipeline.Result{
		Assessment: &problemgen.AssessmentResult{IsSuitable: false, MissingInfo: "sample size"},
	}})

	if s.Phase() != PhaseRejected {
		t.Fatalf("expected rejected phase, got %d", s.Phase())
	}
	if s.Title() != "Excerpt Rejected" {
		t.Errorf("unexpected title %q", s.Title())
	}
	if !strings.Contains(s.View(100, 40), "sample size") {
		t.Error("expected missing info in view")
	}
}

func TestQuizScreen_Failed(t *testing.T) {
	err := &pipeline.StageError{
		Stage: "generate",
		Err:   &llm.ErrResponseFormat{Raw: "{}", Err: errors.New("bad shape")},
	}
	s := New("excerpt", nil)
	s.Update(runDoneMsg{Err: err})

	if s.Phase() != PhaseFailed {
		t.Fatalf("expected failed phase, got %d", s.Phase())
	}
	if !strings.Contains(s.View(100, 40), "unusable answer") {
		t.Error("expected response-format message in view")
	}
}

func TestQuizScreen_RetryReplacesScreen(t *testing.T) {
	s := New("excerpt", nil)
	s.Update(runDoneMsg{Err: errors.New("boom")})

	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected a command on retry")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	next := msg.Screen.(*QuizScreen)
	if next.raw != "excerpt" || next.Phase() != PhaseGenerating {
		t.Error("expected a fresh run on the same excerpt")
	}
}

func TestQuizScreen_EscPops(t *testing.T) {
	s := answeringScreen(t)
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestQuizScreen_CloseCancelsRun(t *testing.T) {
	started := make(chan struct{})
	run := func(ctx context.Context, _ string, _ pipeline.Observer) (*pipeline.Result, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	s := New("excerpt", run)
	s.Init()

	done := make(chan tea.Msg)
	go func() { done <- s.startRun()() }()
	<-started
	s.Close()

	msg := (<-done).(runDoneMsg)
	if !errors.Is(msg.Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", msg.Err)
	}
	if errorKind(msg.Err) != "Cancelled" {
		t.Errorf("unexpected kind %q", errorKind(msg.Err))
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&llm.ErrTransport{Backend: "openai", StatusCode: 429}, "Rate limited by the backend"},
		{&pipeline.StageError{Stage: "assess", Err: &llm.ErrTransport{Backend: "openai", StatusCode: 500}}, "Backend request failed"},
		{&llm.ErrBackendUnavailable{Backend: "gemini"}, "Backend unavailable"},
		{errors.New("other"), "Generation failed"},
	}
	for _, tt := range tests {
		if got := errorKind(tt.err); got != tt.want {
			t.Errorf("errorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

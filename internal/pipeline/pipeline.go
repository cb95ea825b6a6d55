// Package pipeline runs the three question-generation stages in order:
// assess the excerpt, rewrite it without method names, then generate a
// multiple-choice question from the rewrite. An excerpt judged unsuitable
// stops after the first stage.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/questioner/internal/llm"
	"github.com/abhisek/questioner/internal/problemgen"
)

// State is a step of a pipeline run.
type State int

const (
	StateAssessing  State = iota // Quality Filter call in flight
	StateRejected                // Excerpt judged unsuitable; terminal
	StateRewriting               // Scenario Rewriter call in flight
	StateGenerating              // Question Generator call in flight
	StateDone                    // Question produced; terminal
)

func (s State) String() string {
	switch s {
	case StateAssessing:
		return "assessing"
	case StateRejected:
		return "rejected"
	case StateRewriting:
		return "rewriting"
	case StateGenerating:
		return "generating"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Observer is called with every state a run enters, in order.
type Observer func(State)

// Result is the outcome of a run. A rejected run carries only the
// assessment; CleanedContext and Question are both nil.
type Result struct {
	Assessment     *problemgen.AssessmentResult `json:"assessment"`
	CleanedContext *string                      `json:"cleaned_context"`
	Question       *problemgen.Question         `json:"question"`
	RunID          string                       `json:"run_id"`
}

// Rejected reports whether the run stopped at the quality filter.
func (r *Result) Rejected() bool {
	return r.Question == nil
}

// StageError wraps the error of the stage that aborted a run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline holds the three stages bound to one client. It keeps no state
// between runs and may be reused.
type Pipeline struct {
	filter    *problemgen.QualityFilter
	rewriter  *problemgen.ScenarioRewriter
	generator *problemgen.QuestionGenerator
	logger    zerolog.Logger
	observer  Observer
}

// New builds a Pipeline on client. The generator uses
// problemgen.DefaultConfig.
func New(client llm.Client, logger zerolog.Logger, observer Observer) *Pipeline {
	return &Pipeline{
		filter:    problemgen.NewQualityFilter(client),
		rewriter:  problemgen.NewScenarioRewriter(client),
		generator: problemgen.NewQuestionGenerator(client, problemgen.DefaultConfig()),
		logger:    logger,
		observer:  observer,
	}
}

// Run executes one pass over raw. Any stage failure aborts the run and is
// returned as a *StageError; nothing is retried.
func (p *Pipeline) Run(ctx context.Context, raw string) (*Result, error) {
	runID := uuid.NewString()
	ctx = llm.WithRunID(ctx, runID)
	log := p.logger.With().Str("run_id", runID).Logger()

	res := &Result{RunID: runID}

	p.enter(log, StateAssessing)
	assessment, err := p.filter.Assess(ctx, raw)
	if err != nil {
		return nil, p.fail(log, problemgen.PurposeAssess, err)
	}
	res.Assessment = assessment

	if !assessment.IsSuitable {
		p.enter(log, StateRejected)
		log.Info().Str("missing_info", assessment.MissingInfo).Msg("excerpt rejected")
		return res, nil
	}

	p.enter(log, StateRewriting)
	cleaned, err := p.rewriter.Rewrite(ctx, raw)
	if err != nil {
		return nil, p.fail(log, problemgen.PurposeRewrite, err)
	}
	res.CleanedContext = &cleaned

	p.enter(log, StateGenerating)
	q, err := p.generator.Generate(ctx, cleaned)
	if err != nil {
		return nil, p.fail(log, problemgen.PurposeGenerate, err)
	}
	res.Question = q

	p.enter(log, StateDone)
	log.Info().Str("answer", q.Answer).Msg("question generated")
	return res, nil
}

func (p *Pipeline) enter(log zerolog.Logger, s State) {
	log.Debug().Stringer("state", s).Msg("pipeline state")
	if p.observer != nil {
		p.observer(s)
	}
}

func (p *Pipeline) fail(log zerolog.Logger, stage string, err error) error {
	log.Error().Err(err).Str("stage", stage).Msg("pipeline aborted")
	return &StageError{Stage: stage, Err: err}
}

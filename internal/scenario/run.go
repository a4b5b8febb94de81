package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/seqview/seqview/internal/core"
	"github.com/seqview/seqview/internal/memds"
	"github.com/seqview/seqview/internal/utils"
)

const (
	SCENARIO_LOG_FIELD_NAME = "scenario"
)

var (
	ErrInvalidStep      = errors.New("invalid step")
	ErrUnexpectedResult = errors.New("unexpected result")
	ErrUnexpectedError  = errors.New("unexpected error")
	ErrMissingError     = errors.New("missing error")
)

// Result is the outcome of the execution of a scenario.
type Result struct {
	Scenario string        `json:"scenario"`
	Path     string        `json:"path,omitempty"`
	Steps    int           `json:"steps"`
	Executed int           `json:"executed"`
	Failure  *Failure      `json:"failure,omitempty"`
	Duration time.Duration `json:"duration"`
}

func (r Result) Ok() bool {
	return r.Failure == nil
}

// Failure describes the first failing step of a scenario.
type Failure struct {
	Step    int    `json:"step"` //1-based
	Op      string `json:"op"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`

	err error
}

func (f *Failure) Error() string {
	if f.Line > 0 {
		return fmt.Sprintf("step %d (%s, line %d): %s", f.Step, f.Op, f.Line, f.Message)
	}
	return fmt.Sprintf("step %d (%s): %s", f.Step, f.Op, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.err
}

// Run executes the steps of a scenario against a new sequence named 'main', the execution stops at the first
// failing step. Panics raised by a step are recovered and reported as failures.
func Run(ctx context.Context, sc *Scenario, logger zerolog.Logger) Result {
	start := time.Now()
	logger = logger.With().Str(SCENARIO_LOG_FIELD_NAME, sc.Name).Logger()

	result := Result{
		Scenario: sc.Name,
		Path:     sc.Path,
		Steps:    len(sc.Steps),
	}

	r := newRunner(logger)
	pending := memds.NewArrayQueueFrom(sc.Steps)

	for index := 0; ; index++ {
		step, ok := pending.Dequeue()
		if !ok {
			break
		}

		err := ctx.Err()
		if err == nil {
			err = r.execute(step)
		}

		if err != nil {
			result.Failure = &Failure{
				Step:    index + 1,
				Op:      step.Op,
				Line:    step.Line,
				Message: err.Error(),
				err:     err,
			}
			logger.Debug().Int("step", index+1).Str("op", step.Op).Err(err).Msg("step failed")
			break
		}
		result.Executed++
	}

	result.Duration = time.Since(start)
	logger.Debug().Bool("ok", result.Ok()).Dur("duration", result.Duration).Msg("scenario executed")
	return result
}

// RunAll executes the scenarios in order.
func RunAll(ctx context.Context, scenarios []*Scenario, logger zerolog.Logger) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		results = append(results, Run(ctx, sc, logger))
	}
	return results
}

type runner struct {
	sequences map[string]*core.Sequence
	cursors   map[string]*core.Cursor
}

func newRunner(logger zerolog.Logger) *runner {
	return &runner{
		sequences: map[string]*core.Sequence{
			MAIN_SEQUENCE_NAME: core.New(core.WithLogger(logger)),
		},
		cursors: map[string]*core.Cursor{},
	}
}

func (r *runner) execute(step Step) (finalErr error) {
	defer func() {
		if e := recover(); e != nil {
			finalErr = fmt.Errorf("panic: %w", utils.ConvertPanicValueToError(e))
		}
	}()

	op, ok := operations[step.Op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidStep, step.Op)
	}

	result, err := op.run(r, step)
	return checkOutcome(step, result, err)
}

// checkOutcome checks the result and error of a step against its expectations.
func checkOutcome(step Step, result any, err error) error {
	if errors.Is(err, ErrInvalidStep) {
		return err
	}

	if step.Error != "" {
		expected := errorKinds[step.Error]
		if err == nil {
			return fmt.Errorf("%w: expected a %s error, got %s", ErrMissingError, step.Error, formatValue(result))
		}
		if !errors.Is(err, expected) {
			return fmt.Errorf("%w: expected a %s error, got: %w", ErrUnexpectedError, step.Error, err)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedError, err)
	}

	if step.HasExpect && !core.ElementsEqual(result, step.Expect) {
		return fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedResult, formatValue(step.Expect), formatValue(result))
	}
	return nil
}

func (r *runner) sequence(step Step) (*core.Sequence, error) {
	return r.sequenceNamed(step.target())
}

func (r *runner) sequenceNamed(name string) (*core.Sequence, error) {
	s, ok := r.sequences[name]
	if !ok {
		return nil, fmt.Errorf("%w: sequence %q is not bound", ErrInvalidStep, name)
	}
	return s, nil
}

// sequencePair returns the targeted sequence and the sequence named by 'with'.
func (r *runner) sequencePair(step Step) (*core.Sequence, *core.Sequence, error) {
	s, err := r.sequence(step)
	if err != nil {
		return nil, nil, err
	}
	other, err := r.sequenceNamed(step.With)
	if err != nil {
		return nil, nil, err
	}
	return s, other, nil
}

// collection returns the collection argument of a step, a nil Collection is returned if 'values' is null.
func (r *runner) collection(step Step) (core.Collection, error) {
	if step.With != "" {
		s, err := r.sequenceNamed(step.With)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	if step.NilCollection {
		return nil, nil
	}
	return core.Values(step.Values...), nil
}

// formatValue returns the JSON representation of v, or a Go representation if v cannot be marshalled.
func formatValue(v any) string {
	if s, ok := v.(*core.Sequence); ok {
		return s.String()
	}
	marshalled, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(marshalled)
}

package experiment

import (
	"errors"

	"github.com/hupe1980/shadowlab/logging"
	"github.com/hupe1980/shadowlab/observation"
)

// ErrEmptyName is returned when an experiment is constructed without a name.
var ErrEmptyName = errors.New("experiment name must not be empty")

// Options configures an experiment at construction time.
type Options struct {
	// Logger receives per-evaluation debug records (name, observation id,
	// match, durations). Defaults to NoOpLogger.
	Logger logging.Logger
}

// Experiment is the first builder stage: a named experiment with no paths
// bound yet. The only available transition is Control.
type Experiment struct {
	name   string
	logger logging.Logger
}

// New creates a named experiment. The name is required metadata identifying
// the experiment instance; an empty name fails construction with
// ErrEmptyName and no partially built value is returned.
func New(name string, optFns ...func(o *Options)) (*Experiment, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Experiment{name: name, logger: opts.Logger}, nil
}

// Name returns the name the experiment was registered under.
func (e *Experiment) Name() string { return e.name }

// ControlBound is the second builder stage: the control callable is bound and
// its output type T is fixed as the trial's ground truth. The only available
// transition is Candidate (or CandidateEq).
type ControlBound[T any] struct {
	name    string
	logger  logging.Logger
	control func() T
}

// Control consumes the named stage and binds the control callable. The
// callable must be zero-argument and safe to re-enter after a panic has been
// recovered around it.
func Control[T any](ex *Experiment, control func() T) *ControlBound[T] {
	return &ControlBound[T]{
		name:    ex.name,
		logger:  ex.logger,
		control: control,
	}
}

// Name returns the name the experiment was registered under.
func (c *ControlBound[T]) Name() string { return c.name }

// Trial is the final builder stage: both paths are bound, a noop publisher is
// installed and the trial is runnable. Publish optionally overrides the
// publisher; Run and RunIf consume the trial.
type Trial[T, TE any] struct {
	name       string
	logger     logging.Logger
	control    func() T
	experiment func() TE
	compare    observation.Comparator[T, TE]
	publisher  observation.Publisher[T, TE]
}

// Candidate consumes the control-bound stage and binds the experiment
// callable together with the comparator relating its output type to the
// control's. Binding installs the default noop publisher, so the returned
// trial is immediately runnable.
func Candidate[T, TE any](cb *ControlBound[T], experiment func() TE, compare observation.Comparator[T, TE]) *Trial[T, TE] {
	return &Trial[T, TE]{
		name:       cb.name,
		logger:     cb.logger,
		control:    cb.control,
		experiment: experiment,
		compare:    compare,
		publisher:  observation.NoopPublisher[T, TE](),
	}
}

// CandidateEq is Candidate with the == comparator, for trials whose control
// and experiment produce the same comparable type.
func CandidateEq[T comparable](cb *ControlBound[T], experiment func() T) *Trial[T, T] {
	return Candidate(cb, experiment, observation.Equal[T]())
}

// Name returns the name the experiment was registered under.
func (t *Trial[T, TE]) Name() string { return t.name }

// Publish overrides the default noop publisher. It does not change
// runnability. The publisher runs synchronously within Run/RunIf and its
// failures are not caught by the engine.
func (t *Trial[T, TE]) Publish(p observation.Publisher[T, TE]) *Trial[T, TE] {
	t.publisher = p
	return t
}

// Run executes the trial unconditionally. Equivalent to RunIf with an
// always-true predicate.
func (t *Trial[T, TE]) Run() T {
	return t.RunIf(func() bool { return true })
}

// RunIf evaluates the predicate exactly once and then executes the trial.
//
// If the predicate is true, the control and experiment callables execute
// sequentially (control first) on the calling goroutine, each under its own
// panic-isolating boundary with its wall-clock duration recorded. The paired
// Observation is handed to the publisher, then the control's outcome decides
// the return: its value on success, or its original panic re-raised
// unmodified on failure. An experiment failure is only ever visible through
// the published Observation.
//
// If the predicate is false, the control callable runs directly —
// uninstrumented and unisolated, so its panic propagates immediately — and
// neither the experiment nor the publisher is invoked.
func (t *Trial[T, TE]) RunIf(predicate func() bool) T {
	if !predicate() {
		return t.control()
	}

	control := observation.Capture(t.control)
	candidate := observation.Capture(t.experiment)

	obs := observation.New(t.name, control, candidate, t.compare)

	t.logger.Debug(
		"experiment.evaluated",
		"name", t.name,
		"observation_id", obs.ID,
		"matched", obs.IsMatching(),
		"control_ok", control.OK(),
		"experiment_ok", candidate.OK(),
		"control_ms", control.Duration.Milliseconds(),
		"experiment_ms", candidate.Duration.Milliseconds(),
	)

	t.publisher.Publish(obs)

	if failure := obs.Control.Failure; failure != nil {
		var pe *observation.PanicError
		if errors.As(failure, &pe) {
			pe.Resume()
		}
		panic(failure)
	}

	return obs.Control.Value
}

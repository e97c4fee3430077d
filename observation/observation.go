package observation

import (
	"time"

	"github.com/hupe1980/shadowlab/internal/util"
)

// Comparator reports whether an experiment value compares equal to a control
// value. The relation is deliberately asymmetric: the experiment side is
// always the first argument and is compared against the control's ground
// truth. There is no requirement that a Comparator[T, TE] implies any
// reverse relation between the types.
type Comparator[T, TE any] func(experiment TE, control T) bool

// Equal returns the Comparator backed by the built-in == operator for trials
// whose control and experiment produce the same comparable type.
func Equal[T comparable]() Comparator[T, T] {
	return func(experiment, control T) bool { return experiment == control }
}

// Measurement is the outcome of executing one path exactly once. Exactly one
// of Value and Failure is meaningful: a non-nil Failure means the path
// panicked and Value holds the zero value. Duration is the wall-clock time of
// the execution attempt including the isolation boundary; it is recorded even
// on failure. Measurements produced by the asynchronous engine carry a zero
// Duration since that engine does not time its paths.
//
// A Measurement is created at the moment a path executes and is immutable
// afterwards.
type Measurement[T any] struct {
	Value    T
	Failure  error
	Duration time.Duration
}

// OK reports whether the path produced a value rather than a failure.
func (m Measurement[T]) OK() bool { return m.Failure == nil }

// Observation aggregates the measurements collected during one evaluation
// cycle: the control and experiment outcomes of a single run, plus the
// experiment name and a unique identifier for correlation in publisher
// backends. An Observation is constructed once per evaluation, handed to
// exactly one publisher invocation and then dropped.
type Observation[T, TE any] struct {
	// ID uniquely identifies this evaluation cycle.
	ID string
	// Name is the name the experiment was registered under.
	Name string
	// Control holds the trusted path's outcome.
	Control Measurement[T]
	// Experiment holds the candidate path's outcome.
	Experiment Measurement[TE]

	compare Comparator[T, TE]
}

// New assembles an Observation from the two measurements of one evaluation.
// The comparator is retained for IsMatching and is never invoked unless both
// measurements succeeded.
func New[T, TE any](name string, control Measurement[T], experiment Measurement[TE], compare Comparator[T, TE]) *Observation[T, TE] {
	return &Observation[T, TE]{
		ID:         util.NewID(),
		Name:       name,
		Control:    control,
		Experiment: experiment,
		compare:    compare,
	}
}

// IsMatching reports whether both paths succeeded and the experiment's value
// compares equal to the control's value. Any failure on either side yields
// false. Durations and the observation ID play no part in matching.
func (o *Observation[T, TE]) IsMatching() bool {
	if !o.Control.OK() || !o.Experiment.OK() {
		return false
	}
	return o.compare(o.Experiment.Value, o.Control.Value)
}

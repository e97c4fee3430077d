// Package shadowlab provides a high-level façade over the experiment engines
// and the observation data model, enabling side-by-side validation of a
// candidate code path against a trusted one under real traffic. Most
// applications interact with this package by:
//  1. Creating an experiment via New() or NewAsync() (optionally supplying a
//     structured logger)
//  2. Binding the control and experiment paths through the experiment package
//     transitions (Control/Candidate and their async counterparts)
//  3. Installing a publisher — LogPublisher for quick visibility, or any
//     custom observation.Publisher — and invoking Run/RunIf
//
// The caller always receives the control's result; the experiment's outcome
// is only ever visible to the publisher.
package shadowlab

import (
	"github.com/hupe1980/shadowlab/experiment"
	"github.com/hupe1980/shadowlab/logging"
	"github.com/hupe1980/shadowlab/observation"
)

// New creates a named synchronous experiment. See experiment.New.
func New(name string, optFns ...func(o *experiment.Options)) (*experiment.Experiment, error) {
	return experiment.New(name, optFns...)
}

// NewAsync creates a named asynchronous experiment. See experiment.NewAsync.
func NewAsync(name string, optFns ...func(o *experiment.Options)) (*experiment.AsyncExperiment, error) {
	return experiment.NewAsync(name, optFns...)
}

// LogPublisher returns a publisher that records every observation through the
// given logger: experiment name, observation id, match verdict, per-path
// success and durations. Mismatches and failed paths are logged at warn
// level, matches at info level. A nil logger falls back to NoOpLogger.
func LogPublisher[T, TE any](logger logging.Logger) observation.Publisher[T, TE] {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return observation.PublisherFunc[T, TE](func(o *observation.Observation[T, TE]) {
		args := []any{
			"name", o.Name,
			"observation_id", o.ID,
			"matched", o.IsMatching(),
			"control_ok", o.Control.OK(),
			"experiment_ok", o.Experiment.OK(),
			"control_ms", o.Control.Duration.Milliseconds(),
			"experiment_ms", o.Experiment.Duration.Milliseconds(),
		}
		if o.IsMatching() {
			logger.Info("observation.published", args...)
			return
		}
		logger.Warn("observation.mismatch", args...)
	})
}

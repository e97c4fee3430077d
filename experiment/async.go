package experiment

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/shadowlab/logging"
	"github.com/hupe1980/shadowlab/observation"
)

// Future is a deferred computation: it performs no work until driven with a
// context. Both paths of an asynchronous trial are Futures.
type Future[T any] func(ctx context.Context) (T, error)

// AsyncExperiment is the first builder stage of the asynchronous engine: a
// named experiment with no computations bound yet.
type AsyncExperiment struct {
	name   string
	logger logging.Logger
}

// NewAsync creates a named asynchronous experiment. An empty name fails
// construction with ErrEmptyName.
func NewAsync(name string, optFns ...func(o *Options)) (*AsyncExperiment, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &AsyncExperiment{name: name, logger: opts.Logger}, nil
}

// Name returns the name the experiment was registered under.
func (e *AsyncExperiment) Name() string { return e.name }

// AsyncControlBound is the second stage: the control computation is bound and
// its output type fixed.
type AsyncControlBound[T any] struct {
	name    string
	logger  logging.Logger
	control Future[T]
}

// AsyncControl consumes the named stage and binds the control computation.
func AsyncControl[T any](ex *AsyncExperiment, control Future[T]) *AsyncControlBound[T] {
	return &AsyncControlBound[T]{
		name:    ex.name,
		logger:  ex.logger,
		control: control,
	}
}

// Name returns the name the experiment was registered under.
func (c *AsyncControlBound[T]) Name() string { return c.name }

// AsyncTrial is the final stage of the asynchronous engine: both computations
// are bound, a noop publisher is installed and the trial is runnable.
type AsyncTrial[T, TE any] struct {
	name       string
	logger     logging.Logger
	control    Future[T]
	experiment Future[TE]
	compare    observation.Comparator[T, TE]
	publisher  observation.Publisher[T, TE]
}

// AsyncCandidate consumes the control-bound stage and binds the experiment
// computation together with its comparator. The returned trial is
// immediately runnable with the default noop publisher.
func AsyncCandidate[T, TE any](cb *AsyncControlBound[T], experiment Future[TE], compare observation.Comparator[T, TE]) *AsyncTrial[T, TE] {
	return &AsyncTrial[T, TE]{
		name:       cb.name,
		logger:     cb.logger,
		control:    cb.control,
		experiment: experiment,
		compare:    compare,
		publisher:  observation.NoopPublisher[T, TE](),
	}
}

// AsyncCandidateEq is AsyncCandidate with the == comparator.
func AsyncCandidateEq[T comparable](cb *AsyncControlBound[T], experiment Future[T]) *AsyncTrial[T, T] {
	return AsyncCandidate(cb, experiment, observation.Equal[T]())
}

// Name returns the name the experiment was registered under.
func (t *AsyncTrial[T, TE]) Name() string { return t.name }

// Publish overrides the default noop publisher.
func (t *AsyncTrial[T, TE]) Publish(p observation.Publisher[T, TE]) *AsyncTrial[T, TE] {
	t.publisher = p
	return t
}

// Run executes the trial unconditionally. Equivalent to RunIf with an
// always-true predicate.
func (t *AsyncTrial[T, TE]) Run(ctx context.Context) (T, error) {
	return t.RunIf(ctx, func() bool { return true })
}

// RunIf evaluates the predicate exactly once, eagerly, then executes the
// trial.
//
// If the predicate is true, the control and experiment computations are
// driven concurrently under a single joint wait; the first to finish waits
// for the other. Unlike the synchronous engine there is no per-path
// isolation and no duration measurement: the first error aborts the whole
// evaluation (the group context cancels the sibling), nothing is published
// and the error is returned to the caller wrapped with the failing path's
// role. On double success the Observation is published and the control's
// value returned.
//
// If the predicate is false, the control computation is driven alone and the
// experiment is never started.
func (t *AsyncTrial[T, TE]) RunIf(ctx context.Context, predicate func() bool) (T, error) {
	if !predicate() {
		return t.control(ctx)
	}

	var (
		controlValue    T
		experimentValue TE
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := t.control(gctx)
		if err != nil {
			return fmt.Errorf("control computation failed: %w", err)
		}
		controlValue = v
		return nil
	})
	g.Go(func() error {
		v, err := t.experiment(gctx)
		if err != nil {
			return fmt.Errorf("experiment computation failed: %w", err)
		}
		experimentValue = v
		return nil
	})

	if err := g.Wait(); err != nil {
		var zero T
		return zero, err
	}

	obs := observation.New(
		t.name,
		observation.Measurement[T]{Value: controlValue},
		observation.Measurement[TE]{Value: experimentValue},
		t.compare,
	)

	t.logger.Debug(
		"experiment.async.evaluated",
		"name", t.name,
		"observation_id", obs.ID,
		"matched", obs.IsMatching(),
	)

	t.publisher.Publish(obs)

	return controlValue, nil
}

// Package experiment implements the two shadow-execution engines: one for
// ordinary callables and one for deferred, context-aware computations. Both
// run a trusted control path next to a candidate experiment path, hand the
// paired outcome to a publisher and always return the control's result — the
// experiment is observed, never trusted.
//
// Each engine is a consuming type-state builder. Construction, control
// binding and experiment binding each produce a new, more specialized stage;
// the terminal Run/RunIf operations only exist on the final stage, so running
// without both paths bound is a compile error rather than a runtime check:
//
//	ex, err := experiment.New("pricing-rewrite")
//	if err != nil { ... }
//	trial := experiment.CandidateEq(
//		experiment.Control(ex, legacyPrice),
//		rewrittenPrice,
//	)
//	price := trial.Publish(myPublisher).Run()
//
// The synchronous engine executes both paths sequentially on the calling
// goroutine, isolates panics per path and records wall-clock durations. The
// asynchronous engine drives both computations concurrently under a single
// joint wait so overlapping I/O time is not paid twice; the cost is that it
// has no per-path isolation and no duration measurement — a failing
// computation aborts the whole evaluation before anything is published. This
// asymmetry is deliberate and callers must account for it.
//
// Builders are single-use. Every transition conceptually consumes its input
// stage, and a trial must not be run more than once or reused after Run
// returns.
package experiment

package observation

// Publisher consumes the Observation produced by one evaluation cycle. It is
// invoked at most once per run, synchronously, before the engine returns.
// Engines never recover from a publisher failure: a panicking publisher
// aborts the run it was called from. Aggregation, storage and alerting are
// entirely the publisher's concern.
type Publisher[T, TE any] interface {
	Publish(o *Observation[T, TE])
}

// PublisherFunc adapts an ordinary function to the Publisher interface.
type PublisherFunc[T, TE any] func(o *Observation[T, TE])

// Publish calls f(o).
func (f PublisherFunc[T, TE]) Publish(o *Observation[T, TE]) { f(o) }

// NoopPublisher returns the publisher installed by default when an experiment
// path is bound. It discards every observation.
func NoopPublisher[T, TE any]() Publisher[T, TE] {
	return PublisherFunc[T, TE](func(*Observation[T, TE]) {})
}

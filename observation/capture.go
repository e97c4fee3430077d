package observation

import (
	"fmt"
	"runtime/debug"
	"time"
)

// PanicError is the captured payload of a panic raised inside a path executed
// through Capture. Value holds the original recovered value and Stack the
// goroutine stack at recovery time.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string { return fmt.Sprintf("panic recovered: %v", e.Value) }

// Resume re-raises the original panic value, unmodified. Callers that want to
// propagate a captured control failure after publishing use this instead of
// wrapping the payload in a new error.
func (e *PanicError) Resume() { panic(e.Value) }

// Capture executes fn under a panic-isolating boundary and records the
// wall-clock duration of the attempt. A panic inside fn does not escape; it
// is converted into a PanicError stored as the measurement's Failure. The
// duration covers the boundary itself and is recorded on both success and
// failure.
func Capture[T any](fn func() T) Measurement[T] {
	var m Measurement[T]
	start := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				m.Failure = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
		m.Value = fn()
	}()
	m.Duration = time.Since(start)
	return m
}

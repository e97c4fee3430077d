// Package logging provides a minimal logging interface and adapters for
// shadowlab.
//
// The Logger interface defines the standard structured logging methods
// (Debug, Info, Warn, Error) that the engines and bundled publishers use for
// observability. The package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelDebug, "text", false)
//	ex, err := experiment.New("billing-rewrite", func(o *experiment.Options) {
//		o.Logger = logger
//	})
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging

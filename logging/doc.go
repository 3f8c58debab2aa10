// Package logging provides a minimal logging interface and adapters for roundtable.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the registry and the collaboration orchestrator use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelInfo, Format: "json"})
//	rt := roundtable.New(cfg, func(o *roundtable.Options) { o.Logger = logger })
//
// Messages are short dotted event names ("collab.phase.complete") followed by
// key/value attributes.
package logging

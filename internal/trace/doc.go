// Package trace is the logging layer of sbasic: structured span and point
// events emitted by the driver, the pipeline stages, the binder and the
// language server.
//
// # Usage
//
//	sbasic diag --trace=- --trace-level=phase prog.sb
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// A level admits scopes up to its depth: phase admits driver and stage
// events, detail adds per-module events, debug admits everything.
//
//	span := trace.Begin(t, trace.ScopeStage, "bind", parent.ID())
//	defer span.End("")
package trace

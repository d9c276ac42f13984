// Package trace records what the front end is doing while it runs.
//
// Nova has no logging library; phase boundaries and per-file work are reported
// as trace events instead. The CLI turns them on with
//
//	nova diag --trace=phase src/
//
// Tracers:
//
//   - Nop: the default, costs one interface call per event
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans events out to several tracers
//
// Scopes go from coarse to fine: driver, pass (lex, parse), file, node.
// The Level decides how fine an event may be and still be emitted.
//
// Tracers travel through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace

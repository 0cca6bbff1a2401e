// Package recompute runs stability computations off the caller's goroutine
// with latest-request-wins semantics.
//
// Submit stores a deep copy of the request as the single pending job and
// bumps a monotonically increasing generation. Run drains the pending job,
// computes it (through a hullcache.Cache) and publishes an Update only when
// its generation is still the newest; older results are dropped and counted.
// The Updates channel holds at most one value: an unread update is replaced
// by a newer one, so a slow reader only ever sees the latest diagram.
//
// Every computation is wrapped in an OpenTelemetry span; with no tracer
// provider configured the global (no-op by default) provider is used.
package recompute

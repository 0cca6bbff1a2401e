// Package hullcache memoizes stability diagrams by an immutable snapshot key.
//
// A Cache is an explicit, caller-owned object (there is no package-level
// state): the key is an xxhash digest of a canonical encoding of the request
// (system, tolerance, policy and every entry in order), diagrams live in a
// bounded LRU, and concurrent misses for the same key share one computation
// through singleflight. Cached diagrams are immutable and shared between callers.
//
// Metrics (Prometheus, registered only when WithRegisterer is given):
//
//	phasehull_cache_hits_total
//	phasehull_cache_misses_total
//	phasehull_cache_computations_total
//	phasehull_cache_compute_seconds
//	phasehull_cache_entries
package hullcache

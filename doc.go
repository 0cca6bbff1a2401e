// Package phasehull computes thermodynamic phase stability of 2–4 element
// chemical systems from the convex hull of formation energies.
//
// 🚀 What is phasehull?
//
//	A small, deterministic engine that brings together:
//		• Composition handling: elements, systems, fractional coordinates
//		• Convex hulls in up to four dimensions, lower facets tagged
//		• Stability: stable / unstable / indeterminate, energy above hull,
//		  decomposition products and tie lines
//		• Plot projections: binary line, ternary triangle, quaternary tetrahedron
//		• Serving: snapshot cache and a latest-request-wins recompute worker
//
// ✨ Why phasehull?
//
//   - Fail-closed numerics – degenerate or unstable inputs never report a
//     wrong "stable", they report Indeterminate with a reason
//   - Explicit tolerances – one relative tolerance drives every comparison
//   - Pure Go core – no cgo; service concerns live in their own packages
//
// Packages:
//
//	matrix/     — dense matrices, LU solve, determinant, inverse
//	geom/       — vectors, affine spans, generalized cross products
//	chem/       — elements, chemical systems, entries, normalization
//	hull/       — n-dimensional convex hull with lower-facet classification
//	stability/  — Compute, Diagram queries, reference synthesis, filters
//	projection/ — composition ↔ plot coordinates
//	hullcache/  — LRU + singleflight diagram cache keyed by snapshot hash
//	recompute/  — background worker, newest request wins
//	fixture/    — YAML entry sets and synthetic landscape generation
//	cmd/phasehull — CLI: compute, watch, project, generate
//
// Quick ASCII example (Na–Cl, energies in eV/atom):
//
//	 0   Na ●                 ● Cl
//	         \               /
//	-1        `──────●──────´
//	               NaCl
//
// NaCl lies below the Na–Cl segment, so all three are stable; any other NaCl
// polymorph sits above it by its energy difference.
//
//	go get github.com/katalvlaran/phasehull
package phasehull

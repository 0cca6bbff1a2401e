// SPDX-License-Identifier: MIT

// Package stability classifies phase entries against the lower convex
// energy hull of a chemical system.
//
// Compute is the batch entry point:
//
//	entries + system
//	  → chem.NormalizeAll          (per-entry filtering)
//	  → SynthesizeReferences       (pure-element vertices, policy driven)
//	  → hull.Build                 (lower envelope in composition-energy space)
//	  → evaluation                 (facet location, barycentric weights, e_above_hull)
//
// Every entry gets exactly one Result, aligned by index. Results never carry
// a negative e_above_hull: a point found below the hull is re-admitted into
// hull construction and the hull rebuilt (a bounded number of rounds).
//
// Failure semantics:
//
//   - Input errors stay per entry (Status Filtered, Result.Err wraps an *EntryError).
//   - A degenerate system (fewer than d affinely independent points) sets
//     Diagram.Err to ErrDegenerateSystem; hull vertices stay Stable and every
//     other entry is Indeterminate.
//   - A numerically unstable hull fails closed: no facets, every entry
//     Indeterminate, Diagram.Err wraps ErrNumericalInstability.
//   - Synthesized references are reported as *MissingReferenceWarning values
//     in Diagram.Warnings; results that depend on them carry ApproximateReference.
//
// A Diagram is immutable after Compute returns and safe for concurrent reads.
package stability

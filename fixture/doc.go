// Package fixture reads and writes phase-entry sets as YAML and generates
// synthetic entry sets for tests, benchmarks and demos.
//
// File layout:
//
//	system: Li-Fe-O
//	tolerance: 1e-7        # optional
//	policy: zero           # optional: zero | lowest | none
//	entries:
//	  - id: LiFeO2
//	    composition: {Li: 1, Fe: 1, O: 2}
//	    energy_per_atom: -1.92
//	    metadata: {source: calc}
//
// Generated energies come from fractal OpenSimplex noise over composition
// space scaled by an ideal-mixing envelope, so pure elements sit near zero
// and mixtures form a rugged, reproducible landscape for a given seed.
package fixture

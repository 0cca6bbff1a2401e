// SPDX-License-Identifier: MIT

// Package chem defines the chemistry-side data model of the hull engine and
// the composition normalizer.
//
// 🚀 What is here?
//
//	Element          — an atomic symbol from the fixed periodic-table vocabulary
//	ChemicalSystem   — an ordered set of 2–4 distinct elements (the simplex axes)
//	Composition      — element → amount (not necessarily normalised)
//	PhaseEntry       — a composition with its energy per atom
//	NormalizedPoint  — fractional coordinates over a ChemicalSystem + energy
//
// ⚙️ Usage:
//
//	sys, _ := chem.NewChemicalSystem("Li", "Fe", "O")
//	p, err := chem.Normalize(chem.PhaseEntry{
//		Composition:   chem.Composition{"Li": 1, "O": 2},
//		EnergyPerAtom: -3.1,
//	}, sys)
//	// p.Fractions == [1/3, 0]   (the O fraction 2/3 is implicit)
//
// Normalization is pure: entries outside the system, empty compositions and
// non-finite values are reported through sentinel errors and never abort a
// batch (see NormalizeAll).
package chem

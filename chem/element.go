// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"strings"
)

// Element is an atomic symbol such as "Fe". The zero value is not a valid element.
type Element string

// periodicTable lists symbols in atomic-number order (index+1 == Z).
var periodicTable = [...]Element{
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba",
	"La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra",
	"Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm", "Md", "No", "Lr",
	"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// atomicNumbers is the reverse index of periodicTable.
var atomicNumbers = func() map[Element]int {
	m := make(map[Element]int, len(periodicTable))
	for i, e := range periodicTable {
		m[e] = i + 1
	}
	return m
}()

// ParseElement validates a symbol against the periodic table.
// Surrounding whitespace is ignored; case must match ("Fe", not "FE").
func ParseElement(symbol string) (Element, error) {
	e := Element(strings.TrimSpace(symbol))
	if !e.Valid() {
		return "", fmt.Errorf("ParseElement(%q): %w", symbol, ErrUnknownElement)
	}

	return e, nil
}

// Valid reports whether e is a known symbol.
func (e Element) Valid() bool {
	_, ok := atomicNumbers[e]
	return ok
}

// AtomicNumber returns Z, or 0 for an unknown symbol.
func (e Element) AtomicNumber() int { return atomicNumbers[e] }

func (e Element) String() string { return string(e) }

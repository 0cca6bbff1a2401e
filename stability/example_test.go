// SPDX-License-Identifier: MIT

package stability_test

import (
	"fmt"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/stability"
)

func ExampleCompute() {
	sys := chem.MustChemicalSystem("Na", "Cl")
	d, err := stability.Compute([]chem.PhaseEntry{
		{ID: "Na", Composition: chem.Composition{"Na": 1}},
		{ID: "Cl", Composition: chem.Composition{"Cl": 1}},
		{ID: "NaCl", Composition: chem.Composition{"Na": 1, "Cl": 1}, EnergyPerAtom: -1},
		{ID: "NaCl-meta", Composition: chem.Composition{"Na": 1, "Cl": 1}, EnergyPerAtom: -0.5},
		{ID: "KCl", Composition: chem.Composition{"K": 1, "Cl": 1}, EnergyPerAtom: -2},
	}, sys)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range d.Results {
		fmt.Printf("%d %-13s %.2f\n", r.Entry, r.Status, r.EAboveHull)
	}
	fmt.Println(d.TieLines())
	// Output:
	// 0 stable        0.00
	// 1 stable        0.00
	// 2 stable        0.00
	// 3 unstable      0.50
	// 4 filtered      0.00
	// [[0 2] [1 2]]
}

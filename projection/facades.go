// SPDX-License-Identifier: MIT

package projection

var (
	ternary    = mustNew(3)
	quaternary = mustNew(4)
)

// ProjectTernary maps (a, b, c) fractions onto the unit equilateral triangle.
func ProjectTernary(fractions [3]float64) (x, y float64, err error) {
	out, err := ternary.Project(fractions[:])
	if err != nil {
		return 0, 0, err
	}

	return out[0], out[1], nil
}

// ProjectTernary3D is ProjectTernary with energy as z.
func ProjectTernary3D(fractions [3]float64, energy float64) (x, y, z float64, err error) {
	out, err := ternary.ProjectWithEnergy(fractions[:], energy)
	if err != nil {
		return 0, 0, 0, err
	}

	return out[0], out[1], out[2], nil
}

// ProjectQuaternary maps four fractions onto the regular unit tetrahedron.
func ProjectQuaternary(fractions [4]float64) (x, y, z float64, err error) {
	out, err := quaternary.Project(fractions[:])
	if err != nil {
		return 0, 0, 0, err
	}

	return out[0], out[1], out[2], nil
}

// UnprojectTernary inverts ProjectTernary, clamping into the triangle.
func UnprojectTernary(x, y float64) ([3]float64, error) {
	var out [3]float64
	w, err := ternary.Unproject([]float64{x, y})
	if err != nil {
		return out, err
	}
	copy(out[:], w)

	return out, nil
}

// UnprojectTernary3D inverts ProjectTernary3D.
func UnprojectTernary3D(x, y, z float64) ([3]float64, float64, error) {
	var out [3]float64
	w, e, err := ternary.UnprojectWithEnergy([]float64{x, y, z})
	if err != nil {
		return out, 0, err
	}
	copy(out[:], w)

	return out, e, nil
}

// UnprojectQuaternary inverts ProjectQuaternary, clamping into the tetrahedron.
func UnprojectQuaternary(x, y, z float64) ([4]float64, error) {
	var out [4]float64
	w, err := quaternary.Unproject([]float64{x, y, z})
	if err != nil {
		return out, err
	}
	copy(out[:], w)

	return out, nil
}

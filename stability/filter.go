// SPDX-License-Identifier: MIT

package stability

// VisibleUnstable returns the indices of Unstable results whose EAboveHull is
// at most threshold. It is a display filter over fixed results: raising the
// threshold never removes an index.
func VisibleUnstable(results []Result, threshold float64) []int {
	var out []int
	for i, r := range results {
		if r.Status == Unstable && r.EAboveHull <= threshold {
			out = append(out, i)
		}
	}

	return out
}

// CountVisibleUnstable is len(VisibleUnstable(results, threshold)) without the allocation.
func CountVisibleUnstable(results []Result, threshold float64) int {
	n := 0
	for _, r := range results {
		if r.Status == Unstable && r.EAboveHull <= threshold {
			n++
		}
	}

	return n
}

package hullcache

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/stability"
)

// Request is one Compute input snapshot.
type Request struct {
	Entries   []chem.PhaseEntry
	System    chem.ChemicalSystem
	Tolerance float64 // 0 means stability.DefaultTolerance
	Policy    stability.ReferencePolicy
}

// Clone deep-copies the entries so the request can cross goroutines.
func (r Request) Clone() Request {
	out := r
	out.Entries = make([]chem.PhaseEntry, len(r.Entries))
	for i, e := range r.Entries {
		out.Entries[i] = e.Clone()
	}

	return out
}

// Validate rejects configuration that Options cannot express. It runs
// before any computation is scheduled.
//
// Errors:
//   - ErrInvalidRequest wrapping stability.ErrInvalidPolicy.
func (r Request) Validate() error {
	if _, err := r.Policy.MarshalText(); err != nil {
		return fmt.Errorf("Validate: %w: %w", ErrInvalidRequest, err)
	}

	return nil
}

// Options converts the request configuration into stability options.
// It panics on an unknown Policy; call Validate first.
func (r Request) Options() []stability.Option {
	return []stability.Option{
		stability.WithTolerance(r.tolerance()),
		stability.WithReferencePolicy(r.Policy),
	}
}

func (r Request) tolerance() float64 {
	if r.Tolerance == 0 {
		return stability.DefaultTolerance
	}

	return r.Tolerance
}

// Key is the snapshot hash of a Request.
type Key uint64

// Key hashes everything that influences the diagram: system order,
// tolerance, policy, and each entry's ID, energy and positive amounts in
// element order. Metadata is ignored. Entry order matters because results
// are aligned by index.
func (r Request) Key() Key {
	h := xxhash.New()
	var buf [8]byte
	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = h.Write(buf[:])
		_, _ = h.WriteString(s)
	}
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	writeInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		_, _ = h.Write(buf[:])
	}

	writeString(r.System.String())
	writeFloat(r.tolerance())
	writeInt(int(r.Policy))
	writeInt(len(r.Entries))

	elems := make([]chem.Element, 0, 8)
	for _, e := range r.Entries {
		writeString(e.ID)
		writeFloat(e.EnergyPerAtom)
		elems = elems[:0]
		for el, amt := range e.Composition {
			if amt > 0 || math.IsNaN(amt) {
				elems = append(elems, el)
			}
		}
		sort.Slice(elems, func(i, j int) bool { return elems[i] < elems[j] })
		writeInt(len(elems))
		for _, el := range elems {
			writeString(string(el))
			writeFloat(e.Composition[el])
		}
	}

	return Key(h.Sum64())
}

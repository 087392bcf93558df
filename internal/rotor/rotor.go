// Package rotor implements the stateful substitution stage of the cipher:
// eight keyed rotors that substitute code points over the Basic
// Multilingual Plane and rotate as characters are processed, Enigma style.
package rotor

import (
	"fmt"

	"github.com/problema-cipher/problema/internal/schedule"
)

// Rotor is one substitution wheel. Mapping and its functional inverse share
// a single rotation offset, which keeps the forward and backward banks
// synchronized by construction.
type Rotor struct {
	mapping  []uint32
	inverse  []uint32
	position int
	notches  []int
}

// atNotch reports whether the rotor currently rests on one of its notch
// positions.
func (r *Rotor) atNotch() bool {
	for _, n := range r.notches {
		if r.position == n {
			return true
		}
	}
	return false
}

// Bank is the ordered set of rotors plus their remembered initial
// positions, so a context can rewind to its post-initialization state.
type Bank struct {
	rotors  [schedule.NumRotors]Rotor
	initial [schedule.NumRotors]int
}

// NewBank assembles a bank from derived rotor specs. The specs' tables are
// referenced, not copied; they are read-only from here on.
func NewBank(specs [schedule.NumRotors]schedule.RotorSpec) *Bank {
	b := &Bank{}
	for i, spec := range specs {
		b.rotors[i] = Rotor{
			mapping:  spec.Mapping,
			inverse:  spec.Inverse,
			position: spec.Position,
			notches:  spec.Notches,
		}
		b.initial[i] = spec.Position
	}
	return b
}

// Step advances the rotational state once. Rotor 0 always moves one
// position; each further rotor moves only while its predecessor, after any
// advance it just received, rests exactly on one of its notches. The
// cascade stops at the first rotor off-notch.
func (b *Bank) Step() {
	b.rotors[0].position = (b.rotors[0].position + 1) % schedule.RotorDomain

	for r := 0; r < schedule.NumRotors-1; r++ {
		if !b.rotors[r].atNotch() {
			break
		}
		b.rotors[r+1].position = (b.rotors[r+1].position + 1) % schedule.RotorDomain
	}
}

// Forward substitutes a code point through rotors 0..7 in order. Code
// points outside the BMP bypass the bank unchanged; that restriction is a
// documented property of the cipher, not an error.
func (b *Bank) Forward(v uint32) uint32 {
	if v >= schedule.RotorDomain {
		return v
	}
	for r := 0; r < schedule.NumRotors; r++ {
		pos := uint32(b.rotors[r].position)
		v = b.rotors[r].mapping[(v+pos)%schedule.RotorDomain]
		v = (v + schedule.RotorDomain - pos) % schedule.RotorDomain
	}
	return v
}

// Backward substitutes a code point through the inverse tables, rotors
// 7..0. With unchanged positions it is the exact inverse of Forward.
func (b *Bank) Backward(v uint32) uint32 {
	if v >= schedule.RotorDomain {
		return v
	}
	for r := schedule.NumRotors - 1; r >= 0; r-- {
		pos := uint32(b.rotors[r].position)
		v = (v + pos) % schedule.RotorDomain
		v = b.rotors[r].inverse[v]
		v = (v + schedule.RotorDomain - pos) % schedule.RotorDomain
	}
	return v
}

// Positions returns the current rotation offsets, rotor 0 first.
func (b *Bank) Positions() [schedule.NumRotors]int {
	var p [schedule.NumRotors]int
	for i := range b.rotors {
		p[i] = b.rotors[i].position
	}
	return p
}

// ResetPositions rewinds every rotor to its post-initialization offset.
func (b *Bank) ResetPositions() {
	for i := range b.rotors {
		b.rotors[i].position = b.initial[i]
	}
}

// Validate checks that every rotor table and its inverse are exact
// permutations of the BMP and that the inverse really inverts the mapping.
func (b *Bank) Validate() error {
	for i := range b.rotors {
		r := &b.rotors[i]
		if len(r.mapping) != schedule.RotorDomain || len(r.inverse) != schedule.RotorDomain {
			return fmt.Errorf("rotor %d: table size %d/%d, want %d", i, len(r.mapping), len(r.inverse), schedule.RotorDomain)
		}
		seen := make([]bool, schedule.RotorDomain)
		for in, out := range r.mapping {
			if seen[out] {
				return fmt.Errorf("rotor %d: duplicate output %d", i, out)
			}
			seen[out] = true
			if r.inverse[out] != uint32(in) {
				return fmt.Errorf("rotor %d: inverse[%d] = %d, want %d", i, out, r.inverse[out], in)
			}
		}
	}
	return nil
}

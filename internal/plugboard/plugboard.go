// Package plugboard implements the static keyed substitution applied at
// the outer edge of the rotor stage.
package plugboard

import (
	"fmt"

	"github.com/problema-cipher/problema/internal/schedule"
)

// Board is a single substitution table over the BMP. There is no separate
// inverse table: both the encrypt and decrypt paths apply this same
// mapping, exactly as the cipher defines it.
type Board struct {
	mapping []uint32
}

// New wraps a derived plugboard table. The table is referenced, not
// copied, and is read-only from here on.
func New(mapping []uint32) *Board {
	return &Board{mapping: mapping}
}

// Apply substitutes a code point inside the BMP and passes anything
// outside it through unchanged.
func (b *Board) Apply(v uint32) uint32 {
	if v < schedule.RotorDomain {
		return b.mapping[v]
	}
	return v
}

// Validate checks that the table is an exact permutation of the BMP.
func (b *Board) Validate() error {
	if len(b.mapping) != schedule.RotorDomain {
		return fmt.Errorf("plugboard: table size %d, want %d", len(b.mapping), schedule.RotorDomain)
	}
	seen := make([]bool, schedule.RotorDomain)
	for _, out := range b.mapping {
		if seen[out] {
			return fmt.Errorf("plugboard: duplicate output %d", out)
		}
		seen[out] = true
	}
	return nil
}

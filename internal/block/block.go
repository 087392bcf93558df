// Package block implements the 16-byte substitution-permutation transform:
// SubBytes, ShiftRows, MixColumns and AddRoundKey with their inverses.
// The structure follows AES but every stage is deliberately simplified;
// in particular MixColumns is a plain XOR diffusion, not a finite-field
// matrix multiplication, and only round-key slot 0 is consulted.
package block

import (
	"fmt"

	"github.com/problema-cipher/problema/internal/schedule"
)

// Transform holds the keyed tables the block path needs. It carries no
// mutable state: chaining lives in the cipher context, so one Transform
// may serve any number of sequential calls.
type Transform struct {
	sbox      [schedule.SBoxSize]byte
	invSBox   [schedule.SBoxSize]byte
	roundKeys [schedule.NumRounds + 1][schedule.BlockSize]byte
}

// New builds a Transform from derived tables.
func New(sbox, invSBox [schedule.SBoxSize]byte, roundKeys [schedule.NumRounds + 1][schedule.BlockSize]byte) *Transform {
	return &Transform{sbox: sbox, invSBox: invSBox, roundKeys: roundKeys}
}

// Forward applies SubBytes, ShiftRows, MixColumns and AddRoundKey to one
// block.
func (t *Transform) Forward(b [schedule.BlockSize]byte) [schedule.BlockSize]byte {
	var tmp [schedule.BlockSize]byte

	// SubBytes
	for i := range b {
		tmp[i] = t.sbox[b[i]]
	}

	// ShiftRows: left-rotate row i by i positions, rows read row-major.
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			b[i*4+j] = tmp[i*4+(j+i)%4]
		}
	}

	mixColumns(&b)

	// AddRoundKey: slot 0 only, regardless of the full schedule.
	for i := range b {
		b[i] ^= t.roundKeys[0][i]
	}

	return b
}

// Inverse undoes Forward stage by stage in reverse order. For every block
// B, Inverse(Forward(B)) == B under the same tables.
func (t *Transform) Inverse(b [schedule.BlockSize]byte) [schedule.BlockSize]byte {
	for i := range b {
		b[i] ^= t.roundKeys[0][i]
	}

	mixColumns(&b)

	// InvShiftRows: right-rotate row i by i positions.
	var tmp [schedule.BlockSize]byte
	copy(tmp[:], b[:])
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			b[i*4+(j+i)%4] = tmp[i*4+j]
		}
	}

	for i := range b {
		b[i] = t.invSBox[b[i]]
	}

	return b
}

// mixColumns XORs every byte of a 4-byte group with the group's parity.
// The map is its own inverse, so the decrypt path reuses it directly.
func mixColumns(b *[schedule.BlockSize]byte) {
	for i := 0; i < 4; i++ {
		s := b[i*4] ^ b[i*4+1] ^ b[i*4+2] ^ b[i*4+3]
		b[i*4] ^= s
		b[i*4+1] ^= s
		b[i*4+2] ^= s
		b[i*4+3] ^= s
	}
}

// RoundKey returns a copy of one round-key slot.
func (t *Transform) RoundKey(round int) [schedule.BlockSize]byte {
	return t.roundKeys[round]
}

// Validate checks that the S-box and its inverse are exact permutations of
// the byte domain and invert each other.
func (t *Transform) Validate() error {
	var seen [schedule.SBoxSize]bool
	for in, out := range t.sbox {
		if seen[out] {
			return fmt.Errorf("sbox: duplicate output %d", out)
		}
		seen[out] = true
		if t.invSBox[out] != byte(in) {
			return fmt.Errorf("sbox: inverse[%d] = %d, want %d", out, t.invSBox[out], in)
		}
	}
	return nil
}

// Package problema implements an experimental symmetric cipher that layers
// a rotor/plugboard substitution stage in front of a simplified
// substitution-permutation block transform, chained by feedback registers
// and keyed entirely from a single 256-bit master key. It operates on
// Unicode code points rather than bytes, so mixed-script text passes
// through the same rotor tables.
//
// This is a study cipher. It deliberately omits a real key-derivation
// function, finite-field diffusion and a multi-round schedule, and must
// not be used to protect anything of value.
package problema

import (
	"github.com/sirupsen/logrus"

	"github.com/problema-cipher/problema/internal/block"
	"github.com/problema-cipher/problema/internal/plugboard"
	"github.com/problema-cipher/problema/internal/rotor"
	"github.com/problema-cipher/problema/internal/schedule"
)

const (
	// KeySize is the master key length in bytes.
	KeySize = schedule.KeySize
	// BlockSize is the block path unit size in bytes.
	BlockSize = schedule.BlockSize
)

// Cipher is a cipher context: all tables derived from one master key plus
// the mutable state the two stream paths carry. Every processed unit
// mutates rotor positions or a chaining register, so a Cipher must not be
// shared between goroutines; independent messages belong on independent
// contexts.
type Cipher struct {
	key       [KeySize]byte
	bank      *rotor.Bank
	board     *plugboard.Board
	transform *block.Transform

	// Chaining registers, one per stream path, both zeroed per message.
	charRegister  [BlockSize]byte
	blockRegister [BlockSize]byte

	initialized bool

	trace bool
	log   *logrus.Logger
}

// Init derives every secret table from the key and returns a ready
// context. The rotor tables alone hold eight 65536-entry permutations per
// bank; they are allocated once here and reused for the context lifetime.
func Init(key []byte, config *Config) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	if config == nil {
		config = &Config{}
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	c := &Cipher{
		trace: config.Trace,
		log:   config.Logger,
	}
	copy(c.key[:], key)

	tables := schedule.Derive(c.key)
	c.bank = rotor.NewBank(tables.Rotors)
	c.board = plugboard.New(tables.Plugboard)
	c.transform = block.New(tables.SBox, tables.InvSBox, tables.RoundKeys)
	c.initialized = true

	c.log.WithFields(logrus.Fields{
		"rotors": schedule.NumRotors,
		"domain": schedule.RotorDomain,
	}).Debug("cipher context initialized")

	return c, nil
}

// Reset rewinds the context to its post-Init state under the same key:
// rotor positions return to their derived offsets and both chaining
// registers are zeroed. Use it to start a new message on an existing
// context.
func (c *Cipher) Reset() error {
	if !c.initialized {
		return ErrNotInitialized
	}

	c.bank.ResetPositions()
	c.charRegister = [BlockSize]byte{}
	c.blockRegister = [BlockSize]byte{}
	return nil
}

// Close zeroizes the master key and the chaining registers and marks the
// context unusable. Any later operation returns ErrNotInitialized. Close
// is idempotent.
func (c *Cipher) Close() {
	c.key = [KeySize]byte{}
	c.charRegister = [BlockSize]byte{}
	c.blockRegister = [BlockSize]byte{}
	c.bank = nil
	c.board = nil
	c.transform = nil
	c.initialized = false

	c.log.Debug("cipher context closed")
}

// RotorPositions exposes the current rotor offsets, rotor 0 first.
func (c *Cipher) RotorPositions() ([schedule.NumRotors]int, error) {
	if !c.initialized {
		return [schedule.NumRotors]int{}, ErrNotInitialized
	}
	return c.bank.Positions(), nil
}

package rotor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/problema-cipher/problema/internal/schedule"
)

// identityBank builds a bank of identity rotors so the stepping cascade can
// be traced by hand. notches[r] sets rotor r's notch list.
func identityBank(notches [schedule.NumRotors][]int) *Bank {
	identity := make([]uint32, schedule.RotorDomain)
	for i := range identity {
		identity[i] = uint32(i)
	}

	var specs [schedule.NumRotors]schedule.RotorSpec
	for r := range specs {
		specs[r] = schedule.RotorSpec{
			Mapping: identity,
			Inverse: identity,
			Notches: notches[r],
		}
	}
	return NewBank(specs)
}

func derivedBank(t *testing.T) *Bank {
	t.Helper()
	var key [schedule.KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	return NewBank(schedule.Derive(key).Rotors)
}

func TestStepCascadeStopsAtFirstRotorOffNotch(t *testing.T) {
	var notches [schedule.NumRotors][]int
	notches[0] = []int{5}
	notches[1] = []int{3}
	for r := 2; r < schedule.NumRotors; r++ {
		notches[r] = []int{9999}
	}
	bank := identityBank(notches)

	// Rotor 0 advances every step. Only the fifth step leaves it on its
	// notch, so rotor 1 moves exactly once; rotor 1 never reaches 3, so
	// the cascade never goes further.
	for i := 0; i < 6; i++ {
		bank.Step()
	}

	want := [schedule.NumRotors]int{6, 1, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, want, bank.Positions())
}

func TestStepCascadeChainsThroughConsecutiveNotches(t *testing.T) {
	var notches [schedule.NumRotors][]int
	for r := range notches {
		notches[r] = []int{1}
	}
	bank := identityBank(notches)

	// Every rotor lands on its notch as soon as it moves, so one step
	// ripples through the whole bank.
	bank.Step()

	want := [schedule.NumRotors]int{1, 1, 1, 1, 1, 1, 1, 1}
	assert.Equal(t, want, bank.Positions())
}

func TestBackwardInvertsForwardAtFixedPositions(t *testing.T) {
	bank := derivedBank(t)

	inputs := []uint32{0, 0x48, 0x69, 0xAC00, 0xFFFF}
	for _, in := range inputs {
		out := bank.Forward(in)
		require.Equal(t, in, bank.Backward(out), "input %#x", in)
	}
}

func TestBackwardStaysInSyncAfterStepping(t *testing.T) {
	bank := derivedBank(t)

	for i := 0; i < 1000; i++ {
		bank.Step()
		in := uint32(i*131) % schedule.RotorDomain
		require.Equal(t, in, bank.Backward(bank.Forward(in)), "step %d", i)
	}
}

func TestForwardKnownAnswer(t *testing.T) {
	bank := derivedBank(t)

	assert.Equal(t, uint32(0x50), bank.Forward(0x48))
}

func TestNonBMPBypassesBank(t *testing.T) {
	bank := derivedBank(t)

	assert.Equal(t, uint32(0x1F600), bank.Forward(0x1F600))
	assert.Equal(t, uint32(0x1F600), bank.Backward(0x1F600))
}

func TestResetPositionsRewindsToInitial(t *testing.T) {
	bank := derivedBank(t)
	initial := bank.Positions()

	for i := 0; i < 17; i++ {
		bank.Step()
	}
	require.NotEqual(t, initial, bank.Positions())

	bank.ResetPositions()
	assert.Equal(t, initial, bank.Positions())
}

func TestValidateAcceptsDerivedTables(t *testing.T) {
	require.NoError(t, derivedBank(t).Validate())
}

func TestValidateRejectsCorruptedInverse(t *testing.T) {
	var key [schedule.KeySize]byte
	tables := schedule.Derive(key)
	tables.Rotors[2].Inverse[17] = tables.Rotors[2].Inverse[18]
	bank := NewBank(tables.Rotors)

	require.Error(t, bank.Validate())
}

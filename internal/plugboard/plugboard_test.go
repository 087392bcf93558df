package plugboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/problema-cipher/problema/internal/schedule"
)

func TestZeroKeyBoardIsIdentity(t *testing.T) {
	tables := schedule.Derive([schedule.KeySize]byte{})
	board := New(tables.Plugboard)

	for _, v := range []uint32{0, 0x48, 0xAC00, 0xFFFF} {
		require.Equal(t, v, board.Apply(v))
	}
}

func TestDerivedBoardIsAPermutation(t *testing.T) {
	var key [schedule.KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	board := New(schedule.Derive(key).Plugboard)

	require.NoError(t, board.Validate())
}

func TestNonBMPPassesThrough(t *testing.T) {
	var key [schedule.KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	board := New(schedule.Derive(key).Plugboard)

	assert.Equal(t, uint32(0x1F600), board.Apply(0x1F600))
	assert.Equal(t, uint32(0x10FFFF), board.Apply(0x10FFFF))
}

func TestValidateRejectsDuplicateOutputs(t *testing.T) {
	mapping := make([]uint32, schedule.RotorDomain)
	for i := range mapping {
		mapping[i] = uint32(i)
	}
	mapping[5] = 6

	require.Error(t, New(mapping).Validate())
}

func TestValidateRejectsShortTable(t *testing.T) {
	require.Error(t, New(make([]uint32, 100)).Validate())
}

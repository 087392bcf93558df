package problema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTablesPassesForDerivedKeys(t *testing.T) {
	keys := [][]byte{
		make([]byte, KeySize),
		sequentialKey(),
	}

	for _, key := range keys {
		c := newTestCipher(t, key)

		audits, err := c.ValidateTables()
		require.NoError(t, err)
		require.Len(t, audits, 3)

		for _, a := range audits {
			assert.True(t, a.Passed(), "table %s: %v", a.Table, a.Err)
		}
	}
}

func TestValidateTablesCoversEveryTableGroup(t *testing.T) {
	c := newTestCipher(t, sequentialKey())

	audits, err := c.ValidateTables()
	require.NoError(t, err)

	names := make([]string, len(audits))
	for i, a := range audits {
		names[i] = a.Table
	}
	assert.Equal(t, []string{"rotors", "plugboard", "sbox"}, names)
}

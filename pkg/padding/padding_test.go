package padding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadUnpadRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 100} {
		data := bytes.Repeat([]byte{0xAB}, n)

		padded := Pad(data, 16)
		require.Zero(t, len(padded)%16, "length %d", n)
		require.Greater(t, len(padded), n, "padding must always add bytes")

		out, err := Unpad(padded)
		require.NoError(t, err)
		assert.Equal(t, data, out, "length %d", n)
	}
}

func TestPadAlignedInputGainsFullBlock(t *testing.T) {
	padded := Pad(make([]byte, 16), 16)

	require.Len(t, padded, 32)
	assert.Equal(t, bytes.Repeat([]byte{16}, 16), padded[16:])
}

func TestUnpadRejectsCorruptPadding(t *testing.T) {
	_, err := Unpad(nil)
	assert.Error(t, err)

	_, err = Unpad([]byte{1, 2, 3, 0})
	assert.Error(t, err, "padding length zero")

	_, err = Unpad([]byte{1, 2, 9})
	assert.Error(t, err, "padding length beyond data")

	_, err = Unpad([]byte{4, 4, 3, 4})
	assert.Error(t, err, "inconsistent padding bytes")
}

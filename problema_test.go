package problema

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func quietConfig() *Config {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Config{Logger: log}
}

func newTestCipher(t *testing.T, key []byte) *Cipher {
	t.Helper()
	c, err := Init(key, quietConfig())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestInitRejectsBadKeyLength(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		_, err := Init(make([]byte, n), nil)
		require.ErrorIs(t, err, ErrInvalidKeyLength, "key length %d", n)
	}
}

func TestInitDefaultsConfig(t *testing.T) {
	c, err := Init(sequentialKey(), nil)
	require.NoError(t, err)
	defer c.Close()

	positions, err := c.RotorPositions()
	require.NoError(t, err)
	assert.Equal(t, [8]int{0, 1, 2, 3, 4, 5, 6, 7}, positions)
}

func TestSameKeyDerivesSameBehavior(t *testing.T) {
	a := newTestCipher(t, sequentialKey())
	b := newTestCipher(t, sequentialKey())

	in := []byte("two contexts, one key")
	ctA, err := a.EncryptBytes(in)
	require.NoError(t, err)
	ctB, err := b.EncryptBytes(in)
	require.NoError(t, err)

	assert.Equal(t, ctA, ctB)
}

func TestResetRewindsRotorsAndRegisters(t *testing.T) {
	c := newTestCipher(t, sequentialKey())

	first, err := c.EncryptText([]byte("Hi!"))
	require.NoError(t, err)

	positions, err := c.RotorPositions()
	require.NoError(t, err)
	require.NotEqual(t, [8]int{0, 1, 2, 3, 4, 5, 6, 7}, positions)

	require.NoError(t, c.Reset())

	positions, err = c.RotorPositions()
	require.NoError(t, err)
	assert.Equal(t, [8]int{0, 1, 2, 3, 4, 5, 6, 7}, positions)

	second, err := c.EncryptText([]byte("Hi!"))
	require.NoError(t, err)
	assert.Equal(t, first, second, "a reset context must reproduce the same ciphertext")
}

func TestCloseMakesContextUnusable(t *testing.T) {
	c, err := Init(sequentialKey(), quietConfig())
	require.NoError(t, err)

	c.Close()
	c.Close() // idempotent

	_, err = c.EncryptChar(0x48)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.DecryptChar(0x48)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.EncryptBlock([BlockSize]byte{})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.DecryptBlock([BlockSize]byte{})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.EncryptText([]byte("x"))
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.DecryptText([]byte("x"))
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.EncryptBytes([]byte("x"))
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.DecryptBytes(make([]byte, BlockSize))
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.RotorPositions()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, c.Reset(), ErrNotInitialized)
	_, err = c.ValidateTables()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestCloseZeroizesKey(t *testing.T) {
	c, err := Init(sequentialKey(), quietConfig())
	require.NoError(t, err)

	c.Close()
	assert.Equal(t, [KeySize]byte{}, c.key)
}

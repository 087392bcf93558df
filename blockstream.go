package problema

import (
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/problema-cipher/problema/pkg/padding"
)

// The block path processes fixed 16-byte blocks in a self-synchronizing
// chain: encrypt XORs the plaintext block with the register before the
// forward transform and feeds the ciphertext back; decrypt inverts the
// transform first and feeds back the ciphertext it received. Both sides
// chain on the transmitted ciphertext, so the path round-trips exactly.

// EncryptBlock enciphers one 16-byte block and advances the chain.
func (c *Cipher) EncryptBlock(in [BlockSize]byte) ([BlockSize]byte, error) {
	if !c.initialized {
		return [BlockSize]byte{}, ErrNotInitialized
	}

	var working [BlockSize]byte
	for i := range working {
		working[i] = in[i] ^ c.blockRegister[i]
	}

	out := c.transform.Forward(working)
	c.blockRegister = out

	c.traceBlock("encrypt", in, out)
	return out, nil
}

// DecryptBlock deciphers one 16-byte block. The register is overwritten
// with the ciphertext just received, not the recovered plaintext.
func (c *Cipher) DecryptBlock(in [BlockSize]byte) ([BlockSize]byte, error) {
	if !c.initialized {
		return [BlockSize]byte{}, ErrNotInitialized
	}

	working := c.transform.Inverse(in)

	var out [BlockSize]byte
	for i := range out {
		out[i] = working[i] ^ c.blockRegister[i]
	}
	c.blockRegister = in

	c.traceBlock("decrypt", in, out)
	return out, nil
}

// EncryptBytes enciphers a whole message through the block path: PKCS#7
// pad, then chain block by block. The block-path register is zeroed at
// message start.
func (c *Cipher) EncryptBytes(plaintext []byte) ([]byte, error) {
	if !c.initialized {
		return nil, ErrNotInitialized
	}

	c.blockRegister = [BlockSize]byte{}
	padded := padding.Pad(plaintext, BlockSize)

	out := make([]byte, len(padded))
	var blk [BlockSize]byte
	for i := 0; i < len(padded); i += BlockSize {
		copy(blk[:], padded[i:i+BlockSize])
		ct, err := c.EncryptBlock(blk)
		if err != nil {
			return nil, err
		}
		copy(out[i:], ct[:])
	}

	return out, nil
}

// DecryptBytes deciphers a whole block-path message and strips the
// padding.
func (c *Cipher) DecryptBytes(ciphertext []byte) ([]byte, error) {
	if !c.initialized {
		return nil, ErrNotInitialized
	}
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a positive multiple of %d", len(ciphertext), BlockSize)
	}

	c.blockRegister = [BlockSize]byte{}

	out := make([]byte, len(ciphertext))
	var blk [BlockSize]byte
	for i := 0; i < len(ciphertext); i += BlockSize {
		copy(blk[:], ciphertext[i:i+BlockSize])
		pt, err := c.DecryptBlock(blk)
		if err != nil {
			return nil, err
		}
		copy(out[i:], pt[:])
	}

	unpadded, err := padding.Unpad(out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpad plaintext: %w", err)
	}
	return unpadded, nil
}

func (c *Cipher) traceBlock(op string, in, out [BlockSize]byte) {
	if !c.trace {
		return
	}
	c.log.WithFields(logrus.Fields{
		"op":  op,
		"in":  hex.EncodeToString(in[:]),
		"out": hex.EncodeToString(out[:]),
	}).Debug("block path")
}

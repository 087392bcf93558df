package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	problema "github.com/problema-cipher/problema"
)

// sealValue compresses a value with zstd and encrypts it through the
// block path. The cipher is reset first so every entry chains from a
// clean register.
func sealValue(c *problema.Cipher, value []byte) ([]byte, error) {
	compressed, err := compress(value)
	if err != nil {
		return nil, err
	}

	if err := c.Reset(); err != nil {
		return nil, err
	}
	sealed, err := c.EncryptBytes(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt value: %w", err)
	}
	return sealed, nil
}

// openValue reverses sealValue.
func openValue(c *problema.Cipher, sealed []byte) ([]byte, error) {
	if err := c.Reset(); err != nil {
		return nil, err
	}
	compressed, err := c.DecryptBytes(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt value: %w", err)
	}

	return decompress(compressed)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress value: %w", err)
	}
	return out, nil
}

// Package padding implements the PKCS#7 scheme the block path requires for
// messages whose length is not a multiple of the block size.
package padding

import "fmt"

// Pad appends PKCS#7 padding. A message already aligned to blockSize gains
// a full block of padding so Unpad is always unambiguous.
func Pad(data []byte, blockSize int) []byte {
	paddingLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+paddingLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(paddingLen)
	}
	return padded
}

// Unpad removes and verifies PKCS#7 padding.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("invalid padded data")
	}

	paddingLen := int(data[len(data)-1])
	if paddingLen == 0 || paddingLen > len(data) {
		return nil, fmt.Errorf("invalid padding length")
	}

	for i := len(data) - paddingLen; i < len(data); i++ {
		if data[i] != byte(paddingLen) {
			return nil, fmt.Errorf("invalid padding")
		}
	}

	return data[:len(data)-paddingLen], nil
}

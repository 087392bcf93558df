// Package passkey stretches a human-supplied passphrase into the fixed
// 256-bit key the engine requires. This is a simple, reproducible mixing
// function, not a cryptographic KDF; the engine itself only ever sees the
// fixed-length result.
package passkey

import "fmt"

// KeySize is the derived key length in bytes.
const KeySize = 32

// Derive mixes a passphrase into a 32-byte key. Every key byte folds in
// every passphrase byte with a rotate-and-XOR pass, so short passphrases
// still touch the whole key.
func Derive(passphrase string) ([KeySize]byte, error) {
	var key [KeySize]byte
	p := []byte(passphrase)
	if len(p) == 0 {
		return key, fmt.Errorf("passphrase must not be empty")
	}

	for i := 0; i < KeySize; i++ {
		k := p[i%len(p)]
		for j := 0; j < len(p); j++ {
			k ^= p[(i+j)%len(p)]
			k = k<<3 | k>>5
		}
		key[i] = k
	}

	return key, nil
}

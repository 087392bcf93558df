// Package schedule derives every secret table of the cipher from the
// 256-bit master key. Derivation is a pure function: the same key always
// reproduces the same tables byte for byte, which is what lets an
// independently initialized decrypting party agree with the encrypting one
// without exchanging anything beyond the key itself.
package schedule

const (
	// KeySize is the master key length in bytes (256 bits).
	KeySize = 32
	// BlockSize is the block transform width in bytes.
	BlockSize = 16
	// NumRotors is the number of rotors in the bank.
	NumRotors = 8
	// RotorDomain is the substitution domain of each rotor and of the
	// plugboard: the Unicode Basic Multilingual Plane.
	RotorDomain = 65536
	// NumRounds is the number of rounds the round-key schedule covers.
	// The block transform consults slot 0 only; the full schedule is
	// still derived and kept.
	NumRounds = 14
	// SBoxSize is the byte substitution table size.
	SBoxSize = 256

	// mixConstant spreads key bytes across the rotor domain when deriving
	// notch and plugboard positions.
	mixConstant = 251
)

// RotorSpec is the derived secret material of a single rotor: its forward
// mapping over the BMP, the exact functional inverse of that mapping, the
// initial rotation offset, and the notch positions that trigger the next
// rotor. Inverse is derived from Mapping, never independently.
type RotorSpec struct {
	Mapping  []uint32
	Inverse  []uint32
	Position int
	Notches  []int
}

// Tables holds all secret material derived from one master key.
type Tables struct {
	Rotors    [NumRotors]RotorSpec
	Plugboard []uint32
	SBox      [SBoxSize]byte
	InvSBox   [SBoxSize]byte
	RoundKeys [NumRounds + 1][BlockSize]byte
}

// Derive builds all tables from the master key. It reads nothing but the
// key and allocates every table fresh, so two calls with the same key
// yield identical, independent table sets.
func Derive(key [KeySize]byte) *Tables {
	t := &Tables{}

	for r := 0; r < NumRotors; r++ {
		t.Rotors[r] = deriveRotor(key, r)
	}

	t.Plugboard = derivePlugboard(key)
	t.SBox, t.InvSBox = deriveSBox(key)

	for round := 0; round <= NumRounds; round++ {
		for i := 0; i < BlockSize; i++ {
			t.RoundKeys[round][i] = key[(i+round*4)%KeySize]
		}
	}

	return t
}

func deriveRotor(key [KeySize]byte, r int) RotorSpec {
	spec := RotorSpec{
		Mapping:  make([]uint32, RotorDomain),
		Inverse:  make([]uint32, RotorDomain),
		Position: int(key[r%KeySize]) % RotorDomain,
	}

	notchCount := int(key[(r+1)%KeySize])%7 + 1
	spec.Notches = make([]int, notchCount)
	for n := 0; n < notchCount; n++ {
		spec.Notches[n] = int(key[(r+n+2)%KeySize]) * mixConstant % RotorDomain
	}

	for i := range spec.Mapping {
		spec.Mapping[i] = uint32(i)
	}
	// Keyed Fisher-Yates: the swap partner at step i comes from the key,
	// not from a PRNG, so the shuffle is reproducible.
	for i := RotorDomain - 1; i > 0; i-- {
		j := int(key[(r+i)%KeySize]) * i % (i + 1)
		spec.Mapping[i], spec.Mapping[j] = spec.Mapping[j], spec.Mapping[i]
	}

	for i, v := range spec.Mapping {
		spec.Inverse[v] = uint32(i)
	}

	return spec
}

func derivePlugboard(key [KeySize]byte) []uint32 {
	board := make([]uint32, RotorDomain)
	for i := range board {
		board[i] = uint32(i)
	}

	// Swaps are applied sequentially and may overlap earlier ones, so the
	// finished table is not necessarily an involution. Both the encrypt
	// and decrypt paths consult this same table.
	numSwaps := int(key[0])%100 + 50
	for i := 0; i < numSwaps; i++ {
		a := (int(key[i%KeySize])*mixConstant + int(key[(i+1)%KeySize])) % RotorDomain
		b := (int(key[(i+2)%KeySize])*mixConstant + int(key[(i+3)%KeySize])) % RotorDomain
		board[a], board[b] = board[b], board[a]
	}

	return board
}

func deriveSBox(key [KeySize]byte) (sbox, inv [SBoxSize]byte) {
	for i := range sbox {
		sbox[i] = byte(i)
	}
	for i := SBoxSize - 1; i > 0; i-- {
		j := int(key[i%KeySize]) * i % (i + 1)
		sbox[i], sbox[j] = sbox[j], sbox[i]
	}
	for i, v := range sbox {
		inv[v] = byte(i)
	}
	return sbox, inv
}

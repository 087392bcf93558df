// Package codec converts between UTF-8 byte sequences and the 32-bit code
// point units the cipher engine operates on.
//
// It deliberately does not use unicode/utf8: the engine's rotor output is
// uniform over the whole BMP and routinely lands on surrogate code points,
// which the standard library (correctly, for text) refuses to encode. This
// codec permits surrogates in both directions while still rejecting
// structurally malformed input: truncated sequences, bad continuation
// bytes, overlong encodings and values beyond U+10FFFF.
package codec

import "errors"

// ErrInvalidEncoding reports a malformed UTF-8 sequence on decode or a
// code point that cannot be represented on encode. Either aborts the
// whole message; no unit is ever silently substituted.
var ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

const maxCodePoint = 0x10FFFF

// Decode converts UTF-8 bytes into code points. The first malformed
// sequence fails the whole input.
func Decode(b []byte) ([]uint32, error) {
	out := make([]uint32, 0, len(b))

	for i := 0; i < len(b); {
		switch {
		case b[i]&0x80 == 0:
			out = append(out, uint32(b[i]))
			i++

		case b[i]&0xE0 == 0xC0:
			if i+1 >= len(b) || !isContinuation(b[i+1]) {
				return nil, ErrInvalidEncoding
			}
			cp := uint32(b[i]&0x1F)<<6 | uint32(b[i+1]&0x3F)
			if cp < 0x80 {
				return nil, ErrInvalidEncoding // overlong
			}
			out = append(out, cp)
			i += 2

		case b[i]&0xF0 == 0xE0:
			if i+2 >= len(b) || !isContinuation(b[i+1]) || !isContinuation(b[i+2]) {
				return nil, ErrInvalidEncoding
			}
			cp := uint32(b[i]&0x0F)<<12 | uint32(b[i+1]&0x3F)<<6 | uint32(b[i+2]&0x3F)
			if cp < 0x800 {
				return nil, ErrInvalidEncoding // overlong
			}
			out = append(out, cp)
			i += 3

		case b[i]&0xF8 == 0xF0:
			if i+3 >= len(b) || !isContinuation(b[i+1]) || !isContinuation(b[i+2]) || !isContinuation(b[i+3]) {
				return nil, ErrInvalidEncoding
			}
			cp := uint32(b[i]&0x07)<<18 | uint32(b[i+1]&0x3F)<<12 |
				uint32(b[i+2]&0x3F)<<6 | uint32(b[i+3]&0x3F)
			if cp < 0x10000 || cp > maxCodePoint {
				return nil, ErrInvalidEncoding // overlong or out of range
			}
			out = append(out, cp)
			i += 4

		default:
			return nil, ErrInvalidEncoding
		}
	}

	return out, nil
}

// Encode converts code points back into UTF-8 bytes. Values beyond
// U+10FFFF cannot be represented and fail the whole message.
func Encode(cps []uint32) ([]byte, error) {
	out := make([]byte, 0, len(cps)*3)

	for _, cp := range cps {
		switch {
		case cp <= 0x7F:
			out = append(out, byte(cp))
		case cp <= 0x7FF:
			out = append(out, 0xC0|byte(cp>>6), 0x80|byte(cp)&0x3F)
		case cp <= 0xFFFF:
			out = append(out, 0xE0|byte(cp>>12), 0x80|byte(cp>>6)&0x3F, 0x80|byte(cp)&0x3F)
		case cp <= maxCodePoint:
			out = append(out, 0xF0|byte(cp>>18), 0x80|byte(cp>>12)&0x3F,
				0x80|byte(cp>>6)&0x3F, 0x80|byte(cp)&0x3F)
		default:
			return nil, ErrInvalidEncoding
		}
	}

	return out, nil
}

func isContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

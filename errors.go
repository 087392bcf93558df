package problema

import (
	"errors"

	"github.com/problema-cipher/problema/pkg/codec"
)

var (
	// ErrInvalidKeyLength reports a master key that is not exactly 256 bits.
	ErrInvalidKeyLength = errors.New("key must be exactly 32 bytes")

	// ErrNotInitialized reports an operation attempted before Init succeeds
	// or after Close.
	ErrNotInitialized = errors.New("cipher context is not initialized")

	// ErrInvalidEncoding reports malformed UTF-8 at the text boundary. The
	// whole message is aborted; no unit is silently substituted.
	ErrInvalidEncoding = codec.ErrInvalidEncoding

	// ErrBufferTooSmall reports caller-side capacity exhaustion at a
	// boundary, distinct from any cipher failure.
	ErrBufferTooSmall = errors.New("output buffer too small")
)

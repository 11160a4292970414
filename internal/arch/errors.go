package arch

import (
	"errors"
	"fmt"
)

// Decode failure kinds shared by all architectures. Architecture specific
// errors wrap one of these so that callers can use errors.Is.
var (
	// ErrTruncated signals that fewer bytes are available than the instruction needs.
	ErrTruncated = errors.New("truncated instruction")
	// ErrUnknownEncoding signals a bit pattern that matches no known instruction.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrDisabledExtension signals a recognized instruction of an extension that is not enabled.
	ErrDisabledExtension = errors.New("extension disabled")
	// ErrMalformedImmediate signals an internal decoder table inconsistency.
	ErrMalformedImmediate = errors.New("malformed immediate")
)

// ErrUnknownArchitecture is returned when a registry lookup does not match any handler.
var ErrUnknownArchitecture = errors.New("unknown architecture")

// SweepError reports the instruction that stopped a buffer disassembly.
type SweepError struct {
	Offset uint64   // offset of the failing instruction inside the buffer
	Size   int      // width of the failing encoding, 0 if unknown or past the buffer end
	Raw    HexBytes // bytes of the failing instruction, at least the first word
	Err    error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("offset %d [%s]: %s", e.Offset, e.Raw, e.Err)
}

func (e *SweepError) Unwrap() error {
	return e.Err
}

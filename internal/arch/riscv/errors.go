package riscv

import (
	"fmt"

	"github.com/hust-open-atom-club/Robustone/internal/arch"
)

// DecodeError describes why a byte sequence could not be decoded.
// Kind is one of the arch decode failure sentinels.
type DecodeError struct {
	Kind      error
	Word      uint32    // encoding bits that were examined
	Size      int       // width of the encoding, 0 if unknown
	Extension Extension // missing extension of a disabled instruction
	Mnemonic  string    // recognized mnemonic of a disabled instruction
	Have      int       // available bytes of a truncated instruction
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case arch.ErrTruncated:
		return fmt.Sprintf("%s: need %d bytes, have %d", e.Kind, e.Size, e.Have)
	case arch.ErrDisabledExtension:
		return fmt.Sprintf("%s: %s requires %s", e.Kind, e.Mnemonic, e.Extension)
	}
	if e.Size == 2 {
		return fmt.Sprintf("%s: 0x%04x", e.Kind, e.Word)
	}
	return fmt.Sprintf("%s: 0x%08x", e.Kind, e.Word)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func truncated(need, have int) *DecodeError {
	return &DecodeError{Kind: arch.ErrTruncated, Size: need, Have: have}
}

func unknownEncoding(word uint32, size int) *DecodeError {
	return &DecodeError{Kind: arch.ErrUnknownEncoding, Word: word, Size: size}
}

// Package arch contains types and functions used for multi architecture support.
// It acts as a bridge between the command line front end and the architecture
// specific decoders.
package arch

import (
	"context"
	"encoding/binary"
)

// Handler is implemented by every supported instruction set architecture.
type Handler interface {
	// Info returns the identity and defaults of the architecture.
	Info() Info
	// Disassemble decodes the buffer from its start until it is exhausted, a
	// trailing partial instruction is reached or an instruction fails to decode.
	// On a decode failure the lines decoded so far are returned together with
	// a *SweepError.
	Disassemble(ctx context.Context, data []byte, req Request) (*Listing, error)
}

// Info describes an architecture handler.
type Info struct {
	Name      string           // canonical architecture name
	Modes     []string         // accepted mode strings, the first one is the default
	WordWidth int              // default word width in bits
	ByteOrder binary.ByteOrder // instruction byte order
}

// Request contains the per call options of a disassembly.
type Request struct {
	Mode       string   // one of Info.Modes, empty selects the default mode
	Extensions []string // optional extension override, empty selects the mode defaults
	Address    uint64   // address of the first byte of the buffer

	NoAlias            bool // print canonical instructions instead of pseudo mnemonics
	NumericRegisters   bool // print register numbers instead of ABI names
	UnsignedImmediates bool // print negative immediates as unsigned values
	Detail             bool // attach operand and register details to every line
}

// Listing is the ordered result of a buffer disassembly.
type Listing struct {
	Mode     string // mode that was used to decode the buffer
	Lines    []Line
	Consumed int // number of bytes covered by Lines
	Trailing int // number of bytes left over that did not form a complete instruction
}

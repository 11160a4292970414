package riscv

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hust-open-atom-club/Robustone/internal/arch"
)

// Name is the architecture name of the handler.
const Name = "riscv"

var _ arch.Handler = (*RISCV)(nil)

// RISCV is the RISC-V architecture handler.
type RISCV struct{}

// New returns a new RISC-V architecture handler.
func New() *RISCV {
	return &RISCV{}
}

// Info returns the identity of the architecture. riscv64 is the default mode.
func (r *RISCV) Info() arch.Info {
	return arch.Info{
		Name:      Name,
		Modes:     []string{ModeRV64, ModeRV32, ModeRV32E, "rv64", "rv32", "rv32e"},
		WordWidth: 64,
		ByteOrder: binary.LittleEndian,
	}
}

// Disassemble decodes data linearly. The context is only checked before
// decoding starts.
func (r *RISCV) Disassemble(ctx context.Context, data []byte, req arch.Request) (*arch.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}

	dec, err := NewDecoderForRequest(req)
	if err != nil {
		return nil, err
	}

	opts := FormatOptions{
		NoAlias:            req.NoAlias,
		NumericRegisters:   req.NumericRegisters,
		UnsignedImmediates: req.UnsignedImmediates,
	}

	listing, err := arch.Sweep(data, req.Address, func(b []byte) (arch.Line, int, error) {
		inst, err := dec.Decode(b)
		if err != nil {
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				return arch.Line{}, decodeErr.Size, err
			}
			return arch.Line{}, 0, err
		}
		return newLine(inst, opts, req.Detail), inst.Size, nil
	})
	listing.Mode = dec.Mode().Name
	return listing, err
}

// NewDecoderForRequest creates a decoder for the mode and extension list of
// a request. An empty mode selects riscv64, an empty extension list enables
// every standard extension.
func NewDecoderForRequest(req arch.Request) (*Decoder, error) {
	modeName := req.Mode
	if modeName == "" {
		modeName = ModeRV64
	}
	mode, err := ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if len(req.Extensions) > 0 {
		cfg, err = NewConfig(req.Extensions...)
		if err != nil {
			return nil, fmt.Errorf("creating extension configuration: %w", err)
		}
	}
	return NewDecoder(mode, cfg), nil
}

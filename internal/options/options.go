// Package options contains the program options.
package options

import (
	"github.com/hust-open-atom-club/Robustone/internal/arch"
)

// Color modes of the output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Positional contains positional arguments.
type Positional struct {
	Arch    string
	Code    string
	Address string
}

// Parameters contains file path and decoder selection options.
type Parameters struct {
	Input      string
	Output     string
	Batch      string
	Extensions string
	ISA        string
	CPUProfile string
}

// Flags contains behavior options.
type Flags struct {
	CrossCheck bool
	SkipData   bool
	Debug      bool
	Quiet      bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Detail   bool
	Real     bool
	Unsigned bool
	JSON     bool
	Color    string
}

// Program options of the disassembler.
type Program struct {
	Positional
	Parameters
	Flags
	OutputFlags
}

// Disassembler defines options to control the decoder, resolved from the
// program options by the detector.
type Disassembler struct {
	Arch       string   // architecture or mode name known to the registry
	Extensions []string // extension names, empty selects the mode defaults

	NoAlias            bool
	NumericRegisters   bool
	UnsignedImmediates bool
	Detail             bool
	SkipData           bool
}

// NewDisassembler returns a new options instance for the given architecture
// name, with the flags of the program options applied.
func NewDisassembler(archName string, opts Program) Disassembler {
	return Disassembler{
		Arch:               archName,
		NoAlias:            opts.Real,
		UnsignedImmediates: opts.Unsigned,
		Detail:             opts.Detail,
		SkipData:           opts.SkipData,
	}
}

// Request returns the architecture request for a buffer starting at address.
func (d Disassembler) Request(mode string, address uint64) arch.Request {
	return arch.Request{
		Mode:               mode,
		Extensions:         d.Extensions,
		Address:            address,
		NoAlias:            d.NoAlias,
		NumericRegisters:   d.NumericRegisters,
		UnsignedImmediates: d.UnsignedImmediates,
		Detail:             d.Detail,
	}
}

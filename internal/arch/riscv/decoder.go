package riscv

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/hust-open-atom-club/Robustone/internal/arch"
)

// Mode names.
const (
	ModeRV32  = "riscv32"
	ModeRV64  = "riscv64"
	ModeRV32E = "riscv32e"
)

// Mode selects the register width and register file size of a decoder.
type Mode struct {
	Name     string
	XLEN     int
	Embedded bool // only x0-x15 exist
}

var modes = map[string]Mode{
	ModeRV32:  {Name: ModeRV32, XLEN: 32},
	ModeRV64:  {Name: ModeRV64, XLEN: 64},
	ModeRV32E: {Name: ModeRV32E, XLEN: 32, Embedded: true},
	"rv32":    {Name: ModeRV32, XLEN: 32},
	"rv64":    {Name: ModeRV64, XLEN: 64},
	"rv32e":   {Name: ModeRV32E, XLEN: 32, Embedded: true},
	"riscv":   {Name: ModeRV64, XLEN: 64},
}

// ParseMode returns the mode for a mode name or alias.
func ParseMode(name string) (Mode, error) {
	mode, ok := modes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Mode{}, fmt.Errorf("%w '%s'", arch.ErrUnknownArchitecture, name)
	}
	return mode, nil
}

// Decoder decodes single RISC-V instructions. It holds no state besides its
// immutable configuration and can be shared between goroutines.
type Decoder struct {
	mode Mode
	cfg  *Config
}

// NewDecoder returns a decoder for the given mode and extension configuration.
func NewDecoder(mode Mode, cfg *Config) *Decoder {
	return &Decoder{mode: mode, cfg: cfg}
}

// Mode returns the mode of the decoder.
func (d *Decoder) Mode() Mode {
	return d.mode
}

// Decode decodes the instruction at the start of data. It returns a
// *DecodeError wrapping one of the arch decode failure sentinels if the
// bytes do not form an enabled instruction.
func (d *Decoder) Decode(data []byte) (*Instruction, error) {
	if len(data) < 2 {
		return nil, truncated(2, len(data))
	}

	var (
		inst *Instruction
		word uint32
		size int
	)

	if data[0]&0x3 != 0x3 {
		size = 2
		word = uint32(binary.LittleEndian.Uint16(data))
		inst = d.decodeCompressed(word)
		if !d.cfg.Enabled(Compressed) {
			return nil, disabledCompressed(inst, word)
		}
	} else {
		if data[0]&0x1c == 0x1c {
			// lengths above 32 bits are not supported
			return nil, unknownEncoding(uint32(binary.LittleEndian.Uint16(data)), 0)
		}
		if len(data) < 4 {
			return nil, truncated(4, len(data))
		}
		size = 4
		word = binary.LittleEndian.Uint32(data)
		inst = d.decodeStandard(word)
	}

	if inst == nil || !d.registersValid(inst) {
		return nil, unknownEncoding(word, size)
	}
	if err := d.gate(inst, word, size); err != nil {
		return nil, err
	}

	inst.Size = size
	inst.Raw = append([]byte(nil), data[:size]...)
	inst.XLEN = d.mode.XLEN
	inst.csrName = d.csrName(inst)
	inst.Alias, inst.AliasOperands, _ = resolveAlias(inst)
	return inst, nil
}

func disabledCompressed(inst *Instruction, word uint32) *DecodeError {
	mnemonic := "compressed instruction"
	if inst != nil {
		mnemonic = inst.Mnemonic
	}
	return &DecodeError{
		Kind:      arch.ErrDisabledExtension,
		Word:      word,
		Size:      2,
		Extension: Compressed,
		Mnemonic:  mnemonic,
	}
}

// gate checks that every extension the instruction needs is enabled.
func (d *Decoder) gate(inst *Instruction, word uint32, size int) error {
	for _, ext := range inst.Requires {
		if d.cfg.Enabled(ext) {
			continue
		}
		return &DecodeError{
			Kind:      arch.ErrDisabledExtension,
			Word:      word,
			Size:      size,
			Extension: ext,
			Mnemonic:  inst.Mnemonic,
		}
	}
	return nil
}

// registersValid rejects integer registers above x15 in embedded mode.
func (d *Decoder) registersValid(inst *Instruction) bool {
	if !d.mode.Embedded {
		return true
	}
	for _, op := range inst.Operands {
		switch {
		case op.Kind == OperandRegister && op.Class == IntRegister && op.Reg > 15:
			return false
		case op.Kind == OperandMemory && op.Reg > 15:
			return false
		}
	}
	return true
}

func (d *Decoder) csrName(inst *Instruction) string {
	for _, op := range inst.Operands {
		if op.Kind == OperandCSR {
			return licensedCSRName(op.CSR, d.cfg)
		}
	}
	return ""
}

func (d *Decoder) rv64() bool {
	return d.mode.XLEN == 64
}

package riscv

import (
	"fmt"
	"strings"
)

// FormatOptions controls the text rendering of instructions.
type FormatOptions struct {
	NoAlias            bool // print canonical instructions instead of pseudo instructions
	NumericRegisters   bool // print x5 instead of t0
	UnsignedImmediates bool // print negative immediates as XLEN wide two's complement
}

// Format returns the instruction text, the mnemonic followed by a tab and
// the comma separated operands.
func Format(inst *Instruction, opts FormatOptions) string {
	mnemonic, operands := displayForm(inst, opts)
	text := FormatOperands(inst, operands, opts)
	if text == "" {
		return mnemonic
	}
	return mnemonic + "\t" + text
}

// FormatOperands renders operands of inst. Dynamic rounding modes are omitted.
func FormatOperands(inst *Instruction, operands []Operand, opts FormatOptions) string {
	parts := make([]string, 0, len(operands))
	for _, op := range operands {
		if op.Kind == OperandRoundingMode && op.RM == RoundDynamic {
			continue
		}
		parts = append(parts, formatOperand(inst, op, opts))
	}
	return strings.Join(parts, ", ")
}

func displayForm(inst *Instruction, opts FormatOptions) (string, []Operand) {
	if opts.NoAlias {
		return inst.Mnemonic, inst.Operands
	}
	return inst.DisplayMnemonic(), inst.DisplayOperands()
}

func formatOperand(inst *Instruction, op Operand, opts FormatOptions) string {
	switch op.Kind {
	case OperandRegister:
		return registerText(op.Reg, op.Class, opts)

	case OperandImmediate:
		return formatImmediate(op.Imm, op.Radix, inst.XLEN, opts.UnsignedImmediates)

	case OperandCSR:
		if inst.csrName != "" {
			return inst.csrName
		}
		return fmt.Sprintf("0x%x", op.CSR)

	case OperandRoundingMode:
		return op.RM.String()

	case OperandMemory:
		base := "(" + registerText(op.Reg, IntRegister, opts) + ")"
		if op.Bare {
			return base
		}
		return formatImmediate(op.Imm, RadixAuto, inst.XLEN, opts.UnsignedImmediates) + base

	case OperandFence:
		return fenceText(op.Fence)
	}
	return ""
}

func registerText(index uint8, class RegisterClass, opts FormatOptions) string {
	if opts.NumericRegisters {
		return NumericRegisterName(index, class)
	}
	return RegisterName(index, class)
}

// formatImmediate renders an immediate the way cstool does: values up to 9
// in decimal, larger ones in hex with an explicit sign.
func formatImmediate(v int64, radix Radix, xlen int, unsigned bool) string {
	switch {
	case v == 0:
		return "0"
	case v < 0 && unsigned:
		mask := ^uint64(0)
		if xlen == 32 {
			mask = 0xffffffff
		}
		return fmt.Sprintf("0x%x", uint64(v)&mask)
	case radix == RadixHex && v > 0:
		return fmt.Sprintf("0x%x", v)
	case v >= -9 && v <= 9:
		return fmt.Sprintf("%d", v)
	case v < 0:
		return fmt.Sprintf("-0x%x", -v)
	default:
		return fmt.Sprintf("0x%x", v)
	}
}

func fenceText(bits uint8) string {
	if bits == 0 {
		return "0"
	}
	var sb strings.Builder
	for _, flag := range []struct {
		bit    uint8
		letter byte
	}{
		{FenceInput, 'i'},
		{FenceOutput, 'o'},
		{FenceRead, 'r'},
		{FenceWrite, 'w'},
	} {
		if bits&flag.bit != 0 {
			sb.WriteByte(flag.letter)
		}
	}
	return sb.String()
}

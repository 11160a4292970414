package riscv

import (
	"slices"

	"github.com/hust-open-atom-club/Robustone/internal/arch"
)

// Instruction groups reported in the detail output.
const (
	GroupJump           = "jump"
	GroupCall           = "call"
	GroupReturn         = "ret"
	GroupBranchRelative = "branch_relative"
	GroupPrivilege      = "privilege"
)

// newLine converts a decoded instruction to a listing line.
func newLine(inst *Instruction, opts FormatOptions, detail bool) arch.Line {
	mnemonic, operands := displayForm(inst, opts)
	text := FormatOperands(inst, operands, opts)

	line := arch.Line{
		Mnemonic: mnemonic,
		Operands: text,
		Text:     mnemonic,
	}
	if text != "" {
		line.Text += "\t" + text
	}
	if detail {
		line.Detail = newDetail(inst, operands, opts)
	}
	return line
}

func newDetail(inst *Instruction, operands []Operand, opts FormatOptions) *arch.Detail {
	d := &arch.Detail{
		Operands:  make([]arch.OperandDetail, 0, len(operands)),
		Groups:    Groups(inst),
		Extension: inst.Extension.String(),
	}

	for _, op := range operands {
		if op.Kind == OperandRoundingMode && op.RM == RoundDynamic {
			continue
		}
		d.Operands = append(d.Operands, arch.OperandDetail{
			Type:   op.Kind.String(),
			Value:  formatOperand(inst, op, opts),
			Access: op.Access.String(),
		})
	}

	read, written := RegisterAccess(inst)
	for _, reg := range read {
		d.RegsRead = append(d.RegsRead, registerText(reg.Reg, reg.Class, opts))
	}
	for _, reg := range written {
		d.RegsWritten = append(d.RegsWritten, registerText(reg.Reg, reg.Class, opts))
	}

	if inst.Alias != "" && !opts.NoAlias {
		canonical := opts
		canonical.NoAlias = true
		d.CanonicalText = Format(inst, canonical)
	}
	return d
}

// RegisterAccess returns the registers read and written by the canonical
// operands of inst, in operand order without duplicates.
func RegisterAccess(inst *Instruction) (read, written []Operand) {
	add := func(list []Operand, op Operand) []Operand {
		if slices.ContainsFunc(list, func(o Operand) bool { return o.Reg == op.Reg && o.Class == op.Class }) {
			return list
		}
		return append(list, op)
	}

	for _, op := range inst.Operands {
		switch op.Kind {
		case OperandRegister:
			if op.Access&AccessRead != 0 {
				read = add(read, op)
			}
			if op.Access&AccessWrite != 0 {
				written = add(written, op)
			}
		case OperandMemory:
			read = add(read, Operand{Kind: OperandRegister, Reg: op.Reg, Class: IntRegister, Access: AccessRead})
		}
	}
	return read, written
}

// Groups returns the control flow and privilege groups of an instruction.
func Groups(inst *Instruction) []string {
	ops := inst.Operands

	switch inst.Mnemonic {
	case "beq", "bne", "blt", "bge", "bltu", "bgeu", "c.beqz", "c.bnez":
		return []string{GroupJump, GroupBranchRelative}
	case "jal":
		if ops[0].isIntReg(regZero) {
			return []string{GroupJump, GroupBranchRelative}
		}
		return []string{GroupCall, GroupBranchRelative}
	case "c.j":
		return []string{GroupJump, GroupBranchRelative}
	case "c.jal":
		return []string{GroupCall, GroupBranchRelative}
	case "jalr":
		switch {
		case ops[0].isIntReg(regZero) && ops[1].isIntReg(regRA) && ops[2].Imm == 0:
			return []string{GroupReturn}
		case ops[0].isIntReg(regZero):
			return []string{GroupJump}
		}
		return []string{GroupCall}
	case "c.jr":
		if ops[0].isIntReg(regRA) {
			return []string{GroupReturn}
		}
		return []string{GroupJump}
	case "c.jalr":
		return []string{GroupCall}
	case "ecall", "ebreak", "c.ebreak", "sret", "mret", "wfi", "sfence.vma":
		return []string{GroupPrivilege}
	}
	return nil
}

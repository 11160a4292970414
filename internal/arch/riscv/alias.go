package riscv

const (
	regZero = 0
	regRA   = 1
)

var (
	floatCSRReads = map[uint16]string{csrFCSR: "frcsr", csrFRM: "frrm", csrFFlags: "frflags"}
	floatCSRWrite = map[uint16]string{csrFCSR: "fscsr", csrFRM: "fsrm", csrFFlags: "fsflags"}
	floatCSRImm   = map[uint16]string{csrFRM: "fsrmi", csrFFlags: "fsflagsi"}
	counterReads  = map[uint16]string{
		csrCycle: "rdcycle", csrTime: "rdtime", csrInstret: "rdinstret",
	}
	counterReadsHigh = map[uint16]string{
		csrCycleH: "rdcycleh", csrTimeH: "rdtimeh", csrInstH: "rdinstreth",
	}
)

// resolveAlias returns the pseudo instruction form of inst. It does not
// modify inst and returns false if no alias applies.
func resolveAlias(inst *Instruction) (string, []Operand, bool) {
	ops := inst.Operands

	switch inst.Mnemonic {
	case "addi":
		return aliasAddi(ops)
	case "addiw":
		if ops[2].Imm == 0 {
			return "sext.w", ops[:2], true
		}
	case "xori":
		if ops[2].Imm == -1 {
			return "not", ops[:2], true
		}
	case "sltiu":
		if ops[2].Imm == 1 {
			return "seqz", ops[:2], true
		}
	case "sub", "subw":
		if ops[1].isIntReg(regZero) {
			name := "neg"
			if inst.Mnemonic == "subw" {
				name = "negw"
			}
			return name, []Operand{ops[0], ops[2]}, true
		}
	case "sltu":
		if ops[1].isIntReg(regZero) {
			return "snez", []Operand{ops[0], ops[2]}, true
		}
	case "slt":
		switch {
		case ops[2].isIntReg(regZero):
			return "sltz", ops[:2], true
		case ops[1].isIntReg(regZero):
			return "sgtz", []Operand{ops[0], ops[2]}, true
		}
	case "beq", "bne", "blt", "bge":
		return aliasBranch(inst.Mnemonic, ops)
	case "jal":
		switch {
		case ops[0].isIntReg(regZero):
			return "j", ops[1:], true
		case ops[0].isIntReg(regRA):
			return "jal", ops[1:], true
		}
	case "jalr":
		return aliasJalr(ops)
	case "csrrs", "csrrw", "csrrc", "csrrwi", "csrrsi", "csrrci":
		return aliasCSR(inst, ops)
	case "fsgnj.s", "fsgnj.d", "fsgnjn.s", "fsgnjn.d", "fsgnjx.s", "fsgnjx.d":
		return aliasSignInject(inst.Mnemonic, ops)
	case "fence":
		if ops[0].Fence == 0xf && ops[1].Fence == 0xf {
			return "fence", nil, true
		}
	case "sfence.vma":
		switch {
		case ops[0].isIntReg(regZero) && ops[1].isIntReg(regZero):
			return "sfence.vma", nil, true
		case ops[1].isIntReg(regZero):
			return "sfence.vma", ops[:1], true
		}
	}
	return "", nil, false
}

func aliasAddi(ops []Operand) (string, []Operand, bool) {
	switch {
	case ops[0].isIntReg(regZero) && ops[1].isIntReg(regZero) && ops[2].Imm == 0:
		return "nop", nil, true
	case ops[1].isIntReg(regZero):
		return "li", []Operand{ops[0], ops[2]}, true
	case ops[2].Imm == 0:
		return "mv", ops[:2], true
	}
	return "", nil, false
}

func aliasBranch(mnemonic string, ops []Operand) (string, []Operand, bool) {
	rs1Zero, rs2Zero := ops[0].isIntReg(regZero), ops[1].isIntReg(regZero)
	first := []Operand{ops[0], ops[2]}
	second := []Operand{ops[1], ops[2]}

	switch {
	case mnemonic == "beq" && rs2Zero:
		return "beqz", first, true
	case mnemonic == "bne" && rs2Zero:
		return "bnez", first, true
	case mnemonic == "bge" && rs1Zero:
		return "blez", second, true
	case mnemonic == "bge" && rs2Zero:
		return "bgez", first, true
	case mnemonic == "blt" && rs2Zero:
		return "bltz", first, true
	case mnemonic == "blt" && rs1Zero:
		return "bgtz", second, true
	}
	return "", nil, false
}

func aliasJalr(ops []Operand) (string, []Operand, bool) {
	if ops[2].Imm != 0 {
		return "", nil, false
	}
	switch {
	case ops[0].isIntReg(regZero) && ops[1].isIntReg(regRA):
		return "ret", nil, true
	case ops[0].isIntReg(regZero):
		return "jr", ops[1:2], true
	case ops[0].isIntReg(regRA):
		return "jalr", ops[1:2], true
	}
	return "", nil, false
}

// aliasCSR resolves the CSR pseudo instructions. Named forms like rdcycle
// and frcsr only apply if the CSR name is licensed.
func aliasCSR(inst *Instruction, ops []Operand) (string, []Operand, bool) {
	dst, csr, src := ops[0], ops[1], ops[2]
	rdZero := dst.isIntReg(regZero)
	named := inst.csrName != ""

	switch inst.Mnemonic {
	case "csrrs":
		if !src.isIntReg(regZero) {
			if rdZero {
				return "csrs", ops[1:], true
			}
			return "", nil, false
		}
		if name, ok := counterReads[csr.CSR]; ok && named {
			return name, ops[:1], true
		}
		if name, ok := counterReadsHigh[csr.CSR]; ok && named && inst.XLEN == 32 {
			return name, ops[:1], true
		}
		if name, ok := floatCSRReads[csr.CSR]; ok && named {
			return name, ops[:1], true
		}
		return "csrr", ops[:2], true

	case "csrrw":
		if name, ok := floatCSRWrite[csr.CSR]; ok && named {
			if rdZero {
				return name, ops[2:], true
			}
			return name, []Operand{dst, src}, true
		}
		if rdZero {
			return "csrw", ops[1:], true
		}

	case "csrrc":
		if rdZero {
			return "csrc", ops[1:], true
		}

	case "csrrwi":
		if name, ok := floatCSRImm[csr.CSR]; ok && named && rdZero {
			return name, ops[2:], true
		}
		if rdZero {
			return "csrwi", ops[1:], true
		}

	case "csrrsi":
		if rdZero {
			return "csrsi", ops[1:], true
		}

	case "csrrci":
		if rdZero {
			return "csrci", ops[1:], true
		}
	}
	return "", nil, false
}

func aliasSignInject(mnemonic string, ops []Operand) (string, []Operand, bool) {
	if ops[1].Reg != ops[2].Reg {
		return "", nil, false
	}
	suffix := mnemonic[len(mnemonic)-2:]

	switch mnemonic[:len(mnemonic)-2] {
	case "fsgnj":
		return "fmv" + suffix, ops[:2], true
	case "fsgnjn":
		return "fneg" + suffix, ops[:2], true
	default:
		return "fabs" + suffix, ops[:2], true
	}
}

package riscv

const regSP = 2

// compressed returns a 16 bit instruction licensed by the compressed extension.
func compressed(mnemonic string, operands ...Operand) *Instruction {
	return newInstruction(mnemonic, Compressed, operands...)
}

// decodeCompressed returns nil if the halfword matches no known encoding.
// Reserved encodings and hints are treated as unknown.
func (d *Decoder) decodeCompressed(h uint32) *Instruction {
	switch h & 0x3 {
	case 0:
		return d.decodeQuadrant0(h)
	case 1:
		return d.decodeQuadrant1(h)
	default:
		return d.decodeQuadrant2(h)
	}
}

func (d *Decoder) decodeQuadrant0(h uint32) *Instruction {
	rdp, rs1p := cReg(h, 2), cReg(h, 7)

	switch field(h, 15, 13) {
	case 0:
		nzuimm := immCIW(h)
		if nzuimm == 0 {
			return nil
		}
		return compressed("c.addi4spn", intReg(rdp, AccessWrite), intReg(regSP, AccessRead), imm(nzuimm))
	case 1:
		return compressed("c.fld", floatReg(rdp, AccessWrite), mem(rs1p, immCLD(h), AccessRead)).also(DoubleFloat)
	case 2:
		return compressed("c.lw", intReg(rdp, AccessWrite), mem(rs1p, immCLW(h), AccessRead))
	case 3:
		if d.rv64() {
			return compressed("c.ld", intReg(rdp, AccessWrite), mem(rs1p, immCLD(h), AccessRead))
		}
		return compressed("c.flw", floatReg(rdp, AccessWrite), mem(rs1p, immCLW(h), AccessRead)).also(SingleFloat)
	case 5:
		return compressed("c.fsd", floatReg(rdp, AccessRead), mem(rs1p, immCLD(h), AccessWrite)).also(DoubleFloat)
	case 6:
		return compressed("c.sw", intReg(rdp, AccessRead), mem(rs1p, immCLW(h), AccessWrite))
	case 7:
		if d.rv64() {
			return compressed("c.sd", intReg(rdp, AccessRead), mem(rs1p, immCLD(h), AccessWrite))
		}
		return compressed("c.fsw", floatReg(rdp, AccessRead), mem(rs1p, immCLW(h), AccessWrite)).also(SingleFloat)
	}
	return nil
}

func (d *Decoder) decodeQuadrant1(h uint32) *Instruction {
	rd := cRd(h)

	switch field(h, 15, 13) {
	case 0:
		if rd == 0 {
			if immCI(h) != 0 {
				return nil
			}
			return compressed("c.nop")
		}
		if immCI(h) == 0 {
			return nil
		}
		return compressed("c.addi", intReg(rd, AccessReadWrite), imm(immCI(h)))
	case 1:
		if !d.rv64() {
			return compressed("c.jal", imm(immCJ(h)))
		}
		if rd == 0 {
			return nil
		}
		return compressed("c.addiw", intReg(rd, AccessReadWrite), imm(immCI(h)))
	case 2:
		if rd == 0 {
			return nil
		}
		return compressed("c.li", intReg(rd, AccessWrite), imm(immCI(h)))
	case 3:
		switch {
		case rd == regSP:
			offset := immCI16SP(h)
			if offset == 0 {
				return nil
			}
			return compressed("c.addi16sp", intReg(regSP, AccessReadWrite), imm(offset))
		case rd == 0 || immCI(h) == 0:
			return nil
		}
		return compressed("c.lui", intReg(rd, AccessWrite), hexImm(immCLUI(h)))
	case 4:
		return d.decodeCompressedArithmetic(h)
	case 5:
		return compressed("c.j", imm(immCJ(h)))
	case 6:
		return compressed("c.beqz", intReg(cReg(h, 7), AccessRead), imm(immCB(h)))
	default:
		return compressed("c.bnez", intReg(cReg(h, 7), AccessRead), imm(immCB(h)))
	}
}

var (
	compressedALU   = [4]string{"c.sub", "c.xor", "c.or", "c.and"}
	compressedALU64 = [4]string{"c.subw", "c.addw"}
)

func (d *Decoder) decodeCompressedArithmetic(h uint32) *Instruction {
	rdp := cReg(h, 7)

	switch field(h, 11, 10) {
	case 0, 1:
		shamt := shamtCI(h)
		if shamt == 0 || (!d.rv64() && shamt&0x20 != 0) {
			return nil
		}
		name := "c.srli"
		if field(h, 11, 10) == 1 {
			name = "c.srai"
		}
		return compressed(name, intReg(rdp, AccessReadWrite), imm(int64(shamt)))
	case 2:
		return compressed("c.andi", intReg(rdp, AccessReadWrite), imm(immCI(h)))
	}

	ops := []Operand{intReg(rdp, AccessReadWrite), intReg(cReg(h, 2), AccessRead)}
	op := field(h, 6, 5)
	if field(h, 12, 12) == 0 {
		return compressed(compressedALU[op], ops...)
	}
	if !d.rv64() || compressedALU64[op] == "" {
		return nil
	}
	return compressed(compressedALU64[op], ops...)
}

func (d *Decoder) decodeQuadrant2(h uint32) *Instruction {
	rd, rs2 := cRd(h), cRs2(h)

	switch field(h, 15, 13) {
	case 0:
		shamt := shamtCI(h)
		if rd == 0 || shamt == 0 || (!d.rv64() && shamt&0x20 != 0) {
			return nil
		}
		return compressed("c.slli", intReg(rd, AccessReadWrite), imm(int64(shamt)))
	case 1:
		return compressed("c.fldsp", floatReg(rd, AccessWrite), mem(regSP, immCLDSP(h), AccessRead)).also(DoubleFloat)
	case 2:
		if rd == 0 {
			return nil
		}
		return compressed("c.lwsp", intReg(rd, AccessWrite), mem(regSP, immCLWSP(h), AccessRead))
	case 3:
		if !d.rv64() {
			return compressed("c.flwsp", floatReg(rd, AccessWrite), mem(regSP, immCLWSP(h), AccessRead)).also(SingleFloat)
		}
		if rd == 0 {
			return nil
		}
		return compressed("c.ldsp", intReg(rd, AccessWrite), mem(regSP, immCLDSP(h), AccessRead))
	case 4:
		return decodeCompressedRegister(h, rd, rs2)
	case 5:
		return compressed("c.fsdsp", floatReg(rs2, AccessRead), mem(regSP, immCSDSP(h), AccessWrite)).also(DoubleFloat)
	case 6:
		return compressed("c.swsp", intReg(rs2, AccessRead), mem(regSP, immCSWSP(h), AccessWrite))
	default:
		if d.rv64() {
			return compressed("c.sdsp", intReg(rs2, AccessRead), mem(regSP, immCSDSP(h), AccessWrite))
		}
		return compressed("c.fswsp", floatReg(rs2, AccessRead), mem(regSP, immCSWSP(h), AccessWrite)).also(SingleFloat)
	}
}

// decodeCompressedRegister decodes the CR layout: jumps, moves and adds.
func decodeCompressedRegister(h, rd, rs2 uint32) *Instruction {
	if field(h, 12, 12) == 0 {
		switch {
		case rs2 == 0 && rd != 0:
			return compressed("c.jr", intReg(rd, AccessRead))
		case rs2 != 0 && rd != 0:
			return compressed("c.mv", intReg(rd, AccessWrite), intReg(rs2, AccessRead))
		}
		return nil
	}

	switch {
	case rd == 0 && rs2 == 0:
		return compressed("c.ebreak")
	case rs2 == 0:
		return compressed("c.jalr", intReg(rd, AccessRead))
	case rd != 0:
		return compressed("c.add", intReg(rd, AccessReadWrite), intReg(rs2, AccessRead))
	}
	return nil
}

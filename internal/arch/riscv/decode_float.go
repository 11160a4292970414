package riscv

// floatFormat returns the mnemonic suffix and extension of the fmt field
// of a floating point encoding.
func floatFormat(format uint32) (string, Extension, bool) {
	switch format {
	case 0:
		return ".s", SingleFloat, true
	case 1:
		return ".d", DoubleFloat, true
	}
	return "", 0, false
}

func decodeFloatMemory(w uint32, f fields) *Instruction {
	var (
		name string
		ext  Extension
	)
	load := w&0x7f == opLoadFP
	switch {
	case f.funct3 == 2 && load:
		name, ext = "flw", SingleFloat
	case f.funct3 == 3 && load:
		name, ext = "fld", DoubleFloat
	case f.funct3 == 2:
		name, ext = "fsw", SingleFloat
	case f.funct3 == 3:
		name, ext = "fsd", DoubleFloat
	default:
		return nil
	}

	if load {
		return newInstruction(name, ext, floatReg(f.rd, AccessWrite), mem(f.rs1, immI(w), AccessRead))
	}
	return newInstruction(name, ext, floatReg(f.rs2, AccessRead), mem(f.rs1, immS(w), AccessWrite))
}

var fusedMnemonics = map[uint32]string{
	opMAdd:  "fmadd",
	opMSub:  "fmsub",
	opNMSub: "fnmsub",
	opNMAdd: "fnmadd",
}

func decodeFused(w uint32, f fields) *Instruction {
	suffix, ext, ok := floatFormat(field(w, 26, 25))
	if !ok || !RoundingMode(f.funct3).valid() {
		return nil
	}
	return newInstruction(fusedMnemonics[w&0x7f]+suffix, ext,
		floatReg(f.rd, AccessWrite),
		floatReg(f.rs1, AccessRead),
		floatReg(f.rs2, AccessRead),
		floatReg(f.rs3, AccessRead),
		roundingMode(f.funct3))
}

// Operation codes in bits 31:27 of OP-FP.
const (
	fpAdd     = 0x00
	fpSub     = 0x01
	fpMul     = 0x02
	fpDiv     = 0x03
	fpSgnj    = 0x04
	fpMinMax  = 0x05
	fpConvFF  = 0x08
	fpSqrt    = 0x0b
	fpCompare = 0x14
	fpConvIF  = 0x18
	fpConvFI  = 0x1a
	fpMoveXF  = 0x1c
	fpMoveFX  = 0x1e
)

var (
	fpArithmetic  = map[uint32]string{fpAdd: "fadd", fpSub: "fsub", fpMul: "fmul", fpDiv: "fdiv"}
	fpSignInject  = [3]string{"fsgnj", "fsgnjn", "fsgnjx"}
	fpMinMaxNames = [2]string{"fmin", "fmax"}
	fpCompareOps  = [3]string{"fle", "flt", "feq"}
	fpIntFormats  = [4]string{"w", "wu", "l", "lu"}
)

func (d *Decoder) decodeFloatOp(f fields) *Instruction {
	suffix, ext, ok := floatFormat(f.funct7 & 0x3)
	if !ok {
		return nil
	}
	funct5 := f.funct7 >> 2
	rm := roundingMode(f.funct3)
	rmValid := RoundingMode(f.funct3).valid()

	dst, src1, src2 := floatReg(f.rd, AccessWrite), floatReg(f.rs1, AccessRead), floatReg(f.rs2, AccessRead)

	switch funct5 {
	case fpAdd, fpSub, fpMul, fpDiv:
		if !rmValid {
			return nil
		}
		return newInstruction(fpArithmetic[funct5]+suffix, ext, dst, src1, src2, rm)

	case fpSqrt:
		if f.rs2 != 0 || !rmValid {
			return nil
		}
		return newInstruction("fsqrt"+suffix, ext, dst, src1, rm)

	case fpSgnj:
		if f.funct3 > 2 {
			return nil
		}
		return newInstruction(fpSignInject[f.funct3]+suffix, ext, dst, src1, src2)

	case fpMinMax:
		if f.funct3 > 1 {
			return nil
		}
		return newInstruction(fpMinMaxNames[f.funct3]+suffix, ext, dst, src1, src2)

	case fpConvFF:
		return decodeFloatConvert(f, rm, rmValid)

	case fpCompare:
		if f.funct3 > 2 {
			return nil
		}
		return newInstruction(fpCompareOps[f.funct3]+suffix, ext, intReg(f.rd, AccessWrite), src1, src2)

	case fpConvIF, fpConvFI:
		return d.decodeIntConvert(f, funct5, suffix, ext, rm, rmValid)

	case fpMoveXF:
		if f.rs2 != 0 {
			return nil
		}
		switch {
		case f.funct3 == 1:
			return newInstruction("fclass"+suffix, ext, intReg(f.rd, AccessWrite), src1)
		case f.funct3 == 0 && (ext == SingleFloat || d.rv64()):
			return newInstruction("fmv.x"+moveSuffix(ext), ext, intReg(f.rd, AccessWrite), src1)
		}

	case fpMoveFX:
		if f.rs2 != 0 || f.funct3 != 0 || (ext == DoubleFloat && !d.rv64()) {
			return nil
		}
		return newInstruction("fmv"+moveSuffix(ext)+".x", ext, dst, intReg(f.rs1, AccessRead))
	}
	return nil
}

// moveSuffix returns the register width suffix of the fmv instructions.
func moveSuffix(ext Extension) string {
	if ext == DoubleFloat {
		return ".d"
	}
	return ".w"
}

// decodeFloatConvert decodes conversions between single and double precision.
func decodeFloatConvert(f fields, rm Operand, rmValid bool) *Instruction {
	dst, src := floatReg(f.rd, AccessWrite), floatReg(f.rs1, AccessRead)

	switch {
	case f.funct7 == 0x20 && f.rs2 == 1 && rmValid:
		return newInstruction("fcvt.s.d", DoubleFloat, dst, src, rm)
	case f.funct7 == 0x21 && f.rs2 == 0:
		return newInstruction("fcvt.d.s", DoubleFloat, dst, src)
	}
	return nil
}

// decodeIntConvert decodes conversions between floating point and integer registers.
func (d *Decoder) decodeIntConvert(f fields, funct5 uint32, suffix string, ext Extension,
	rm Operand, rmValid bool) *Instruction {
	if f.rs2 > 3 || !rmValid {
		return nil
	}
	intFormat := fpIntFormats[f.rs2]
	if f.rs2 >= 2 && !d.rv64() {
		return nil
	}

	if funct5 == fpConvIF {
		return newInstruction("fcvt."+intFormat+suffix, ext,
			intReg(f.rd, AccessWrite), floatReg(f.rs1, AccessRead), rm)
	}

	inst := newInstruction("fcvt"+suffix+"."+intFormat, ext,
		floatReg(f.rd, AccessWrite), intReg(f.rs1, AccessRead))
	// 32 bit integers convert exactly to double precision
	if ext != DoubleFloat || f.rs2 >= 2 {
		inst.Operands = append(inst.Operands, rm)
	}
	return inst
}

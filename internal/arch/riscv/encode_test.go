package riscv

import "encoding/binary"

// Instruction word builders used by the tests.

func encR(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encI(opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	return uint32(imm)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encS(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return (u>>5&0x7f)<<25 | rs2<<20 | rs1<<15 | funct3<<12 | (u&0x1f)<<7 | opcode
}

func encB(funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return (u>>12&1)<<31 | (u>>5&0x3f)<<25 | rs2<<20 | rs1<<15 | funct3<<12 |
		(u>>1&0xf)<<8 | (u>>11&1)<<7 | opBranch
}

func encU(opcode, rd, imm20 uint32) uint32 {
	return imm20<<12 | rd<<7 | opcode
}

func encJ(rd uint32, imm int32) uint32 {
	u := uint32(imm)
	return (u>>20&1)<<31 | (u>>1&0x3ff)<<21 | (u>>11&1)<<20 | (u>>12&0xff)<<12 | rd<<7 | opJAL
}

func le32(w uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, w)
}

func le16(h uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, h)
}

package riscv

// Field extraction and immediate reassembly for the standard and
// compressed instruction layouts.

func field(w uint32, hi, lo uint) uint32 {
	return (w >> lo) & (1<<(hi-lo+1) - 1)
}

func signExtend(v uint32, bits uint) int64 {
	shift := 64 - bits
	return int64(uint64(v)<<shift) >> shift
}

// fields holds the register and function fields of a standard encoding.
type fields struct {
	rd, rs1, rs2, rs3 uint32
	funct3, funct7    uint32
}

func splitFields(w uint32) fields {
	return fields{
		rd:     field(w, 11, 7),
		rs1:    field(w, 19, 15),
		rs2:    field(w, 24, 20),
		rs3:    field(w, 31, 27),
		funct3: field(w, 14, 12),
		funct7: field(w, 31, 25),
	}
}

func immI(w uint32) int64 {
	return signExtend(field(w, 31, 20), 12)
}

func immS(w uint32) int64 {
	return signExtend(field(w, 31, 25)<<5|field(w, 11, 7), 12)
}

func immB(w uint32) int64 {
	v := field(w, 31, 31)<<12 |
		field(w, 7, 7)<<11 |
		field(w, 30, 25)<<5 |
		field(w, 11, 8)<<1
	return signExtend(v, 13)
}

// immU returns the 20 bit upper immediate field as written in assembly.
func immU(w uint32) int64 {
	return int64(field(w, 31, 12))
}

func immJ(w uint32) int64 {
	v := field(w, 31, 31)<<20 |
		field(w, 19, 12)<<12 |
		field(w, 20, 20)<<11 |
		field(w, 30, 21)<<1
	return signExtend(v, 21)
}

// Compressed register fields.

// cReg maps a 3 bit compressed register field to x8-x15.
func cReg(h uint32, lo uint) uint32 { return field(h, lo+2, lo) + 8 }

func cRd(h uint32) uint32 { return field(h, 11, 7) }
func cRs2(h uint32) uint32 { return field(h, 6, 2) }

// Compressed immediates.

// immCIW is the zero extended nzuimm of c.addi4spn.
func immCIW(h uint32) int64 {
	return int64(field(h, 12, 11)<<4 |
		field(h, 10, 7)<<6 |
		field(h, 6, 6)<<2 |
		field(h, 5, 5)<<3)
}

// immCLW is the word offset of c.lw, c.sw, c.flw and c.fsw.
func immCLW(h uint32) int64 {
	return int64(field(h, 12, 10)<<3 |
		field(h, 6, 6)<<2 |
		field(h, 5, 5)<<6)
}

// immCLD is the double word offset of c.ld, c.sd, c.fld and c.fsd.
func immCLD(h uint32) int64 {
	return int64(field(h, 12, 10)<<3 | field(h, 6, 5)<<6)
}

// immCI is the sign extended 6 bit immediate of the CI layout.
func immCI(h uint32) int64 {
	return signExtend(field(h, 12, 12)<<5|field(h, 6, 2), 6)
}

// shamtCI is the unsigned shift amount of the CI layout.
func shamtCI(h uint32) uint32 {
	return field(h, 12, 12)<<5 | field(h, 6, 2)
}

// immCLUI returns the c.lui immediate as the 20 bit upper field.
func immCLUI(h uint32) int64 {
	return immCI(h) & 0xfffff
}

func immCI16SP(h uint32) int64 {
	v := field(h, 12, 12)<<9 |
		field(h, 6, 6)<<4 |
		field(h, 5, 5)<<6 |
		field(h, 4, 3)<<7 |
		field(h, 2, 2)<<5
	return signExtend(v, 10)
}

func immCJ(h uint32) int64 {
	v := field(h, 12, 12)<<11 |
		field(h, 11, 11)<<4 |
		field(h, 10, 9)<<8 |
		field(h, 8, 8)<<10 |
		field(h, 7, 7)<<6 |
		field(h, 6, 6)<<7 |
		field(h, 5, 3)<<1 |
		field(h, 2, 2)<<5
	return signExtend(v, 12)
}

func immCB(h uint32) int64 {
	v := field(h, 12, 12)<<8 |
		field(h, 11, 10)<<3 |
		field(h, 6, 5)<<6 |
		field(h, 4, 3)<<1 |
		field(h, 2, 2)<<5
	return signExtend(v, 9)
}

func immCLWSP(h uint32) int64 {
	return int64(field(h, 12, 12)<<5 | field(h, 6, 4)<<2 | field(h, 3, 2)<<6)
}

func immCLDSP(h uint32) int64 {
	return int64(field(h, 12, 12)<<5 | field(h, 6, 5)<<3 | field(h, 4, 2)<<6)
}

func immCSWSP(h uint32) int64 {
	return int64(field(h, 12, 9)<<2 | field(h, 8, 7)<<6)
}

func immCSDSP(h uint32) int64 {
	return int64(field(h, 12, 10)<<3 | field(h, 9, 7)<<6)
}

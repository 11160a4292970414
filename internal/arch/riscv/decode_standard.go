package riscv

// Major opcodes of the 32 bit encoding space.
const (
	opLoad    = 0x03
	opLoadFP  = 0x07
	opCustom0 = 0x0b
	opMiscMem = 0x0f
	opImm     = 0x13
	opAUIPC   = 0x17
	opImm32   = 0x1b
	opStore   = 0x23
	opStoreFP = 0x27
	opAMO     = 0x2f
	opOp      = 0x33
	opLUI     = 0x37
	opOp32    = 0x3b
	opMAdd    = 0x43
	opMSub    = 0x47
	opNMSub   = 0x4b
	opNMAdd   = 0x4f
	opFP      = 0x53
	opBranch  = 0x63
	opJALR    = 0x67
	opJAL     = 0x6f
	opSystem  = 0x73
)

type mnemonicEntry struct {
	name string
	ext  Extension
}

const (
	funct7Base   = 0x00
	funct7Alt    = 0x20
	funct7MulDiv = 0x01
)

// decodeStandard returns nil if the word matches no known encoding.
func (d *Decoder) decodeStandard(w uint32) *Instruction {
	f := splitFields(w)

	switch w & 0x7f {
	case opLUI:
		return newInstruction("lui", BaseInteger, intReg(f.rd, AccessWrite), hexImm(immU(w)))
	case opAUIPC:
		return newInstruction("auipc", BaseInteger, intReg(f.rd, AccessWrite), hexImm(immU(w)))
	case opJAL:
		return newInstruction("jal", BaseInteger, intReg(f.rd, AccessWrite), imm(immJ(w)))
	case opJALR:
		if f.funct3 != 0 {
			return nil
		}
		return newInstruction("jalr", BaseInteger,
			intReg(f.rd, AccessWrite), intReg(f.rs1, AccessRead), imm(immI(w)))
	case opBranch:
		return decodeBranch(w, f)
	case opLoad:
		return d.decodeLoad(w, f)
	case opStore:
		return d.decodeStore(w, f)
	case opImm:
		return d.decodeOpImm(w, f)
	case opImm32:
		return d.decodeOpImm32(w, f)
	case opOp:
		return decodeOp(f)
	case opOp32:
		return d.decodeOp32(f)
	case opMiscMem:
		return decodeMiscMem(w, f)
	case opSystem:
		return decodeSystem(w, f)
	case opAMO:
		return d.decodeAtomic(f)
	case opLoadFP, opStoreFP:
		return decodeFloatMemory(w, f)
	case opMAdd, opMSub, opNMSub, opNMAdd:
		return decodeFused(w, f)
	case opFP:
		return d.decodeFloatOp(f)
	case opCustom0:
		return decodeCustom0(f)
	}
	return nil
}

// T-Head conditional moves live in the arithmetic group of custom-0,
// funct7 holds funct5 0x08 and a funct2 selector.
const (
	theadArithmetic = 1
	theadCondMov    = 0x08
)

func decodeCustom0(f fields) *Instruction {
	if f.funct3 != theadArithmetic || f.funct7>>2 != theadCondMov {
		return nil
	}

	var name string
	switch f.funct7 & 0x3 {
	case 0:
		name = "th.mveqz"
	case 1:
		name = "th.mvnez"
	default:
		return nil
	}
	return newInstruction(name, XTheadCondMov,
		intReg(f.rd, AccessWrite), intReg(f.rs1, AccessRead), intReg(f.rs2, AccessRead))
}

var branchMnemonics = [8]string{0: "beq", 1: "bne", 4: "blt", 5: "bge", 6: "bltu", 7: "bgeu"}

func decodeBranch(w uint32, f fields) *Instruction {
	name := branchMnemonics[f.funct3]
	if name == "" {
		return nil
	}
	return newInstruction(name, BaseInteger,
		intReg(f.rs1, AccessRead), intReg(f.rs2, AccessRead), imm(immB(w)))
}

var loadMnemonics = [8]string{0: "lb", 1: "lh", 2: "lw", 3: "ld", 4: "lbu", 5: "lhu", 6: "lwu"}

func (d *Decoder) decodeLoad(w uint32, f fields) *Instruction {
	name := loadMnemonics[f.funct3]
	if name == "" || (!d.rv64() && (name == "ld" || name == "lwu")) {
		return nil
	}
	return newInstruction(name, BaseInteger, intReg(f.rd, AccessWrite), mem(f.rs1, immI(w), AccessRead))
}

var storeMnemonics = [8]string{0: "sb", 1: "sh", 2: "sw", 3: "sd"}

func (d *Decoder) decodeStore(w uint32, f fields) *Instruction {
	name := storeMnemonics[f.funct3]
	if name == "" || (!d.rv64() && name == "sd") {
		return nil
	}
	return newInstruction(name, BaseInteger, intReg(f.rs2, AccessRead), mem(f.rs1, immS(w), AccessWrite))
}

func (d *Decoder) decodeOpImm(w uint32, f fields) *Instruction {
	dst, src := intReg(f.rd, AccessWrite), intReg(f.rs1, AccessRead)

	switch f.funct3 {
	case 0:
		return newInstruction("addi", BaseInteger, dst, src, imm(immI(w)))
	case 1:
		shamt, ok := d.shiftAmount(w, 0x00)
		if !ok {
			return nil
		}
		return newInstruction("slli", BaseInteger, dst, src, imm(shamt))
	case 2:
		return newInstruction("slti", BaseInteger, dst, src, imm(immI(w)))
	case 3:
		return newInstruction("sltiu", BaseInteger, dst, src, imm(immI(w)))
	case 4:
		return newInstruction("xori", BaseInteger, dst, src, imm(immI(w)))
	case 5:
		if shamt, ok := d.shiftAmount(w, 0x00); ok {
			return newInstruction("srli", BaseInteger, dst, src, imm(shamt))
		}
		if shamt, ok := d.shiftAmount(w, 0x10); ok {
			return newInstruction("srai", BaseInteger, dst, src, imm(shamt))
		}
		return nil
	case 6:
		if inst := d.decodePrefetch(w, f); inst != nil {
			return inst
		}
		return newInstruction("ori", BaseInteger, dst, src, imm(immI(w)))
	default:
		return newInstruction("andi", BaseInteger, dst, src, imm(immI(w)))
	}
}

// shiftAmount extracts the shift amount of an immediate shift if the upper
// bits match funct6. On RV32 shamt[5] must be clear.
func (d *Decoder) shiftAmount(w uint32, funct6 uint32) (int64, bool) {
	if field(w, 31, 26) != funct6 {
		return 0, false
	}
	shamt := field(w, 25, 20)
	if !d.rv64() && shamt&0x20 != 0 {
		return 0, false
	}
	return int64(shamt), true
}

var prefetchMnemonics = map[uint32]string{0: "prefetch.i", 1: "prefetch.r", 3: "prefetch.w"}

// decodePrefetch returns the cache block prefetch hint encoded in an ori
// with rd=zero, or nil if the extension is disabled or the word is a plain ori.
func (d *Decoder) decodePrefetch(w uint32, f fields) *Instruction {
	if f.rd != 0 || !d.cfg.Enabled(CacheBlockPrefetch) {
		return nil
	}
	name, ok := prefetchMnemonics[field(w, 24, 20)]
	if !ok {
		return nil
	}
	offset := immI(w) &^ 0x1f
	return newInstruction(name, CacheBlockPrefetch, mem(f.rs1, offset, AccessRead))
}

func (d *Decoder) decodeOpImm32(w uint32, f fields) *Instruction {
	if !d.rv64() {
		return nil
	}
	dst, src := intReg(f.rd, AccessWrite), intReg(f.rs1, AccessRead)
	shamt := int64(field(w, 24, 20))

	switch {
	case f.funct3 == 0:
		return newInstruction("addiw", BaseInteger, dst, src, imm(immI(w)))
	case f.funct3 == 1 && f.funct7 == funct7Base:
		return newInstruction("slliw", BaseInteger, dst, src, imm(shamt))
	case f.funct3 == 5 && f.funct7 == funct7Base:
		return newInstruction("srliw", BaseInteger, dst, src, imm(shamt))
	case f.funct3 == 5 && f.funct7 == funct7Alt:
		return newInstruction("sraiw", BaseInteger, dst, src, imm(shamt))
	}
	return nil
}

var (
	opMnemonics     = [8]string{"add", "sll", "slt", "sltu", "xor", "srl", "or", "and"}
	mulDivMnemonics = [8]string{"mul", "mulh", "mulhsu", "mulhu", "div", "divu", "rem", "remu"}
)

func decodeOp(f fields) *Instruction {
	ops := []Operand{intReg(f.rd, AccessWrite), intReg(f.rs1, AccessRead), intReg(f.rs2, AccessRead)}

	switch f.funct7 {
	case funct7Base:
		return newInstruction(opMnemonics[f.funct3], BaseInteger, ops...)
	case funct7Alt:
		switch f.funct3 {
		case 0:
			return newInstruction("sub", BaseInteger, ops...)
		case 5:
			return newInstruction("sra", BaseInteger, ops...)
		}
	case funct7MulDiv:
		return newInstruction(mulDivMnemonics[f.funct3], MultiplyDivide, ops...)
	}
	return nil
}

type op32Key struct{ funct7, funct3 uint32 }

var op32Mnemonics = map[op32Key]mnemonicEntry{
	{funct7Base, 0}:   {"addw", BaseInteger},
	{funct7Base, 1}:   {"sllw", BaseInteger},
	{funct7Base, 5}:   {"srlw", BaseInteger},
	{funct7Alt, 0}:    {"subw", BaseInteger},
	{funct7Alt, 5}:    {"sraw", BaseInteger},
	{funct7MulDiv, 0}: {"mulw", MultiplyDivide},
	{funct7MulDiv, 4}: {"divw", MultiplyDivide},
	{funct7MulDiv, 5}: {"divuw", MultiplyDivide},
	{funct7MulDiv, 6}: {"remw", MultiplyDivide},
	{funct7MulDiv, 7}: {"remuw", MultiplyDivide},
}

func (d *Decoder) decodeOp32(f fields) *Instruction {
	if !d.rv64() {
		return nil
	}
	ops := []Operand{intReg(f.rd, AccessWrite), intReg(f.rs1, AccessRead), intReg(f.rs2, AccessRead)}

	entry, ok := op32Mnemonics[op32Key{f.funct7, f.funct3}]
	if !ok {
		return nil
	}
	return newInstruction(entry.name, entry.ext, ops...)
}

func decodeMiscMem(w uint32, f fields) *Instruction {
	switch f.funct3 {
	case 0:
		fm, pred, succ := field(w, 31, 28), field(w, 27, 24), field(w, 23, 20)
		if fm == 0x8 && pred == 0x3 && succ == 0x3 {
			return newInstruction("fence.tso", BaseInteger)
		}
		return newInstruction("fence", BaseInteger, fenceSet(pred), fenceSet(succ))
	case 1:
		return newInstruction("fence.i", BaseInteger)
	}
	return nil
}

var systemWords = map[uint32]mnemonicEntry{
	0x00000073: {"ecall", BaseInteger},
	0x00100073: {"ebreak", BaseInteger},
	0x10200073: {"sret", Supervisor},
	0x30200073: {"mret", Supervisor},
	0x10500073: {"wfi", Supervisor},
}

var csrMnemonics = [8]string{1: "csrrw", 2: "csrrs", 3: "csrrc", 5: "csrrwi", 6: "csrrsi", 7: "csrrci"}

func decodeSystem(w uint32, f fields) *Instruction {
	if f.funct3 == 0 {
		if entry, ok := systemWords[w]; ok {
			return newInstruction(entry.name, entry.ext)
		}
		if f.funct7 == 0x09 && f.rd == 0 {
			return newInstruction("sfence.vma", Supervisor, intReg(f.rs1, AccessRead), intReg(f.rs2, AccessRead))
		}
		return nil
	}

	name := csrMnemonics[f.funct3]
	if name == "" {
		return nil
	}
	source := intReg(f.rs1, AccessRead)
	if f.funct3 >= 5 {
		source = imm(int64(f.rs1))
	}
	return newInstruction(name, CSRAccess, intReg(f.rd, AccessWrite), csrOperand(field(w, 31, 20)), source)
}

var amoMnemonics = map[uint32]string{
	0x00: "amoadd",
	0x01: "amoswap",
	0x02: "lr",
	0x03: "sc",
	0x04: "amoxor",
	0x08: "amoor",
	0x0c: "amoand",
	0x10: "amomin",
	0x14: "amomax",
	0x18: "amominu",
	0x1c: "amomaxu",
}

var orderingSuffixes = [4]string{"", ".rl", ".aq", ".aqrl"}

func (d *Decoder) decodeAtomic(f fields) *Instruction {
	var width string
	switch {
	case f.funct3 == 2:
		width = ".w"
	case f.funct3 == 3 && d.rv64():
		width = ".d"
	default:
		return nil
	}

	funct5 := f.funct7 >> 2
	base, ok := amoMnemonics[funct5]
	if !ok {
		return nil
	}
	name := base + width + orderingSuffixes[f.funct7&0x3]

	if base == "lr" {
		if f.rs2 != 0 {
			return nil
		}
		return newInstruction(name, Atomics, intReg(f.rd, AccessWrite), bareMem(f.rs1, AccessRead))
	}
	access := AccessReadWrite
	if base == "sc" {
		access = AccessWrite
	}
	return newInstruction(name, Atomics,
		intReg(f.rd, AccessWrite), intReg(f.rs2, AccessRead), bareMem(f.rs1, access))
}

package riscv

// OperandKind is the type tag of an Operand.
type OperandKind uint8

// Operand kinds.
const (
	OperandRegister OperandKind = iota
	OperandImmediate
	OperandCSR
	OperandRoundingMode
	OperandMemory
	OperandFence
)

var operandKindNames = [...]string{
	OperandRegister:     "REG",
	OperandImmediate:    "IMM",
	OperandCSR:          "CSR",
	OperandRoundingMode: "RM",
	OperandMemory:       "MEM",
	OperandFence:        "FENCE",
}

func (k OperandKind) String() string {
	if int(k) < len(operandKindNames) {
		return operandKindNames[k]
	}
	return "INVALID"
}

// Radix selects how an immediate is rendered.
type Radix uint8

// Immediate radixes.
const (
	RadixAuto Radix = iota // small values in decimal, others in hex
	RadixHex               // always hex unless zero
)

// Access is a bit mask describing how an instruction uses an operand.
type Access uint8

// Access bits.
const (
	AccessRead Access = 1 << iota
	AccessWrite

	AccessReadWrite = AccessRead | AccessWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "READ"
	case AccessWrite:
		return "WRITE"
	case AccessReadWrite:
		return "READ | WRITE"
	default:
		return ""
	}
}

// RoundingMode is the static rounding mode field of a floating point instruction.
type RoundingMode uint8

// Rounding modes, 5 and 6 are reserved.
const (
	RoundNearestEven  RoundingMode = 0
	RoundTowardZero   RoundingMode = 1
	RoundDown         RoundingMode = 2
	RoundUp           RoundingMode = 3
	RoundMaxMagnitude RoundingMode = 4
	RoundDynamic      RoundingMode = 7
)

var roundingModeNames = map[RoundingMode]string{
	RoundNearestEven:  "rne",
	RoundTowardZero:   "rtz",
	RoundDown:         "rdn",
	RoundUp:           "rup",
	RoundMaxMagnitude: "rmm",
	RoundDynamic:      "dyn",
}

func (r RoundingMode) String() string {
	return roundingModeNames[r]
}

func (r RoundingMode) valid() bool {
	_, ok := roundingModeNames[r]
	return ok
}

// Fence set bits in instruction order.
const (
	FenceWrite uint8 = 1 << iota
	FenceRead
	FenceOutput
	FenceInput
)

// Operand is a single decoded operand. Kind selects which fields are valid.
type Operand struct {
	Kind   OperandKind
	Access Access

	Reg   uint8         // Register: index, Memory: base register
	Class RegisterClass // Register

	Imm   int64 // Immediate: value, Memory: offset
	Radix Radix // Immediate
	Bare  bool  // Memory: printed as "(base)" without offset

	CSR uint16 // CSR address

	RM    RoundingMode // RoundingMode
	Fence uint8        // FenceSet bits
}

func intReg(index uint32, access Access) Operand {
	return Operand{Kind: OperandRegister, Reg: uint8(index), Class: IntRegister, Access: access}
}

func floatReg(index uint32, access Access) Operand {
	return Operand{Kind: OperandRegister, Reg: uint8(index), Class: FloatRegister, Access: access}
}

func imm(value int64) Operand {
	return Operand{Kind: OperandImmediate, Imm: value, Access: AccessRead}
}

func hexImm(value int64) Operand {
	return Operand{Kind: OperandImmediate, Imm: value, Radix: RadixHex, Access: AccessRead}
}

func mem(base uint32, offset int64, access Access) Operand {
	return Operand{Kind: OperandMemory, Reg: uint8(base), Imm: offset, Access: access}
}

func bareMem(base uint32, access Access) Operand {
	return Operand{Kind: OperandMemory, Reg: uint8(base), Bare: true, Access: access}
}

func csrOperand(addr uint32) Operand {
	return Operand{Kind: OperandCSR, CSR: uint16(addr & 0xfff), Access: AccessReadWrite}
}

func roundingMode(rm uint32) Operand {
	return Operand{Kind: OperandRoundingMode, RM: RoundingMode(rm), Access: AccessRead}
}

func fenceSet(bits uint32) Operand {
	return Operand{Kind: OperandFence, Fence: uint8(bits & 0xf), Access: AccessRead}
}

// isIntReg reports whether op is the integer register with the given index.
func (o Operand) isIntReg(index uint8) bool {
	return o.Kind == OperandRegister && o.Class == IntRegister && o.Reg == index
}

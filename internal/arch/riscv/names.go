package riscv

import "fmt"

// RegisterClass selects the register file of a register operand.
type RegisterClass uint8

// Register files.
const (
	IntRegister RegisterClass = iota
	FloatRegister
)

var intRegisterNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

var floatRegisterNames = [32]string{
	"ft0", "ft1", "ft2", "ft3", "ft4", "ft5", "ft6", "ft7",
	"fs0", "fs1", "fa0", "fa1", "fa2", "fa3", "fa4", "fa5",
	"fa6", "fa7", "fs2", "fs3", "fs4", "fs5", "fs6", "fs7",
	"fs8", "fs9", "fs10", "fs11", "ft8", "ft9", "ft10", "ft11",
}

// RegisterName returns the ABI name of a register. Indexes outside of
// [0,31] return an empty string.
func RegisterName(index uint8, class RegisterClass) string {
	if index > 31 {
		return ""
	}
	if class == FloatRegister {
		return floatRegisterNames[index]
	}
	return intRegisterNames[index]
}

// NumericRegisterName returns the architectural name of a register, x5 or f5.
func NumericRegisterName(index uint8, class RegisterClass) string {
	if class == FloatRegister {
		return fmt.Sprintf("f%d", index)
	}
	return fmt.Sprintf("x%d", index)
}

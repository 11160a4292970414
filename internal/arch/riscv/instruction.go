package riscv

// Instruction is a decoded RISC-V instruction. It is not modified after
// Decode returns it.
type Instruction struct {
	Mnemonic  string    // canonical mnemonic, for example csrrs
	Operands  []Operand // canonical operands, destination first
	Size      int       // encoding width in bytes, 2 or 4
	Raw       []byte    // copy of the encoding bytes
	Extension Extension // extension that licenses the instruction
	Requires  []Extension
	XLEN      int

	// Pseudo instruction form, empty if no alias applies.
	Alias         string
	AliasOperands []Operand

	csrName string // licensed name of a CSR operand
}

// DisplayMnemonic returns the alias mnemonic if one applies.
func (i *Instruction) DisplayMnemonic() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.Mnemonic
}

// DisplayOperands returns the operands of the alias if one applies.
func (i *Instruction) DisplayOperands() []Operand {
	if i.Alias != "" {
		return i.AliasOperands
	}
	return i.Operands
}

// CSRName returns the licensed symbolic name of the CSR operand, or an
// empty string if the instruction has none or the name is not licensed.
func (i *Instruction) CSRName() string {
	return i.csrName
}

func newInstruction(mnemonic string, ext Extension, operands ...Operand) *Instruction {
	return &Instruction{
		Mnemonic:  mnemonic,
		Operands:  operands,
		Extension: ext,
		Requires:  []Extension{ext},
	}
}

// also records an additional extension that the encoding needs.
func (i *Instruction) also(ext Extension) *Instruction {
	i.Requires = append(i.Requires, ext)
	return i
}

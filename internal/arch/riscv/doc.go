// Package riscv provides RISC-V architecture support for the disassembler.
//
// # Encodings
//
// RISC-V instructions are stored little endian. The two lowest bits of the
// first byte select the width:
//   - 11: 32 bit standard encoding, unless bits 4:2 are 111 which announce a
//     longer encoding that is not supported
//   - 00, 01, 10: 16 bit compressed encoding of quadrant 0, 1 or 2
//
// # Modes
//
// The handler supports three modes:
//   - riscv64 (alias rv64, riscv): 64 bit registers, the default
//   - riscv32 (alias rv32): 32 bit registers
//   - riscv32e (alias rv32e): 32 bit registers, only x0-x15 exist
//
// Some encodings change their meaning with the register width. On RV32
// quadrant 1 funct3 001 is c.jal, on RV64 it is c.addiw. The compressed
// float loads and stores of RV32 are the doubleword loads and stores on RV64.
//
// # Extensions
//
// Every decoded instruction is licensed by an extension. A Config holds the
// enabled extensions and is built from canonical names or ISA letters:
//
//	cfg, err := riscv.NewConfig("i", "m", "c", "zicsr")
//	if err != nil {
//		return fmt.Errorf("creating extension configuration: %w", err)
//	}
//	dec := riscv.NewDecoder(mode, cfg)
//
// An instruction of a disabled extension fails with arch.ErrDisabledExtension,
// the decoder never falls back to another interpretation. The only exception
// are the prefetch hints, which decode as ori without cache-block-prefetch.
//
// # Output
//
// Format renders an instruction in the cstool notation, mnemonic and operands
// separated by a tab. Pseudo instructions like li, ret or csrr are printed
// unless FormatOptions.NoAlias is set.
package riscv

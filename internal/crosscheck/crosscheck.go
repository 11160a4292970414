// Package crosscheck compares decoded listings with the independent RISC-V
// decoder of golang.org/x/arch.
package crosscheck

import (
	"fmt"
	"strings"

	"github.com/hust-open-atom-club/Robustone/internal/arch"
	"golang.org/x/arch/riscv64/riscv64asm"
)

// Mismatch describes a line that the reference decoder disagrees with.
type Mismatch struct {
	Offset    uint64
	Raw       arch.HexBytes
	Text      string // text of the checked line
	Reference string // reference decoding, empty if it refused the bytes
	Reason    string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("offset %d [%s] %s: %s", m.Offset, m.Raw, m.Text, m.Reason)
}

// vendorPrefix starts the mnemonics of T-Head custom instructions, which
// riscv64asm does not know.
const vendorPrefix = "th."

// Check re-decodes every instruction line with riscv64asm and reports lines
// whose length disagrees or that the reference decoder refuses. Lines
// without a mnemonic, data lines starting with a dot and T-Head vendor
// instructions are skipped.
func Check(lines []arch.Line) []Mismatch {
	var mismatches []Mismatch

	for _, line := range lines {
		if line.Mnemonic == "" || line.Mnemonic[0] == '.' || strings.HasPrefix(line.Mnemonic, vendorPrefix) {
			continue
		}

		inst, err := riscv64asm.Decode(line.Raw)
		if err != nil {
			mismatches = append(mismatches, Mismatch{
				Offset: line.Offset,
				Raw:    line.Raw,
				Text:   line.Text,
				Reason: fmt.Sprintf("reference decoder failed: %v", err),
			})
			continue
		}

		if inst.Len != len(line.Raw) {
			mismatches = append(mismatches, Mismatch{
				Offset:    line.Offset,
				Raw:       line.Raw,
				Text:      line.Text,
				Reference: riscv64asm.GNUSyntax(inst),
				Reason:    fmt.Sprintf("length %d differs from reference length %d", len(line.Raw), inst.Len),
			})
		}
	}

	return mismatches
}

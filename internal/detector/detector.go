// Package detector handles architecture and mode detection.
package detector

import (
	"debug/elf"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hust-open-atom-club/Robustone/internal/arch/riscv"
	"github.com/hust-open-atom-club/Robustone/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Modifiers that can be appended to an architecture name with a '+'.
const (
	ModifierNoRegName = "noregname"
	ModifierNoAlias   = "noalias"
	ModifierUnsigned  = "unsigned"
)

// DefaultArch is used when neither options nor the input file select an architecture.
const DefaultArch = riscv.ModeRV64

// ErrUnknownModifier is returned for an architecture spec modifier that is not supported.
var ErrUnknownModifier = errors.New("unknown architecture modifier")

// Spec is a parsed architecture spec like "riscv64+noalias".
type Spec struct {
	Arch      string
	NoRegName bool
	NoAlias   bool
	Unsigned  bool
}

// ParseSpec parses an architecture name followed by optional '+' separated modifiers.
func ParseSpec(s string) (Spec, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	spec := Spec{Arch: parts[0]}
	if spec.Arch == "" {
		return Spec{}, errors.New("empty architecture name")
	}

	for _, modifier := range parts[1:] {
		switch modifier {
		case ModifierNoRegName:
			spec.NoRegName = true
		case ModifierNoAlias:
			spec.NoAlias = true
		case ModifierUnsigned:
			spec.Unsigned = true
		default:
			return Spec{}, fmt.Errorf("%w '%s'", ErrUnknownModifier, modifier)
		}
	}
	return spec, nil
}

// Detector handles architecture detection from options and input files.
type Detector struct {
	logger *log.Logger
}

// New creates a new architecture detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the decoder options from the program options.
// An explicit architecture spec wins, followed by the mode of an ISA string,
// the class of an ELF input file and the input filename extension.
func (d *Detector) Detect(opts options.Program) (options.Disassembler, error) {
	var spec Spec
	if opts.Arch != "" {
		var err error
		spec, err = ParseSpec(opts.Arch)
		if err != nil {
			return options.Disassembler{}, fmt.Errorf("parsing architecture: %w", err)
		}
	}

	var extensions []string
	if opts.ISA != "" {
		mode, names, err := riscv.ParseISA(opts.ISA)
		if err != nil {
			return options.Disassembler{}, fmt.Errorf("parsing ISA string: %w", err)
		}
		if err := checkModeConflict(spec.Arch, mode); err != nil {
			return options.Disassembler{}, err
		}
		if spec.Arch == "" {
			spec.Arch = mode
		}
		extensions = names
	}
	extensions = append(extensions, splitList(opts.Extensions)...)

	if spec.Arch == "" {
		spec.Arch = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected architecture",
			log.String("arch", spec.Arch),
			log.String("file", opts.Input))
	}

	disasmOpts := options.NewDisassembler(spec.Arch, opts)
	disasmOpts.Extensions = extensions
	disasmOpts.NoAlias = disasmOpts.NoAlias || spec.NoAlias
	disasmOpts.NumericRegisters = spec.NoRegName
	disasmOpts.UnsignedImmediates = disasmOpts.UnsignedImmediates || spec.Unsigned
	return disasmOpts, nil
}

// detectFromFile determines the mode based on the ELF class or the file extension.
func (d *Detector) detectFromFile(filename string) string {
	if filename == "" {
		return DefaultArch
	}

	if mode, ok := d.detectFromELF(filename); ok {
		return mode
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".rv32":
		return riscv.ModeRV32
	case ".rv32e":
		return riscv.ModeRV32E
	default:
		return DefaultArch
	}
}

func (d *Detector) detectFromELF(filename string) (string, bool) {
	file, err := elf.Open(filename)
	if err != nil {
		return "", false
	}
	defer func() { _ = file.Close() }()

	if file.Machine != elf.EM_RISCV {
		d.logger.Warn("ELF file is not a RISC-V executable",
			log.String("file", filename),
			log.Stringer("machine", file.Machine))
		return "", false
	}
	if file.Class == elf.ELFCLASS32 {
		return riscv.ModeRV32, true
	}
	return riscv.ModeRV64, true
}

// checkModeConflict returns an error if the explicit architecture names a
// RISC-V mode that differs from the mode of the ISA string.
func checkModeConflict(archName, isaMode string) error {
	if archName == "" {
		return nil
	}
	mode, err := riscv.ParseMode(archName)
	if err != nil {
		return nil //nolint:nilerr // unknown names are reported by the registry
	}
	if mode.Name != isaMode {
		return fmt.Errorf("architecture '%s' conflicts with ISA mode '%s'", archName, isaMode)
	}
	return nil
}

func splitList(s string) []string {
	var items []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

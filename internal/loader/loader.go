// Package loader handles loading of the code buffers to disassemble.
package loader

import (
	"bufio"
	"bytes"
	"debug/elf"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hust-open-atom-club/Robustone/internal/options"
)

// ErrInvalidHex is returned for hex input that does not form whole bytes.
var ErrInvalidHex = errors.New("invalid hex input")

var elfMagic = []byte(elf.ELFMAG)

// Segment is a contiguous code buffer together with the address of its first byte.
type Segment struct {
	Name    string
	Address uint64
	Data    []byte
}

// Loader handles loading code from the command line or from files.
type Loader struct{}

// New creates a new loader.
func New() *Loader {
	return &Loader{}
}

// Load returns the code segments selected by the options. Hex code given on
// the command line takes precedence over an input file. ELF files are
// reduced to their executable sections, other files are loaded as raw code.
func (l *Loader) Load(opts options.Program) ([]Segment, error) {
	address, err := ParseAddress(opts.Address)
	if err != nil {
		return nil, err
	}

	if opts.Code != "" {
		data, err := ParseHex(opts.Code)
		if err != nil {
			return nil, err
		}
		return []Segment{{Name: "input", Address: address, Data: data}}, nil
	}

	if opts.Input == "" {
		return nil, errors.New("no code or input file given")
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	if bytes.HasPrefix(data, elfMagic) {
		segments, err := loadELF(data)
		if err != nil {
			return nil, fmt.Errorf("loading ELF file %s: %w", opts.Input, err)
		}
		return segments, nil
	}
	return []Segment{{Name: opts.Input, Address: address, Data: data}}, nil
}

// ParseHex converts whitespace separated hex tokens into bytes. Every token
// may carry a 0x prefix and has to contain whole bytes. The bytes are kept
// in the order they are given.
func ParseHex(s string) ([]byte, error) {
	var data []byte
	for _, token := range strings.Fields(strings.ToLower(s)) {
		digits := strings.TrimPrefix(token, "0x")
		if digits == "" {
			return nil, fmt.Errorf("%w: empty token '%s'", ErrInvalidHex, token)
		}
		if len(digits)%2 != 0 {
			return nil, fmt.Errorf("%w: odd-length token '%s'", ErrInvalidHex, token)
		}

		decoded, err := hex.DecodeString(digits)
		if err != nil {
			return nil, fmt.Errorf("%w: token '%s': %w", ErrInvalidHex, token, err)
		}
		data = append(data, decoded...)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no bytes given", ErrInvalidHex)
	}
	return data, nil
}

// ParseAddress parses a hex address with an optional 0x prefix. An empty
// string results in address 0.
func ParseAddress(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	digits := strings.TrimPrefix(strings.ToLower(s), "0x")
	address, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing address '%s': %w", s, err)
	}
	return address, nil
}

// ParseBatch reads one hex buffer per line. Empty lines and lines starting
// with '#' are skipped. Every buffer starts at the given address.
func ParseBatch(r io.Reader, address uint64) ([]Segment, error) {
	var segments []Segment
	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		data, err := ParseHex(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		segments = append(segments, Segment{
			Name:    fmt.Sprintf("line %d", lineNumber),
			Address: address,
			Data:    data,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch input: %w", err)
	}
	return segments, nil
}

func loadELF(data []byte) ([]Segment, error) {
	file, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing ELF header: %w", err)
	}
	defer func() { _ = file.Close() }()

	if file.Machine != elf.EM_RISCV {
		return nil, fmt.Errorf("unsupported machine %s", file.Machine)
	}

	var segments []Segment
	for _, section := range file.Sections {
		if section.Type != elf.SHT_PROGBITS || section.Flags&elf.SHF_EXECINSTR == 0 {
			continue
		}

		code, err := section.Data()
		if err != nil {
			return nil, fmt.Errorf("reading section %s: %w", section.Name, err)
		}
		segments = append(segments, Segment{
			Name:    section.Name,
			Address: section.Addr,
			Data:    code,
		})
	}

	if len(segments) == 0 {
		return nil, errors.New("no executable sections found")
	}
	return segments, nil
}

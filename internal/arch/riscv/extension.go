package riscv

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// ErrUnknownExtension is returned when an extension name is not recognized.
var ErrUnknownExtension = errors.New("unknown extension")

// Extension identifies an instruction set extension that gates encodings.
type Extension uint8

// Supported extensions.
const (
	BaseInteger Extension = iota + 1
	MultiplyDivide
	Atomics
	SingleFloat
	DoubleFloat
	Compressed
	CSRAccess
	Counters
	HPMCounters
	CacheBlockPrefetch
	Supervisor
	Sv39
	TrapVectorDirect
	TrapValue
	CounterEnable
	XTheadCondMov

	extensionCount = iota
)

var extensionNames = [extensionCount + 1]string{
	BaseInteger:        "base-integer",
	MultiplyDivide:     "multiply-divide",
	Atomics:            "atomics",
	SingleFloat:        "single-float",
	DoubleFloat:        "double-float",
	Compressed:         "compressed",
	CSRAccess:          "csr-access",
	Counters:           "counters",
	HPMCounters:        "hpm-counters",
	CacheBlockPrefetch: "cache-block-prefetch",
	Supervisor:         "supervisor",
	Sv39:               "sv39",
	TrapVectorDirect:   "trap-vector-direct",
	TrapValue:          "trap-value",
	CounterEnable:      "counter-enable",
	XTheadCondMov:      "xtheadcondmov",
}

// extensionLetters maps ISA string spellings to extensions.
var extensionLetters = map[string]Extension{
	"i":        BaseInteger,
	"zifencei": BaseInteger,
	"m":        MultiplyDivide,
	"a":        Atomics,
	"f":        SingleFloat,
	"d":        DoubleFloat,
	"c":        Compressed,
	"zicsr":    CSRAccess,
	"zicntr":   Counters,
	"zihpm":    HPMCounters,
	"zicbop":   CacheBlockPrefetch,
	"s":        Supervisor,
}

// vendorExtensions are custom extensions that are only enabled on request.
var vendorExtensions = []Extension{XTheadCondMov}

// generalPurpose is the expansion of the "g" shorthand.
var generalPurpose = []Extension{BaseInteger, MultiplyDivide, Atomics, SingleFloat, DoubleFloat, CSRAccess}

// String returns the canonical name of the extension.
func (e Extension) String() string {
	if e == 0 || int(e) > extensionCount {
		return fmt.Sprintf("extension(%d)", uint8(e))
	}
	return extensionNames[e]
}

// Vendor returns whether the extension is a vendor specific custom extension.
func (e Extension) Vendor() bool {
	return slices.Contains(vendorExtensions, e)
}

// StandardExtensions returns every supported extension that is not vendor
// specific, in declaration order.
func StandardExtensions() []Extension {
	var list []Extension
	for _, ext := range AllExtensions() {
		if !ext.Vendor() {
			list = append(list, ext)
		}
	}
	return list
}

// AllExtensions returns every supported extension in declaration order.
func AllExtensions() []Extension {
	all := make([]Extension, 0, extensionCount)
	for e := BaseInteger; int(e) <= extensionCount; e++ {
		all = append(all, e)
	}
	return all
}

// ParseExtension resolves a canonical name or ISA letter alias.
func ParseExtension(name string) (Extension, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if ext, ok := extensionLetters[key]; ok {
		return ext, nil
	}
	for _, ext := range AllExtensions() {
		if extensionNames[ext] == key {
			return ext, nil
		}
	}
	return 0, fmt.Errorf("%w '%s'", ErrUnknownExtension, name)
}

// Config is an immutable set of enabled extensions.
type Config struct {
	enabled set.Set[Extension]
}

// NewConfig builds a configuration from extension names. Names may be canonical
// names, ISA letters, "g" for the general purpose set, "standard" for every
// non vendor extension or "all".
// Duplicates are ignored.
func NewConfig(names ...string) (*Config, error) {
	c := &Config{enabled: set.New[Extension]()}

	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
			continue
		case "g":
			c.add(generalPurpose...)
		case "standard":
			c.add(StandardExtensions()...)
		case "all":
			c.add(AllExtensions()...)
		default:
			ext, err := ParseExtension(name)
			if err != nil {
				return nil, err
			}
			c.add(ext)
		}
	}
	return c, nil
}

// ConfigOf builds a configuration from extension identifiers.
func ConfigOf(extensions ...Extension) *Config {
	c := &Config{enabled: set.New[Extension]()}
	c.add(extensions...)
	return c
}

// DefaultConfig returns a configuration with every standard extension
// enabled. Vendor extensions have to be requested explicitly.
func DefaultConfig() *Config {
	return ConfigOf(StandardExtensions()...)
}

func (c *Config) add(extensions ...Extension) {
	for _, ext := range extensions {
		c.enabled[ext] = struct{}{}
	}
}

// Enabled returns whether the extension is part of the configuration.
func (c *Config) Enabled(ext Extension) bool {
	if c == nil {
		return false
	}
	return c.enabled.Contains(ext)
}

// Extensions returns the enabled extensions in declaration order.
func (c *Config) Extensions() []Extension {
	if c == nil {
		return nil
	}
	list := make([]Extension, 0, len(c.enabled))
	for ext := range c.enabled {
		list = append(list, ext)
	}
	slices.Sort(list)
	return list
}

// String returns the comma separated canonical names of the enabled extensions.
func (c *Config) String() string {
	exts := c.Extensions()
	names := make([]string, len(exts))
	for i, ext := range exts {
		names[i] = ext.String()
	}
	return strings.Join(names, ",")
}

// ParseISA splits an ISA string like "rv64imac_zicsr_zicntr" into the mode
// it selects and the extension names it lists. The names can be passed to
// NewConfig.
func ParseISA(isa string) (string, []string, error) {
	s := strings.ToLower(strings.TrimSpace(isa))

	var mode string
	switch {
	case strings.HasPrefix(s, "rv32"):
		mode = ModeRV32
	case strings.HasPrefix(s, "rv64"):
		mode = ModeRV64
	default:
		return "", nil, fmt.Errorf("invalid ISA string '%s': missing rv32 or rv64 prefix", isa)
	}
	s = s[4:]
	if s == "" {
		return "", nil, fmt.Errorf("invalid ISA string '%s': missing base", isa)
	}

	var names []string
	switch s[0] {
	case 'i', 'g':
		names = append(names, s[:1])
	case 'e':
		if mode != ModeRV32 {
			return "", nil, fmt.Errorf("invalid ISA string '%s': embedded base requires rv32", isa)
		}
		mode = ModeRV32E
		names = append(names, "i")
	default:
		return "", nil, fmt.Errorf("invalid ISA string '%s': unknown base '%c'", isa, s[0])
	}

	parts := strings.Split(s[1:], "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			// single letter extensions follow the base without separator
			for _, letter := range part {
				names = append(names, string(letter))
			}
			continue
		}
		names = append(names, part)
	}

	for _, name := range names {
		if name == "g" {
			continue
		}
		if _, err := ParseExtension(name); err != nil {
			return "", nil, fmt.Errorf("invalid ISA string '%s': %w", isa, err)
		}
	}
	return mode, names, nil
}

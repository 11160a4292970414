package riscv

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFormatImmediate(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		radix    Radix
		xlen     int
		unsigned bool
		expected string
	}{
		{"zero", 0, RadixAuto, 64, false, "0"},
		{"small positive", 9, RadixAuto, 64, false, "9"},
		{"small negative", -9, RadixAuto, 64, false, "-9"},
		{"positive hex", 10, RadixAuto, 64, false, "0xa"},
		{"negative hex", -16, RadixAuto, 64, false, "-0x10"},
		{"hex radix small", 1, RadixHex, 64, false, "0x1"},
		{"hex radix zero", 0, RadixHex, 64, false, "0"},
		{"unsigned rv64", -16, RadixAuto, 64, true, "0xfffffffffffffff0"},
		{"unsigned rv32", -1, RadixAuto, 32, true, "0xffffffff"},
		{"unsigned positive", 5, RadixAuto, 32, true, "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatImmediate(tt.value, tt.radix, tt.xlen, tt.unsigned))
		})
	}
}

func TestFormat_Options(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		word     uint32
		opts     FormatOptions
		expected string
	}{
		{"alias", rv64, encI(opImm, 10, 0, 0, 5), FormatOptions{}, "li\ta0, 5"},
		{"no alias", rv64, encI(opImm, 10, 0, 0, 5), FormatOptions{NoAlias: true}, "addi\ta0, zero, 5"},
		{"numeric registers", rv64, encI(opImm, 10, 0, 0, 5), FormatOptions{NumericRegisters: true}, "li\tx10, 5"},
		{"numeric float registers", rv64, encI(opLoadFP, 10, 2, 11, 4), FormatOptions{NumericRegisters: true},
			"flw\tf10, 4(x11)"},
		{"unsigned rv64", rv64, encI(opImm, 10, 0, 11, -16), FormatOptions{UnsignedImmediates: true},
			"addi\ta0, a1, 0xfffffffffffffff0"},
		{"unsigned rv32", rv32, encI(opImm, 10, 0, 11, -16), FormatOptions{UnsignedImmediates: true},
			"addi\ta0, a1, 0xfffffff0"},
		{"canonical ret", rv64, encI(opJALR, 0, 0, 1, 0), FormatOptions{NoAlias: true}, "jalr\tzero, ra, 0"},
		{"canonical csrr", rv64, encI(opSystem, 10, 2, 0, 0x300), FormatOptions{NoAlias: true},
			"csrrs\ta0, mstatus, zero"},
		{"canonical fence", rv64, 0x0ff0000f, FormatOptions{NoAlias: true}, "fence\tiorw, iorw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := NewDecoder(tt.mode, DefaultConfig()).Decode(le32(tt.word))
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, Format(inst, tt.opts))
		})
	}
}

func TestFenceText(t *testing.T) {
	assert.Equal(t, "iorw", fenceText(0xf))
	assert.Equal(t, "rw", fenceText(FenceRead|FenceWrite))
	assert.Equal(t, "io", fenceText(FenceInput|FenceOutput))
	assert.Equal(t, "0", fenceText(0))
}

package riscv

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRegisterName(t *testing.T) {
	tests := []struct {
		index    uint8
		class    RegisterClass
		expected string
	}{
		{0, IntRegister, "zero"},
		{2, IntRegister, "sp"},
		{8, IntRegister, "s0"},
		{31, IntRegister, "t6"},
		{0, FloatRegister, "ft0"},
		{10, FloatRegister, "fa0"},
		{27, FloatRegister, "fs11"},
		{32, IntRegister, ""},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, RegisterName(tt.index, tt.class))
		})
	}

	for i := range uint8(32) {
		assert.NotEmpty(t, RegisterName(i, IntRegister))
		assert.NotEmpty(t, RegisterName(i, FloatRegister))
	}
	assert.Equal(t, "x5", NumericRegisterName(5, IntRegister))
	assert.Equal(t, "f5", NumericRegisterName(5, FloatRegister))
}

func TestCSRName(t *testing.T) {
	tests := []struct {
		addr     uint16
		expected string
		owner    Extension
		known    bool
	}{
		{0x001, "fflags", SingleFloat, true},
		{0x180, "satp", Sv39, true},
		{0x305, "mtvec", TrapVectorDirect, true},
		{0x343, "mtval", TrapValue, true},
		{0x306, "mcounteren", CounterEnable, true},
		{0xb03, "mhpmcounter3", HPMCounters, true},
		{0xc9f, "hpmcounter31h", HPMCounters, true},
		{0x33f, "mhpmevent31", HPMCounters, true},
		{0x3ef, "pmpaddr63", CSRAccess, true},
		{0xf14, "mhartid", CSRAccess, true},
		{0xc00, "cycle", Counters, true},
		{0x7c0, "", 0, false},
	}

	for _, tt := range tests {
		name, ok := CSRName(tt.addr)
		assert.Equal(t, tt.known, ok)
		assert.Equal(t, tt.expected, name)

		owner, ok := CSROwner(tt.addr)
		assert.Equal(t, tt.known, ok)
		assert.Equal(t, tt.owner, owner)
	}
}

func TestLicensedCSRName(t *testing.T) {
	assert.Equal(t, "satp", licensedCSRName(0x180, ConfigOf(Sv39)))
	assert.Equal(t, "", licensedCSRName(0x180, ConfigOf(CSRAccess)))
	assert.Equal(t, "", licensedCSRName(0x7c0, DefaultConfig()))
}

package riscv

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		expected []Extension
		err      error
	}{
		{"letters", []string{"i", "m", "c"}, []Extension{BaseInteger, MultiplyDivide, Compressed}, nil},
		{"canonical names", []string{"base-integer", "csr-access"}, []Extension{BaseInteger, CSRAccess}, nil},
		{"general purpose", []string{"g"},
			[]Extension{BaseInteger, MultiplyDivide, Atomics, SingleFloat, DoubleFloat, CSRAccess}, nil},
		{"duplicates", []string{"m", "multiply-divide", "M"}, []Extension{MultiplyDivide}, nil},
		{"mixed case and spaces", []string{" Zicsr "}, []Extension{CSRAccess}, nil},
		{"unknown", []string{"i", "v"}, nil, ErrUnknownExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.names...)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				assert.Nil(t, cfg)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Extensions())
		})
	}
}

func TestConfig_Enabled(t *testing.T) {
	cfg := ConfigOf(BaseInteger, Compressed)

	assert.True(t, cfg.Enabled(BaseInteger))
	assert.True(t, cfg.Enabled(Compressed))
	assert.False(t, cfg.Enabled(MultiplyDivide))
	assert.Equal(t, "base-integer,compressed", cfg.String())

	var nilConfig *Config
	assert.False(t, nilConfig.Enabled(BaseInteger))
}

func TestConfig_All(t *testing.T) {
	cfg, err := NewConfig("all")
	assert.NoError(t, err)
	assert.Equal(t, AllExtensions(), cfg.Extensions())
	assert.Len(t, AllExtensions(), 16)
	assert.True(t, cfg.Enabled(XTheadCondMov))
}

func TestConfig_VendorExtensions(t *testing.T) {
	assert.True(t, XTheadCondMov.Vendor())
	assert.False(t, BaseInteger.Vendor())
	assert.Len(t, StandardExtensions(), 15)

	assert.False(t, DefaultConfig().Enabled(XTheadCondMov))
	assert.True(t, DefaultConfig().Enabled(Counters))

	cfg, err := NewConfig("standard", "xtheadcondmov")
	assert.NoError(t, err)
	assert.True(t, cfg.Enabled(XTheadCondMov))
	assert.True(t, cfg.Enabled(MultiplyDivide))

	ext, err := ParseExtension("XTheadCondMov")
	assert.NoError(t, err)
	assert.Equal(t, XTheadCondMov, ext)
	assert.Equal(t, "xtheadcondmov", ext.String())
}

func TestParseISA(t *testing.T) {
	tests := []struct {
		name     string
		isa      string
		mode     string
		expected []string
		wantErr  bool
	}{
		{"rv64 letters", "rv64imac", ModeRV64, []string{"i", "m", "a", "c"}, false},
		{"multi letter", "rv64imac_zicsr_zicntr", ModeRV64, []string{"i", "m", "a", "c", "zicsr", "zicntr"}, false},
		{"general purpose", "RV32GC", ModeRV32, []string{"g", "c"}, false},
		{"embedded", "rv32ec", ModeRV32E, []string{"i", "c"}, false},
		{"base only", "rv64i", ModeRV64, []string{"i"}, false},
		{"vendor extension", "rv64gc_xtheadcondmov", ModeRV64, []string{"g", "c", "xtheadcondmov"}, false},
		{"missing prefix", "x86", "", nil, true},
		{"embedded rv64", "rv64e", "", nil, true},
		{"unknown extension", "rv64iv", "", nil, true},
		{"missing base", "rv64", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, names, err := ParseISA(tt.isa)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.expected, names)

			_, err = NewConfig(names...)
			assert.NoError(t, err)
		})
	}
}

func TestExtension_String(t *testing.T) {
	assert.Equal(t, "hpm-counters", HPMCounters.String())
	assert.Equal(t, "extension(99)", Extension(99).String())

	ext, err := ParseExtension("zicbop")
	assert.NoError(t, err)
	assert.Equal(t, CacheBlockPrefetch, ext)
}

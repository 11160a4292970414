package arch

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type fakeHandler struct {
	info Info
}

func (f *fakeHandler) Info() Info {
	return f.info
}

func (f *fakeHandler) Disassemble(_ context.Context, _ []byte, _ Request) (*Listing, error) {
	return &Listing{}, nil
}

func newFake(name string, modes ...string) *fakeHandler {
	return &fakeHandler{info: Info{Name: name, Modes: modes, WordWidth: 32, ByteOrder: binary.LittleEndian}}
}

func TestRegistry_Resolve(t *testing.T) {
	riscv := newFake("riscv", "riscv64", "riscv32", "rv64")
	other := newFake("toy", "toy16")

	registry, err := NewRegistry(riscv, other)
	assert.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		handler Handler
		mode    string
	}{
		{"architecture name selects default mode", "riscv", riscv, "riscv64"},
		{"mode", "riscv32", riscv, "riscv32"},
		{"alias", "RV64", riscv, "rv64"},
		{"whitespace", " toy16 ", other, "toy16"},
		{"other architecture", "toy", other, "toy16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mode, err := registry.Resolve(tt.input)
			assert.NoError(t, err)
			assert.True(t, handler == tt.handler)
			assert.Equal(t, tt.mode, mode)
		})
	}

	_, _, err = registry.Resolve("x86")
	assert.True(t, errors.Is(err, ErrUnknownArchitecture))
	assert.ErrorContains(t, err, "riscv32")
}

func TestRegistry_Names(t *testing.T) {
	registry, err := NewRegistry(newFake("toy", "toy16"), newFake("riscv", "riscv64"))
	assert.NoError(t, err)

	assert.Equal(t, []string{"riscv", "toy"}, registry.Names())
	assert.Equal(t, []string{"riscv", "riscv64", "toy", "toy16"}, registry.Modes())
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry(newFake("empty"))
	assert.ErrorContains(t, err, "has no modes")

	_, err = NewRegistry(newFake("a", "shared"), newFake("b", "shared"))
	assert.ErrorContains(t, err, "registered twice")
}

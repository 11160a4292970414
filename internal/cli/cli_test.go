package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hust-open-atom-club/Robustone/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

type recorder struct {
	command string
	path    string
	opts    options.Program
}

func newTestCommand(rec *recorder) (*bytes.Buffer, func(args ...string) error) {
	handlers := Handlers{
		Disassemble: func(_ context.Context, opts options.Program) error {
			rec.command = "disassemble"
			rec.opts = opts
			return nil
		},
		Verify: func(_ context.Context, opts options.Program, path string) error {
			rec.command = "verify"
			rec.opts = opts
			rec.path = path
			return nil
		},
		Batch: func(_ context.Context, opts options.Program, path string) error {
			rec.command = "batch"
			rec.opts = opts
			rec.path = path
			return nil
		},
	}

	info := Info{Version: "1.2.3", Architectures: []string{"riscv32", "riscv64"}}
	var out bytes.Buffer
	run := func(args ...string) error {
		root, _ := NewRootCommand(info, handlers)
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		return root.ExecuteContext(context.Background())
	}
	return &out, run
}

func TestRootCommand_Disassemble(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "arch and code",
			args: []string{"riscv64", "13 05 10 00"},
			want: options.Program{
				Positional:  options.Positional{Arch: "riscv64", Code: "13 05 10 00"},
				OutputFlags: options.OutputFlags{Color: options.ColorAuto},
			},
		},
		{
			name: "flags and address",
			args: []string{"-d", "-r", "-u", "riscv32+noalias", "9302a000", "0x1000"},
			want: options.Program{
				Positional:  options.Positional{Arch: "riscv32+noalias", Code: "9302a000", Address: "0x1000"},
				OutputFlags: options.OutputFlags{Detail: true, Real: true, Unsigned: true, Color: options.ColorAuto},
			},
		},
		{
			name: "input file without arch",
			args: []string{"-i", "code.bin", "-o", "code.s"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "code.bin", Output: "code.s"},
				OutputFlags: options.OutputFlags{Color: options.ColorAuto},
			},
		},
		{
			name: "input file with arch and address",
			args: []string{"-i", "code.bin", "riscv32", "0x80000000"},
			want: options.Program{
				Positional:  options.Positional{Arch: "riscv32", Address: "0x80000000"},
				Parameters:  options.Parameters{Input: "code.bin"},
				OutputFlags: options.OutputFlags{Color: options.ColorAuto},
			},
		},
		{
			name: "extension selection",
			args: []string{"-e", "i,m", "--isa", "rv32imc", "-s", "--crosscheck", "riscv32", "00"},
			want: options.Program{
				Positional:  options.Positional{Arch: "riscv32", Code: "00"},
				Parameters:  options.Parameters{Extensions: "i,m", ISA: "rv32imc"},
				Flags:       options.Flags{CrossCheck: true, SkipData: true},
				OutputFlags: options.OutputFlags{Color: options.ColorAuto},
			},
		},
		{
			name: "json disables detail and color is normalized",
			args: []string{"--json", "-d", "--color", "NEVER", "riscv64", "8280"},
			want: options.Program{
				Positional:  options.Positional{Arch: "riscv64", Code: "8280"},
				OutputFlags: options.OutputFlags{JSON: true, Color: options.ColorNever},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorder
			_, run := newTestCommand(&rec)
			assert.NoError(t, run(tt.args...))
			assert.Equal(t, "disassemble", rec.command)
			assert.Equal(t, tt.want, rec.opts)
		})
	}
}

func TestRootCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"missing code", []string{"riscv64"}, "missing architecture or hex code"},
		{"too many arguments", []string{"riscv64", "00", "0x10", "extra"}, "too many arguments: extra"},
		{"code with input file", []string{"-i", "a.bin", "riscv64", "00", "0x10"}, "hex code can not be combined"},
		{"invalid color", []string{"--color", "rainbow", "riscv64", "00"}, "unsupported color mode 'rainbow'"},
		{"input and batch", []string{"-i", "a.bin", "--batch", "*.bin"}, "can not be combined"},
		{"verify without path", []string{"verify"}, "verify expects 1 argument(s), got 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorder
			_, run := newTestCommand(&rec)
			err := run(tt.args...)
			assert.ErrorContains(t, err, tt.message)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.Equal(t, "", rec.command)
		})
	}
}

func TestVerifyCommand(t *testing.T) {
	var rec recorder
	_, run := newTestCommand(&rec)
	assert.NoError(t, run("verify", "-r", "tests/riscv32"))
	assert.Equal(t, "verify", rec.command)
	assert.Equal(t, "tests/riscv32", rec.path)
	assert.True(t, rec.opts.Real)
}

func TestBatchCommand(t *testing.T) {
	var rec recorder
	_, run := newTestCommand(&rec)
	assert.NoError(t, run("batch", "buffers.txt", "riscv32+noregname", "0x400"))
	assert.Equal(t, "batch", rec.command)
	assert.Equal(t, "buffers.txt", rec.path)
	assert.Equal(t, "riscv32+noregname", rec.opts.Arch)
	assert.Equal(t, "0x400", rec.opts.Address)

	err := run("batch")
	assert.ErrorContains(t, err, "batch expects a file")
}

func TestSchemaCommand(t *testing.T) {
	var rec recorder
	out, run := newTestCommand(&rec)
	assert.NoError(t, run("schema"))
	assert.Contains(t, out.String(), "raw_bytes")
	assert.Contains(t, out.String(), "mnemonic")

	out.Reset()
	assert.NoError(t, run("schema", "--suite"))
	assert.Contains(t, out.String(), "robustone_arch")
	assert.Contains(t, out.String(), "test_cases.txt")
}

func TestVersionCommand(t *testing.T) {
	var rec recorder
	out, run := newTestCommand(&rec)
	assert.NoError(t, run("version"))
	assert.Equal(t, "robustone 1.2.3\nSupported architectures: riscv32, riscv64\n", out.String())

	out.Reset()
	assert.NoError(t, run("--version"))
	assert.Equal(t, "robustone 1.2.3\nSupported architectures: riscv32, riscv64\n", out.String())
	assert.Equal(t, "", rec.command)
}

func TestCPUProfile_FailingCommand(t *testing.T) {
	errDecode := errors.New("decode failed")
	handlers := Handlers{
		Disassemble: func(context.Context, options.Program) error { return errDecode },
		Verify:      func(context.Context, options.Program, string) error { return errDecode },
		Batch:       func(context.Context, options.Program, string) error { return errDecode },
	}

	for _, args := range [][]string{
		{"riscv64", "00"},
		{"verify", "suite"},
		{"batch", "buffers.txt"},
	} {
		t.Run(args[0], func(t *testing.T) {
			dir := t.TempDir()
			root, _ := NewRootCommand(Info{Version: "dev"}, handlers)
			root.SetArgs(append([]string{"--cpuprofile", dir}, args...))

			err := root.ExecuteContext(context.Background())
			assert.True(t, errors.Is(err, errDecode))

			info, err := os.Stat(filepath.Join(dir, "cpu.pprof"))
			assert.NoError(t, err)
			assert.True(t, info.Size() > 0)
		})
	}
}

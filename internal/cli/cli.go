// Package cli handles command line interface logic
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/hust-open-atom-club/Robustone/internal/arch"
	"github.com/hust-open-atom-club/Robustone/internal/config"
	"github.com/hust-open-atom-club/Robustone/internal/options"
	"github.com/invopop/jsonschema"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// ErrReported marks errors that have already been shown to the user.
var ErrReported = errors.New("error already reported")

// Handlers contains the actions that the commands run after parsing.
type Handlers struct {
	Disassemble func(ctx context.Context, opts options.Program) error
	Verify      func(ctx context.Context, opts options.Program, suitePath string) error
	Batch       func(ctx context.Context, opts options.Program, listPath string) error
}

// Info describes the program for the version output.
type Info struct {
	Version       string
	Architectures []string
}

// UsageError represents an error that should show usage information
type UsageError struct {
	cmd *cobra.Command
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage of the command that failed.
func (e *UsageError) ShowUsage() {
	if e.cmd != nil {
		_ = e.cmd.Usage()
	}
}

// NewRootCommand creates the command tree. The returned program options are
// filled in when the command is executed.
func NewRootCommand(info Info, handlers Handlers) (*cobra.Command, *options.Program) {
	opts := &options.Program{}
	prof := &profiler{}

	root := &cobra.Command{
		Use:   "robustone [flags] <arch[+modifier...]> <hex code> [address]",
		Short: "Capstone compatible RISC-V disassembler",
		Long: "Disassemble RISC-V machine code in the cstool output format.\n\n" +
			"Architectures: " + strings.Join(info.Architectures, ", ") + "\n" +
			"Modifiers: noregname, noalias, unsigned",
		Example: "  robustone riscv64 \"13 05 10 00\"\n" +
			"  robustone -d riscv32+noalias 9302a000 0x1000\n" +
			"  robustone -i firmware.elf",
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			return parsePositional(cmd, args, opts)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := normalizeOptions(cmd, opts); err != nil {
				return err
			}
			prof.start(opts.CPUProfile)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			prof.stop()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer prof.stop()
			return handlers.Disassemble(cmd.Context(), *opts)
		},
	}
	root.SetVersionTemplate(versionText(info))

	readOptionFlags(root, opts)

	root.AddCommand(
		newVerifyCommand(opts, prof, handlers),
		newBatchCommand(opts, prof, handlers),
		newSchemaCommand(),
		newVersionCommand(info),
	)
	return root, opts
}

// Execute runs the command tree. On a terminal fang renders help and
// errors, otherwise cobra is used directly so that piped output stays plain.
func Execute(ctx context.Context, root *cobra.Command) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return root.ExecuteContext(ctx)
	}

	if err := fang.Execute(ctx, root, fang.WithNotifySignal(os.Interrupt)); err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) || errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrReported, err)
	}
	return nil
}

func readOptionFlags(cmd *cobra.Command, opts *options.Program) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.Input, "input", "i", "", "input file, raw binary or ELF executable")
	flags.StringVarP(&opts.Output, "output", "o", "", "output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of files matching a pattern, e.g. *.bin, writing <file>.s")
	flags.BoolVar(&opts.CrossCheck, "crosscheck", false, "cross check riscv64 instruction lengths with golang.org/x/arch")
	flags.BoolVarP(&opts.SkipData, "skip-data", "s", false, "skip undecodable bytes and continue decoding")

	persistent := cmd.PersistentFlags()
	persistent.StringVarP(&opts.Extensions, "extensions", "e", "", "comma separated extension list, e.g. i,m,c,zicsr")
	persistent.StringVar(&opts.ISA, "isa", "", "ISA string selecting mode and extensions, e.g. rv64imac_zicsr")
	persistent.StringVar(&opts.CPUProfile, "cpuprofile", "", "write a CPU profile to the given directory")
	persistent.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	persistent.BoolVarP(&opts.Quiet, "quiet", "q", false, "perform operations quietly")

	persistent.BoolVarP(&opts.Detail, "detailed", "d", false, "show operand, register and group details")
	persistent.BoolVarP(&opts.Real, "real", "r", false, "print real instructions instead of pseudo mnemonics")
	persistent.BoolVarP(&opts.Unsigned, "unsigned-immediate", "u", false, "print immediates as unsigned values")
	persistent.BoolVar(&opts.JSON, "json", false, "print one JSON record per instruction")
	persistent.StringVar(&opts.Color, "color", options.ColorAuto, "colorize the output: auto, always, never")
}

// parsePositional assigns the positional arguments of the root command:
// architecture, hex code and address for command line code, or an optional
// architecture and address when the code comes from files.
func parsePositional(cmd *cobra.Command, args []string, opts *options.Program) error {
	fromFiles := opts.Input != "" || opts.Batch != ""

	switch {
	case len(args) > 3:
		return &UsageError{cmd: cmd, msg: fmt.Sprintf("too many arguments: %s", strings.Join(args[3:], " "))}

	case fromFiles:
		if len(args) > 2 {
			return &UsageError{cmd: cmd, msg: "hex code can not be combined with an input file"}
		}
		if len(args) > 0 {
			opts.Arch = args[0]
		}
		if len(args) > 1 {
			opts.Address = args[1]
		}

	case len(args) < 2:
		return &UsageError{cmd: cmd, msg: "missing architecture or hex code"}

	default:
		opts.Arch = args[0]
		opts.Code = args[1]
		if len(args) > 2 {
			opts.Address = args[2]
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(cmd *cobra.Command, opts *options.Program) error {
	opts.Color = strings.ToLower(opts.Color)
	switch opts.Color {
	case options.ColorAuto, options.ColorAlways, options.ColorNever:
	default:
		return &UsageError{cmd: cmd, msg: fmt.Sprintf("unsupported color mode '%s', valid options: auto, always, never", opts.Color)}
	}

	if opts.Input != "" && opts.Batch != "" {
		return &UsageError{cmd: cmd, msg: "input file and batch pattern can not be combined"}
	}
	if opts.JSON && opts.Detail {
		opts.Detail = false
	}
	return nil
}

func newVerifyCommand(opts *options.Program, prof *profiler, handlers Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <suite directory | config.json>",
		Short: "Compare the output with the expected output of a parity suite",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer prof.stop()
			return handlers.Verify(cmd.Context(), *opts, args[0])
		},
	}
}

func newBatchCommand(opts *options.Program, prof *profiler, handlers Handlers) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file> [arch] [address]",
		Short: "Disassemble one hex buffer per line concurrently",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 3 {
				return &UsageError{cmd: cmd, msg: "batch expects a file, an optional architecture and address"}
			}
			if len(args) > 1 {
				opts.Arch = args[1]
			}
			if len(args) > 2 {
				opts.Address = args[2]
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer prof.stop()
			return handlers.Batch(cmd.Context(), *opts, args[0])
		},
	}
}

func newSchemaCommand() *cobra.Command {
	var suite bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the output records",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var target any = &arch.Line{}
			if suite {
				target = &config.Suite{}
			}
			return writeSchema(cmd.OutOrStdout(), target)
		},
	}
	cmd.Flags().BoolVar(&suite, "suite", false, "print the schema of a parity suite config.json instead")
	return cmd
}

func newVersionCommand(info Info) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and supported architectures",
		Args:  exactArgs(0),
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = io.WriteString(cmd.OutOrStdout(), versionText(info))
		},
	}
}

// profiler writes a CPU profile while a command runs. stop is called by the
// run functions and by the post run hook, only the first call has an effect.
type profiler struct {
	stopFn func()
}

func (p *profiler) start(dir string) {
	if dir == "" || p.stopFn != nil {
		return
	}
	p.stopFn = profile.Start(profile.NoShutdownHook, profile.ProfilePath(dir),
		profile.CPUProfile, profile.Quiet).Stop
}

func (p *profiler) stop() {
	if p.stopFn == nil {
		return
	}
	p.stopFn()
	p.stopFn = nil
}

func writeSchema(w io.Writer, target any) error {
	reflector := new(jsonschema.Reflector)
	data, err := json.MarshalIndent(reflector.Reflect(target), "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling schema: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("writing schema: %w", err)
	}
	return nil
}

func versionText(info Info) string {
	return fmt.Sprintf("robustone %s\nSupported architectures: %s\n",
		info.Version, strings.Join(info.Architectures, ", "))
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &UsageError{cmd: cmd, msg: fmt.Sprintf("%s expects %d argument(s), got %d", cmd.Name(), n, len(args))}
		}
		return nil
	}
}

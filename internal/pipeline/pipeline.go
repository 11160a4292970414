// Package pipeline orchestrates the disassembly workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/hust-open-atom-club/Robustone/internal/arch"
	"github.com/hust-open-atom-club/Robustone/internal/arch/riscv"
	"github.com/hust-open-atom-club/Robustone/internal/colorize"
	"github.com/hust-open-atom-club/Robustone/internal/crosscheck"
	"github.com/hust-open-atom-club/Robustone/internal/detector"
	"github.com/hust-open-atom-club/Robustone/internal/loader"
	"github.com/hust-open-atom-club/Robustone/internal/options"
	"github.com/hust-open-atom-club/Robustone/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// Pipeline orchestrates the complete disassembly workflow.
// It holds no per run state and can be used from multiple goroutines.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	registry *arch.Registry
}

// Result is the outcome of disassembling one segment.
type Result struct {
	Segment loader.Segment
	Listing *arch.Listing
	Err     error
}

// New creates a new disassembly pipeline with all supported architectures.
func New(logger *log.Logger) (*Pipeline, error) {
	registry, err := arch.NewRegistry(riscv.New())
	if err != nil {
		return nil, fmt.Errorf("creating architecture registry: %w", err)
	}

	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		registry: registry,
	}, nil
}

// Architectures returns all accepted architecture and mode names.
func (p *Pipeline) Architectures() []string {
	return p.registry.Modes()
}

// Execute runs the complete disassembly pipeline and writes the listing to out.
// Lines decoded before a decode failure are written before the error is returned.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, out io.Writer) error {
	disasmOpts, err := p.detector.Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting architecture: %w", err)
	}

	segments, err := p.loader.Load(opts)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	w := p.newWriter(opts, out)
	for _, segment := range segments {
		if len(segments) > 1 {
			if err := w.WriteComment(segment.Name); err != nil {
				return err
			}
		}

		listing, err := p.Disassemble(ctx, disasmOpts, segment)
		if listing != nil {
			if werr := w.WriteLines(listing.Lines); werr != nil {
				return werr
			}
			if opts.CrossCheck {
				p.crossCheck(listing)
			}
		}
		if err != nil {
			return fmt.Errorf("disassembling %s: %w", segment.Name, err)
		}
	}
	return nil
}

// ExecuteBatch disassembles all segments concurrently and writes the
// listings in input order, separated by a comment naming the segment.
// Decode failures are logged and do not stop the remaining segments.
func (p *Pipeline) ExecuteBatch(ctx context.Context, opts options.Program, segments []loader.Segment, out io.Writer) error {
	disasmOpts, err := p.detector.Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting architecture: %w", err)
	}

	results, err := p.DisassembleBatch(ctx, disasmOpts, segments, runtime.NumCPU())
	if err != nil {
		return err
	}

	w := p.newWriter(opts, out)
	var failed int
	for _, result := range results {
		if err := w.WriteComment(result.Segment.Name); err != nil {
			return err
		}
		if result.Listing != nil {
			if err := w.WriteLines(result.Listing.Lines); err != nil {
				return err
			}
		}
		if result.Err != nil {
			failed++
			p.logger.Warn("Disassembling failed",
				log.String("segment", result.Segment.Name),
				log.Err(result.Err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d buffers failed to disassemble", failed, len(results))
	}
	return nil
}

// DisassembleBatch disassembles the segments using up to workers goroutines.
// The results have the order of the segments. Once the context is done no
// further segments are started and the context error is returned.
func (p *Pipeline) DisassembleBatch(ctx context.Context, disasmOpts options.Disassembler,
	segments []loader.Segment, workers int) ([]Result, error) {

	results := make([]Result, len(segments))
	g := new(errgroup.Group)
	g.SetLimit(max(workers, 1))

	for i, segment := range segments {
		results[i].Segment = segment
		if ctx.Err() != nil {
			results[i].Err = ctx.Err()
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Listing, results[i].Err = p.Disassemble(ctx, disasmOpts, segment)
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("batch disassembly: %w", err)
	}
	return results, nil
}

// Disassemble decodes a single segment. Trailing bytes that do not form a
// complete instruction are reported as a warning. In skip data mode
// undecodable bytes are emitted as data lines and decoding continues after them.
func (p *Pipeline) Disassemble(ctx context.Context, disasmOpts options.Disassembler,
	segment loader.Segment) (*arch.Listing, error) {

	handler, mode, err := p.registry.Resolve(disasmOpts.Arch)
	if err != nil {
		return nil, fmt.Errorf("resolving architecture: %w", err)
	}

	result := &arch.Listing{Mode: mode}
	data := segment.Data
	var offset int

	for {
		req := disasmOpts.Request(mode, segment.Address+uint64(offset))
		listing, err := handler.Disassemble(ctx, data[offset:], req)
		if listing != nil {
			appendListing(result, listing, offset)
		}

		if err == nil {
			break
		}
		var sweepErr *arch.SweepError
		if !disasmOpts.SkipData || !errors.As(err, &sweepErr) {
			return result, err
		}

		position := offset + int(sweepErr.Offset)
		if position >= len(data) {
			break
		}
		skipped := skipSize(sweepErr, len(data)-position)
		result.Lines = append(result.Lines, dataLine(data[position:position+skipped],
			uint64(position), segment.Address+uint64(position)))
		result.Consumed += skipped
		result.Trailing = 0

		offset = position + skipped
		if offset >= len(data) {
			break
		}
	}

	if result.Trailing > 0 {
		p.logger.Warn("Trailing bytes do not form a complete instruction",
			log.String("segment", segment.Name),
			log.Int("bytes", result.Trailing))
	}
	return result, nil
}

func (p *Pipeline) newWriter(opts options.Program, out io.Writer) *writer.Writer {
	return writer.New(out, writer.Options{
		Detail: opts.Detail,
		JSON:   opts.JSON,
		Color:  colorize.Enabled(opts.Color, out),
	})
}

// crossCheck logs all lines that the x/arch decoder disagrees with.
// Only riscv64 listings can be checked.
func (p *Pipeline) crossCheck(listing *arch.Listing) {
	if listing.Mode != riscv.ModeRV64 {
		p.logger.Debug("Skipping cross check", log.String("mode", listing.Mode))
		return
	}

	for _, mismatch := range crosscheck.Check(listing.Lines) {
		p.logger.Warn("Cross check mismatch",
			log.Int("offset", int(mismatch.Offset)),
			log.String("bytes", mismatch.Raw.String()),
			log.String("text", mismatch.Text),
			log.String("reference", mismatch.Reference),
			log.String("reason", mismatch.Reason))
	}
}

func appendListing(result, listing *arch.Listing, offset int) {
	for _, line := range listing.Lines {
		line.Offset += uint64(offset)
		result.Lines = append(result.Lines, line)
	}
	result.Mode = listing.Mode
	result.Consumed += listing.Consumed
	result.Trailing = listing.Trailing
}

// skipSize returns the number of bytes to skip for a failed instruction.
// A single byte is skipped if the encoding width is unknown or does not fit
// into the remaining buffer.
func skipSize(sweepErr *arch.SweepError, remaining int) int {
	if sweepErr.Size <= 0 || sweepErr.Size > remaining {
		return 1
	}
	return sweepErr.Size
}

func dataLine(raw []byte, offset, address uint64) arch.Line {
	values := make([]string, len(raw))
	for i, b := range raw {
		values[i] = fmt.Sprintf("0x%02x", b)
	}
	operands := strings.Join(values, ", ")

	return arch.Line{
		Offset:   offset,
		Address:  address,
		Raw:      arch.HexBytes(raw),
		Mnemonic: ".byte",
		Operands: operands,
		Text:     ".byte\t" + operands,
	}
}

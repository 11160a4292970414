// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hust-open-atom-club/Robustone/internal/config"
	"github.com/hust-open-atom-club/Robustone/internal/loader"
	"github.com/hust-open-atom-club/Robustone/internal/options"
	"github.com/hust-open-atom-club/Robustone/internal/pipeline"
	"github.com/hust-open-atom-club/Robustone/internal/verification"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// ProcessFile disassembles the input selected by the options and writes the
// listing to the output file or stdout.
func ProcessFile(ctx context.Context, p *pipeline.Pipeline, opts options.Program) error {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	return p.Execute(ctx, opts, writer)
}

// ProcessFiles disassembles all files concurrently. Every listing is written
// to a file next to its input. Files not started when the context is done
// are skipped.
func ProcessFiles(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline,
	opts options.Program, files []string) error {

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	errs := make([]error, len(files))
	for i, file := range files {
		if ctx.Err() != nil {
			break
		}

		fileOpts := opts
		fileOpts.Input = file
		fileOpts.Output = GenerateOutputFilename(file)

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return nil //nolint:nilerr // reported once after all workers finished
			}
			logger.Info("Processing file", log.String("file", file), log.String("output", fileOpts.Output))
			if err := ProcessFile(ctx, p, fileOpts); err != nil {
				errs[i] = fmt.Errorf("processing %s: %w", file, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("processing files: %w", err)
	}
	return errors.Join(errs...)
}

// ProcessBatchList disassembles a file that contains one hex buffer per line.
func ProcessBatchList(ctx context.Context, p *pipeline.Pipeline, opts options.Program, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening batch file: %w", err)
	}
	defer func() { _ = file.Close() }()

	address, err := loader.ParseAddress(opts.Address)
	if err != nil {
		return err
	}
	segments, err := loader.ParseBatch(file, address)
	if err != nil {
		return fmt.Errorf("parsing batch file %s: %w", path, err)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	return p.ExecuteBatch(ctx, opts, segments, writer)
}

// VerifySuite checks the parity suite found at path and fails if any case
// does not match.
func VerifySuite(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline, path string) error {
	suite, err := config.LoadSuite(path)
	if err != nil {
		return fmt.Errorf("loading suite: %w", err)
	}

	report, err := verification.VerifySuite(ctx, logger, p, suite)
	if err != nil {
		return fmt.Errorf("verifying suite %s: %w", suite.Name, err)
	}
	if len(report.Failures) > 0 {
		return fmt.Errorf("%d of %d cases of suite %s failed", len(report.Failures), report.Total, suite.Name)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	if ext == ".s" {
		return inputFile + ".s"
	}
	return inputFile[:len(inputFile)-len(ext)] + ".s"
}

// PrintBanner logs the application version information at debug level.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Debug("robustone", log.String("version", buildinfo.Version(version, commit, date)))
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

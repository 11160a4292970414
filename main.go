// Package main implements the main entry point for a Capstone compatible RISC-V disassembler
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hust-open-atom-club/Robustone/internal/cli"
	"github.com/hust-open-atom-club/Robustone/internal/config"
	"github.com/hust-open-atom-club/Robustone/internal/fileprocessor"
	"github.com/hust-open-atom-club/Robustone/internal/options"
	"github.com/hust-open-atom-club/Robustone/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	bootstrap := config.CreateLogger(false, false)
	p, err := pipeline.New(bootstrap)
	if err != nil {
		bootstrap.Fatal("Initializing disassembler failed", log.Err(err))
	}

	info := cli.Info{
		Version:       buildinfo.Version(version, commit, date),
		Architectures: p.Architectures(),
	}
	root, _ := cli.NewRootCommand(info, cli.Handlers{
		Disassemble: disassemble,
		Verify:      verify,
		Batch:       batch,
	})

	if err := cli.Execute(ctx, root); err != nil {
		os.Exit(handleError(err))
	}
}

func disassemble(ctx context.Context, opts options.Program) error {
	logger, p, err := setup(opts)
	if err != nil {
		return err
	}

	if opts.Batch == "" {
		return fileprocessor.ProcessFile(ctx, p, opts)
	}

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match batch pattern %s", opts.Batch)
	}
	return fileprocessor.ProcessFiles(ctx, logger, p, opts, files)
}

func verify(ctx context.Context, opts options.Program, suitePath string) error {
	logger, p, err := setup(opts)
	if err != nil {
		return err
	}
	return fileprocessor.VerifySuite(ctx, logger, p, suitePath)
}

func batch(ctx context.Context, opts options.Program, listPath string) error {
	_, p, err := setup(opts)
	if err != nil {
		return err
	}
	return fileprocessor.ProcessBatchList(ctx, p, opts, listPath)
}

func setup(opts options.Program) (*log.Logger, *pipeline.Pipeline, error) {
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	p, err := pipeline.New(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing disassembler: %w", err)
	}
	return logger, p, nil
}

// handleError reports an error that was returned by the command tree and
// returns the process exit code.
func handleError(err error) int {
	logger := config.CreateLogger(false, false)

	var usageErr *cli.UsageError
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Operation cancelled")
		return 1
	case errors.As(err, &usageErr):
		logger.Error(usageErr.Error())
		usageErr.ShowUsage()
	case errors.Is(err, cli.ErrReported):
	default:
		logger.Error("Disassembling failed", log.Err(err))
	}
	return 1
}

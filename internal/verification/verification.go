// Package verification checks the disassembly output against a parity suite
// of expected reference tool output.
package verification

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hust-open-atom-club/Robustone/internal/config"
	"github.com/hust-open-atom-club/Robustone/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const maxLoggedFailures = 10

// Executor runs the disassembly of a single program invocation.
type Executor interface {
	Execute(ctx context.Context, opts options.Program, out io.Writer) error
}

// Case is a single entry of a test case file.
type Case struct {
	Line     int
	Hex      string
	Expected string // expected reference output, empty if unknown
	Note     string
}

// Failure describes a case whose output does not match.
type Failure struct {
	Case Case
	Got  string
	Err  error
}

// Report summarizes a suite run.
type Report struct {
	Suite     string
	Total     int
	Passed    int
	Unchecked int // cases without expected output that decoded successfully
	Failures  []Failure
}

// ParseCases reads a test case file. Every non comment line has the form
// "<hex> [# <expected>] [| <note>]", a '|' may be used instead of '#' as
// the first separator.
func ParseCases(r io.Reader) ([]Case, error) {
	var cases []Case
	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c := Case{Line: lineNumber, Hex: line}
		if i := strings.IndexAny(line, "#|"); i >= 0 {
			c.Hex = strings.TrimSpace(line[:i])
			rest := line[i+1:]
			expected, note, _ := strings.Cut(rest, "|")
			c.Expected = strings.TrimSpace(expected)
			c.Note = strings.TrimSpace(note)
		}
		if c.Hex == "" {
			return nil, fmt.Errorf("line %d: missing hex input", lineNumber)
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading test cases: %w", err)
	}
	return cases, nil
}

// VerifySuite disassembles every case of the suite and compares the output
// with the expected reference output. Whitespace differences are ignored.
func VerifySuite(ctx context.Context, logger *log.Logger, executor Executor, suite config.Suite) (Report, error) {
	file, err := os.Open(suite.CasesPath())
	if err != nil {
		return Report{}, fmt.Errorf("opening test cases: %w", err)
	}
	defer func() { _ = file.Close() }()

	cases, err := ParseCases(file)
	if err != nil {
		return Report{}, err
	}

	report := Report{Suite: suite.Name, Total: len(cases)}
	base := programOptions(suite)

	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("verifying suite: %w", err)
		}

		opts := base
		opts.Code = c.Hex
		var buf bytes.Buffer
		err := executor.Execute(ctx, opts, &buf)
		got := strings.TrimSpace(buf.String())

		switch {
		case err != nil:
			report.Failures = append(report.Failures, Failure{Case: c, Got: got, Err: err})
		case c.Expected == "":
			report.Unchecked++
		case normalize(got) == normalize(c.Expected):
			report.Passed++
		default:
			report.Failures = append(report.Failures, Failure{Case: c, Got: got})
		}
	}

	logReport(logger, report)
	return report, nil
}

// programOptions converts the suite architecture and reference tool flags
// into program options.
func programOptions(suite config.Suite) options.Program {
	opts := options.Program{
		Positional:  options.Positional{Arch: suite.RobustoneArch},
		OutputFlags: options.OutputFlags{Color: options.ColorNever},
	}
	for _, flag := range suite.CstoolFlags {
		switch flag {
		case "-r":
			opts.Real = true
		case "-u":
			opts.Unsigned = true
		case "-s":
			opts.SkipData = true
		}
	}
	return opts
}

func logReport(logger *log.Logger, report Report) {
	for i, failure := range report.Failures {
		if i == maxLoggedFailures {
			logger.Warn("Further mismatches omitted", log.Int("count", len(report.Failures)-i))
			break
		}
		if failure.Err != nil {
			logger.Warn("Decoding failed",
				log.Int("line", failure.Case.Line),
				log.String("hex", failure.Case.Hex),
				log.Err(failure.Err))
			continue
		}
		logger.Warn("Mismatch",
			log.Int("line", failure.Case.Line),
			log.String("hex", failure.Case.Hex),
			log.String("expected", failure.Case.Expected),
			log.String("got", failure.Got))
	}

	logger.Info("Suite verified",
		log.String("suite", report.Suite),
		log.Int("total", report.Total),
		log.Int("passed", report.Passed),
		log.Int("unchecked", report.Unchecked),
		log.Int("failed", len(report.Failures)))
}

// normalize collapses all whitespace runs into single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package verification

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hust-open-atom-club/Robustone/internal/config"
	"github.com/hust-open-atom-club/Robustone/internal/pipeline"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestParseCases(t *testing.T) {
	input := `# riscv32 test cases
# Format: <hex_bytes> [# <expected_cstool_output>] [| <note>]

13051000 #  0  13 05 10 00  li	a0, 1 | load immediate
0245
8280 | 0  82 80  c.jr	ra
`
	cases, err := ParseCases(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Len(t, cases, 3)

	assert.Equal(t, Case{Line: 4, Hex: "13051000", Expected: "0  13 05 10 00  li\ta0, 1", Note: "load immediate"}, cases[0])
	assert.Equal(t, Case{Line: 5, Hex: "0245"}, cases[1])
	assert.Equal(t, "0  82 80  c.jr\tra", cases[2].Expected)
	assert.Equal(t, "", cases[2].Note)

	_, err = ParseCases(strings.NewReader("| li a0, 1\n"))
	assert.ErrorContains(t, err, "missing hex input")
}

func TestVerifySuite(t *testing.T) {
	dir := t.TempDir()
	cases := "13051000 #  0  13 05 10 00  li\ta0, 1\n" +
		"67800000 #  0  67 80 00 00  jalr\tzero, ra, 0 | real mnemonic\n" +
		"8280\n" +
		"b3027302 #  0  b3 02 73 02  mul\tt0, t1, t2\n" +
		"7b000000 #  0  7b 00 00 00  unknown\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "test_cases.txt"), []byte(cases), 0o600))

	suite := config.Suite{
		Name:          "riscv32",
		CasesFile:     "test_cases.txt",
		RobustoneArch: "riscv32",
		CstoolFlags:   []string{"-r"},
		Dir:           dir,
	}

	logger := log.NewTestLogger(t)
	p, err := pipeline.New(logger)
	assert.NoError(t, err)

	report, err := VerifySuite(context.Background(), logger, p, suite)
	assert.NoError(t, err)
	assert.Equal(t, "riscv32", report.Suite)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 1, report.Unchecked)
	assert.Len(t, report.Failures, 2)

	assert.Equal(t, 1, report.Failures[0].Case.Line)
	assert.Equal(t, "0  13 05 10 00  addi\ta0, zero, 1", report.Failures[0].Got)
	assert.Nil(t, report.Failures[0].Err)
	assert.NotNil(t, report.Failures[1].Err)
}

func TestVerifySuite_MissingCases(t *testing.T) {
	suite := config.Suite{RobustoneArch: "riscv64", CasesFile: "missing.txt", Dir: t.TempDir()}
	p, err := pipeline.New(log.NewTestLogger(t))
	assert.NoError(t, err)

	_, err = VerifySuite(context.Background(), log.NewTestLogger(t), p, suite)
	assert.ErrorContains(t, err, "opening test cases")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "0 13 00 00 00 nop", normalize(" 0  13 00 00 00  nop\n"))
	assert.Equal(t, normalize("li\ta0, 1"), normalize("li a0,  1"))
}

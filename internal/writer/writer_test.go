package writer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hust-open-atom-club/Robustone/internal/arch"
	"github.com/retroenv/retrogolib/assert"
)

func testLines() []arch.Line {
	return []arch.Line{
		{
			Offset:   0,
			Address:  0x1000,
			Raw:      arch.HexBytes{0x13, 0x05, 0x10, 0x00},
			Mnemonic: "li",
			Operands: "a0, 1",
			Text:     "li\ta0, 1",
			Detail: &arch.Detail{
				Operands: []arch.OperandDetail{
					{Type: "REG", Value: "a0", Access: "WRITE"},
					{Type: "IMM", Value: "1"},
				},
				RegsRead:    []string{"zero"},
				RegsWritten: []string{"a0"},
				Extension:   "base-integer",
			},
		},
		{
			Offset:   4,
			Address:  0x1004,
			Raw:      arch.HexBytes{0x82, 0x80},
			Mnemonic: "ret",
			Text:     "ret",
		},
	}
}

func TestWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{})
	assert.NoError(t, w.WriteLines(testLines()))

	expected := " 0  13 05 10 00  li\ta0, 1\n" +
		" 4  82 80  ret\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriter_Detail(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{Detail: true})
	assert.NoError(t, w.WriteLine(testLines()[0]))

	expected := " 0  13 05 10 00  li\ta0, 1\n" +
		"\top_count: 2\n" +
		"\t\toperands[0].type: REG = a0\n" +
		"\t\toperands[0].access: WRITE\n" +
		"\t\toperands[1].type: IMM = 1\n" +
		"\tRegisters read: zero\n" +
		"\tRegisters modified: a0\n" +
		"\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{JSON: true})
	assert.NoError(t, w.WriteLines(testLines()))
	assert.NoError(t, w.WriteComment("ignored"))

	records := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, records, 2)

	var line arch.Line
	assert.NoError(t, json.Unmarshal([]byte(records[1]), &line))
	assert.Equal(t, uint64(0x1004), line.Address)
	assert.Equal(t, arch.HexBytes{0x82, 0x80}, line.Raw)
	assert.Equal(t, "ret", line.Text)
	assert.Contains(t, records[0], `"raw_bytes":"13051000"`)
}

func TestWriter_Color(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{Color: true})
	assert.NoError(t, w.WriteLine(testLines()[1]))
	assert.Contains(t, buf.String(), " 4  82 80  ")
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestWriter_Comment(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, New(&buf, Options{}).WriteComment(".text"))
	assert.Equal(t, "# .text\n", buf.String())
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "12  01 45  c.lw\ta0, 0(a0)", FormatLine(12, arch.HexBytes{0x01, 0x45}, "c.lw\ta0, 0(a0)"))
	assert.Equal(t, "100  13 00 00 00  nop", FormatLine(100, arch.HexBytes{0x13, 0, 0, 0}, "nop"))
}

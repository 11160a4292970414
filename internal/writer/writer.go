// Package writer implements the listing output formats.
package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hust-open-atom-club/Robustone/internal/arch"
	"github.com/hust-open-atom-club/Robustone/internal/colorize"
)

// Writer writes decoded lines in the cstool text layout or as JSON records.
type Writer struct {
	options Options
	writer  io.Writer
	encoder *json.Encoder
}

// Options of the writer.
type Options struct {
	Detail bool // print operand, register and group details after every line
	JSON   bool // print one JSON record per line
	Color  bool // highlight the instruction text
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	w := &Writer{
		options: options,
		writer:  writer,
	}
	if options.JSON {
		w.encoder = json.NewEncoder(writer)
	}
	return w
}

// WriteLines writes all lines in order.
func (w *Writer) WriteLines(lines []arch.Line) error {
	for _, line := range lines {
		if err := w.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

// WriteLine writes a single line, followed by its details if enabled.
func (w *Writer) WriteLine(line arch.Line) error {
	if w.encoder != nil {
		if err := w.encoder.Encode(line); err != nil {
			return fmt.Errorf("writing JSON record: %w", err)
		}
		return nil
	}

	text := line.Text
	if w.options.Color {
		colored, err := colorize.Assembly(text)
		if err == nil {
			text = colored
		}
	}

	if _, err := fmt.Fprintln(w.writer, FormatLine(line.Offset, line.Raw, text)); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}

	if w.options.Detail && line.Detail != nil {
		if err := w.writeDetail(line.Detail); err != nil {
			return err
		}
	}
	return nil
}

// WriteComment writes a comment line, it is omitted for JSON output.
func (w *Writer) WriteComment(comment string) error {
	if w.encoder != nil {
		return nil
	}
	if _, err := fmt.Fprintf(w.writer, "# %s\n", comment); err != nil {
		return fmt.Errorf("writing comment: %w", err)
	}
	return nil
}

// FormatLine returns a line in the cstool layout: the right aligned offset,
// the instruction bytes and the instruction text.
func FormatLine(offset uint64, raw arch.HexBytes, text string) string {
	return fmt.Sprintf("%2d  %s  %s", offset, raw, text)
}

func (w *Writer) writeDetail(detail *arch.Detail) error {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "\top_count: %d\n", len(detail.Operands))
	for i, op := range detail.Operands {
		fmt.Fprintf(buf, "\t\toperands[%d].type: %s = %s\n", i, op.Type, op.Value)
		if op.Access != "" {
			fmt.Fprintf(buf, "\t\toperands[%d].access: %s\n", i, op.Access)
		}
	}

	if len(detail.RegsRead) > 0 {
		fmt.Fprintf(buf, "\tRegisters read: %s\n", strings.Join(detail.RegsRead, " "))
	}
	if len(detail.RegsWritten) > 0 {
		fmt.Fprintf(buf, "\tRegisters modified: %s\n", strings.Join(detail.RegsWritten, " "))
	}
	if len(detail.Groups) > 0 {
		fmt.Fprintf(buf, "\tGroups: %s\n", strings.Join(detail.Groups, " "))
	}

	if _, err := io.WriteString(w.writer, buf.String()+"\n"); err != nil {
		return fmt.Errorf("writing detail: %w", err)
	}
	return nil
}

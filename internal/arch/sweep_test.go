package arch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// byteDecoder decodes one byte instructions, 0xff is invalid and bytes
// below 0x10 need a second byte.
func byteDecoder(data []byte) (Line, int, error) {
	switch {
	case data[0] == 0xff:
		return Line{}, 1, ErrUnknownEncoding
	case data[0] < 0x10:
		if len(data) < 2 {
			return Line{}, 2, ErrTruncated
		}
		return Line{Mnemonic: "pair", Text: "pair"}, 2, nil
	default:
		text := fmt.Sprintf("op%02x", data[0])
		return Line{Mnemonic: text, Text: text}, 1, nil
	}
}

func TestSweep(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		lines    []string
		consumed int
		trailing int
		errKind  error
	}{
		{"empty", nil, nil, 0, 0, nil},
		{"single", []byte{0x20}, []string{"op20"}, 1, 0, nil},
		{"mixed widths", []byte{0x20, 0x01, 0x02, 0x30}, []string{"op20", "pair", "op30"}, 4, 0, nil},
		{"trailing partial", []byte{0x20, 0x01}, []string{"op20"}, 1, 1, nil},
		{"failure stops", []byte{0x20, 0xff, 0x30}, []string{"op20"}, 1, 0, ErrUnknownEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := Sweep(tt.data, 0x100, byteDecoder)
			if tt.errKind != nil {
				assert.True(t, errors.Is(err, tt.errKind))
			} else {
				assert.NoError(t, err)
			}

			var texts []string
			for _, line := range listing.Lines {
				texts = append(texts, line.Text)
			}
			assert.Equal(t, tt.lines, texts)
			assert.Equal(t, tt.consumed, listing.Consumed)
			assert.Equal(t, tt.trailing, listing.Trailing)
		})
	}
}

func TestSweep_Positions(t *testing.T) {
	listing, err := Sweep([]byte{0x20, 0x01, 0x02}, 0x8000, byteDecoder)
	assert.NoError(t, err)
	assert.Len(t, listing.Lines, 2)

	second := listing.Lines[1]
	assert.Equal(t, uint64(1), second.Offset)
	assert.Equal(t, uint64(0x8001), second.Address)
	assert.Equal(t, "01 02", second.Raw.String())
}

func TestSweep_Error(t *testing.T) {
	_, err := Sweep([]byte{0x20, 0xff}, 0, byteDecoder)

	var sweepErr *SweepError
	assert.True(t, errors.As(err, &sweepErr))
	assert.Equal(t, uint64(1), sweepErr.Offset)
	assert.Equal(t, 1, sweepErr.Size)
	assert.Equal(t, HexBytes{0xff}, sweepErr.Raw)
	assert.Equal(t, "offset 1 [ff]: unknown encoding", err.Error())
}

func TestSweep_ZeroLength(t *testing.T) {
	decode := func([]byte) (Line, int, error) {
		return Line{}, 0, nil
	}

	_, err := Sweep([]byte{0x01, 0x02, 0x03, 0x04, 0x05}, 0, decode)
	assert.True(t, errors.Is(err, errZeroLength))

	var sweepErr *SweepError
	assert.True(t, errors.As(err, &sweepErr))
	assert.Equal(t, "01 02 03 04", sweepErr.Raw.String())
	assert.Equal(t, 0, sweepErr.Size)
}

func TestSweep_ErrorSizePastEnd(t *testing.T) {
	decode := func([]byte) (Line, int, error) {
		return Line{}, 8, ErrUnknownEncoding
	}

	_, err := Sweep([]byte{0x01, 0x02, 0x03}, 0, decode)

	var sweepErr *SweepError
	assert.True(t, errors.As(err, &sweepErr))
	assert.Equal(t, 0, sweepErr.Size)
	assert.Equal(t, "01 02 03", sweepErr.Raw.String())
}

func TestHexBytes_JSON(t *testing.T) {
	data, err := HexBytes{0x13, 0xab}.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"13ab"`, string(data))

	var decoded HexBytes
	assert.NoError(t, decoded.UnmarshalJSON(data))
	assert.Equal(t, HexBytes{0x13, 0xab}, decoded)

	assert.Error(t, decoded.UnmarshalJSON([]byte(`"zz"`)))
}

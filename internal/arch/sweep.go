package arch

import (
	"errors"
	"fmt"
)

// DecodeFunc decodes the first instruction of data. It returns the line
// without its position fields set and the number of consumed bytes. On error
// the returned size is the width of the offending encoding if it is known.
type DecodeFunc func(data []byte) (Line, int, error)

// errZeroLength is returned when a decoder claims success without consuming bytes,
// which would make the sweep loop forever.
var errZeroLength = errors.New("decoder consumed no bytes")

// Sweep decodes data linearly from offset 0 until the buffer is exhausted.
// A truncated trailing instruction ends the sweep without an error and is
// reported in Listing.Trailing. Any other decode failure ends the sweep and
// is returned as *SweepError together with the lines decoded before it.
func Sweep(data []byte, address uint64, decode DecodeFunc) (*Listing, error) {
	listing := &Listing{}

	offset := 0
	for offset < len(data) {
		line, size, err := decode(data[offset:])
		if err != nil {
			if errors.Is(err, ErrTruncated) {
				listing.Trailing = len(data) - offset
				break
			}
			return listing, newSweepError(data, offset, size, err)
		}

		if size <= 0 || offset+size > len(data) {
			return listing, newSweepError(data, offset, size, fmt.Errorf("%w: size %d", errZeroLength, size))
		}

		line.Offset = uint64(offset)
		line.Address = address + uint64(offset)
		line.Raw = append(HexBytes(nil), data[offset:offset+size]...)
		listing.Lines = append(listing.Lines, line)

		offset += size
		listing.Consumed = offset
	}

	return listing, nil
}

func newSweepError(data []byte, offset, size int, err error) *SweepError {
	end := offset + size
	if size <= 0 || end > len(data) {
		size = 0
		end = min(offset+4, len(data))
	}
	return &SweepError{
		Offset: uint64(offset),
		Size:   size,
		Raw:    append(HexBytes(nil), data[offset:end]...),
		Err:    err,
	}
}

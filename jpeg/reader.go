package jpeg

import (
	"encoding/binary"
	"io"
)

// Reader reads marker-level structure from a JPEG stream.
//
// Unlike the marker walk in ScanBitDepth, which insists on back-to-back
// markers, Reader can search forward for the next marker, discarding
// entropy-coded data, fill bytes and stuffed zero codes on the way. The
// codec-level fallback scanner is built on it.
type Reader struct {
	r   io.Reader
	buf [2]byte
}

// NewReader creates a new JPEG reader
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadByte reads a single byte
func (r *Reader) ReadByte() (byte, error) {
	_, err := io.ReadFull(r.r, r.buf[:1])
	if err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// ReadUint16 reads a 16-bit big-endian value
func (r *Reader) ReadUint16() (uint16, error) {
	_, err := io.ReadFull(r.r, r.buf[:2])
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadMarker reads the marker at the current position. The position
// must be marker-aligned: the first byte has to be 0xFF, followed by
// any number of 0xFF fill bytes and a non-zero marker code.
func (r *Reader) ReadMarker() (uint16, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return 0, ErrInvalidMarker
	}

	// Skip 0xFF fill bytes
	for b == 0xFF {
		b, err = r.ReadByte()
		if err != nil {
			return 0, err
		}
	}

	// 0x00 is a stuffed byte (escaped 0xFF in entropy data), not a marker
	if b == 0x00 {
		return 0, ErrInvalidMarker
	}

	return uint16(0xFF00) | uint16(b), nil
}

// NextMarker searches forward for the next marker and returns it.
// Bytes before the next 0xFF are discarded, as are fill bytes and
// stuffed zero codes, so the search crosses entropy-coded scan data.
func (r *Reader) NextMarker() (uint16, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b != 0xFF {
			continue
		}

		code, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		for code == 0xFF {
			code, err = r.ReadByte()
			if err != nil {
				return 0, err
			}
		}
		if code == 0x00 {
			continue
		}
		return uint16(0xFF00) | uint16(code), nil
	}
}

// ReadSegment reads a length-prefixed segment and returns its body
// (without the length field)
func (r *Reader) ReadSegment() ([]byte, error) {
	length, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	// Length includes its own 2 bytes
	if length < 2 {
		return nil, ErrInvalidLength
	}

	data := make([]byte, length-2)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SkipSegment reads a segment length and discards the segment body
func (r *Reader) SkipSegment() error {
	length, err := r.ReadUint16()
	if err != nil {
		return err
	}
	if length < 2 {
		return ErrInvalidLength
	}
	return r.Skip(int(length) - 2)
}

// Skip discards n bytes
func (r *Reader) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, r.r, int64(n))
	return err
}

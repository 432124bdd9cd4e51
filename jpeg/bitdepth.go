// Package jpeg determines the sample precision (bit depth) of
// JPEG-compressed pixel data by scanning its marker stream, without
// decoding any image data.
//
// ScanBitDepth is the strict marker walk over a raw byte stream, after
// DCMTK's djcodecd segment-skipping scan. ScanHeaderForBitDepth wraps
// it for DICOM pixel data and absorbs every walk failure into a single
// attempt through a more tolerant codec-level scanner.
package jpeg

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/karpagarajan/mdcm/codec"
)

// readUint16 reads a big-endian 16-bit value at off and returns the
// offset just past it.
func readUint16(data []byte, off int) (uint16, int, error) {
	if off+2 > len(data) {
		return 0, off, ErrUnexpectedEOF
	}
	return binary.BigEndian.Uint16(data[off:]), off + 2, nil
}

// readByte reads the byte at off and returns the offset just past it.
func readByte(data []byte, off int) (byte, int, error) {
	if off >= len(data) {
		return 0, off, ErrUnexpectedEOF
	}
	return data[off], off + 1, nil
}

// ScanBitDepth walks the marker stream of JPEG-compressed data and
// returns the sample precision declared by the first start-of-frame
// segment, in bits per sample.
//
// Non-SOF segments are skipped by their declared length and never
// parsed. The walk fails with ErrSyntax on an unrecognized marker
// sequence, with ErrSOFNotFound when the data runs out before a frame
// header, and with ErrUnexpectedEOF when a read crosses the end of the
// buffer. The precision byte is returned as stored, without range
// validation.
func ScanBitDepth(data []byte) (int, error) {
	off := 0
	for off < len(data) {
		marker, next, err := readUint16(data, off)
		if err != nil {
			return 0, err
		}
		off = next

		switch classify(marker) {
		case classSOF:
			// Two bytes of frame-header length, then the precision
			// byte.
			precision, _, err := readByte(data, off+2)
			if err != nil {
				return 0, err
			}
			return int(precision), nil

		case classSegment:
			length, next, err := readUint16(data, off)
			if err != nil {
				return 0, err
			}
			if length < 2 {
				return 0, fmt.Errorf("marker 0x%04x declares segment length %d: %w", marker, length, ErrInvalidLength)
			}
			// A skip past the end of the buffer is not an error: the
			// walk ends there and reports that no SOF was seen.
			off = next + int(length) - 2

		case classBare:
			// SOI, EOI, RSTn and TEM carry no payload.

		default:
			// An unknown code is tolerated only when the two bytes
			// following it form a reserved marker (FF 03..BF). No
			// length skip is attempted for reserved markers, so a
			// length-prefixed reserved segment still derails the walk
			// and the caller ends up on the fallback path.
			b1, next, err := readByte(data, off)
			if err != nil {
				return 0, err
			}
			b2, next, err := readByte(data, next)
			if err != nil {
				return 0, err
			}
			if b1 != 0xFF || b2 <= 0x02 || b2 > 0xBF {
				return 0, fmt.Errorf("marker 0x%04x: %w", marker, ErrSyntax)
			}
			off = next
		}
	}
	return 0, ErrSOFNotFound
}

// Resolver determines the bit depth of JPEG-compressed pixel data. The
// marker walk over the first fragment runs first; any failure there is
// absorbed by exactly one attempt through Fallback, whose result or
// error is returned as-is. The primary walk is never retried.
type Resolver struct {
	// Fallback is consulted once when the marker walk fails.
	Fallback codec.HeaderScanner
}

// NewResolver returns a Resolver backed by the codec-level Scanner.
func NewResolver() *Resolver {
	return &Resolver{Fallback: NewScanner()}
}

// Resolve returns the bits per sample of pixelData.
//
// Failures from the marker walk, including a failure to read the first
// fragment, never surface to the caller: the fallback scanner is handed
// the original pixel data and decides the outcome instead.
func (r *Resolver) Resolve(pixelData imagetypes.PixelData) (int, error) {
	if pixelData == nil {
		return 0, fmt.Errorf("pixel data cannot be nil")
	}

	fragment, err := pixelData.GetFrame(0)
	if err == nil {
		if depth, scanErr := ScanBitDepth(fragment); scanErr == nil {
			return depth, nil
		}
	}
	return r.Fallback.ScanHeaderForPrecision(pixelData)
}

// ScanHeaderForBitDepth determines the bit depth of JPEG-compressed
// pixel data, falling back to the codec-level header scanner when the
// marker walk cannot.
func ScanHeaderForBitDepth(pixelData imagetypes.PixelData) (int, error) {
	return NewResolver().Resolve(pixelData)
}

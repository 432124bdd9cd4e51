// Package jpegls determines the sample precision of a JPEG-LS (ITU-T
// T.87) stream from its SOF55 frame header, without decoding any image
// data. The T.87 frame header reuses the T.81 layout, so decoding
// yields a jpeg.FrameHeader.
package jpegls

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/karpagarajan/mdcm/jpeg"
)

// DecodeFrameHeader reads a JPEG-LS stream up to its SOF55 frame
// header and decodes it. The stream must open with SOI; other marker
// segments before the frame header, LSE preset parameters and APPn
// included, are skipped. Frame headers of the T.81 SOF variants are
// skipped too: only SOF55 introduces a JPEG-LS frame. Reaching EOI or
// the end of the stream first fails with jpeg.ErrSOFNotFound.
func DecodeFrameHeader(r io.Reader) (*jpeg.FrameHeader, error) {
	jr := jpeg.NewReader(r)

	marker, err := jr.ReadMarker()
	if err != nil || marker != jpeg.MarkerSOI {
		return nil, jpeg.ErrMissingSOI
	}

	for {
		marker, err = jr.NextMarker()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, jpeg.ErrSOFNotFound
			}
			return nil, err
		}

		switch {
		case marker == jpeg.MarkerSOF55:
			segment, err := jr.ReadSegment()
			if err != nil {
				return nil, err
			}
			return decodeSOF55Segment(segment)

		case marker == jpeg.MarkerEOI:
			return nil, jpeg.ErrSOFNotFound

		case !jpeg.HasLength(marker):
			// RSTn or TEM, nothing to skip

		default:
			if err := jr.SkipSegment(); err != nil {
				return nil, err
			}
		}
	}
}

// decodeSOF55Segment decodes the body of a SOF55 segment. T.87 keeps
// the T.81 field order: precision, lines, columns, component count,
// then 3 bytes per component.
func decodeSOF55Segment(segment []byte) (*jpeg.FrameHeader, error) {
	if len(segment) < 6 {
		return nil, fmt.Errorf("JPEG-LS frame header of %d bytes: %w", len(segment), jpeg.ErrInvalidFrameHeader)
	}

	precision := int(segment[0])
	height := int(segment[1])<<8 | int(segment[2])
	width := int(segment[3])<<8 | int(segment[4])
	count := int(segment[5])

	if precision < 2 || precision > 16 {
		return nil, fmt.Errorf("JPEG-LS precision %d: %w", precision, jpeg.ErrInvalidFrameHeader)
	}
	if width == 0 {
		return nil, fmt.Errorf("zero samples per line: %w", jpeg.ErrInvalidFrameHeader)
	}
	if count < 1 || count > 4 {
		return nil, fmt.Errorf("%d components: %w", count, jpeg.ErrInvalidFrameHeader)
	}
	if len(segment) != 6+3*count {
		return nil, fmt.Errorf("JPEG-LS frame header of %d bytes for %d components: %w", len(segment), count, jpeg.ErrInvalidFrameHeader)
	}

	header := &jpeg.FrameHeader{
		Marker:     jpeg.MarkerSOF55,
		Precision:  precision,
		Height:     height,
		Width:      width,
		Components: make([]jpeg.Component, count),
	}
	for i := range header.Components {
		c := segment[6+3*i : 9+3*i]
		header.Components[i] = jpeg.Component{
			ID: c[0],
			H:  c[1] >> 4,
			V:  c[1] & 0x0F,
			Tq: c[2],
		}
	}
	return header, nil
}

// ScanBitDepth returns the sample precision declared by the SOF55
// frame header of a JPEG-LS stream.
func ScanBitDepth(data []byte) (int, error) {
	header, err := DecodeFrameHeader(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	return header.Precision, nil
}

// Package jpeg2000 determines the sample precision (bit depth) of a
// JPEG 2000 codestream by walking its main-header marker segments,
// without decoding any image data. HTJ2K codestreams (ITU-T T.814)
// carry the same SOC/SIZ opening and are covered by the same walk.
package jpeg2000

import (
	"encoding/binary"
	"fmt"
)

// ComponentSize holds per-component sizing information from SIZ
type ComponentSize struct {
	Ssiz  uint8 // Precision and sign (bit 7 = sign, bits 0-6 = depth-1)
	XRsiz uint8 // Horizontal separation
	YRsiz uint8 // Vertical separation
}

// BitDepth returns the bit depth of the component
func (c ComponentSize) BitDepth() int {
	return int(c.Ssiz&0x7F) + 1
}

// IsSigned returns true if the component is signed
func (c ComponentSize) IsSigned() bool {
	return (c.Ssiz & 0x80) != 0
}

// SIZHeader - Image and tile size marker segment
// ISO/IEC 15444-1 A.5.1
type SIZHeader struct {
	Rsiz   uint16 // Capabilities
	Xsiz   uint32 // Width of reference grid
	Ysiz   uint32 // Height of reference grid
	XOsiz  uint32 // Horizontal offset
	YOsiz  uint32 // Vertical offset
	XTsiz  uint32 // Width of one reference tile
	YTsiz  uint32 // Height of one reference tile
	XTOsiz uint32 // Horizontal offset of first tile
	YTOsiz uint32 // Vertical offset of first tile
	Csiz   uint16 // Number of components

	Components []ComponentSize
}

// Width returns the width of the image region on the reference grid
func (s *SIZHeader) Width() int {
	return int(s.Xsiz - s.XOsiz)
}

// Height returns the height of the image region on the reference grid
func (s *SIZHeader) Height() int {
	return int(s.Ysiz - s.YOsiz)
}

func readUint16(data []byte, off int) (uint16, int, error) {
	if off+2 > len(data) {
		return 0, off, ErrUnexpectedEOF
	}
	return binary.BigEndian.Uint16(data[off:]), off + 2, nil
}

func readUint32(data []byte, off int) (uint32, int, error) {
	if off+4 > len(data) {
		return 0, off, ErrUnexpectedEOF
	}
	return binary.BigEndian.Uint32(data[off:]), off + 4, nil
}

// DecodeSIZ walks a raw codestream up to its SIZ segment and decodes
// it. The codestream must open with SOC; marker segments before SIZ
// are skipped by their declared length. Reaching SOD, EOC or the end
// of the data first fails with ErrSIZNotFound.
//
// DICOM encapsulates raw codestreams, so a JP2 signature box is not
// accepted.
func DecodeSIZ(data []byte) (*SIZHeader, error) {
	marker, off, err := readUint16(data, 0)
	if err != nil || marker != MarkerSOC {
		return nil, ErrMissingSOC
	}

	for off < len(data) {
		marker, off, err = readUint16(data, off)
		if err != nil {
			return nil, err
		}

		switch {
		case marker == MarkerSIZ:
			return decodeSIZSegment(data, off)

		case marker == MarkerSOD || marker == MarkerEOC:
			// SIZ belongs to the main header; past its end there is
			// nothing left to scan.
			return nil, ErrSIZNotFound

		case !HasLength(marker):
			// EPH or a stray SOC, nothing to skip.

		default:
			length, next, err := readUint16(data, off)
			if err != nil {
				return nil, err
			}
			if length < 2 {
				return nil, fmt.Errorf("marker 0x%04X (%s) declares segment length %d: %w",
					marker, MarkerName(marker), length, ErrInvalidLength)
			}
			off = next + int(length) - 2
		}
	}
	return nil, ErrSIZNotFound
}

// decodeSIZSegment decodes the SIZ segment body at off, which points
// at the segment length field.
func decodeSIZSegment(data []byte, off int) (*SIZHeader, error) {
	length, off, err := readUint16(data, off)
	if err != nil {
		return nil, err
	}

	siz := &SIZHeader{}
	if siz.Rsiz, off, err = readUint16(data, off); err != nil {
		return nil, err
	}
	if siz.Xsiz, off, err = readUint32(data, off); err != nil {
		return nil, err
	}
	if siz.Ysiz, off, err = readUint32(data, off); err != nil {
		return nil, err
	}
	if siz.XOsiz, off, err = readUint32(data, off); err != nil {
		return nil, err
	}
	if siz.YOsiz, off, err = readUint32(data, off); err != nil {
		return nil, err
	}
	if siz.XTsiz, off, err = readUint32(data, off); err != nil {
		return nil, err
	}
	if siz.YTsiz, off, err = readUint32(data, off); err != nil {
		return nil, err
	}
	if siz.XTOsiz, off, err = readUint32(data, off); err != nil {
		return nil, err
	}
	if siz.YTOsiz, off, err = readUint32(data, off); err != nil {
		return nil, err
	}
	if siz.Csiz, off, err = readUint16(data, off); err != nil {
		return nil, err
	}

	if siz.Csiz == 0 {
		return nil, fmt.Errorf("SIZ declares no components: %w", ErrInvalidSIZ)
	}
	if expected := 38 + 3*int(siz.Csiz); int(length) != expected {
		return nil, fmt.Errorf("SIZ length %d does not match %d components: %w",
			length, siz.Csiz, ErrInvalidSIZ)
	}

	siz.Components = make([]ComponentSize, siz.Csiz)
	for i := range siz.Components {
		if off+3 > len(data) {
			return nil, ErrUnexpectedEOF
		}
		siz.Components[i] = ComponentSize{
			Ssiz:  data[off],
			XRsiz: data[off+1],
			YRsiz: data[off+2],
		}
		off += 3
	}

	return siz, nil
}

// ScanBitDepth walks the main header of a raw JPEG 2000 codestream
// and returns the bit depth of its first component, taken from the
// Ssiz field of the SIZ segment.
func ScanBitDepth(data []byte) (int, error) {
	siz, err := DecodeSIZ(data)
	if err != nil {
		return 0, err
	}
	return siz.Components[0].BitDepth(), nil
}

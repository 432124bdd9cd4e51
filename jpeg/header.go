package jpeg

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/karpagarajan/mdcm/codec"
)

// FrameHeader is the frame-level header carried by a start-of-frame
// segment: sample precision, dimensions and component layout.
type FrameHeader struct {
	Marker     uint16 // SOF marker that introduced the frame
	Precision  int    // bits per sample
	Height     int    // lines; zero until a later DNL segment supplies it
	Width      int    // samples per line
	Components []Component
}

// Component is one entry of the frame component table.
type Component struct {
	ID byte
	H  byte // horizontal sampling factor
	V  byte // vertical sampling factor
	Tq byte // quantization table selector
}

// DecodeFrameHeader reads a JPEG stream up to its first frame header
// and decodes it. The stream must open with SOI; after that, bytes
// between segments are tolerated and skipped while searching for the
// next marker. Frame headers of every SOF variant are accepted,
// including SOF55 (JPEG-LS). Reaching EOI or the end of the stream
// first fails with ErrSOFNotFound.
func DecodeFrameHeader(r io.Reader) (*FrameHeader, error) {
	jr := NewReader(r)

	marker, err := jr.ReadMarker()
	if err != nil || marker != MarkerSOI {
		return nil, ErrMissingSOI
	}

	for {
		marker, err = jr.NextMarker()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrSOFNotFound
			}
			return nil, err
		}

		switch {
		case IsSOF(marker) || marker == MarkerSOF55:
			segment, err := jr.ReadSegment()
			if err != nil {
				return nil, err
			}
			return decodeSOFSegment(marker, segment)

		case marker == MarkerEOI:
			return nil, ErrSOFNotFound

		case !HasLength(marker):
			// RSTn or TEM, nothing to skip

		default:
			if err := jr.SkipSegment(); err != nil {
				return nil, err
			}
		}
	}
}

// decodeSOFSegment decodes the body of a start-of-frame segment:
// precision, height, width, component count, then 3 bytes per
// component.
func decodeSOFSegment(marker uint16, segment []byte) (*FrameHeader, error) {
	if len(segment) < 6 {
		return nil, fmt.Errorf("frame header of %d bytes: %w", len(segment), ErrInvalidFrameHeader)
	}

	precision := int(segment[0])
	height := int(segment[1])<<8 | int(segment[2])
	width := int(segment[3])<<8 | int(segment[4])
	count := int(segment[5])

	if precision < 2 || precision > 16 {
		return nil, fmt.Errorf("precision %d: %w", precision, ErrInvalidFrameHeader)
	}
	if width == 0 {
		return nil, fmt.Errorf("zero samples per line: %w", ErrInvalidFrameHeader)
	}
	if count < 1 || count > 4 {
		return nil, fmt.Errorf("%d components: %w", count, ErrInvalidFrameHeader)
	}
	if len(segment) != 6+3*count {
		return nil, fmt.Errorf("frame header of %d bytes for %d components: %w", len(segment), count, ErrInvalidFrameHeader)
	}

	header := &FrameHeader{
		Marker:     marker,
		Precision:  precision,
		Height:     height,
		Width:      width,
		Components: make([]Component, count),
	}
	for i := range header.Components {
		c := segment[6+3*i : 9+3*i]
		header.Components[i] = Component{
			ID: c[0],
			H:  c[1] >> 4,
			V:  c[1] & 0x0F,
			Tq: c[2],
		}
	}
	return header, nil
}

var _ codec.HeaderScanner = (*Scanner)(nil)

// Scanner is the codec-level header scanner for the JPEG (ITU-T T.81)
// transfer syntaxes. It reaches the frame header the way a full
// decoder would, so it tolerates streams that derail the strict marker
// walk in ScanBitDepth. The Resolver uses it as the fallback detector.
type Scanner struct {
	transferSyntax *transfer.Syntax
}

// NewScanner returns a Scanner for the JPEG baseline transfer syntax.
func NewScanner() *Scanner {
	return NewScannerWithTransferSyntax(transfer.JPEGBaseline8Bit)
}

// NewScannerWithTransferSyntax returns a Scanner registered under an
// alternate JPEG transfer syntax.
func NewScannerWithTransferSyntax(ts *transfer.Syntax) *Scanner {
	return &Scanner{transferSyntax: ts}
}

// Name returns the scanner name
func (s *Scanner) Name() string {
	switch s.transferSyntax {
	case transfer.JPEGExtended12Bit:
		return "JPEG Extended (Process 2 & 4)"
	case transfer.JPEGLossless:
		return "JPEG Lossless (Process 14)"
	case transfer.JPEGLosslessSV1:
		return "JPEG Lossless (Process 14, SV1)"
	default:
		return "JPEG Baseline (Process 1)"
	}
}

// TransferSyntax returns the transfer syntax this scanner handles
func (s *Scanner) TransferSyntax() *transfer.Syntax {
	return s.transferSyntax
}

// ScanHeaderForPrecision returns the sample precision declared by the
// first frame header in the first fragment of pixelData.
func (s *Scanner) ScanHeaderForPrecision(pixelData imagetypes.PixelData) (int, error) {
	if pixelData == nil {
		return 0, fmt.Errorf("pixel data cannot be nil")
	}
	fragment, err := pixelData.GetFrame(0)
	if err != nil {
		return 0, fmt.Errorf("failed to get fragment 0: %w", err)
	}

	header, err := DecodeFrameHeader(bytes.NewReader(fragment))
	if err != nil {
		return 0, err
	}
	return header.Precision, nil
}

// RegisterJPEGScanners registers a header scanner for each JPEG
// transfer syntax with the default registry.
func RegisterJPEGScanners() {
	for _, ts := range []*transfer.Syntax{
		transfer.JPEGBaseline8Bit,
		transfer.JPEGExtended12Bit,
		transfer.JPEGLossless,
		transfer.JPEGLosslessSV1,
	} {
		codec.Register(NewScannerWithTransferSyntax(ts))
	}
}

func init() {
	RegisterJPEGScanners()
}

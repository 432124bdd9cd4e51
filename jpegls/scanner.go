package jpegls

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/karpagarajan/mdcm/codec"
)

var _ codec.HeaderScanner = (*Scanner)(nil)

// Scanner is the header scanner for the JPEG-LS transfer syntaxes.
//
// Supported Transfer Syntaxes:
// - 1.2.840.10008.1.2.4.80: JPEG-LS Lossless
// - 1.2.840.10008.1.2.4.81: JPEG-LS Near-Lossless
type Scanner struct {
	transferSyntax *transfer.Syntax
}

// NewScanner returns a Scanner for the JPEG-LS lossless transfer
// syntax.
func NewScanner() *Scanner {
	return NewScannerWithTransferSyntax(transfer.JPEGLSLossless)
}

// NewScannerWithTransferSyntax returns a Scanner registered under an
// alternate JPEG-LS transfer syntax.
func NewScannerWithTransferSyntax(ts *transfer.Syntax) *Scanner {
	return &Scanner{transferSyntax: ts}
}

// Name returns the scanner name
func (s *Scanner) Name() string {
	if s.transferSyntax == transfer.JPEGLSNearLossless {
		return "JPEG-LS Near-Lossless"
	}
	return "JPEG-LS Lossless"
}

// TransferSyntax returns the transfer syntax this scanner handles
func (s *Scanner) TransferSyntax() *transfer.Syntax {
	return s.transferSyntax
}

// ScanHeaderForPrecision returns the sample precision declared by the
// SOF55 frame header in the first fragment of pixelData.
func (s *Scanner) ScanHeaderForPrecision(pixelData imagetypes.PixelData) (int, error) {
	if pixelData == nil {
		return 0, fmt.Errorf("pixel data cannot be nil")
	}
	fragment, err := pixelData.GetFrame(0)
	if err != nil {
		return 0, fmt.Errorf("failed to get fragment 0: %w", err)
	}
	return ScanBitDepth(fragment)
}

// RegisterJPEGLSScanners registers a header scanner for each JPEG-LS
// transfer syntax with the default registry.
func RegisterJPEGLSScanners() {
	codec.Register(NewScannerWithTransferSyntax(transfer.JPEGLSLossless))
	codec.Register(NewScannerWithTransferSyntax(transfer.JPEGLSNearLossless))
}

func init() {
	RegisterJPEGLSScanners()
}

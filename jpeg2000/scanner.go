package jpeg2000

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/karpagarajan/mdcm/codec"
)

var _ codec.HeaderScanner = (*Scanner)(nil)

// Scanner is the header scanner for the JPEG 2000 family of transfer
// syntaxes, HTJ2K included.
//
// Supported Transfer Syntaxes:
// - 1.2.840.10008.1.2.4.90: JPEG 2000 Lossless
// - 1.2.840.10008.1.2.4.91: JPEG 2000
// - 1.2.840.10008.1.2.4.92: JPEG 2000 Part 2 Multi-component Lossless
// - 1.2.840.10008.1.2.4.93: JPEG 2000 Part 2 Multi-component
// - 1.2.840.10008.1.2.4.201: HTJ2K Lossless
// - 1.2.840.10008.1.2.4.202: HTJ2K Lossless RPCL
// - 1.2.840.10008.1.2.4.203: HTJ2K
type Scanner struct {
	transferSyntax *transfer.Syntax
}

// NewScanner returns a Scanner for the JPEG 2000 Lossless transfer
// syntax.
func NewScanner() *Scanner {
	return NewScannerWithTransferSyntax(transfer.JPEG2000Lossless)
}

// NewScannerWithTransferSyntax returns a Scanner registered under an
// alternate JPEG 2000 transfer syntax.
func NewScannerWithTransferSyntax(ts *transfer.Syntax) *Scanner {
	return &Scanner{transferSyntax: ts}
}

// Name returns the scanner name
func (s *Scanner) Name() string {
	switch s.transferSyntax {
	case transfer.JPEG2000:
		return "JPEG 2000"
	case transfer.JPEG2000Part2MultiComponentLosslessOnly:
		return "JPEG 2000 Part 2 Multi-component Lossless"
	case transfer.JPEG2000Part2MultiComponent:
		return "JPEG 2000 Part 2 Multi-component"
	case transfer.HTJ2KLossless:
		return "HTJ2K Lossless"
	case transfer.HTJ2KLosslessRPCL:
		return "HTJ2K Lossless RPCL"
	case transfer.HTJ2K:
		return "HTJ2K"
	default:
		return "JPEG 2000 Lossless"
	}
}

// TransferSyntax returns the transfer syntax this scanner handles
func (s *Scanner) TransferSyntax() *transfer.Syntax {
	return s.transferSyntax
}

// ScanHeaderForPrecision returns the bit depth declared by the SIZ
// segment in the first fragment of pixelData.
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

// RegisterJPEG2000Scanners registers a header scanner for each JPEG
// 2000 family transfer syntax with the default registry.
func RegisterJPEG2000Scanners() {
	for _, ts := range []*transfer.Syntax{
		transfer.JPEG2000Lossless,
		transfer.JPEG2000,
		transfer.JPEG2000Part2MultiComponentLosslessOnly,
		transfer.JPEG2000Part2MultiComponent,
		transfer.HTJ2KLossless,
		transfer.HTJ2KLosslessRPCL,
		transfer.HTJ2K,
	} {
		codec.Register(NewScannerWithTransferSyntax(ts))
	}
}

func init() {
	RegisterJPEG2000Scanners()
}

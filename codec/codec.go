// Package codec defines the header-scanner contract shared by the
// compressed pixel-data formats, and a registry that maps DICOM
// transfer syntaxes to the scanner that understands them.
package codec

import (
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// HeaderScanner probes compressed pixel data for the sample precision
// (bits per sample) declared by its frame header, without decoding any
// pixels.
type HeaderScanner interface {
	// ScanHeaderForPrecision returns the bits per sample declared by
	// the first frame header in the first fragment of pixelData.
	ScanHeaderForPrecision(pixelData imagetypes.PixelData) (int, error)

	// TransferSyntax returns the transfer syntax this scanner handles
	TransferSyntax() *transfer.Syntax

	// Name returns a human-readable name
	Name() string
}

// ScanPixelData scans pixelData with the scanner registered for ts in
// the default registry.
func ScanPixelData(ts *transfer.Syntax, pixelData imagetypes.PixelData) (int, error) {
	scanner, err := ForTransferSyntax(ts)
	if err != nil {
		return 0, err
	}
	return scanner.ScanHeaderForPrecision(pixelData)
}

// dcmbitdepth reports the bit depth of a DICOM file two ways: as the
// dataset declares it (Bits Stored) and as the encapsulated pixel
// stream actually carries it, found by scanning the stream's header
// markers without decoding.
package main

import (
	"fmt"
	"os"

	"github.com/cocosip/go-dicom/pkg/dicom/element"
	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/tag"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/karpagarajan/mdcm/codec"
	"github.com/karpagarajan/mdcm/jpeg"
	_ "github.com/karpagarajan/mdcm/jpeg2000"
	_ "github.com/karpagarajan/mdcm/jpegls"
)

// fragmentPixelData exposes the encapsulated fragments of a PixelData
// element as imagetypes.PixelData, one fragment per frame index.
type fragmentPixelData struct {
	fragments [][]byte
	info      *imagetypes.FrameInfo
}

func (p *fragmentPixelData) GetFrame(frameIndex int) ([]byte, error) {
	if frameIndex < 0 || frameIndex >= len(p.fragments) {
		return nil, fmt.Errorf("fragment index %d out of range (%d fragments)", frameIndex, len(p.fragments))
	}
	return p.fragments[frameIndex], nil
}

func (p *fragmentPixelData) AddFrame(frameData []byte) error {
	p.fragments = append(p.fragments, frameData)
	return nil
}

func (p *fragmentPixelData) FrameCount() int {
	return len(p.fragments)
}

func (p *fragmentPixelData) GetFrameInfo() *imagetypes.FrameInfo {
	return p.info
}

func (p *fragmentPixelData) IsEncapsulated() bool {
	return true
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: dcmbitdepth <file.dcm>")
		return
	}

	filePath := os.Args[1]

	result, err := parser.ParseFile(filePath,
		parser.WithReadOption(parser.ReadAll),
		parser.WithLargeObjectSize(100*1024*1024),
	)
	if err != nil {
		fmt.Printf("ERROR: Failed to parse: %v\n", err)
		os.Exit(1)
	}

	ds := result.Dataset
	ts := result.TransferSyntax

	bitsStored := ds.TryGetUInt16(tag.BitsStored, 0)

	fmt.Printf("File: %s\n", filePath)
	fmt.Printf("Transfer Syntax: %s\n", ts.UID().UID())
	fmt.Printf("Bits Stored: %d\n", bitsStored)

	if !ts.IsEncapsulated() {
		fmt.Println("Pixel data is native, nothing to scan")
		return
	}

	pd, ok := ds.Get(tag.PixelData)
	if !ok {
		fmt.Println("ERROR: No PixelData element found")
		os.Exit(1)
	}

	info := &imagetypes.FrameInfo{
		Width:               ds.TryGetUInt16(tag.Columns, 0),
		Height:              ds.TryGetUInt16(tag.Rows, 0),
		BitsAllocated:       ds.TryGetUInt16(tag.BitsAllocated, 0),
		BitsStored:          bitsStored,
		HighBit:             ds.TryGetUInt16(tag.HighBit, 0),
		SamplesPerPixel:     ds.TryGetUInt16(tag.SamplesPerPixel, 1),
		PixelRepresentation: ds.TryGetUInt16(tag.PixelRepresentation, 0),
	}
	if pi, ok := ds.GetString(tag.PhotometricInterpretation); ok {
		info.PhotometricInterpretation = pi
	}
	pixelData := &fragmentPixelData{info: info}

	switch v := pd.(type) {
	case *element.OtherByteFragment:
		for _, frag := range v.Fragments() {
			pixelData.fragments = append(pixelData.fragments, frag.Data())
		}
	case *element.OtherWordFragment:
		for _, frag := range v.Fragments() {
			pixelData.fragments = append(pixelData.fragments, frag.Data())
		}
	default:
		fmt.Printf("ERROR: Unexpected pixel data type: %T\n", pd)
		os.Exit(1)
	}

	if len(pixelData.fragments) == 0 {
		fmt.Println("ERROR: PixelData has no fragments")
		os.Exit(1)
	}

	depth, err := scanDepth(ts, pixelData)
	if err != nil {
		fmt.Printf("ERROR: Header scan failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scanned bit depth: %d\n", depth)
	if int(bitsStored) != depth {
		fmt.Printf("MISMATCH: dataset declares %d bits stored, stream carries %d\n", bitsStored, depth)
	}
}

// scanDepth runs the registered scanner for the transfer syntax.
// Syntaxes without one get the JPEG resolver, whose marker walk plus
// fallback covers unregistered JPEG flavors.
func scanDepth(ts *transfer.Syntax, pixelData imagetypes.PixelData) (int, error) {
	if scanner, err := codec.ForTransferSyntax(ts); err == nil {
		fmt.Printf("Scanner: %s\n", scanner.Name())
		return scanner.ScanHeaderForPrecision(pixelData)
	}
	fmt.Println("Scanner: JPEG resolver")
	return jpeg.ScanHeaderForBitDepth(pixelData)
}

package jpeg

// JPEG marker constants (ITU-T T.81 table B.1)
const (
	// Temporary private use in arithmetic coding, standalone
	MarkerTEM = 0xFF01

	// Start of Image
	MarkerSOI = 0xFFD8

	// End of Image
	MarkerEOI = 0xFFD9

	// Start of Frame markers
	MarkerSOF0  = 0xFFC0 // Baseline DCT
	MarkerSOF1  = 0xFFC1 // Extended Sequential DCT
	MarkerSOF2  = 0xFFC2 // Progressive DCT
	MarkerSOF3  = 0xFFC3 // Lossless (Sequential)
	MarkerSOF5  = 0xFFC5 // Differential Sequential DCT
	MarkerSOF6  = 0xFFC6 // Differential Progressive DCT
	MarkerSOF7  = 0xFFC7 // Differential Lossless
	MarkerSOF9  = 0xFFC9 // Extended Sequential DCT, Arithmetic coding
	MarkerSOF10 = 0xFFCA // Progressive DCT, Arithmetic coding
	MarkerSOF11 = 0xFFCB // Lossless, Arithmetic coding
	MarkerSOF13 = 0xFFCD // Differential Sequential DCT, Arithmetic coding
	MarkerSOF14 = 0xFFCE // Differential Progressive DCT, Arithmetic coding
	MarkerSOF15 = 0xFFCF // Differential Lossless, Arithmetic coding

	// Define Huffman Table
	MarkerDHT = 0xFFC4

	// Reserved for JPEG extensions, length-prefixed
	MarkerJPG = 0xFFC8

	// Define Arithmetic Coding conditioning
	MarkerDAC = 0xFFCC

	// Restart markers, standalone
	MarkerRST0 = 0xFFD0
	MarkerRST1 = 0xFFD1
	MarkerRST2 = 0xFFD2
	MarkerRST3 = 0xFFD3
	MarkerRST4 = 0xFFD4
	MarkerRST5 = 0xFFD5
	MarkerRST6 = 0xFFD6
	MarkerRST7 = 0xFFD7

	// Start of Scan
	MarkerSOS = 0xFFDA

	// Define Quantization Table
	MarkerDQT = 0xFFDB

	// Define Number of Lines
	MarkerDNL = 0xFFDC

	// Define Restart Interval
	MarkerDRI = 0xFFDD

	// Define Hierarchical Progression
	MarkerDHP = 0xFFDE

	// Expand Reference Components
	MarkerEXP = 0xFFDF

	// Application segments
	MarkerAPP0  = 0xFFE0
	MarkerAPP1  = 0xFFE1
	MarkerAPP2  = 0xFFE2
	MarkerAPP3  = 0xFFE3
	MarkerAPP4  = 0xFFE4
	MarkerAPP5  = 0xFFE5
	MarkerAPP6  = 0xFFE6
	MarkerAPP7  = 0xFFE7
	MarkerAPP8  = 0xFFE8
	MarkerAPP9  = 0xFFE9
	MarkerAPP10 = 0xFFEA
	MarkerAPP11 = 0xFFEB
	MarkerAPP12 = 0xFFEC
	MarkerAPP13 = 0xFFED
	MarkerAPP14 = 0xFFEE
	MarkerAPP15 = 0xFFEF

	// JPEG extension segments. 0xFFF7 doubles as the JPEG-LS frame
	// header (SOF55, ITU-T T.87) and 0xFFF8 as its LSE parameter
	// segment.
	MarkerJPG0  = 0xFFF0
	MarkerJPG13 = 0xFFFD
	MarkerSOF55 = 0xFFF7
	MarkerLSE   = 0xFFF8

	// Comment
	MarkerCOM = 0xFFFE
)

// IsSOF returns true if the marker is a Start of Frame marker (the
// ITU-T T.81 set; SOF55 is not included)
func IsSOF(marker uint16) bool {
	return (marker >= MarkerSOF0 && marker <= MarkerSOF3) ||
		(marker >= MarkerSOF5 && marker <= MarkerSOF7) ||
		(marker >= MarkerSOF9 && marker <= MarkerSOF11) ||
		(marker >= MarkerSOF13 && marker <= MarkerSOF15)
}

// IsRST returns true if the marker is a Restart marker
func IsRST(marker uint16) bool {
	return marker >= MarkerRST0 && marker <= MarkerRST7
}

// HasLength returns true if the marker is followed by a length field
func HasLength(marker uint16) bool {
	// Markers without length: TEM, SOI, EOI, RSTn
	if marker == MarkerTEM || marker == MarkerSOI || marker == MarkerEOI {
		return false
	}
	return !IsRST(marker)
}

// markerClass is the category a marker code falls into during the
// bit-depth marker walk.
type markerClass uint8

const (
	classUnknown markerClass = iota // not in the marker table; candidate reserved marker
	classSOF                        // frame header: 2-byte length field, then the precision byte
	classSegment                    // length-prefixed segment, skipped without parsing
	classBare                       // standalone marker, no payload
)

// markerClasses maps the low byte of a 0xFF-led marker code to its
// category. Codes left unset stay classUnknown.
//
// SOF55 (JPEG-LS) sits inside the JPGn range and is deliberately kept
// classSegment: the marker walk skips JPEG-LS frame headers, and the
// jpegls package resolves those streams instead.
var markerClasses [256]markerClass

func init() {
	for _, m := range []uint16{
		MarkerSOF0, MarkerSOF1, MarkerSOF2, MarkerSOF3,
		MarkerSOF5, MarkerSOF6, MarkerSOF7,
		MarkerSOF9, MarkerSOF10, MarkerSOF11,
		MarkerSOF13, MarkerSOF14, MarkerSOF15,
	} {
		markerClasses[m&0xFF] = classSOF
	}

	for _, m := range []uint16{MarkerDHT, MarkerJPG, MarkerDAC, MarkerCOM} {
		markerClasses[m&0xFF] = classSegment
	}
	for m := uint16(MarkerSOS); m <= MarkerEXP; m++ {
		markerClasses[m&0xFF] = classSegment
	}
	for m := uint16(MarkerAPP0); m <= MarkerAPP15; m++ {
		markerClasses[m&0xFF] = classSegment
	}
	for m := uint16(MarkerJPG0); m <= MarkerJPG13; m++ {
		markerClasses[m&0xFF] = classSegment
	}

	markerClasses[MarkerTEM&0xFF] = classBare
	for m := uint16(MarkerRST0); m <= MarkerRST7; m++ {
		markerClasses[m&0xFF] = classBare
	}
	markerClasses[MarkerSOI&0xFF] = classBare
	markerClasses[MarkerEOI&0xFF] = classBare
}

// classify returns the walk category of a marker code. Codes that do
// not carry the 0xFF prefix are never valid markers and classify as
// unknown.
func classify(marker uint16) markerClass {
	if marker>>8 != 0xFF {
		return classUnknown
	}
	return markerClasses[marker&0xFF]
}

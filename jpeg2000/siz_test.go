package jpeg2000_test

import (
	"errors"
	"testing"

	"github.com/karpagarajan/mdcm/jpeg2000"
)

func u16(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}

func u32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// sizSegment builds a SIZ marker segment for an untiled 64x48 image
// with one component per Ssiz value.
func sizSegment(ssiz ...byte) []byte {
	seg := u16(jpeg2000.MarkerSIZ)
	seg = append(seg, u16(uint16(38+3*len(ssiz)))...) // Lsiz
	seg = append(seg, u16(0)...)                      // Rsiz
	seg = append(seg, u32(64)...)                     // Xsiz
	seg = append(seg, u32(48)...)                     // Ysiz
	seg = append(seg, u32(0)...)                      // XOsiz
	seg = append(seg, u32(0)...)                      // YOsiz
	seg = append(seg, u32(64)...)                     // XTsiz
	seg = append(seg, u32(48)...)                     // YTsiz
	seg = append(seg, u32(0)...)                      // XTOsiz
	seg = append(seg, u32(0)...)                      // YTOsiz
	seg = append(seg, u16(uint16(len(ssiz)))...)      // Csiz
	for _, s := range ssiz {
		seg = append(seg, s, 1, 1)
	}
	return seg
}

// segment builds an arbitrary marker segment around body.
func segment(marker uint16, body []byte) []byte {
	seg := u16(marker)
	seg = append(seg, u16(uint16(len(body)+2))...)
	return append(seg, body...)
}

func codestream(parts ...[]byte) []byte {
	cs := u16(jpeg2000.MarkerSOC)
	for _, p := range parts {
		cs = append(cs, p...)
	}
	return cs
}

func TestDecodeSIZ(t *testing.T) {
	siz, err := jpeg2000.DecodeSIZ(codestream(sizSegment(0x0B)))
	if err != nil {
		t.Fatalf("DecodeSIZ failed: %v", err)
	}

	if siz.Rsiz != 0 {
		t.Errorf("Rsiz = %d, want 0", siz.Rsiz)
	}
	if siz.Xsiz != 64 || siz.Ysiz != 48 {
		t.Errorf("grid = %dx%d, want 64x48", siz.Xsiz, siz.Ysiz)
	}
	if siz.XOsiz != 0 || siz.YOsiz != 0 {
		t.Errorf("image offset = (%d,%d), want (0,0)", siz.XOsiz, siz.YOsiz)
	}
	if siz.XTsiz != 64 || siz.YTsiz != 48 {
		t.Errorf("tile size = %dx%d, want 64x48", siz.XTsiz, siz.YTsiz)
	}
	if siz.Width() != 64 || siz.Height() != 48 {
		t.Errorf("image region = %dx%d, want 64x48", siz.Width(), siz.Height())
	}
	if siz.Csiz != 1 || len(siz.Components) != 1 {
		t.Fatalf("Csiz = %d with %d components, want 1", siz.Csiz, len(siz.Components))
	}

	c := siz.Components[0]
	if c.Ssiz != 0x0B {
		t.Errorf("Ssiz = 0x%02X, want 0x0B", c.Ssiz)
	}
	if c.XRsiz != 1 || c.YRsiz != 1 {
		t.Errorf("subsampling = (%d,%d), want (1,1)", c.XRsiz, c.YRsiz)
	}
	if c.BitDepth() != 12 {
		t.Errorf("BitDepth() = %d, want 12", c.BitDepth())
	}
	if c.IsSigned() {
		t.Error("IsSigned() = true, want false")
	}
}

func TestComponentSizePrecision(t *testing.T) {
	tests := []struct {
		ssiz   byte
		depth  int
		signed bool
	}{
		{0x07, 8, false},
		{0x0B, 12, false},
		{0x0F, 16, false},
		{0x87, 8, true},
		{0x8D, 14, true},
	}

	for _, tt := range tests {
		c := jpeg2000.ComponentSize{Ssiz: tt.ssiz}
		if got := c.BitDepth(); got != tt.depth {
			t.Errorf("Ssiz 0x%02X: BitDepth() = %d, want %d", tt.ssiz, got, tt.depth)
		}
		if got := c.IsSigned(); got != tt.signed {
			t.Errorf("Ssiz 0x%02X: IsSigned() = %v, want %v", tt.ssiz, got, tt.signed)
		}
	}
}

func TestDecodeSIZSkipsPrecedingSegments(t *testing.T) {
	// SIZ normally follows SOC directly, but the walk tolerates
	// interleaved segments and bare markers.
	cs := codestream(
		u16(jpeg2000.MarkerEPH),
		segment(jpeg2000.MarkerCOM, []byte{0x00, 0x01, 'x', 'y'}),
		segment(0xFF65, []byte{0xFF, 0x51}), // reserved marker hiding a fake SIZ
		sizSegment(0x0F),
	)

	depth, err := jpeg2000.ScanBitDepth(cs)
	if err != nil {
		t.Fatalf("ScanBitDepth failed: %v", err)
	}
	if depth != 16 {
		t.Errorf("ScanBitDepth = %d, want 16", depth)
	}
}

func TestScanBitDepthFirstComponentWins(t *testing.T) {
	depth, err := jpeg2000.ScanBitDepth(codestream(sizSegment(0x0F, 0x07, 0x07)))
	if err != nil {
		t.Fatalf("ScanBitDepth failed: %v", err)
	}
	if depth != 16 {
		t.Errorf("ScanBitDepth = %d, want 16", depth)
	}
}

func TestScanBitDepthStopsAtSIZ(t *testing.T) {
	// A fuller main header: everything past SIZ, including tile-parts
	// and entropy-coded junk, must not be touched.
	cs := codestream(
		sizSegment(0x89),
		segment(jpeg2000.MarkerCAP, []byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x22}),
		segment(jpeg2000.MarkerCOD, []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x05, 0x04, 0x04, 0x00, 0x01}),
		segment(jpeg2000.MarkerQCD, []byte{0x20, 0x90, 0x98, 0xA0}),
		segment(jpeg2000.MarkerSOT, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x32, 0x00, 0x01}),
		u16(jpeg2000.MarkerSOD),
		[]byte{0xDE, 0xAD, 0xBE, 0xEF},
		u16(jpeg2000.MarkerEOC),
	)

	siz, err := jpeg2000.DecodeSIZ(cs)
	if err != nil {
		t.Fatalf("DecodeSIZ failed: %v", err)
	}
	if got := siz.Components[0].BitDepth(); got != 10 {
		t.Errorf("BitDepth() = %d, want 10", got)
	}
	if !siz.Components[0].IsSigned() {
		t.Error("IsSigned() = false, want true")
	}
}

func TestDecodeSIZErrors(t *testing.T) {
	truncated := codestream(sizSegment(0x07))

	zeroComponents := u16(jpeg2000.MarkerSIZ)
	zeroComponents = append(zeroComponents, u16(38)...)
	zeroComponents = append(zeroComponents, u16(0)...) // Rsiz
	for i := 0; i < 8; i++ {
		zeroComponents = append(zeroComponents, u32(0)...)
	}
	zeroComponents = append(zeroComponents, u16(0)...) // Csiz

	badLength := codestream(sizSegment(0x07))
	badLength[5]++ // Lsiz no longer matches Csiz

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, jpeg2000.ErrMissingSOC},
		{"single byte", []byte{0xFF}, jpeg2000.ErrMissingSOC},
		{"no SOC", sizSegment(0x07), jpeg2000.ErrMissingSOC},
		{"SOC only", codestream(), jpeg2000.ErrSIZNotFound},
		{"EOC before SIZ", codestream(u16(jpeg2000.MarkerEOC), sizSegment(0x07)), jpeg2000.ErrSIZNotFound},
		{"SOD before SIZ", codestream(u16(jpeg2000.MarkerSOD), sizSegment(0x07)), jpeg2000.ErrSIZNotFound},
		{"header ends before SIZ", codestream(segment(jpeg2000.MarkerCOM, []byte{0, 1})), jpeg2000.ErrSIZNotFound},
		{"skip beyond end of data", codestream(u16(jpeg2000.MarkerCOM), u16(0x0100)), jpeg2000.ErrSIZNotFound},
		{"lone marker byte", codestream([]byte{0xFF}), jpeg2000.ErrUnexpectedEOF},
		{"segment length below two", codestream(u16(jpeg2000.MarkerCOM), u16(1)), jpeg2000.ErrInvalidLength},
		{"truncated fixed fields", truncated[:12], jpeg2000.ErrUnexpectedEOF},
		{"missing component specs", truncated[:len(truncated)-3], jpeg2000.ErrUnexpectedEOF},
		{"zero components", codestream(zeroComponents), jpeg2000.ErrInvalidSIZ},
		{"length component mismatch", badLength, jpeg2000.ErrInvalidSIZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jpeg2000.DecodeSIZ(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeSIZ error = %v, want %v", err, tt.want)
			}

			if _, err := jpeg2000.ScanBitDepth(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("ScanBitDepth error = %v, want %v", err, tt.want)
			}
		})
	}
}

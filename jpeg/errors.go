package jpeg

import "errors"

// Scan errors
var (
	ErrSyntax             = errors.New("JPEG syntax error")
	ErrSOFNotFound        = errors.New("no JPEG SOF marker found")
	ErrUnexpectedEOF      = errors.New("unexpected end of data")
	ErrMissingSOI         = errors.New("missing SOI marker")
	ErrInvalidMarker      = errors.New("invalid JPEG marker")
	ErrInvalidLength      = errors.New("invalid segment length")
	ErrInvalidFrameHeader = errors.New("invalid frame header")
)

package jpeg2000

import "errors"

// Codestream scan errors
var (
	ErrMissingSOC    = errors.New("missing SOC marker")
	ErrSIZNotFound   = errors.New("no SIZ segment found")
	ErrInvalidSIZ    = errors.New("invalid SIZ segment")
	ErrInvalidLength = errors.New("invalid segment length")
	ErrUnexpectedEOF = errors.New("unexpected end of codestream")
)

package codec

import "errors"

var (
	// ErrScannerNotFound is returned when no scanner is registered for
	// a name or transfer syntax UID
	ErrScannerNotFound = errors.New("header scanner not found")
)

package gridscan

import "errors"

var (
	// ErrNotFound is returned when no barcode structure is present in the input.
	ErrNotFound = errors.New("barcode not found")

	// ErrChecksum is returned when error correction cannot repair the symbol.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when the symbol parsed but is internally inconsistent.
	ErrFormat = errors.New("format error")

	// ErrWriter is returned when a symbol cannot be encoded.
	ErrWriter = errors.New("writer error")
)

package source

import "errors"

// Sentinel errors for shot log loading.
var (
	ErrOpenSource    = errors.New("open shot source failed")
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidRow    = errors.New("invalid shot row")
)

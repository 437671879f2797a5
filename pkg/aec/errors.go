package aec

import "errors"

// Sentinel errors returned by Init, Encode and End. Callers should use
// errors.Is against these rather than comparing strings.
var (
	// ErrConfig is returned by Init when bits-per-sample, block size,
	// RSI or the restricted-option flag combination is invalid.
	ErrConfig = errors.New("aec: invalid configuration")

	// ErrMem is returned by Init when a working buffer could not be
	// sized. The hot path never allocates, so this can only surface
	// from a negative caller-supplied CDSLen override.
	ErrMem = errors.New("aec: buffer allocation failed")

	// ErrStream is returned by End when FlushFinish was requested but
	// the stream did not finish flushing (the caller stopped feeding
	// output capacity before the final byte was delivered).
	ErrStream = errors.New("aec: stream did not finish flushing")
)

// Package aec implements the CCSDS 121.0-B-2 adaptive entropy coder:
// a streaming, resumable encoder for fixed-width-integer sample
// streams using Rice-like splitting, second-extension, and
// zero-block-run coding options, falling back to an uncompressed
// escape when none of those beat it.
//
// The encoder is a cooperative finite-state machine: Session.Encode
// runs until it must suspend for more input, more output capacity, or
// stream completion, and can always be resumed with further calls.
// Callers supply raw samples through a SampleExtractor implementation
// (see package sampleio for ready-made ones) rather than through the
// core directly, keeping the bit-level coding logic independent of
// any particular sample width or byte order.
package aec

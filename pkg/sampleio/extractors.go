// Package sampleio provides ready-made aec.SampleExtractor
// implementations for the byte widths and orderings CCSDS 121.0-B-2
// streams are packed in, and a Select factory that resolves one from
// an aec.Config the way converter.decodeWAV's bit-depth switch (in
// the audio-converter lineage this package descends from) resolves a
// normalization factor from BitDepth.
package sampleio

import (
	"fmt"

	"github.com/formeo/aecenc/pkg/aec"
)

// byteExtractor reads fixed-width samples of n bytes, most- or
// least-significant byte first. It covers every width/ordering
// combination spec.md §3's bytes_per_sample and the MSB_FIRST flag
// describe; unused high bits above bits_per_sample are left as-is and
// are not masked downstream either (aec.preprocess sign-extends from
// the configured width but does not clear higher bits).
type byteExtractor struct {
	n   int
	msb bool
}

func (e *byteExtractor) BytesPerSample() int { return e.n }

func (e *byteExtractor) Sample(b []byte) uint32 {
	var v uint32
	if e.msb {
		for i := 0; i < e.n; i++ {
			v = v<<8 | uint32(b[i])
		}
	} else {
		for i := e.n - 1; i >= 0; i-- {
			v = v<<8 | uint32(b[i])
		}
	}
	return v
}

func (e *byteExtractor) FillRSI(dst []uint32, b []byte) {
	for i := range dst {
		dst[i] = e.Sample(b[i*e.n:])
	}
}

// Select resolves the SampleExtractor that matches cfg's
// BitsPerSample and packing flags (spec.md §3): ceil(bits/8) bytes
// per sample, or 3 bytes instead of 4 when Flag3Byte is set for
// widths above 16 bits (the CCSDS "24-bit packed" layout), ordered by
// FlagMSBFirst.
func Select(cfg aec.Config) (aec.SampleExtractor, error) {
	bits := cfg.BitsPerSample
	if bits < 1 || bits > 32 {
		return nil, fmt.Errorf("sampleio: bits_per_sample %d out of [1,32]", bits)
	}

	n := (bits + 7) / 8
	if bits > 16 && cfg.Flags&aec.Flag3Byte != 0 {
		n = 3
	}

	return &byteExtractor{n: n, msb: cfg.Flags&aec.FlagMSBFirst != 0}, nil
}

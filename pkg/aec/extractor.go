package aec

// SampleExtractor is the "injected extractor" boundary of spec.md §6:
// the CORE calls out to this interface for every byte-width- and
// endianness-specific read, and never parses raw bytes itself. Byte
// width, MSB/LSB ordering and 3-byte packing are picked by whichever
// SampleExtractor a caller supplies via Config.Extractor; pkg/sampleio
// provides a factory that resolves one from a Config.
type SampleExtractor interface {
	// BytesPerSample reports how many input bytes one sample occupies
	// on the wire (spec.md §3's bytes_per_sample).
	BytesPerSample() int

	// Sample decodes one raw sample from the first BytesPerSample()
	// bytes of b as a non-negative 32-bit value (the bit pattern; sign
	// extension, if any, is the preprocessor's job per spec.md §4.3).
	Sample(b []byte) uint32

	// FillRSI decodes len(dst) consecutive samples from b, the bulk
	// fast path spec.md §4.2 calls get_rsi. Implementations may
	// optimize this beyond a Sample-per-element loop; the result must
	// be identical to calling Sample len(dst) times over consecutive
	// BytesPerSample()-sized slices of b.
	FillRSI(dst []uint32, b []byte)
}

package aec

import "fmt"

// Flags is the bitset of per-session options named in spec.md §3/§6.
type Flags uint16

const (
	// FlagSigned interprets raw samples as two's-complement signed
	// integers instead of unsigned.
	FlagSigned Flags = 1 << iota
	// FlagPreprocess enables the CCSDS predictor (§4.3). Without it,
	// raw samples are coded directly as the "mapped residual".
	FlagPreprocess
	// FlagMSBFirst packs multi-byte raw samples most-significant-byte
	// first. Without it, least-significant-byte first.
	FlagMSBFirst
	// Flag3Byte packs samples wider than 16 bits into 3 bytes instead
	// of 4 (the CCSDS "24-bit packed" layout).
	Flag3Byte
	// FlagRestricted selects the restricted option-ID width table for
	// bits_per_sample <= 4 (spec.md §3).
	FlagRestricted
	// FlagPadRSI pads the output to a byte boundary at the end of
	// every RSI, not only at the end of the stream.
	FlagPadRSI
)

// Config is the immutable, validated configuration of one session
// (spec.md §3 "Stream configuration"). It is copied into the Session
// at Init and never mutated afterward.
type Config struct {
	BitsPerSample int // 1..32
	BlockSize     int // one of 8, 16, 32, 64
	RSI           int // 1..4096, in blocks
	Flags         Flags

	// Extractor supplies the byte-width/endianness-specific sample
	// reads (spec.md §6's "injected extractors"). The CORE never picks
	// one itself — see pkg/sampleio.Select for the factory that
	// resolves this from BitsPerSample/Flags.
	Extractor SampleExtractor

	// CDSLen overrides the computed worst-case per-block CDS byte
	// length (spec.md §4.7's CDSLEN), used for the internal staging
	// buffer. Zero selects the computed default; only set this for
	// testing pathological-overrun scenarios.
	CDSLen int
}

// derived holds the configuration values spec.md §3 calls "Derived
// configuration" — computed once at Init and read-only afterward.
type derived struct {
	bytesPerSample int
	idLen          int
	kmax           int
	xmin           int64
	xmax           int64
	rsiLen         int
	cdsLen         int
}

func deriveConfig(cfg Config) (derived, error) {
	var d derived

	if cfg.BitsPerSample < 1 || cfg.BitsPerSample > 32 {
		return d, fmt.Errorf("%w: bits_per_sample %d out of [1,32]", ErrConfig, cfg.BitsPerSample)
	}
	switch cfg.BlockSize {
	case 8, 16, 32, 64:
	default:
		return d, fmt.Errorf("%w: block_size %d not one of 8,16,32,64", ErrConfig, cfg.BlockSize)
	}
	if cfg.RSI < 1 || cfg.RSI > 4096 {
		return d, fmt.Errorf("%w: rsi %d out of [1,4096]", ErrConfig, cfg.RSI)
	}
	if cfg.Extractor == nil {
		return d, fmt.Errorf("%w: no SampleExtractor configured", ErrConfig)
	}

	restricted := cfg.Flags&FlagRestricted != 0
	bps := cfg.BitsPerSample

	switch {
	case restricted && bps >= 5 && bps <= 8:
		return d, fmt.Errorf("%w: RESTRICTED is invalid for bits_per_sample %d (valid only for <=4 or >8)", ErrConfig, bps)
	case bps > 16:
		d.idLen = 5
	case bps >= 9:
		d.idLen = 4
	case restricted && bps >= 3:
		d.idLen = 2
	case restricted:
		d.idLen = 1
	default:
		d.idLen = 3
	}
	d.kmax = (1 << d.idLen) - 3

	if cfg.Flags&FlagSigned != 0 {
		d.xmin = -(int64(1) << (bps - 1))
		d.xmax = int64(1)<<(bps-1) - 1
	} else {
		d.xmin = 0
		d.xmax = int64(1)<<bps - 1
	}

	d.bytesPerSample = cfg.Extractor.BytesPerSample()
	d.rsiLen = cfg.RSI * cfg.BlockSize * d.bytesPerSample

	if cfg.CDSLen != 0 {
		d.cdsLen = cfg.CDSLen
	} else {
		d.cdsLen = cdsLen(cfg.BlockSize, bps)
	}
	if d.cdsLen <= 0 {
		return d, fmt.Errorf("%w: computed CDSLen %d is not usable", ErrMem, d.cdsLen)
	}

	return d, nil
}

// cdsLen computes the worst-case byte length of a single block's CDS
// (spec.md §4.7). select_code_option (§4.4) never emits a coding
// longer than uncomp_len = block_size*bits_per_sample (uncompressed is
// always a fallback option), so the worst case is: the option-ID field
// (at most id_len+1 = 6 bits), one literal reference sample, and the
// full uncompressed payload.
func cdsLen(blockSize, bitsPerSample int) int {
	headerBits := 6
	refBits := bitsPerSample
	payloadBits := blockSize * bitsPerSample
	total := headerBits + refBits + payloadBits
	return (total+7)/8 + 4 // +4 bytes of slack
}

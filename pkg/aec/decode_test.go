package aec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bitReader is the test-only inverse of bitWriter (spec.md §8's
// round-trip property needs a decoder, which the CORE itself never
// implements). It is never used outside this file.
type bitReader struct {
	buf []byte
	pos int // absolute bit position
}

func (r *bitReader) readBits(n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		byteIdx := r.pos / 8
		shift := 7 - r.pos%8
		bit := (r.buf[byteIdx] >> uint(shift)) & 1
		v = v<<1 | uint32(bit)
		r.pos++
	}
	return v
}

func (r *bitReader) readFS() int {
	n := 0
	for r.readBits(1) == 0 {
		n++
	}
	return n
}

// invTriangular inverts s*(s+1)/2 <= v < (s+1)*(s+2)/2.
func invTriangular(v int) int {
	s := int((math.Sqrt(8*float64(v)+1) - 1) / 2)
	for s*(s+1)/2 > v {
		s--
	}
	for (s+1)*(s+2)/2 <= v {
		s++
	}
	return s
}

// decodeSplitting is the inverse of emitSplitting, given the ID field
// has already been consumed by the caller.
func decodeSplitting(r *bitReader, k int, ref bool, blockSize, bitsPerSample int) []uint32 {
	out := make([]uint32, blockSize)
	start := 0
	if ref {
		out[0] = r.readBits(bitsPerSample)
		start = 1
	}
	q := make([]int, blockSize-start)
	for i := range q {
		q[i] = r.readFS()
	}
	for i := range q {
		lo := 0
		if k > 0 {
			lo = int(r.readBits(k))
		}
		out[start+i] = uint32(q[i]<<uint(k) | lo)
	}
	return out
}

// decodeUncompressed is the inverse of emitUncompressed.
func decodeUncompressed(r *bitReader, blockSize, bitsPerSample int) []uint32 {
	out := make([]uint32, blockSize)
	for i := range out {
		out[i] = r.readBits(bitsPerSample)
	}
	return out
}

// decodeSecondExtension is the inverse of emitSecondExtension. ref's
// literal bits are consumed but not separately trusted: the pairing
// loop covers the full block (see emit.go's doc comment) and
// reconstructs position 0 identically to the literal by construction.
func decodeSecondExtension(r *bitReader, ref bool, blockSize, bitsPerSample int) []uint32 {
	out := make([]uint32, blockSize)
	if ref {
		r.readBits(bitsPerSample)
	}
	for i := 0; i+1 < blockSize; i += 2 {
		v := r.readFS()
		s := invTriangular(v)
		b := v - s*(s+1)/2
		a := s - b
		out[i] = uint32(a)
		out[i+1] = uint32(b)
	}
	return out
}

// decodeZeroRunCount is the inverse of emitZeroRun's tiered run-count
// encoding (emit.go's doc comment).
func decodeZeroRunCount(v int) int {
	switch {
	case v <= 3:
		return v + 1
	case v == 4:
		return 64
	default:
		return v
	}
}

func TestRoundTripSplitting(t *testing.T) {
	buf := make([]byte, 64)
	var w bitWriter
	w.reset(buf, 0)

	block := []uint32{7, 1, 2, 3, 4, 5, 6, 7}
	k := 1
	emitSplitting(&w, block, true, k, 3, 8)

	r := &bitReader{buf: buf}
	prefix := r.readBits(3)
	require.Equal(t, uint32(k+1), prefix)
	got := decodeSplitting(r, k, true, 8, 8)
	assert.Equal(t, block, got)
}

func TestRoundTripUncompressed(t *testing.T) {
	buf := make([]byte, 64)
	var w bitWriter
	w.reset(buf, 0)

	block := make([]uint32, 8)
	for i := range block {
		block[i] = 0xFF
	}
	emitUncompressed(&w, block, 3, 8)

	r := &bitReader{buf: buf}
	prefix := r.readBits(3)
	require.Equal(t, uint32(7), prefix) // (1<<3)-1
	got := decodeUncompressed(r, 8, 8)
	assert.Equal(t, block, got)

	assert.Equal(t, 9, w.bytesWritten(0)) // 3 + 64 bits = 67 bits = 9 bytes
}

func TestRoundTripSecondExtension(t *testing.T) {
	buf := make([]byte, 64)
	var w bitWriter
	w.reset(buf, 0)

	block := []uint32{3, 1, 0, 2, 4, 0, 1, 1}
	emitSecondExtension(&w, block, true, 3, 8)

	r := &bitReader{buf: buf}
	prefix := r.readBits(4) // idLen+1
	require.Equal(t, uint32(1), prefix)
	got := decodeSecondExtension(r, true, 8, 8)
	assert.Equal(t, block, got)
}

func TestRoundTripZeroRunSingleBlock(t *testing.T) {
	buf := make([]byte, 64)
	var w bitWriter
	w.reset(buf, 0)

	run := zeroRun{blocks: 1, ref: true, refSample: 0}
	emitZeroRun(&w, run, 3, 8)

	r := &bitReader{buf: buf}
	prefix := r.readBits(4)
	require.Equal(t, uint32(0), prefix)
	refVal := r.readBits(8)
	assert.Equal(t, uint32(0), refVal)
	n := decodeZeroRunCount(r.readFS())
	assert.Equal(t, 1, n)
}

func TestRoundTripZeroRunROS(t *testing.T) {
	buf := make([]byte, 64)
	var w bitWriter
	w.reset(buf, 0)

	run := zeroRun{blocks: 64, ref: false}
	emitZeroRun(&w, run, 3, 8)

	r := &bitReader{buf: buf}
	prefix := r.readBits(4)
	require.Equal(t, uint32(0), prefix)
	n := decodeZeroRunCount(r.readFS())
	assert.Equal(t, 64, n)
}

// Scenario 1 (spec.md §8): an all-zero block round-trips through a
// zero-run CDS. Being the reference block of its RSI, it still pays
// the literal reference-sample cost (4 id bits + 8 ref bits + 1 fs
// bit = 2 bytes); a non-reference all-zero block later in a longer
// RSI has no ref literal and compresses to a single byte.
func TestScenario1AllZeroBlock(t *testing.T) {
	buf := make([]byte, 64)
	var w bitWriter
	w.reset(buf, 0)

	run := zeroRun{blocks: 1, ref: true, refSample: 0}
	emitZeroRun(&w, run, 3, 8)
	assert.Equal(t, 2, w.bytesWritten(0))

	buf2 := make([]byte, 64)
	w.reset(buf2, 0)
	run2 := zeroRun{blocks: 1, ref: false}
	emitZeroRun(&w, run2, 3, 8)
	assert.Equal(t, 1, w.bytesWritten(0))
}

// Scenario 2: an all-0xFF block forces the uncompressed fallback.
func TestScenario2AllOnesBlockUsesUncompressed(t *testing.T) {
	block := make([]uint32, 8)
	for i := range block {
		block[i] = 0xFF
	}
	opt, _, length := selectCodeOption(block, false, 0, 29, 3, 8*8)
	assert.Equal(t, optionUncompressed, opt)
	assert.Equal(t, 64, length)
}

// Scenario 3: [0..7] picks splitting with a small k.
func TestScenario3MonotonicSmallBlockPicksSplitting(t *testing.T) {
	block := []uint32{0, 1, 2, 3, 4, 5, 6, 7}
	opt, k, _ := selectCodeOption(block, false, 0, 29, 3, 8*8)
	assert.Equal(t, optionSplitting, opt)
	assert.LessOrEqual(t, k, 1)
}

// Scenario 4: preprocess on, signed, 16-bit, monotonically increasing
// by 1 maps every residual to 2, selecting k=0.
func TestScenario4PreprocessMonotonicPicksKZero(t *testing.T) {
	src := []uint32{100, 101, 102, 103, 104, 105, 106, 107}
	dst := make([]uint32, len(src))
	preprocess(dst, src, true, 16, -32768, 32767)

	for i := 1; i < len(dst); i++ {
		assert.Equal(t, uint32(2), dst[i])
	}

	opt, k, _ := selectCodeOption(dst, true, 0, 29, 4, 7*16)
	assert.Equal(t, optionSplitting, opt)
	assert.Equal(t, 0, k)
}

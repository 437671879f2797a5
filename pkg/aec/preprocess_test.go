package aec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignExtend(t *testing.T) {
	assert.Equal(t, int64(-1), signExtend(0xFF, 8))
	assert.Equal(t, int64(127), signExtend(0x7F, 8))
	assert.Equal(t, int64(-128), signExtend(0x80, 8))
	assert.Equal(t, int64(0), signExtend(0x0, 8))
}

func TestPreprocessResidualsStayInRange(t *testing.T) {
	bits := 8
	xmin, xmax := int64(0), int64(255)

	src := []uint32{10, 200, 0, 255, 128, 3, 250}
	dst := make([]uint32, len(src))
	preprocess(dst, src, false, bits, xmin, xmax)

	assert.Equal(t, src[0], dst[0])
	for i := 1; i < len(dst); i++ {
		assert.GreaterOrEqual(t, int64(dst[i]), int64(0))
		assert.LessOrEqual(t, int64(dst[i]), xmax-xmin)
	}
}

func TestPreprocessSignedRange(t *testing.T) {
	bits := 8
	xmin, xmax := int64(-128), int64(127)

	src := make([]uint32, 0, 256)
	for v := -128; v <= 127; v++ {
		src = append(src, uint32(int8(v)))
	}
	dst := make([]uint32, len(src))
	preprocess(dst, src, true, bits, xmin, xmax)

	for i := 1; i < len(dst); i++ {
		assert.LessOrEqual(t, int64(dst[i]), xmax-xmin)
	}
}

func TestPreprocessMonotonicIncreasingMapsToEvenCodes(t *testing.T) {
	// A strictly increasing run within theta stays on the "delta>=0"
	// branch of spec.md §4.3, which always produces an even code.
	bits := 8
	xmin, xmax := int64(0), int64(255)

	src := []uint32{100, 101, 102, 103, 104}
	dst := make([]uint32, len(src))
	preprocess(dst, src, false, bits, xmin, xmax)

	for i := 1; i < len(dst); i++ {
		assert.Equal(t, uint32(2), dst[i])
	}
}

func TestPreprocessAliasedSrcDst(t *testing.T) {
	bits := 8
	xmin, xmax := int64(0), int64(255)

	buf := []uint32{5, 5, 5, 5}
	preprocess(buf, buf, false, bits, xmin, xmax)

	assert.Equal(t, uint32(5), buf[0])
	for i := 1; i < len(buf); i++ {
		assert.Equal(t, uint32(0), buf[i]) // no change -> delta 0 -> d=0
	}
}

package aec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitWriterEmit(t *testing.T) {
	buf := make([]byte, 4)
	var w bitWriter
	w.reset(buf, 0)

	w.emit(0xF, 4)
	w.emit(0x0, 4)

	assert.Equal(t, byte(0xF0), buf[0])
}

func TestBitWriterEmitCrossesBytes(t *testing.T) {
	buf := make([]byte, 4)
	var w bitWriter
	w.reset(buf, 0)

	w.emit(0x1FF, 9) // 9 bits, all set: 1_1111_1111
	assert.Equal(t, byte(0xFF), buf[0])
	assert.Equal(t, byte(0x80), buf[1])
	assert.Equal(t, uint8(7), w.bits)
}

func TestBitWriterEmitfs(t *testing.T) {
	tests := []struct {
		n    int
		want byte
	}{
		{0, 0x80},
		{1, 0x40},
		{3, 0x10},
		{7, 0x01},
	}
	for _, tt := range tests {
		buf := make([]byte, 4)
		var w bitWriter
		w.reset(buf, 0)
		w.emitfs(tt.n)
		assert.Equalf(t, tt.want, buf[0], "emitfs(%d)", tt.n)
	}
}

func TestBitWriterEmitfsCrossesByteBoundary(t *testing.T) {
	buf := make([]byte, 4)
	var w bitWriter
	w.reset(buf, 0)

	w.emitfs(10) // 10 zero bits then a 1: fills the first byte, ends 3 bits into the second
	assert.Equal(t, byte(0x00), buf[0])
	assert.Equal(t, byte(0x20), buf[1])
}

func TestBitWriterInvariantHoldsAcrossResumeByte(t *testing.T) {
	bufA := make([]byte, 4)
	var w bitWriter
	w.reset(bufA, 0)
	w.emit(0x3, 3) // leaves 5 free bits, byte = 011_00000

	carry := bufA[0]
	free := w.bits
	require.Equal(t, uint8(5), free)

	bufB := make([]byte, 4)
	w.resumeByte(bufB, 0, carry, free)
	w.emit(0x1F, 5) // fill the remaining 5 bits

	assert.Equal(t, byte(0x7F), bufB[0])
}

func TestEmitBlockFSAndEmitBlockSkipReference(t *testing.T) {
	buf := make([]byte, 16)
	var w bitWriter
	w.reset(buf, 0)

	block := []uint32{0, 5, 9, 2}
	w.emitblockFS(block, 2, true) // skip index 0 (ref); fs(d>>2) for {5,9,2} -> {1,2,0}
	w.emitblock(block, 2, true)   // low 2 bits of {5,9,2} -> {01,01,10}

	written := w.bytesWritten(0)
	assert.Greater(t, written, 0)
	assert.LessOrEqual(t, written, 16)
}

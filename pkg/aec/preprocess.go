package aec

// signExtend undoes the raw bit pattern of a two's-complement sample
// of width bits into a full-width int64, via the XOR-subtract trick
// spec.md §4.3 names: x = (raw XOR m) - m, m = 1 << (bits-1).
func signExtend(raw uint32, bits int) int64 {
	m := int64(1) << uint(bits-1)
	return (int64(raw) ^ m) - m
}

// preprocess maps raw samples into non-negative mapped residuals
// (spec.md §4.3, component C3), writing into dst. src and dst may be
// the same underlying array (the encoder always calls it that way, on
// its single per-RSI buffer); the mapping then overwrites the raw
// samples in place, so src no longer holds them afterwards.
func preprocess(dst []uint32, src []uint32, signed bool, bits int, xmin, xmax int64) {
	if len(src) == 0 {
		return
	}

	toSigned := func(raw uint32) int64 {
		if signed {
			return signExtend(raw, bits)
		}
		return int64(raw)
	}

	x0 := toSigned(src[0])
	dst[0] = src[0] // reference sample kept literal (its raw bit pattern)

	xPrev := x0
	for i := 1; i < len(src); i++ {
		x := toSigned(src[i])
		theta := xPrev - xmin
		if xmax-xPrev < theta {
			theta = xmax - xPrev
		}
		delta := x - xPrev

		var d int64
		switch {
		case delta >= 0 && delta <= theta:
			d = 2 * delta
		case delta < 0 && delta >= -theta:
			d = 2*(-delta) - 1
		default:
			d = theta + absInt64(delta)
		}

		dst[i] = uint32(d)
		xPrev = x
	}
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

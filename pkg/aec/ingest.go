package aec

// ingestStatus reports the outcome of one ingestRSI attempt.
type ingestStatus int

const (
	ingestDone       ingestStatus = iota // data_raw[0:rsi*block_size) is ready (possibly padded)
	ingestNeedInput                      // starved; caller must replenish NextIn and call again
	ingestFinalize                       // FLUSH requested with nothing buffered; stream ends
)

// ingestRSI implements spec.md §4.2, component C2: pull one RSI worth
// of samples through the injected SampleExtractor, resuming across
// calls when input runs dry. It also sets st.blocksAvail for the RSI
// it fills, including the padded-short-RSI case spec.md describes.
func ingestRSI(sess *Session, cfg Config, d derived, blockSize, rsi int) ingestStatus {
	st := sess.st
	total := rsi * blockSize

	if st.rsiIdx == 0 && len(sess.NextIn) >= d.rsiLen {
		cfg.Extractor.FillRSI(st.dataRaw[:total], sess.NextIn[:d.rsiLen])
		sess.NextIn = sess.NextIn[d.rsiLen:]
		sess.TotalIn += uint64(d.rsiLen)
		st.rsiIdx = total
		st.blocksAvail = rsi - 1
		return ingestDone
	}

	for st.rsiIdx < total && len(sess.NextIn) >= d.bytesPerSample {
		st.dataRaw[st.rsiIdx] = cfg.Extractor.Sample(sess.NextIn[:d.bytesPerSample])
		sess.NextIn = sess.NextIn[d.bytesPerSample:]
		sess.TotalIn += uint64(d.bytesPerSample)
		st.rsiIdx++
	}

	if st.rsiIdx == total {
		st.blocksAvail = rsi - 1
		return ingestDone
	}

	if !st.flushReq {
		return ingestNeedInput
	}
	if st.rsiIdx == 0 {
		return ingestFinalize
	}

	// FLUSH with a partial RSI: replicate the last observed sample to
	// pad out to a whole number of blocks (spec.md §4.2).
	last := st.dataRaw[st.rsiIdx-1]
	for i := st.rsiIdx; i < total; i++ {
		st.dataRaw[i] = last
	}
	realBlocks := (st.rsiIdx + blockSize - 1) / blockSize
	st.blocksAvail = realBlocks - 1
	st.rsiIdx = total
	return ingestDone
}

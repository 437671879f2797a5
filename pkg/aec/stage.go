package aec

// stageOutput implements spec.md §4.7: at the top of every get_block,
// decide whether output can be written directly into the caller's
// buffer or must go through the internal staging buffer, and relocate
// the one pending partially-written byte (if any) to the front of
// whichever buffer was chosen. This runs unconditionally, even when
// the mode doesn't change: in direct mode the byte is rewritten into
// the spot it already occupies, and in staged mode it moves to the
// front of the staging buffer, whose earlier bytes are all delivered.
func stageOutput(sess *Session, d derived) {
	st := sess.st
	if len(sess.NextOut) > d.cdsLen {
		st.direct = true
		st.bw.resumeByte(sess.NextOut, 0, st.carryByte, st.carryFree)
	} else {
		st.direct = false
		st.bw.resumeByte(st.staging, 0, st.carryByte, st.carryFree)
	}
}

// closeBlockOutput is called once an emitter has finished writing one
// block's CDS into st.bw. pad, when true, completes the current byte
// with zero bits (spec.md §4.6 flush_block's RSI-padding case). It
// records which bytes are now final (ready to deliver to the caller)
// and which single byte remains open for continuation by the next
// block, and arms the FSM to deliver them.
func closeBlockOutput(st *state, pad bool) {
	if pad && st.bw.bits != 8 {
		st.bw.emit(0, int(st.bw.bits))
	}
	st.readyBytes = st.bw.pos
	st.copyIdx = 0
	if st.bw.bits != 8 {
		st.carryByte = st.bw.buf[st.bw.pos]
	} else {
		st.carryByte = 0
	}
	st.carryFree = st.bw.bits
}

// drainReady copies st's ready bytes (from whichever buffer bw is
// currently backed by) into sess.NextOut, resuming at st.copyIdx
// across suspended Encode calls. It reports whether the full ready
// range was delivered.
func drainReady(sess *Session) (done bool) {
	st := sess.st
	if st.direct {
		// The bytes already live in sess.NextOut's backing array
		// (bw.buf IS sess.NextOut here); just advance the cursor.
		n := st.readyBytes
		sess.NextOut = sess.NextOut[n:]
		sess.TotalOut += uint64(n)
		st.copyIdx = n
		return true
	}

	n := copy(sess.NextOut, st.staging[st.copyIdx:st.readyBytes])
	sess.NextOut = sess.NextOut[n:]
	sess.TotalOut += uint64(n)
	st.copyIdx += n
	return st.copyIdx >= st.readyBytes
}

package aec

// currentBlock returns the block_size-sample window the FSM is
// currently positioned at within the current RSI's residual buffer.
func currentBlock(st *state, blockSize int) []uint32 {
	return st.dataPP[st.blockOff : st.blockOff+blockSize]
}

// step runs exactly one FSM transition (spec.md §4.6, component C6).
// It returns true when the caller must be given control back (an EXIT
// point: input starvation, output starvation, or stream completion),
// false to keep looping within the same Encode call.
func step(sess *Session, cfg Config, d derived) bool {
	st := sess.st
	blockSize := cfg.BlockSize
	rsi := cfg.RSI
	bps := cfg.BitsPerSample

	switch st.mode {
	case modeGetBlock:
		stageOutput(sess, d)

		if st.blockNonzero {
			st.blockNonzero = false
			st.mode = modeSelectCodeOption
			return false
		}

		if st.blocksAvail == 0 {
			st.mode = modeGetRSI
			return false
		}

		wasRef := st.ref
		st.blockOff += blockSize
		st.blocksAvail--
		if wasRef {
			st.ref = false
			st.uncompLen = blockSize * bps
		}
		st.mode = modeCheckZeroBlock
		return false

	case modeGetRSI:
		switch ingestRSI(sess, cfg, d, blockSize, rsi) {
		case ingestDone:
			st.blockOff = 0
			st.ref = true
			st.uncompLen = (blockSize - 1) * bps
			if cfg.Flags&FlagPreprocess != 0 {
				preprocess(st.dataPP, st.dataRaw, cfg.Flags&FlagSigned != 0, bps, d.xmin, d.xmax)
			}
			st.rsiIdx = 0
			st.mode = modeCheckZeroBlock
			return false
		case ingestNeedInput:
			return true
		default: // ingestFinalize
			st.mode = modeFinalize
			return false
		}

	case modeCheckZeroBlock:
		block := currentBlock(st, blockSize)
		start := 0
		if st.ref {
			start = 1
		}
		nonzero := false
		for _, v := range block[start:] {
			if v != 0 {
				nonzero = true
				break
			}
		}

		if nonzero {
			if st.zr.blocks > 0 {
				st.blockNonzero = true
				st.mode = modeEncodeZero
			} else {
				st.mode = modeSelectCodeOption
			}
			return false
		}

		if st.zr.blocks == 0 {
			st.zr.ref = st.ref
			st.zr.refSample = block[0]
		}
		st.zr.blocks++

		lastOfRSI := st.blocksAvail == 0
		segBoundary := (rsi-st.blocksAvail)%64 == 0
		if lastOfRSI || segBoundary {
			// A run of more than 4 blocks ending here is sent as the
			// Run-Of-Segments escape; runs of 1-4 keep their count code.
			if st.zr.blocks > 4 {
				st.zr.blocks = 64
			}
			st.mode = modeEncodeZero
		} else {
			st.mode = modeGetBlock
		}
		return false

	case modeSelectCodeOption:
		block := currentBlock(st, blockSize)
		opt, k, _ := selectCodeOption(block, st.ref, st.k, d.kmax, d.idLen, st.uncompLen)
		st.k = k
		switch opt {
		case optionSplitting:
			st.mode = modeEncodeSplitting
		case optionSecondExtension:
			st.mode = modeEncodeSE
		default:
			st.mode = modeEncodeUncomp
		}
		return false

	case modeEncodeSplitting:
		emitSplitting(&st.bw, currentBlock(st, blockSize), st.ref, st.k, d.idLen, bps)
		st.mode = modeFlushBlock
		return false

	case modeEncodeUncomp:
		emitUncompressed(&st.bw, currentBlock(st, blockSize), d.idLen, bps)
		st.mode = modeFlushBlock
		return false

	case modeEncodeSE:
		emitSecondExtension(&st.bw, currentBlock(st, blockSize), st.ref, d.idLen, bps)
		st.mode = modeFlushBlock
		return false

	case modeEncodeZero:
		emitZeroRun(&st.bw, st.zr, d.idLen, bps)
		st.zr = zeroRun{}
		st.mode = modeFlushBlock
		return false

	case modeFlushBlock:
		pad := cfg.Flags&FlagPadRSI != 0 && st.blocksAvail == 0 && !st.blockNonzero
		closeBlockOutput(st, pad)
		if st.direct {
			drainReady(sess)
			st.mode = modeGetBlock
			return false
		}
		st.mode = modeFlushBlockResumable
		return false

	case modeFlushBlockResumable:
		if drainReady(sess) {
			st.mode = modeGetBlock
			return false
		}
		return true

	case modeFinalize:
		stageOutput(sess, d)
		if st.bw.bits != 8 {
			st.bw.emit(0, int(st.bw.bits))
		}
		st.readyBytes = st.bw.pos
		st.copyIdx = 0
		st.carryByte = 0
		st.carryFree = 8
		st.mode = modeFinalizeResumable
		return false

	case modeFinalizeResumable:
		done := drainReady(sess)
		if done {
			st.finished = true
			st.mode = modeDone
		}
		return true

	default: // modeDone
		return true
	}
}

package aec

// fsmMode enumerates the encoder's states (spec.md §4.6, §9's
// "enum of states with a step function" re-architecture note).
type fsmMode int

const (
	modeGetBlock fsmMode = iota
	modeGetRSI
	modeCheckZeroBlock
	modeSelectCodeOption
	modeEncodeSplitting
	modeEncodeUncomp
	modeEncodeSE
	modeEncodeZero
	modeFlushBlock
	modeFlushBlockResumable
	modeFinalize
	modeFinalizeResumable
	modeDone
)

// zeroRun is the per-RSI zero-block aggregator of spec.md §3
// ("Zero-run aggregator").
type zeroRun struct {
	blocks    int
	ref       bool
	refSample uint32
}

// state is the internal, resumable working state of one Session
// (spec.md §3's "Per-RSI working state" + "Bit-writer state" +
// "Output-staging state" + "FSM state"). It is owned exclusively by
// the Session that created it; there is no shared/global state
// (spec.md §9's re-architecture note against "globally accessible
// mutable session state").
type state struct {
	mode fsmMode

	dataRaw []uint32 // raw samples for the current RSI, rsi*block_size long
	dataPP  []uint32 // mapped residuals; always shares dataRaw's backing array

	blockOff    int // sample offset of the current block within dataPP
	blocksAvail int // blocks still unencoded in the current RSI
	ref         bool
	uncompLen   int
	k           int // splitting seed carried from the previous block

	zr           zeroRun
	blockNonzero bool // a non-zero block is pending behind a just-flushed zero run

	rsiIdx   int  // next unfilled sample index within dataRaw for the current RSI
	flushReq bool // FLUSH requested on the Encode call in progress
	finished bool // the stream has delivered its final padded byte

	// Output staging (C7).
	direct     bool
	staging    []byte
	bw         bitWriter
	carryByte  byte
	carryFree  uint8 // free low bits remaining in carryByte; 8 means "nothing pending"
	readyBytes int    // bytes in the active buffer ([0:readyBytes)) ready to deliver
	copyIdx    int    // drain cursor for flush_block_resumable / finalize_resumable
}

func newState(d derived, rsi, blockSize int) *state {
	n := rsi * blockSize
	st := &state{
		mode:      modeGetBlock,
		dataPP:    make([]uint32, n),
		carryFree: 8,
		staging:   make([]byte, d.cdsLen),
	}
	st.dataRaw = st.dataPP // one buffer; preprocess maps it in place when enabled (spec.md §9)
	return st
}

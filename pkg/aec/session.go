package aec

import "fmt"

// Flush selects whether Encode should try to finish the stream.
type Flush int

const (
	// NoFlush processes as much input/output as the caller's buffers
	// allow and returns; more input may follow in a later call.
	NoFlush Flush = iota
	// FlushFinish tells Encode this is the last input: pad any
	// partial trailing RSI, flush the final byte, and mark the
	// stream finished.
	FlushFinish
)

// Session is one encoding stream (spec.md §3/§6). NextIn/TotalIn and
// NextOut/TotalOut are re-sliced forward as bytes are consumed and
// produced, the idiomatic Go rendition of the next_in/avail_in and
// next_out/avail_out cursor pairs of spec.md §6.
type Session struct {
	NextIn   []byte
	TotalIn  uint64
	NextOut  []byte
	TotalOut uint64

	cfg Config
	d   derived
	st  *state
}

// Init validates cfg and allocates a new Session (spec.md §6's init).
func Init(cfg Config) (*Session, error) {
	d, err := deriveConfig(cfg)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		cfg: cfg,
		d:   d,
		st:  newState(d, cfg.RSI, cfg.BlockSize),
	}
	return sess, nil
}

// Encode runs the FSM until it must yield control back to the caller
// (spec.md §6's encode): either because NextIn is exhausted and more
// input is needed, because NextOut is exhausted and more output
// capacity is needed, or because the stream finished flushing.
func (s *Session) Encode(flush Flush) error {
	s.st.flushReq = flush == FlushFinish
	for {
		if step(s, s.cfg, s.d) {
			return nil
		}
	}
}

// Finished reports whether the stream has delivered its final padded
// byte after a FlushFinish.
func (s *Session) Finished() bool {
	return s.st != nil && s.st.finished
}

// End releases the Session's buffers. If a FlushFinish was requested
// on a prior Encode call and the stream never finished flushing (the
// caller stopped supplying output capacity), End returns ErrStream.
func (s *Session) End() error {
	requestedFinish := s.st.flushReq
	finished := s.st.finished
	s.st = nil
	if requestedFinish && !finished {
		return ErrStream
	}
	return nil
}

// BufferEncode is the convenience entry point of spec.md §6:
// init + encode(FLUSH) + end in one call, growing the output buffer
// as needed so the caller never has to size it up front.
func BufferEncode(cfg Config, input []byte) ([]byte, error) {
	sess, err := Init(cfg)
	if err != nil {
		return nil, err
	}

	var out []byte
	sess.NextIn = input

	chunk := cfg.RSI*cfg.BlockSize*4 + 64
	for {
		start := len(out)
		out = append(out, make([]byte, chunk)...)
		sess.NextOut = out[start:]

		if err := sess.Encode(FlushFinish); err != nil {
			_ = sess.End()
			return nil, err
		}

		produced := len(out) - len(sess.NextOut)
		out = out[:produced]

		if s := sess.st; s != nil && s.finished {
			break
		}
		if len(sess.NextOut) > 0 {
			// Encode returned without consuming NextOut to zero and
			// without finishing: nothing more it can do (input is
			// fully drained but the stream hasn't flushed), which
			// should not happen for a well-formed session.
			return nil, fmt.Errorf("aec: encode stalled without finishing")
		}
	}

	if err := sess.End(); err != nil {
		return nil, err
	}
	return out, nil
}

package parsec

import (
	"io"

	"github.com/conduit-lang/parsec/internal/pool"
)

const readChunk = 128

// internalError is the error slot of the parse state: the last failure
// recorded by a primitive, inspected and merged by alternation.
type internalError[T comparable] struct {
	set           bool
	offset        int
	unexpected    T
	hasUnexpected bool
	eof           bool
	message       string
	delta         SourcePosDelta
}

// State is the mutable heart of a single parse: a buffered window over the
// token stream, the current offset, the bookmark stack that pins the window
// for rewinding, the error slot, and the source-position cache.
//
// A State is created by the driver, lives for exactly one parse, and is
// mutated by exactly one stack of parser invocations. It is exposed only so
// that NewParser extensions can be written; see the warning there.
type State[T comparable] struct {
	cfg    *config[T]
	stream TokenStream[T]

	buf        []T // tokens [base, base+len(buf))
	base       int // absolute offset of buf[0]
	offset     int // current absolute offset
	streamDone bool
	zeroCopy   bool // buf is the caller's slice, never pooled or compacted
	ioErr      error

	bookmarks []int

	err internalError[T]

	// baseDelta is the source-position delta from the start of input to
	// base; cacheOffset/cacheDelta anchor the last computed position so
	// that monotonic queries are amortised O(1).
	baseDelta   SourcePosDelta
	cacheOffset int
	cacheDelta  SourcePosDelta

	expFree []*ExpectedSet[T]
}

func newState[T comparable](stream TokenStream[T], cfg *config[T]) *State[T] {
	s := &State[T]{cfg: cfg, stream: stream}
	if ss, ok := stream.(*SliceStream[T]); ok {
		s.buf = ss.data[ss.pos:]
		s.streamDone = true
		s.zeroCopy = true
		return s
	}
	s.buf = cfg.pool.Get(readChunk)
	return s
}

func (s *State[T]) release() {
	if s.buf != nil && !s.zeroCopy {
		s.cfg.pool.Put(s.buf)
	}
	s.buf = nil
	for _, e := range s.expFree {
		pool.Put(e.items)
		e.items = nil
	}
	s.expFree = nil
}

// Offset returns the current absolute token offset.
func (s *State[T]) Offset() int { return s.offset }

func (s *State[T]) available() int { return s.base + len(s.buf) - s.offset }

// ensure extends the lookahead window until at least n tokens are available
// past the current offset or the stream ends. It returns min(n, available).
func (s *State[T]) ensure(n int) int {
	for s.available() < n && !s.streamDone {
		s.fill()
	}
	if a := s.available(); a < n {
		return a
	}
	return n
}

func (s *State[T]) fill() {
	if len(s.buf) == cap(s.buf) {
		s.compact()
		if len(s.buf) == cap(s.buf) {
			s.grow(2 * cap(s.buf))
		}
	}
	n, err := s.stream.Read(s.buf[len(s.buf):cap(s.buf)])
	s.buf = s.buf[:len(s.buf)+n]
	if err != nil {
		s.streamDone = true
		if err != io.EOF {
			s.ioErr = err
		}
		return
	}
	if n == 0 {
		s.streamDone = true
	}
}

// compact drops tokens no bookmark can rewind to, folding their deltas into
// baseDelta so positions stay computable.
func (s *State[T]) compact() {
	low := s.offset
	if len(s.bookmarks) > 0 && s.bookmarks[0] < low {
		low = s.bookmarks[0]
	}
	drop := low - s.base
	if drop <= 0 {
		return
	}
	for _, tok := range s.buf[:drop] {
		s.baseDelta = s.baseDelta.Add(s.cfg.posDelta(tok))
	}
	if s.cacheOffset < low {
		s.cacheOffset = low
		s.cacheDelta = s.baseDelta
	}
	s.buf = s.buf[:copy(s.buf, s.buf[drop:])]
	s.base = low
}

func (s *State[T]) grow(min int) {
	nb := s.cfg.pool.Get(min)
	nb = nb[:len(s.buf)]
	copy(nb, s.buf)
	if !s.zeroCopy {
		s.cfg.pool.Put(s.buf)
	}
	s.zeroCopy = false
	s.buf = nb
}

// HasCurrent reports whether a token is available at the current offset.
func (s *State[T]) HasCurrent() bool { return s.ensure(1) >= 1 }

// Current returns the token at the current offset. It is only meaningful
// when HasCurrent is true; at end of input it returns the zero token.
func (s *State[T]) Current() T {
	if !s.HasCurrent() {
		var zero T
		return zero
	}
	return s.buf[s.offset-s.base]
}

// Advance moves the current offset forward by up to n tokens, extending the
// lookahead window as needed. Advancing past end of input stops at the
// frontier.
func (s *State[T]) Advance(n int) {
	if n <= 0 {
		return
	}
	s.offset += s.ensure(n)
}

// LookAhead returns up to n tokens starting at the current offset without
// advancing. The returned slice aliases the state's buffer and is only
// valid until the next state operation.
func (s *State[T]) LookAhead(n int) []T {
	a := s.ensure(n)
	i := s.offset - s.base
	return s.buf[i : i+a]
}

// Bookmark captures the current offset and pins the buffer so a later
// Rewind can restore it. Every bookmark must be released with exactly one
// of Rewind or DiscardBookmark, in stack order.
func (s *State[T]) Bookmark() int {
	s.bookmarks = append(s.bookmarks, s.offset)
	return s.offset
}

// Rewind restores the current offset to the most recent bookmark, which
// must be bm, and releases it.
func (s *State[T]) Rewind(bm int) {
	s.popBookmark(bm)
	s.offset = bm
}

// DiscardBookmark releases the most recent bookmark, which must be bm,
// without moving.
func (s *State[T]) DiscardBookmark(bm int) {
	s.popBookmark(bm)
}

func (s *State[T]) popBookmark(bm int) {
	n := len(s.bookmarks)
	if n == 0 || s.bookmarks[n-1] != bm {
		panic("parsec: bookmark released out of order")
	}
	s.bookmarks = s.bookmarks[:n-1]
}

// Window returns a copy of the buffered tokens in [from, to). Both offsets
// must still be inside the buffer; pin the range with a bookmark first.
func (s *State[T]) Window(from, to int) []T {
	if from < s.base || to > s.base+len(s.buf) || from > to {
		panic("parsec: window outside buffered region")
	}
	out := make([]T, to-from)
	copy(out, s.buf[from-s.base:to-s.base])
	return out
}

// posAt folds token deltas up to the given absolute offset, reusing the
// cached anchor when the query moves forward.
func (s *State[T]) posAt(off int) SourcePosDelta {
	if off < s.base {
		off = s.base
	}
	if max := s.base + len(s.buf); off > max {
		off = max
	}
	start, delta := s.base, s.baseDelta
	if s.cacheOffset >= s.base && s.cacheOffset <= off {
		start, delta = s.cacheOffset, s.cacheDelta
	}
	for i := start; i < off; i++ {
		delta = delta.Add(s.cfg.posDelta(s.buf[i-s.base]))
	}
	s.cacheOffset, s.cacheDelta = off, delta
	return delta
}

// ComputeSourcePosDelta returns the delta from the start of input to the
// current offset.
func (s *State[T]) ComputeSourcePosDelta() SourcePosDelta {
	return s.posAt(s.offset)
}

// SetError writes the error slot. hasUnexpected marks whether unexpected
// holds a token; eof marks failure at end of input.
func (s *State[T]) SetError(offset int, unexpected T, hasUnexpected, eof bool, message string) {
	s.err = internalError[T]{
		set:           true,
		offset:        offset,
		unexpected:    unexpected,
		hasUnexpected: hasUnexpected,
		eof:           eof,
		message:       message,
		delta:         s.posAt(offset),
	}
}

// SetErrorHere records a failure at the current offset, deriving the
// unexpected token (or the end-of-input flag) from the input itself.
func (s *State[T]) SetErrorHere(message string) {
	if s.HasCurrent() {
		s.SetError(s.offset, s.buf[s.offset-s.base], true, false, message)
		return
	}
	var zero T
	s.SetError(s.offset, zero, false, true, message)
}

func (s *State[T]) errSnapshot() internalError[T] { return s.err }

func (s *State[T]) restoreErr(e internalError[T]) { s.err = e }

func (s *State[T]) acquireExpSet() *ExpectedSet[T] {
	if n := len(s.expFree); n > 0 {
		e := s.expFree[n-1]
		s.expFree = s.expFree[:n-1]
		return e
	}
	return &ExpectedSet[T]{items: pool.Get[Expected[T]](8)}
}

func (s *State[T]) releaseExpSet(e *ExpectedSet[T]) {
	e.Clear()
	s.expFree = append(s.expFree, e)
}

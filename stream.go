package parsec

import (
	"bufio"
	"io"
	"iter"
)

// TokenStream is the pull interface the parse state reads tokens through.
// Read fills buf with up to len(buf) tokens and returns how many it wrote.
// Returning 0 with a nil error (or io.EOF) signals end of input. The state
// never seeks; rewinding is handled entirely by its own buffer.
type TokenStream[T any] interface {
	Read(buf []T) (int, error)
}

// SliceStream streams an in-memory slice. The parse state recognises it and
// uses the slice directly as its buffer, so no tokens are ever copied.
type SliceStream[T any] struct {
	data []T
	pos  int
}

// NewSliceStream returns a stream over toks. The slice is not copied; the
// caller must not mutate it while a parse is running.
func NewSliceStream[T any](toks []T) *SliceStream[T] {
	return &SliceStream[T]{data: toks}
}

func (s *SliceStream[T]) Read(buf []T) (int, error) {
	n := copy(buf, s.data[s.pos:])
	s.pos += n
	return n, nil
}

// StringStream streams the runes of s.
func StringStream(s string) *SliceStream[rune] {
	return NewSliceStream([]rune(s))
}

// SeqStream adapts an iter.Seq to a token stream, pulling one token per
// call. A parse abandoned before end of input should Close the stream to
// release the underlying iterator.
type SeqStream[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

// NewSeqStream returns a stream over seq.
func NewSeqStream[T any](seq iter.Seq[T]) *SeqStream[T] {
	next, stop := iter.Pull(seq)
	return &SeqStream[T]{next: next, stop: stop}
}

func (s *SeqStream[T]) Read(buf []T) (int, error) {
	if s.done || len(buf) == 0 {
		return 0, nil
	}
	v, ok := s.next()
	if !ok {
		s.Close()
		return 0, nil
	}
	buf[0] = v
	return 1, nil
}

// Close releases the underlying iterator. Safe to call more than once.
func (s *SeqStream[T]) Close() error {
	if !s.done {
		s.done = true
		s.stop()
	}
	return nil
}

type readerStream struct {
	r io.Reader
}

// NewReaderStream streams bytes from r for byte-level parsers.
func NewReaderStream(r io.Reader) TokenStream[byte] {
	return readerStream{r: r}
}

func (s readerStream) Read(buf []byte) (int, error) {
	n, err := s.r.Read(buf)
	if err == io.EOF {
		err = nil
	}
	return n, err
}

type runeStream struct {
	r io.RuneReader
}

// NewRuneStream streams runes from r for character-level parsers.
func NewRuneStream(r io.RuneReader) TokenStream[rune] {
	return runeStream{r: r}
}

// NewTextStream streams runes decoded from r.
func NewTextStream(r io.Reader) TokenStream[rune] {
	if rr, ok := r.(io.RuneReader); ok {
		return runeStream{r: rr}
	}
	return runeStream{r: bufio.NewReader(r)}
}

func (s runeStream) Read(buf []rune) (int, error) {
	for i := range buf {
		r, _, err := s.r.ReadRune()
		if err == io.EOF {
			return i, nil
		}
		if err != nil {
			return i, err
		}
		buf[i] = r
	}
	return len(buf), nil
}

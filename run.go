package parsec

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/parsec/internal/pool"
)

// BufferPool supplies the growable token buffer of a parse. Get returns a
// zero-length slice with capacity at least n; Put takes it back.
// Implementations must be safe for concurrent use.
type BufferPool[T any] interface {
	Get(n int) []T
	Put(s []T)
}

type sharedPool[T any] struct{}

func (sharedPool[T]) Get(n int) []T { return pool.Get[T](n) }
func (sharedPool[T]) Put(s []T)     { pool.Put(s) }

type config[T comparable] struct {
	posDelta func(T) SourcePosDelta
	pool     BufferPool[T]
	logger   *zap.Logger
}

// Option configures a single Parse invocation.
type Option[T comparable] func(*config[T])

// WithPosDelta overrides the token-to-position-delta function used for
// line/column tracking. The default maps '\n' runes and bytes to a line
// break and everything else to one column.
func WithPosDelta[T comparable](f func(T) SourcePosDelta) Option[T] {
	if f == nil {
		panic("parsec: nil position delta function")
	}
	return func(c *config[T]) { c.posDelta = f }
}

// WithPool overrides the buffer pool backing the token window. The default
// is a process-wide pool shared by all parses of the same token type.
func WithPool[T comparable](p BufferPool[T]) Option[T] {
	if p == nil {
		panic("parsec: nil buffer pool")
	}
	return func(c *config[T]) { c.pool = p }
}

// Parse runs the parser against input. On failure the returned error is a
// *ParseError; an I/O error from the underlying stream is returned wrapped
// in a plain error, never as a *ParseError.
func (p Parser[T, R]) Parse(input TokenStream[T], opts ...Option[T]) (R, error) {
	mustParser(p)
	if input == nil {
		panic("parsec: nil input stream")
	}
	var zero R
	cfg := &config[T]{posDelta: DefaultPosDelta[T], pool: sharedPool[T]{}}
	for _, opt := range opts {
		opt(cfg)
	}
	s := newState(input, cfg)
	defer s.release()
	exp := s.acquireExpSet()
	defer s.releaseExpSet(exp)
	v, ok := p.run(s, exp)
	if s.ioErr != nil {
		return zero, fmt.Errorf("parsec: reading input: %w", s.ioErr)
	}
	if !ok {
		return zero, s.BuildError(exp)
	}
	return v, nil
}

// MustParse is Parse, panicking on failure.
func (p Parser[T, R]) MustParse(input TokenStream[T], opts ...Option[T]) R {
	v, err := p.Parse(input, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseString runs a character parser over s.
func ParseString[R any](p Parser[rune, R], s string, opts ...Option[rune]) (R, error) {
	return p.Parse(StringStream(s), opts...)
}

// ParseSlice runs a parser over an in-memory token slice without copying.
func ParseSlice[T comparable, R any](p Parser[T, R], toks []T, opts ...Option[T]) (R, error) {
	return p.Parse(NewSliceStream(toks), opts...)
}

// ParseBytes runs a byte parser over b without copying.
func ParseBytes[R any](p Parser[byte, R], b []byte, opts ...Option[byte]) (R, error) {
	return p.Parse(NewSliceStream(b), opts...)
}

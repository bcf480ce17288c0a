// Package parsec is a parser-combinator library. Parsers are immutable
// values that consume tokens from a buffered stream and either yield a
// typed result or a structured "expected X, got Y at line:col" error.
//
// Parsers are generic over the token type T (anything comparable; runes and
// bytes are the common cases) and the result type R. They are built from
// the primitives (Token, Satisfy, Sequence, End, ...) and composed with
// combinators (Map, Bind, OneOf, Many, ...), then run against an input with
// Parse.
package parsec

// Unit is the result type of parsers that yield nothing useful, such as End
// and the Skip combinators.
type Unit struct{}

// Maybe holds an optional parse result, produced by Optional.
type Maybe[R any] struct {
	value R
	ok    bool
}

// Just wraps a present value.
func Just[R any](v R) Maybe[R] { return Maybe[R]{value: v, ok: true} }

// Nothing is the absent value.
func Nothing[R any]() Maybe[R] { return Maybe[R]{} }

// Get returns the value and whether it is present.
func (m Maybe[R]) Get() (R, bool) { return m.value, m.ok }

// OrElse returns the value, or def when absent.
func (m Maybe[R]) OrElse(def R) R {
	if m.ok {
		return m.value
	}
	return def
}

// Pair is a two-element tuple, used where a combinator needs to carry two
// results through a single parser value.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Parser consumes tokens of type T and produces an R. Parser values are
// immutable once constructed and may be shared freely, including across
// goroutines; all mutable state lives in the per-parse State.
type Parser[T comparable, R any] struct {
	run func(*State[T], *ExpectedSet[T]) (R, bool)
	// alts carries the flattened branch list when this parser was built by
	// OneOf, so nested alternations collapse at construction time.
	alts []Parser[T, R]
}

// NewParser builds a parser from a raw evaluation function: given the
// mutable state and the expected-accumulator, it returns the result and
// true, or has set the state's error slot and returns false.
//
// This is the low-level extension point for novel primitives. It is
// explicitly unstable: the State API may change between minor versions.
// Prefer composing the provided primitives.
func NewParser[T comparable, R any](run func(*State[T], *ExpectedSet[T]) (R, bool)) Parser[T, R] {
	if run == nil {
		panic("parsec: nil evaluation function")
	}
	return Parser[T, R]{run: run}
}

func mustParser[T comparable, R any](p Parser[T, R]) {
	if p.run == nil {
		panic("parsec: nil parser")
	}
}

// Return succeeds with v without consuming input.
func Return[T comparable, R any](v R) Parser[T, R] {
	return Parser[T, R]{run: func(*State[T], *ExpectedSet[T]) (R, bool) {
		return v, true
	}}
}

// Fail fails at the current position without consuming input.
func Fail[T comparable, R any]() Parser[T, R] {
	return FailWith[T, R]("")
}

// FailWith fails at the current position with a free-form message, without
// consuming input. It contributes no expectations.
func FailWith[T comparable, R any](message string) Parser[T, R] {
	return Parser[T, R]{run: func(s *State[T], _ *ExpectedSet[T]) (R, bool) {
		s.SetErrorHere(message)
		var zero R
		return zero, false
	}}
}

// Map applies f to p's result. Failure propagates untouched.
func Map[T comparable, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	mustParser(p)
	if f == nil {
		panic("parsec: nil map function")
	}
	return Parser[T, B]{run: func(s *State[T], exp *ExpectedSet[T]) (B, bool) {
		v, ok := p.run(s, exp)
		if !ok {
			var zero B
			return zero, false
		}
		return f(v), true
	}}
}

// Bind runs p, then runs the parser f builds from its result. Failure of
// either side propagates untouched; in particular a failure of the second
// parser after input was consumed stays committed.
func Bind[T comparable, A, B any](p Parser[T, A], f func(A) Parser[T, B]) Parser[T, B] {
	mustParser(p)
	if f == nil {
		panic("parsec: nil bind function")
	}
	return Parser[T, B]{run: func(s *State[T], exp *ExpectedSet[T]) (B, bool) {
		v, ok := p.run(s, exp)
		if !ok {
			var zero B
			return zero, false
		}
		next := f(v)
		mustParser(next)
		return next.run(s, exp)
	}}
}

// Then sequences p and q, keeping q's result.
func Then[T comparable, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, B] {
	mustParser(p)
	mustParser(q)
	return Parser[T, B]{run: func(s *State[T], exp *ExpectedSet[T]) (B, bool) {
		if _, ok := p.run(s, exp); !ok {
			var zero B
			return zero, false
		}
		return q.run(s, exp)
	}}
}

// Before sequences p and q, keeping p's result.
func Before[T comparable, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, A] {
	mustParser(p)
	mustParser(q)
	return Parser[T, A]{run: func(s *State[T], exp *ExpectedSet[T]) (A, bool) {
		v, ok := p.run(s, exp)
		if !ok {
			var zero A
			return zero, false
		}
		if _, ok := q.run(s, exp); !ok {
			var zero A
			return zero, false
		}
		return v, true
	}}
}

// Between runs open, p, close and keeps p's result.
func Between[T comparable, O, A, C any](open Parser[T, O], p Parser[T, A], close Parser[T, C]) Parser[T, A] {
	return Then(open, Before(p, close))
}

// Try behaves as p, except that a failure after consuming input rewinds to
// the entry offset, so the failure looks uncommitted to an enclosing
// alternation. The error slot keeps the deepest position p reached.
func (p Parser[T, R]) Try() Parser[T, R] {
	mustParser(p)
	return Parser[T, R]{run: func(s *State[T], exp *ExpectedSet[T]) (R, bool) {
		bm := s.Bookmark()
		v, ok := p.run(s, exp)
		if ok {
			s.DiscardBookmark(bm)
			return v, true
		}
		s.Rewind(bm)
		var zero R
		return zero, false
	}}
}

// Lookahead runs p and, on success, rewinds to the entry offset and returns
// p's result. Failure propagates untouched, including its commitment.
func (p Parser[T, R]) Lookahead() Parser[T, R] {
	mustParser(p)
	return Parser[T, R]{run: func(s *State[T], exp *ExpectedSet[T]) (R, bool) {
		bm := s.Bookmark()
		v, ok := p.run(s, exp)
		if ok {
			s.Rewind(bm)
			return v, true
		}
		s.DiscardBookmark(bm)
		var zero R
		return zero, false
	}}
}

// Labelled replaces whatever expectations p would contribute on failure
// with the single given label.
func (p Parser[T, R]) Labelled(label string) Parser[T, R] {
	return p.WithExpected(ExpectLabel[T](label))
}

// WithExpected replaces whatever expectations p would contribute on failure
// with the given set.
func (p Parser[T, R]) WithExpected(exps ...Expected[T]) Parser[T, R] {
	mustParser(p)
	return Parser[T, R]{run: func(s *State[T], exp *ExpectedSet[T]) (R, bool) {
		child := s.acquireExpSet()
		v, ok := p.run(s, child)
		s.releaseExpSet(child)
		if ok {
			return v, true
		}
		for _, e := range exps {
			exp.Add(e)
		}
		var zero R
		return zero, false
	}}
}

// Optional tries p; an uncommitted failure yields Nothing instead. A
// committed failure still propagates; wrap p in Try to swallow those too.
func (p Parser[T, R]) Optional() Parser[T, Maybe[R]] {
	mustParser(p)
	return Parser[T, Maybe[R]]{run: func(s *State[T], exp *ExpectedSet[T]) (Maybe[R], bool) {
		start := s.Offset()
		child := s.acquireExpSet()
		v, ok := p.run(s, child)
		if ok {
			s.releaseExpSet(child)
			return Just(v), true
		}
		if s.Offset() != start {
			exp.AddAll(child)
			s.releaseExpSet(child)
			var zero Maybe[R]
			return zero, false
		}
		s.releaseExpSet(child)
		return Nothing[R](), true
	}}
}

// IgnoreResult discards p's result.
func (p Parser[T, R]) IgnoreResult() Parser[T, Unit] {
	return Map(p, func(R) Unit { return Unit{} })
}

// Slice runs p and yields the run of input tokens it consumed.
func (p Parser[T, R]) Slice() Parser[T, []T] {
	mustParser(p)
	return Parser[T, []T]{run: func(s *State[T], exp *ExpectedSet[T]) ([]T, bool) {
		bm := s.Bookmark()
		_, ok := p.run(s, exp)
		if !ok {
			s.DiscardBookmark(bm)
			return nil, false
		}
		toks := s.Window(bm, s.Offset())
		s.DiscardBookmark(bm)
		return toks, true
	}}
}

// RecoverWith calls handler with the built error when p fails, then runs
// the returned continuation parser on the state exactly as p left it (a
// committed failure stays advanced).
func (p Parser[T, R]) RecoverWith(handler func(*ParseError[T]) Parser[T, R]) Parser[T, R] {
	mustParser(p)
	if handler == nil {
		panic("parsec: nil recover handler")
	}
	return Parser[T, R]{run: func(s *State[T], exp *ExpectedSet[T]) (R, bool) {
		child := s.acquireExpSet()
		v, ok := p.run(s, child)
		if ok {
			s.releaseExpSet(child)
			return v, true
		}
		perr := s.BuildError(child)
		s.releaseExpSet(child)
		cont := handler(perr)
		mustParser(cont)
		return cont.run(s, exp)
	}}
}

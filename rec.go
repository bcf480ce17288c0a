package parsec

import "sync"

// Rec defers to the parser returned by thunk, which is evaluated the first
// time the parser runs and cached. It breaks definition cycles:
//
//	var expr Parser[rune, int]
//	atom := OneOf(num, Between(Char('('), Rec(func() Parser[rune, int] { return expr }), Char(')')))
//	expr = ... // built from atom
//
// The thunk runs at most once even if the parser is shared across
// goroutines.
func Rec[T comparable, R any](thunk func() Parser[T, R]) Parser[T, R] {
	if thunk == nil {
		panic("parsec: nil thunk")
	}
	var once sync.Once
	var p Parser[T, R]
	return Parser[T, R]{run: func(s *State[T], exp *ExpectedSet[T]) (R, bool) {
		once.Do(func() {
			p = thunk()
			mustParser(p)
		})
		return p.run(s, exp)
	}}
}

// Fix builds a self-referential parser in one expression: body receives a
// parser that stands for the result of Fix itself.
//
//	parens := Fix(func(self Parser[rune, Unit]) Parser[rune, Unit] {
//		return OneOf(Between(Char('('), self, Char(')')), Char('x').IgnoreResult())
//	})
func Fix[T comparable, R any](body func(Parser[T, R]) Parser[T, R]) Parser[T, R] {
	if body == nil {
		panic("parsec: nil fixed-point body")
	}
	var p Parser[T, R]
	p = body(Rec(func() Parser[T, R] { return p }))
	mustParser(p)
	return p
}

package parsec

// Chainer is a stateful incremental reducer used by ChainAtLeastOnce to
// aggregate element values without building an intermediate slice: number
// accumulation, left-associative operator folds, string building.
type Chainer[A, R any] interface {
	// Apply folds one element value into the chainer.
	Apply(value A)
	// Result returns the aggregate after the last element.
	Result() R
	// OnError releases anything the chainer holds when the chain fails.
	OnError()
}

// ChainAtLeastOnce runs p one or more times, folding every result through a
// fresh chainer from newChainer. The repetition rule is the same as
// AtLeastOnce; on a committed element failure the chainer's OnError runs
// before the failure propagates.
func ChainAtLeastOnce[T comparable, A, R any](p Parser[T, A], newChainer func() Chainer[A, R]) Parser[T, R] {
	mustParser(p)
	if newChainer == nil {
		panic("parsec: nil chainer constructor")
	}
	return Parser[T, R]{run: func(s *State[T], exp *ExpectedSet[T]) (R, bool) {
		var zero R
		first, ok := p.run(s, exp)
		if !ok {
			return zero, false
		}
		c := newChainer()
		c.Apply(first)
		if !manyLoop(p, s, exp, c.Apply) {
			c.OnError()
			return zero, false
		}
		return c.Result(), true
	}}
}

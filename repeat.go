package parsec

// manyLoop is the universal repetition engine. It runs p until it fails,
// feeding each result to each. An uncommitted failure ends the loop and
// returns true; a committed failure merges p's expectations into exp and
// returns false. An attempt that succeeds without consuming input is a bug
// in the element parser and panics rather than looping forever.
func manyLoop[T comparable, R any](p Parser[T, R], s *State[T], exp *ExpectedSet[T], each func(R)) bool {
	for {
		start := s.Offset()
		child := s.acquireExpSet()
		v, ok := p.run(s, child)
		if ok {
			s.releaseExpSet(child)
			if s.Offset() == start {
				panic("parsec: parser consumed no input in many-like combinator")
			}
			each(v)
			continue
		}
		if s.Offset() != start {
			exp.AddAll(child)
			s.releaseExpSet(child)
			return false
		}
		s.releaseExpSet(child)
		return true
	}
}

// Many runs p zero or more times and collects the results. It stops at p's
// first uncommitted failure; a committed failure propagates.
func (p Parser[T, R]) Many() Parser[T, []R] {
	mustParser(p)
	return Parser[T, []R]{run: func(s *State[T], exp *ExpectedSet[T]) ([]R, bool) {
		var out []R
		if !manyLoop(p, s, exp, func(v R) { out = append(out, v) }) {
			return nil, false
		}
		return out, true
	}}
}

// AtLeastOnce runs p one or more times and collects the results.
func (p Parser[T, R]) AtLeastOnce() Parser[T, []R] {
	mustParser(p)
	return Parser[T, []R]{run: func(s *State[T], exp *ExpectedSet[T]) ([]R, bool) {
		first, ok := p.run(s, exp)
		if !ok {
			return nil, false
		}
		out := []R{first}
		if !manyLoop(p, s, exp, func(v R) { out = append(out, v) }) {
			return nil, false
		}
		return out, true
	}}
}

// SkipMany runs p zero or more times, discarding the results.
func (p Parser[T, R]) SkipMany() Parser[T, Unit] {
	mustParser(p)
	return Parser[T, Unit]{run: func(s *State[T], exp *ExpectedSet[T]) (Unit, bool) {
		return Unit{}, manyLoop(p, s, exp, func(R) {})
	}}
}

// SkipAtLeastOnce runs p one or more times, discarding the results.
func (p Parser[T, R]) SkipAtLeastOnce() Parser[T, Unit] {
	mustParser(p)
	return Parser[T, Unit]{run: func(s *State[T], exp *ExpectedSet[T]) (Unit, bool) {
		if _, ok := p.run(s, exp); !ok {
			return Unit{}, false
		}
		return Unit{}, manyLoop(p, s, exp, func(R) {})
	}}
}

// Repeat runs p exactly n times and collects the results. Any failure
// propagates untouched. A negative n is a caller bug.
func (p Parser[T, R]) Repeat(n int) Parser[T, []R] {
	mustParser(p)
	if n < 0 {
		panic("parsec: negative repeat count")
	}
	return Parser[T, []R]{run: func(s *State[T], exp *ExpectedSet[T]) ([]R, bool) {
		out := make([]R, 0, n)
		for range n {
			v, ok := p.run(s, exp)
			if !ok {
				return nil, false
			}
			out = append(out, v)
		}
		return out, true
	}}
}

// Separated parses zero or more p separated by sep: `p (sep p)*`.
func Separated[T comparable, R, S any](p Parser[T, R], sep Parser[T, S]) Parser[T, []R] {
	mustParser(p)
	mustParser(sep)
	return Parser[T, []R]{run: func(s *State[T], exp *ExpectedSet[T]) ([]R, bool) {
		start := s.Offset()
		child := s.acquireExpSet()
		first, ok := p.run(s, child)
		if !ok {
			if s.Offset() != start {
				exp.AddAll(child)
				s.releaseExpSet(child)
				return nil, false
			}
			s.releaseExpSet(child)
			return []R{}, true
		}
		s.releaseExpSet(child)
		out := []R{first}
		if !manyLoop(Then(sep, p), s, exp, func(v R) { out = append(out, v) }) {
			return nil, false
		}
		return out, true
	}}
}

// SeparatedAtLeastOnce parses one or more p separated by sep.
func SeparatedAtLeastOnce[T comparable, R, S any](p Parser[T, R], sep Parser[T, S]) Parser[T, []R] {
	mustParser(p)
	mustParser(sep)
	return Parser[T, []R]{run: func(s *State[T], exp *ExpectedSet[T]) ([]R, bool) {
		first, ok := p.run(s, exp)
		if !ok {
			return nil, false
		}
		out := []R{first}
		if !manyLoop(Then(sep, p), s, exp, func(v R) { out = append(out, v) }) {
			return nil, false
		}
		return out, true
	}}
}

// SeparatedAndTerminated parses zero or more p each followed by sep:
// `(p sep)*`.
func SeparatedAndTerminated[T comparable, R, S any](p Parser[T, R], sep Parser[T, S]) Parser[T, []R] {
	return Before(p, sep).Many()
}

// SeparatedAndOptionallyTerminated parses `p (sep p)* sep?`.
//
// When a trailing separator is consumed and the element after it then fails
// without consuming, the list ends successfully with the separator already
// consumed; the cursor does not move back over it. Callers that need to
// parse the separator as part of what follows should use sep.Try() at the
// call site that consumes the next region.
func SeparatedAndOptionallyTerminated[T comparable, R, S any](p Parser[T, R], sep Parser[T, S]) Parser[T, []R] {
	mustParser(p)
	mustParser(sep)
	return Parser[T, []R]{run: func(s *State[T], exp *ExpectedSet[T]) ([]R, bool) {
		start := s.Offset()
		child := s.acquireExpSet()
		first, ok := p.run(s, child)
		if !ok {
			if s.Offset() != start {
				exp.AddAll(child)
				s.releaseExpSet(child)
				return nil, false
			}
			s.releaseExpSet(child)
			return []R{}, true
		}
		s.releaseExpSet(child)
		out := []R{first}
		for {
			iter := s.Offset()
			sepChild := s.acquireExpSet()
			if _, ok := sep.run(s, sepChild); !ok {
				if s.Offset() != iter {
					exp.AddAll(sepChild)
					s.releaseExpSet(sepChild)
					return nil, false
				}
				s.releaseExpSet(sepChild)
				return out, true
			}
			s.releaseExpSet(sepChild)
			afterSep := s.Offset()
			elemChild := s.acquireExpSet()
			v, ok := p.run(s, elemChild)
			if !ok {
				if s.Offset() != afterSep {
					exp.AddAll(elemChild)
					s.releaseExpSet(elemChild)
					return nil, false
				}
				// Trailing separator: the list is done.
				s.releaseExpSet(elemChild)
				return out, true
			}
			s.releaseExpSet(elemChild)
			if s.Offset() == iter {
				panic("parsec: parser consumed no input in many-like combinator")
			}
			out = append(out, v)
		}
	}}
}

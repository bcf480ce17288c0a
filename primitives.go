package parsec

// Token matches a single token equal to want and yields it.
func Token[T comparable](want T) Parser[T, T] {
	return Parser[T, T]{run: func(s *State[T], exp *ExpectedSet[T]) (T, bool) {
		if s.HasCurrent() && s.Current() == want {
			s.Advance(1)
			return want, true
		}
		s.SetErrorHere("")
		exp.Add(ExpectToken(want))
		var zero T
		return zero, false
	}}
}

// Satisfy matches a single token for which pred returns true. It
// contributes no expectation on failure; attach one with Labelled.
func Satisfy[T comparable](pred func(T) bool) Parser[T, T] {
	if pred == nil {
		panic("parsec: nil predicate")
	}
	return Parser[T, T]{run: func(s *State[T], _ *ExpectedSet[T]) (T, bool) {
		if s.HasCurrent() {
			if tok := s.Current(); pred(tok) {
				s.Advance(1)
				return tok, true
			}
		}
		s.SetErrorHere("")
		var zero T
		return zero, false
	}}
}

// Any matches any single token.
func Any[T comparable]() Parser[T, T] {
	return Parser[T, T]{run: func(s *State[T], exp *ExpectedSet[T]) (T, bool) {
		if s.HasCurrent() {
			tok := s.Current()
			s.Advance(1)
			return tok, true
		}
		s.SetErrorHere("")
		exp.Add(ExpectLabel[T]("any token"))
		var zero T
		return zero, false
	}}
}

// End succeeds only at end of input, consuming nothing.
func End[T comparable]() Parser[T, Unit] {
	return Parser[T, Unit]{run: func(s *State[T], exp *ExpectedSet[T]) (Unit, bool) {
		if !s.HasCurrent() {
			return Unit{}, true
		}
		s.SetErrorHere("")
		exp.Add(ExpectEndOfInput[T]())
		return Unit{}, false
	}}
}

// Sequence matches the given tokens in order and yields them. On a mismatch
// at position i the state has advanced i tokens, so the failure is
// committed whenever any prefix matched; the whole literal is contributed
// as the expectation either way. The given slice is retained and must not
// be mutated.
func Sequence[T comparable](toks []T) Parser[T, []T] {
	return Parser[T, []T]{run: func(s *State[T], exp *ExpectedSet[T]) ([]T, bool) {
		n := len(toks)
		win := s.LookAhead(n)
		for i, got := range win {
			if got != toks[i] {
				s.Advance(i)
				s.SetErrorHere("")
				exp.Add(ExpectTokens(toks))
				return nil, false
			}
		}
		if len(win) < n {
			s.Advance(len(win))
			s.SetErrorHere("")
			exp.Add(ExpectTokens(toks))
			return nil, false
		}
		s.Advance(n)
		return toks, true
	}}
}

// CurrentOffset succeeds with the current absolute token offset, consuming
// nothing.
func CurrentOffset[T comparable]() Parser[T, int] {
	return Parser[T, int]{run: func(s *State[T], _ *ExpectedSet[T]) (int, bool) {
		return s.Offset(), true
	}}
}

// CurrentPos succeeds with the current 1-based source position, consuming
// nothing.
func CurrentPos[T comparable]() Parser[T, SourcePos] {
	return Map(CurrentPosDelta[T](), SourcePosDelta.Pos)
}

// CurrentPosDelta succeeds with the delta from the start of input to the
// current offset, consuming nothing.
func CurrentPosDelta[T comparable]() Parser[T, SourcePosDelta] {
	return Parser[T, SourcePosDelta]{run: func(s *State[T], _ *ExpectedSet[T]) (SourcePosDelta, bool) {
		return s.ComputeSourcePosDelta(), true
	}}
}

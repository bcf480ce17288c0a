package parsec

// Or tries p, then q. See OneOf for the commitment and error-merging rules.
func (p Parser[T, R]) Or(q Parser[T, R]) Parser[T, R] {
	return OneOf(p, q)
}

// OneOf tries each parser in order and returns the first success.
//
// A branch that fails after consuming input is committed: no further
// branches are tried and only that branch's expectations survive. Branches
// that fail without consuming fall through. When every branch fails
// uncommitted, the reported error is the one with the deepest offset, and
// the expectations of all branches whose errors reached that offset are
// merged.
//
// Nested OneOf values are flattened at construction so that deep grammars
// do not stack accumulators per level.
func OneOf[T comparable, R any](parsers ...Parser[T, R]) Parser[T, R] {
	if len(parsers) == 0 {
		panic("parsec: OneOf needs at least one parser")
	}
	flat := make([]Parser[T, R], 0, len(parsers))
	for _, p := range parsers {
		mustParser(p)
		if p.alts != nil {
			flat = append(flat, p.alts...)
		} else {
			flat = append(flat, p)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	out := Parser[T, R]{alts: flat}
	out.run = func(s *State[T], exp *ExpectedSet[T]) (R, bool) {
		var zero R
		start := s.Offset()
		agg := s.acquireExpSet()
		defer s.releaseExpSet(agg)
		var deepest internalError[T]
		for _, alt := range flat {
			child := s.acquireExpSet()
			v, ok := alt.run(s, child)
			if ok {
				s.releaseExpSet(child)
				return v, true
			}
			if s.Offset() != start {
				// Committed failure: propagate this branch alone.
				exp.AddAll(child)
				s.releaseExpSet(child)
				return zero, false
			}
			branchErr := s.errSnapshot()
			switch {
			case !deepest.set || branchErr.offset > deepest.offset:
				deepest = branchErr
				agg.Clear()
				agg.AddAll(child)
			case branchErr.offset == deepest.offset:
				agg.AddAll(child)
			}
			s.releaseExpSet(child)
		}
		s.restoreErr(deepest)
		exp.AddAll(agg)
		return zero, false
	}
	return out
}

// Not succeeds, consuming nothing, exactly when p fails. Its own failure is
// always uncommitted at the entry offset, and p's expectations are
// discarded either way.
func Not[T comparable, R any](p Parser[T, R]) Parser[T, Unit] {
	mustParser(p)
	return Parser[T, Unit]{run: func(s *State[T], _ *ExpectedSet[T]) (Unit, bool) {
		bm := s.Bookmark()
		scratch := s.acquireExpSet()
		_, ok := p.run(s, scratch)
		s.releaseExpSet(scratch)
		s.Rewind(bm)
		if ok {
			s.SetErrorHere("")
			return Unit{}, false
		}
		return Unit{}, true
	}}
}

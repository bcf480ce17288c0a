package parsec

// Permutation builds a parser that matches a set of components in any
// order, each exactly once, with optional components allowed to be absent.
// Results come back as a []any in Add order. Components are attempted with
// full backtracking, so overlapping prefixes between components are safe.
type Permutation[T comparable] struct {
	comps []permComponent[T]
}

type permComponent[T comparable] struct {
	p        Parser[T, any]
	optional bool
	def      any
}

// NewPermutation returns an empty permutation builder.
func NewPermutation[T comparable]() *Permutation[T] {
	return &Permutation[T]{}
}

// Add appends a required component. Wrap typed parsers with ToAny.
func (pm *Permutation[T]) Add(p Parser[T, any]) *Permutation[T] {
	mustParser(p)
	pm.comps = append(pm.comps, permComponent[T]{p: p})
	return pm
}

// AddOptional appends a component that may be absent; def is its result
// when it is.
func (pm *Permutation[T]) AddOptional(p Parser[T, any], def any) *Permutation[T] {
	mustParser(p)
	pm.comps = append(pm.comps, permComponent[T]{p: p, optional: true, def: def})
	return pm
}

// ToAny erases a parser's result type for use with Permutation.
func ToAny[T comparable, R any](p Parser[T, R]) Parser[T, any] {
	return Map(p, func(v R) any { return v })
}

// Build returns the permutation parser. Each round it tries the components
// not yet matched, in Add order, backtracking after each miss; the round's
// first hit is kept. When no component matches, the parse succeeds if every
// unmatched component is optional, and fails otherwise with the unmatched
// components' expectations merged at the deepest failure offset.
func (pm *Permutation[T]) Build() Parser[T, []any] {
	if len(pm.comps) == 0 {
		panic("parsec: empty permutation")
	}
	comps := make([]permComponent[T], len(pm.comps))
	copy(comps, pm.comps)
	return Parser[T, []any]{run: func(s *State[T], exp *ExpectedSet[T]) ([]any, bool) {
		results := make([]any, len(comps))
		done := make([]bool, len(comps))
		remaining := len(comps)
		for remaining > 0 {
			agg := s.acquireExpSet()
			var deepest internalError[T]
			matched := false
			for i, c := range comps {
				if done[i] {
					continue
				}
				bm := s.Bookmark()
				child := s.acquireExpSet()
				v, ok := c.p.run(s, child)
				if ok {
					s.releaseExpSet(child)
					s.DiscardBookmark(bm)
					results[i] = v
					done[i] = true
					remaining--
					matched = true
					break
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
				s.Rewind(bm)
			}
			if !matched {
				for i, c := range comps {
					if done[i] {
						continue
					}
					if !c.optional {
						s.restoreErr(deepest)
						exp.AddAll(agg)
						s.releaseExpSet(agg)
						return nil, false
					}
				}
				for i, c := range comps {
					if !done[i] {
						results[i] = c.def
					}
				}
				s.releaseExpSet(agg)
				return results, true
			}
			s.releaseExpSet(agg)
		}
		return results, true
	}}
}

// Perm2 matches pa and pb in either order.
func Perm2[T comparable, A, B any](pa Parser[T, A], pb Parser[T, B]) Parser[T, Pair[A, B]] {
	built := NewPermutation[T]().Add(ToAny(pa)).Add(ToAny(pb)).Build()
	return Map(built, func(vs []any) Pair[A, B] {
		return Pair[A, B]{First: vs[0].(A), Second: vs[1].(B)}
	})
}

// Perm3 matches pa, pb, and pc in any order.
func Perm3[T comparable, A, B, C any](pa Parser[T, A], pb Parser[T, B], pc Parser[T, C]) Parser[T, Pair[Pair[A, B], C]] {
	built := NewPermutation[T]().Add(ToAny(pa)).Add(ToAny(pb)).Add(ToAny(pc)).Build()
	return Map(built, func(vs []any) Pair[Pair[A, B], C] {
		return Pair[Pair[A, B], C]{
			First:  Pair[A, B]{First: vs[0].(A), Second: vs[1].(B)},
			Second: vs[2].(C),
		}
	})
}

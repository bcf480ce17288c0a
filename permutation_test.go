package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutationAnyOrder(t *testing.T) {
	p := NewPermutation[rune]().
		Add(ToAny(Char('a'))).
		Add(ToAny(Char('b'))).
		Add(ToAny(Char('c'))).
		Build()
	full := Before(p, End[rune]())

	for _, input := range []string{"abc", "acb", "bac", "bca", "cab", "cba"} {
		got, err := ParseString(full, input)
		require.NoError(t, err, "input %q", input)
		// Results come back in Add order, not input order.
		assert.Equal(t, []any{'a', 'b', 'c'}, got, "input %q", input)
	}

	for _, input := range []string{"ab", "abb", "abd"} {
		_, err := ParseString(full, input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestPermutationOptionalComponents(t *testing.T) {
	p := NewPermutation[rune]().
		Add(ToAny(Char('a'))).
		AddOptional(ToAny(Char('b')), 'B').
		Build()
	full := Before(p, End[rune]())

	got, err := ParseString(full, "ab")
	require.NoError(t, err)
	assert.Equal(t, []any{'a', 'b'}, got)

	got, err = ParseString(full, "ba")
	require.NoError(t, err)
	assert.Equal(t, []any{'a', 'b'}, got)

	got, err = ParseString(full, "a")
	require.NoError(t, err)
	assert.Equal(t, []any{'a', 'B'}, got, "absent optional takes its default")

	_, err = ParseString(full, "b")
	assert.Error(t, err, "required component missing")
}

func TestPermutationBacktracksOverlappingPrefixes(t *testing.T) {
	p := NewPermutation[rune]().
		Add(ToAny(String("ab"))).
		Add(ToAny(String("ax"))).
		Build()
	full := Before(p, End[rune]())

	got, err := ParseString(full, "axab")
	require.NoError(t, err)
	assert.Equal(t, []any{"ab", "ax"}, got)
}

func TestPermutationMergesExpectations(t *testing.T) {
	p := NewPermutation[rune]().
		Add(ToAny(Char('a'))).
		Add(ToAny(Char('b'))).
		Build()
	pe := parseErr(t, p, "z")
	assert.Len(t, pe.Expected, 2, "both unmatched components contribute")
}

func TestPerm2(t *testing.T) {
	p := Perm2(Char('k'), DecimalNum)
	got, err := ParseString(Before(p, End[rune]()), "42k")
	require.NoError(t, err)
	assert.Equal(t, 'k', got.First)
	assert.Equal(t, 42, got.Second)
}

func TestPermutationEmptyPanics(t *testing.T) {
	assert.Panics(t, func() { NewPermutation[rune]().Build() })
}

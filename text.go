package parsec

import (
	"fmt"
	"slices"
	"unicode"
)

// Character-level parsers. Everything here is sugar over the generic
// primitives with T = rune.

var (
	// AnyChar matches any single character.
	AnyChar = Any[rune]().Labelled("any character")
	// Digit matches a decimal digit.
	Digit = Satisfy[rune](unicode.IsDigit).Labelled("digit")
	// Letter matches a unicode letter.
	Letter = Satisfy[rune](unicode.IsLetter).Labelled("letter")
	// LetterOrDigit matches a unicode letter or decimal digit.
	LetterOrDigit = Satisfy[rune](func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}).Labelled("letter or digit")
	// Whitespace matches a single whitespace character.
	Whitespace = Satisfy[rune](unicode.IsSpace).Labelled("whitespace")
	// Tab matches a tab character.
	Tab = Token('\t')
	// Whitespaces matches a run of one or more whitespace characters.
	Whitespaces = Whitespace.SkipAtLeastOnce().Labelled("whitespace")
	// SkipWhitespaces consumes a maximal, possibly empty, run of
	// whitespace.
	SkipWhitespaces = Whitespace.SkipMany()
	// EndOfLine matches "\n" or "\r\n" and yields '\n'.
	EndOfLine = OneOf(
		Token('\n'),
		Map(String("\r\n"), func(string) rune { return '\n' }),
	).Labelled("end of line")
)

// Char matches the character c.
func Char(c rune) Parser[rune, rune] { return Token(c) }

// CharInsensitive matches c in either case and yields the character
// actually read.
func CharInsensitive(c rune) Parser[rune, rune] {
	lower := unicode.ToLower(c)
	p := Satisfy[rune](func(r rune) bool { return unicode.ToLower(r) == lower })
	return p.WithExpected(ExpectToken(unicode.ToLower(c)), ExpectToken(unicode.ToUpper(c)))
}

// CharIn matches any character of set.
func CharIn(set string) Parser[rune, rune] {
	runes := []rune(set)
	p := Satisfy[rune](func(r rune) bool { return slices.Contains(runes, r) })
	exps := make([]Expected[rune], len(runes))
	for i, r := range runes {
		exps[i] = ExpectToken(r)
	}
	return p.WithExpected(exps...)
}

// CharRange matches any character in [lo, hi].
func CharRange(lo, hi rune) Parser[rune, rune] {
	p := Satisfy[rune](func(r rune) bool { return r >= lo && r <= hi })
	return p.Labelled(fmt.Sprintf("character in range %c-%c", lo, hi))
}

// String matches the literal s and yields it.
func String(s string) Parser[rune, string] {
	return Map(Sequence([]rune(s)), func([]rune) string { return s })
}

// StringInsensitive matches s ignoring case and yields the text actually
// read. Commitment works as for Sequence: a mismatch after i matching
// characters leaves the cursor advanced by i.
func StringInsensitive(s string) Parser[rune, string] {
	pattern := []rune(s)
	folded := make([]rune, len(pattern))
	for i, r := range pattern {
		folded[i] = unicode.ToLower(r)
	}
	return Parser[rune, string]{run: func(st *State[rune], exp *ExpectedSet[rune]) (string, bool) {
		n := len(folded)
		win := st.LookAhead(n)
		for i, got := range win {
			if unicode.ToLower(got) != folded[i] {
				st.Advance(i)
				st.SetErrorHere("")
				exp.Add(ExpectTokens(pattern))
				return "", false
			}
		}
		if len(win) < n {
			st.Advance(len(win))
			st.SetErrorHere("")
			exp.Add(ExpectTokens(pattern))
			return "", false
		}
		matched := string(win)
		st.Advance(n)
		return matched, true
	}}
}

// Keyword matches s when it is not followed by a letter or digit, so
// Keyword("if") does not match the start of "ifx".
func Keyword(s string) Parser[rune, string] {
	return Before(String(s), Not(LetterOrDigit)).Labelled(s)
}

// MatchedString runs p and yields the text it consumed.
func MatchedString[R any](p Parser[rune, R]) Parser[rune, string] {
	return Map(p.Slice(), func(runes []rune) string { return string(runes) })
}

// Enum matches one of the given words, longest first, and yields the word.
// Each alternative backtracks fully, so overlapping words are safe.
func Enum(words ...string) Parser[rune, string] {
	return enumOf(words, String)
}

// EnumInsensitive is Enum ignoring case; it yields the canonical word as
// given, not the text read.
func EnumInsensitive(words ...string) Parser[rune, string] {
	return enumOf(words, func(w string) Parser[rune, string] {
		return Map(StringInsensitive(w), func(string) string { return w })
	})
}

func enumOf(words []string, lit func(string) Parser[rune, string]) Parser[rune, string] {
	if len(words) == 0 {
		panic("parsec: Enum needs at least one word")
	}
	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b string) int { return len(b) - len(a) })
	alts := make([]Parser[rune, string], len(sorted))
	for i, w := range sorted {
		alts[i] = lit(w).Try()
	}
	return OneOf(alts...)
}

// SkipLineComment consumes a comment starting with prefix and running to
// the end of the line or of the input.
func SkipLineComment(prefix string) Parser[rune, Unit] {
	body := Satisfy[rune](func(r rune) bool { return r != '\n' && r != '\r' }).SkipMany()
	end := OneOf(EndOfLine.IgnoreResult(), End[rune]())
	return Then(String(prefix), Then(body, end))
}

// SkipBlockComment consumes a comment from open to the first close.
// Comments do not nest; an unterminated comment fails at end of input.
func SkipBlockComment(open, close string) Parser[rune, Unit] {
	openP := String(open)
	closeToks := []rune(close)
	if len(closeToks) == 0 {
		panic("parsec: empty block comment terminator")
	}
	return Parser[rune, Unit]{run: func(st *State[rune], exp *ExpectedSet[rune]) (Unit, bool) {
		if _, ok := openP.run(st, exp); !ok {
			return Unit{}, false
		}
		for {
			win := st.LookAhead(len(closeToks))
			if slices.Equal(win, closeToks) {
				st.Advance(len(closeToks))
				return Unit{}, true
			}
			if !st.HasCurrent() {
				st.SetErrorHere("")
				exp.Add(ExpectTokens(closeToks))
				return Unit{}, false
			}
			st.Advance(1)
		}
	}}
}

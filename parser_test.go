package parsec

import (
	"errors"
	"testing"
)

// parseStr runs a rune parser over a string for tests.
func parseStr[R any](t *testing.T, p Parser[rune, R], input string) (R, error) {
	t.Helper()
	return ParseString(p, input)
}

func mustParseStr[R any](t *testing.T, p Parser[rune, R], input string) R {
	t.Helper()
	v, err := ParseString(p, input)
	if err != nil {
		t.Fatalf("parse of %q failed: %v", input, err)
	}
	return v
}

func parseErr[R any](t *testing.T, p Parser[rune, R], input string) *ParseError[rune] {
	t.Helper()
	_, err := ParseString(p, input)
	if err == nil {
		t.Fatalf("parse of %q unexpectedly succeeded", input)
	}
	var pe *ParseError[rune]
	if !errors.As(err, &pe) {
		t.Fatalf("parse of %q returned a non-parse error: %v", input, err)
	}
	return pe
}

func TestReturnConsumesNothing(t *testing.T) {
	p := Then(Return[rune]("hello"), CurrentOffset[rune]())
	offset := mustParseStr(t, p, "abc")
	if offset != 0 {
		t.Errorf("Return consumed input: offset %d", offset)
	}
	if v := mustParseStr(t, Return[rune](42), ""); v != 42 {
		t.Errorf("Return yielded %d, want 42", v)
	}
}

func TestFailWithMessage(t *testing.T) {
	pe := parseErr(t, FailWith[rune, int]("nope"), "abc")
	if pe.Message != "nope" {
		t.Errorf("message = %q, want %q", pe.Message, "nope")
	}
	if pe.Offset != 0 {
		t.Errorf("offset = %d, want 0", pe.Offset)
	}
	if len(pe.Expected) != 0 {
		t.Errorf("Fail contributed expectations: %v", pe.Expected)
	}
}

func TestMapFunctorLaws(t *testing.T) {
	id := func(s string) string { return s }
	f := func(s string) int { return len(s) }
	g := func(n int) int { return n * 2 }

	base := String("ab")
	if got := mustParseStr(t, Map(base, id), "ab"); got != "ab" {
		t.Errorf("map id changed result: %q", got)
	}
	composed := Map(Map(base, f), g)
	fused := Map(base, func(s string) int { return g(f(s)) })
	if a, b := mustParseStr(t, composed, "ab"), mustParseStr(t, fused, "ab"); a != b {
		t.Errorf("map composition law broken: %d vs %d", a, b)
	}
	// Failure propagates verbatim.
	e1, e2 := parseErr(t, Map(base, id), "ax"), parseErr(t, base, "ax")
	if e1.Error() != e2.Error() {
		t.Errorf("map changed the error:\n  %v\n  %v", e1, e2)
	}
}

func TestBindMonadLaws(t *testing.T) {
	f := func(n int) Parser[rune, int] { return Return[rune](n + 1) }

	// Left unit: Return(v).bind(f) == f(v).
	left := Bind(Return[rune](41), f)
	if got := mustParseStr(t, left, ""); got != 42 {
		t.Errorf("left unit: got %d, want 42", got)
	}
	// Right unit: p.bind(Return) == p.
	p := Map(Digit, digitVal)
	right := Bind(p, Return[rune, int])
	if a, b := mustParseStr(t, right, "7"), mustParseStr(t, p, "7"); a != b {
		t.Errorf("right unit: %d vs %d", a, b)
	}
	// Associativity.
	g := func(n int) Parser[rune, int] { return Return[rune](n * 10) }
	assocL := Bind(Bind(p, f), g)
	assocR := Bind(p, func(n int) Parser[rune, int] { return Bind(f(n), g) })
	if a, b := mustParseStr(t, assocL, "3"), mustParseStr(t, assocR, "3"); a != b {
		t.Errorf("associativity: %d vs %d", a, b)
	}
}

func TestThenBefore(t *testing.T) {
	if got := mustParseStr(t, Then(Char('a'), Char('b')), "ab"); got != 'b' {
		t.Errorf("Then kept %q, want 'b'", got)
	}
	if got := mustParseStr(t, Before(Char('a'), Char('b')), "ab"); got != 'a' {
		t.Errorf("Before kept %q, want 'a'", got)
	}
	if got := mustParseStr(t, Between(Char('['), String("hi"), Char(']')), "[hi]"); got != "hi" {
		t.Errorf("Between kept %q, want \"hi\"", got)
	}
}

func TestBindSecondFailureStaysCommitted(t *testing.T) {
	p := Bind(Char('a'), func(rune) Parser[rune, rune] { return Char('b') })
	// The inner failure consumed 'a', so the alternative is not tried.
	pe := parseErr(t, p.Or(Char('a')), "ax")
	if pe.Offset != 1 {
		t.Errorf("offset = %d, want 1", pe.Offset)
	}
	if len(pe.Expected) != 1 || pe.Expected[0].String() != "'b'" {
		t.Errorf("expected set = %v, want ['b']", pe.Expected)
	}
}

func TestTryAppearsUncommitted(t *testing.T) {
	p := String("ab").Try().Or(String("ac"))
	if got := mustParseStr(t, p, "ac"); got != "ac" {
		t.Errorf("got %q, want \"ac\"", got)
	}
}

func TestTryKeepsDeepestErrorOffset(t *testing.T) {
	pe := parseErr(t, String("ab").Try(), "ax")
	if pe.Offset != 1 {
		t.Errorf("error offset = %d, want 1 (deepest progress)", pe.Offset)
	}
}

func TestLookaheadPreservesPosition(t *testing.T) {
	p := Then(String("ab").Lookahead(), Then(String("ab"), CurrentOffset[rune]()))
	if got := mustParseStr(t, p, "ab"); got != 2 {
		t.Errorf("offset after lookahead+consume = %d, want 2", got)
	}
}

func TestLookaheadFailurePropagatesCommitment(t *testing.T) {
	p := String("ab").Lookahead().Or(Return[rune]("fallback"))
	if _, err := ParseString(p, "ax"); err == nil {
		t.Fatal("committed lookahead failure fell through to the alternative")
	}
}

func TestNot(t *testing.T) {
	// Not succeeds, consuming nothing, when its parser fails.
	p := Then(Not(String("ab")), String("ax"))
	if got := mustParseStr(t, p, "ax"); got != "ax" {
		t.Errorf("got %q, want \"ax\"", got)
	}
	// Not fails uncommitted at the entry offset when its parser matches.
	pe := parseErr(t, Not(String("ab")), "ab")
	if pe.Offset != 0 {
		t.Errorf("Not error offset = %d, want 0", pe.Offset)
	}
	if !pe.HasUnexpected || pe.Unexpected != 'a' {
		t.Errorf("Not unexpected = %v", pe.Unexpected)
	}
	// Not(Not(p)) succeeds iff p succeeds, still consuming nothing.
	q := Then(Not(Not(String("ab"))), CurrentOffset[rune]())
	if got := mustParseStr(t, q, "ab"); got != 0 {
		t.Errorf("Not(Not(p)) consumed input: offset %d", got)
	}
}

func TestOptional(t *testing.T) {
	p := Digit.Optional()
	if v, ok := mustParseStr(t, p, "5").Get(); !ok || v != '5' {
		t.Errorf("got (%q, %v), want ('5', true)", v, ok)
	}
	q := Then(p, AnyChar)
	if got := mustParseStr(t, q, "x"); got != 'x' {
		t.Errorf("Optional moved the cursor on a miss: next token %q", got)
	}
	if got := mustParseStr(t, p, "x").OrElse('z'); got != 'z' {
		t.Errorf("OrElse = %q, want 'z'", got)
	}
}

func TestLabelledReplacesExpectations(t *testing.T) {
	pe := parseErr(t, String("ab").Labelled("greeting"), "x")
	if len(pe.Expected) != 1 || pe.Expected[0].Label() != "greeting" {
		t.Errorf("expected set = %v, want [greeting]", pe.Expected)
	}
}

func TestWithExpected(t *testing.T) {
	pe := parseErr(t, Char('a').WithExpected(ExpectToken('x'), ExpectToken('y')), "b")
	if len(pe.Expected) != 2 {
		t.Fatalf("expected set = %v, want two literals", pe.Expected)
	}
}

func TestRecoverWith(t *testing.T) {
	var seen *ParseError[rune]
	p := String("ab").RecoverWith(func(pe *ParseError[rune]) Parser[rune, string] {
		seen = pe
		return Map(AnyChar, func(r rune) string { return "recovered:" + string(r) })
	})
	got := mustParseStr(t, p, "ax")
	if got != "recovered:x" {
		t.Errorf("got %q", got)
	}
	if seen == nil || seen.Offset != 1 {
		t.Fatalf("handler error = %+v, want offset 1", seen)
	}
}

func TestSliceYieldsConsumedRun(t *testing.T) {
	p := Then(Char('<'), Before(Letter.SkipAtLeastOnce(), Char('>'))).Slice()
	got := mustParseStr(t, p, "<abc>!")
	if string(got) != "<abc>" {
		t.Errorf("slice = %q, want \"<abc>\"", string(got))
	}
}

func TestNilParserPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Map of the zero parser did not panic")
		}
	}()
	Map(Parser[rune, int]{}, func(int) int { return 0 })
}

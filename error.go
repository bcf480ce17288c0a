package parsec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseError is the user-facing parse failure: where the parse got stuck,
// what it found there, and the merged set of things it was expecting.
type ParseError[T comparable] struct {
	// Offset is the absolute token offset of the failure.
	Offset int
	// Line and Col are the 1-based source position of the failure.
	Line int
	Col  int
	// Unexpected is the token found at Offset when HasUnexpected is true.
	// When EOF is true the input ended instead.
	Unexpected    T
	HasUnexpected bool
	EOF           bool
	// Expected holds the merged expectations, deduplicated and sorted.
	Expected []Expected[T]
	// Message is an optional free-form message from Fail or FailWith.
	Message string
}

// Error renders the canonical form:
//
//	parse error at line L col C: unexpected X; expected A, B, or C; message
func (e *ParseError[T]) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "parse error at line %d col %d:", e.Line, e.Col)
	switch {
	case e.EOF:
		sb.WriteString(" unexpected end of input")
	case e.HasUnexpected:
		sb.WriteString(" unexpected " + renderToken(e.Unexpected))
	}
	if len(e.Expected) > 0 {
		sb.WriteString("; expected " + renderExpectedList(e.Expected))
	}
	if e.Message != "" {
		sb.WriteString("; " + e.Message)
	}
	return sb.String()
}

// Pos returns the failure position.
func (e *ParseError[T]) Pos() SourcePos { return SourcePos{Line: e.Line, Col: e.Col} }

func renderExpectedList[T comparable](exps []Expected[T]) string {
	parts := make([]string, len(exps))
	for i, e := range exps {
		parts[i] = e.String()
	}
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " or " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", or " + parts[len(parts)-1]
	}
}

// renderToken quotes a token for error messages in the most natural form
// for its type.
func renderToken(tok any) string {
	switch t := tok.(type) {
	case rune:
		return strconv.QuoteRune(t)
	case byte:
		return strconv.QuoteRune(rune(t))
	case string:
		return strconv.Quote(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// renderTokenRun quotes a literal token sequence. A single token renders as
// that token; longer rune and byte runs render as quoted strings; anything
// else as a bracketed list.
func renderTokenRun[T comparable](toks []T) string {
	if len(toks) == 1 {
		return renderToken(toks[0])
	}
	switch ts := any(toks).(type) {
	case []rune:
		return strconv.Quote(string(ts))
	case []byte:
		return strconv.Quote(string(ts))
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = renderToken(t)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// BuildError finalises the state's error slot and the given accumulator
// into a ParseError.
func (s *State[T]) BuildError(exp *ExpectedSet[T]) *ParseError[T] {
	ie := s.err
	if !ie.set {
		// A parser failed without touching the slot; report the current
		// position so the caller at least gets a location.
		s.SetErrorHere("")
		ie = s.err
	}
	pos := ie.delta.Pos()
	pe := &ParseError[T]{
		Offset:        ie.offset,
		Line:          pos.Line,
		Col:           pos.Col,
		Unexpected:    ie.unexpected,
		HasUnexpected: ie.hasUnexpected,
		EOF:           ie.eof,
		Message:       ie.message,
	}
	if exp != nil && exp.Len() > 0 {
		pe.Expected = make([]Expected[T], exp.Len())
		copy(pe.Expected, exp.Items())
		sort.Slice(pe.Expected, func(i, j int) bool {
			a, b := pe.Expected[i], pe.Expected[j]
			if a.kind != b.kind {
				return a.kind < b.kind
			}
			return a.String() < b.String()
		})
	}
	return pe
}

package parsec

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	errHeaderColor = color.New(color.FgRed, color.Bold)
	errArrowColor  = color.New(color.FgCyan)
	errGutterColor = color.New(color.FgBlue)
	errCaretColor  = color.New(color.FgRed, color.Bold)
	errNoteColor   = color.New(color.FgYellow)
)

// FormatForTerminal renders the error for a terminal: a colored header, the
// offending source line with a caret under the failure column, and a
// "did you mean" note when a literal expectation is a near miss of the word
// at the failure position.
//
// source must be the original input text; it is only consulted for display,
// so passing a partial or empty string degrades gracefully. Colors honour
// the NO_COLOR convention through the color package's global state.
func FormatForTerminal[T comparable](e *ParseError[T], source string) string {
	var sb strings.Builder

	sb.WriteString(errHeaderColor.Sprint("error"))
	sb.WriteString(": ")
	sb.WriteString(e.Error())
	sb.WriteByte('\n')

	lines := strings.Split(source, "\n")
	if e.Line >= 1 && e.Line <= len(lines) {
		line := strings.TrimSuffix(lines[e.Line-1], "\r")
		gutter := fmt.Sprintf("%4d", e.Line)
		sb.WriteString(fmt.Sprintf("  %s line %d col %d\n", errArrowColor.Sprint("-->"), e.Line, e.Col))
		sb.WriteString(errGutterColor.Sprint(strings.Repeat(" ", len(gutter))+" |") + "\n")
		sb.WriteString(fmt.Sprintf("%s %s\n", errGutterColor.Sprint(gutter+" |"), line))
		caretCol := e.Col
		if caretCol > len(line)+1 {
			caretCol = len(line) + 1
		}
		sb.WriteString(fmt.Sprintf("%s %s%s\n",
			errGutterColor.Sprint(strings.Repeat(" ", len(gutter))+" |"),
			strings.Repeat(" ", caretCol-1),
			errCaretColor.Sprint("^")))
	}

	if got := wordAt(lines, e.Line, e.Col); got != "" {
		if suggestions := DidYouMean(got, literalExpectations(e.Expected)); len(suggestions) > 0 {
			sb.WriteString(fmt.Sprintf("  %s did you mean %s?\n",
				errNoteColor.Sprint("="),
				strings.Join(quoteAll(suggestions), " or ")))
		}
	}

	return sb.String()
}

// wordAt returns the identifier-like run around the failure column. The
// failure often lands mid-word (the prefix matched), so the scan extends in
// both directions.
func wordAt(lines []string, line, col int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	runes := []rune(strings.TrimSuffix(lines[line-1], "\r"))
	i := col - 1
	if i < 0 || i >= len(runes) || !isWordRune(runes[i]) {
		return ""
	}
	j := i
	for i > 0 && isWordRune(runes[i-1]) {
		i--
	}
	for j < len(runes) && isWordRune(runes[j]) {
		j++
	}
	return string(runes[i:j])
}

func isWordRune(r rune) bool {
	return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func quoteAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = "'" + w + "'"
	}
	return out
}

package parsec

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 3

// DidYouMean ranks candidates by edit distance from got and returns the
// closest ones, nearest first. Candidates further than a third of the
// word's length (minimum 1) are dropped; at most three are returned.
func DidYouMean(got string, candidates []string) []string {
	if got == "" {
		return nil
	}
	limit := len(got) / 3
	if limit < 1 {
		limit = 1
	}
	type ranked struct {
		word string
		dist int
	}
	var near []ranked
	for _, c := range candidates {
		if c == got {
			continue
		}
		d := levenshtein.ComputeDistance(got, c)
		if d <= limit {
			near = append(near, ranked{word: c, dist: d})
		}
	}
	sort.Slice(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}
		return near[i].word < near[j].word
	})
	if len(near) > maxSuggestions {
		near = near[:maxSuggestions]
	}
	out := make([]string, len(near))
	for i, r := range near {
		out[i] = r.word
	}
	return out
}

// literalExpectations extracts the string forms of literal rune or byte
// expectations, the candidate pool for suggestion ranking.
func literalExpectations[T comparable](exps []Expected[T]) []string {
	var out []string
	for _, e := range exps {
		if e.kind != expectedTokens {
			continue
		}
		switch ts := any(e.tokens).(type) {
		case []rune:
			out = append(out, string(ts))
		case []byte:
			out = append(out, string(ts))
		}
	}
	return out
}

package parsec

import "encoding/json"

type jsonError struct {
	Offset     int      `json:"offset"`
	Line       int      `json:"line"`
	Col        int      `json:"col"`
	Unexpected *string  `json:"unexpected"`
	EOF        bool     `json:"eof"`
	Expected   []string `json:"expected,omitempty"`
	Message    string   `json:"message,omitempty"`
}

// MarshalJSON renders the error for tooling: positions, the rendered
// unexpected token (null at end of input), and the rendered expectations.
func (e *ParseError[T]) MarshalJSON() ([]byte, error) {
	je := jsonError{
		Offset:  e.Offset,
		Line:    e.Line,
		Col:     e.Col,
		EOF:     e.EOF,
		Message: e.Message,
	}
	if e.HasUnexpected {
		s := renderToken(e.Unexpected)
		je.Unexpected = &s
	}
	for _, exp := range e.Expected {
		je.Expected = append(je.Expected, exp.String())
	}
	return json.Marshal(je)
}

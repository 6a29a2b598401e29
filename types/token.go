// Package types holds the small set of value types shared between the lexer
// contract, the grammar/table packages, and the parse runtime. Keeping them
// in their own package lets lex, grammar, and parse all depend on them
// without depending on each other.
package types

import "fmt"

// Location is the source-text span a token or a reduced production covers.
// Range is optional and is left at its zero value when a lexer does not
// track byte offsets.
type Location struct {
	FirstLine   int
	FirstColumn int
	LastLine    int
	LastColumn  int
	Range       [2]int
	HasRange    bool
}

// Join returns the combined location spanning from the start of first to the
// end of last, as used when a reduction's location is computed from the
// first and last symbols of the production it reduces.
func Join(first, last Location) Location {
	j := Location{
		FirstLine:   first.FirstLine,
		FirstColumn: first.FirstColumn,
		LastLine:    last.LastLine,
		LastColumn:  last.LastColumn,
	}
	if first.HasRange && last.HasRange {
		j.Range = [2]int{first.Range[0], last.Range[1]}
		j.HasRange = true
	}
	return j
}

func (l Location) String() string {
	if l.FirstLine == l.LastLine {
		return fmt.Sprintf("%d:%d-%d", l.FirstLine, l.FirstColumn, l.LastColumn)
	}
	return fmt.Sprintf("%d:%d-%d:%d", l.FirstLine, l.FirstColumn, l.LastLine, l.LastColumn)
}

// Token is a single lexeme read from a Lexer, tagged with the grammar
// terminal it represents.
type Token struct {
	// Terminal is the grammar symbol id this token was classified as. The
	// zero value is never valid; EOF tokens carry the reserved EOF id.
	Terminal int

	// Text is the lexeme exactly as it appeared in the source.
	Text string

	// Value is an optional pre-computed semantic value for the token (e.g.
	// the parsed int for a NUMBER token); it is pushed onto the parser's
	// value stack unchanged and read back by the semantic-action callback.
	Value any

	Location Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @ %s", symbolPlaceholder(t.Terminal), t.Text, t.Location)
}

// symbolPlaceholder avoids importing the grammar package just to print a
// token for diagnostics outside of a parse (where a real Grammar is on
// hand to give the id a name).
func symbolPlaceholder(id int) string {
	return fmt.Sprintf("sym(%d)", id)
}

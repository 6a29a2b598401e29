// Package sturgeon is the top-level entry point of spec §6 "Public
// operations": build a Table from a Def and drive a parse over it. It ties
// together grammar (C1/C2), automaton (C3), and parse (C4/C5/C6/C7)
// the way the teacher's ictiobus.go ties together its own grammar/automaton/
// parse/lex subpackages behind a handful of New*Parser constructors.
package sturgeon

import (
	"github.com/sturgeon-gen/sturgeon/grammar"
	"github.com/sturgeon-gen/sturgeon/parse"
)

// Build interns and validates def into a Grammar, solves its FIRST/FOLLOW/
// Nullable sets, and constructs a Table with the given algorithm — the
// `build(grammar, type)` operation of spec §6. The returned Table's
// Conflicts field reports every shift/reduce or reduce/reduce ambiguity the
// grammar contains; a non-empty Conflicts does not make err non-nil. An algo
// other than LR0, SLR, LR1 or LALR builds an LALR table.
func Build(def grammar.Def, algo parse.Algorithm) (*parse.Table, error) {
	g, err := grammar.Build(def)
	if err != nil {
		return nil, err
	}
	sets := grammar.Solve(g)

	switch algo {
	case parse.LR0, parse.SLR, parse.LR1, parse.LALR:
		return parse.Build(g, sets, algo)
	default:
		t, err := parse.Build(g, sets, parse.LALR)
		return t, err
	}
}

// BuildLL1 interns and validates def, then constructs the LL(1) PREDICT
// table instead of an LR table (spec §4.4 "LL(1) table").
func BuildLL1(def grammar.Def) (*parse.LL1Table, error) {
	g, err := grammar.Build(def)
	if err != nil {
		return nil, err
	}
	sets := grammar.Solve(g)
	return parse.BuildLL1(g, sets), nil
}

// NewParser builds a Parser over table, ready to run the shift-reduce loop
// of spec §4.6. Compress table first (parse.Compress) if the caller wants
// the default-action/unreachable-state optimizations; it is not mandatory.
func NewParser(table *parse.Table, action parse.SemanticAction, onError parse.ErrorHandler) *parse.Parser {
	return parse.NewParser(table, action, onError)
}

package parse

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/sturgeon-gen/sturgeon/grammar"
)

// Algorithm selects which table-construction method Build uses (spec §4.4).
type Algorithm int

const (
	LR0 Algorithm = iota
	SLR
	LR1
	LALR
)

func (a Algorithm) String() string {
	switch a {
	case LR0:
		return "LR0"
	case SLR:
		return "SLR"
	case LR1:
		return "LR1"
	case LALR:
		return "LALR"
	default:
		return "Algorithm(?)"
	}
}

// Table is the dense, immutable ACTION/GOTO table of spec §3 "Table": once
// built it is shared read-only across any number of concurrent Parser runs
// (spec §5 "a compiled table is immutable and may be shared across threads
// by read-only reference"). action and goto_ are indexed [state][symbol id]
// rather than recomputed per lookup, which is the core redesign spec §9
// calls for over the teacher's recompute-on-every-call Action()/Goto().
type Table struct {
	g         *grammar.Grammar
	Algorithm Algorithm
	Initial   int

	action [][]Action // [state][terminal id]
	goto_  [][]int    // [state][nonterminal id], -1 means no transition

	// defaultReduce[state], when >= 0, is a production id this row reduces
	// unconditionally (every populated cell in the row agrees) — set by
	// Compress (spec §4.5 "default-action rows").
	defaultReduce []int

	Conflicts []Conflict
}

// Action returns the ACTION table entry for (state, terminal). If the row
// has a default reduce (post-compression) and the raw cell is an error
// entry, the default is returned instead.
func (t *Table) Action(state, terminal int) Action {
	a := t.action[state][terminal]
	if a.Kind == Error && t.defaultReduce != nil && t.defaultReduce[state] >= 0 {
		return Action{Kind: Reduce, Prod: t.defaultReduce[state]}
	}
	return a
}

// DefaultAction returns the unconditional reduce recorded for state by
// Compress, if any. The runtime consults this before asking the lexer for a
// lookahead token (spec §4.6 step 1: "if default_action[s] exists, take it;
// otherwise ... request one from the lexer"), since a default row's action
// doesn't depend on what the lookahead actually is.
func (t *Table) DefaultAction(state int) (Action, bool) {
	if t.defaultReduce == nil || t.defaultReduce[state] < 0 {
		return Action{}, false
	}
	return Action{Kind: Reduce, Prod: t.defaultReduce[state]}, true
}

// Goto returns the GOTO table entry for (state, nonterminal), or
// (0, false) if there is no transition.
func (t *Table) Goto(state, nonterminal int) (int, bool) {
	dest := t.goto_[state][nonterminal]
	if dest < 0 {
		return 0, false
	}
	return dest, true
}

// NumStates returns the number of rows in the table.
func (t *Table) NumStates() int { return len(t.action) }

// Grammar returns the grammar this table was built from.
func (t *Table) Grammar() *grammar.Grammar { return t.g }

func (t *Table) setAction(state, terminal int, a Action) {
	t.action[state][terminal] = a
}

func (t *Table) setGoto(state, nonterminal, dest int) {
	t.goto_[state][nonterminal] = dest
}

func newTable(g *grammar.Grammar, algo Algorithm, numStates int) *Table {
	t := &Table{g: g, Algorithm: algo, action: make([][]Action, numStates), goto_: make([][]int, numStates)}
	for s := 0; s < numStates; s++ {
		t.action[s] = make([]Action, g.NumSymbols())
		row := make([]int, g.NumSymbols())
		for i := range row {
			row[i] = -1
		}
		t.goto_[s] = row
	}
	return t
}

// String renders the table as a terminal-friendly grid via rosed, in the
// style of the teacher's SLR/LALR/CLR1 TableString output.
func (t *Table) String() string {
	g := t.g
	// Terminals() excludes the reserved EOF and error ids (they aren't
	// ordinary grammar vocabulary), but both can carry real ACTION cells
	// (EOF via accept, error via panic-mode shifts), so the rendered grid
	// adds them back as explicit columns.
	terms := g.Terminals()
	terms = append(terms, grammar.SymEOF, grammar.SymError)
	nonterms := g.Nonterminals()

	headers := []string{"state", "|"}
	for _, term := range terms {
		headers = append(headers, fmt.Sprintf("A:%s", g.Name(term)))
	}
	headers = append(headers, "|")
	for _, nt := range nonterms {
		headers = append(headers, fmt.Sprintf("G:%s", g.Name(nt)))
	}

	data := [][]string{headers}
	for s := 0; s < t.NumStates(); s++ {
		row := []string{fmt.Sprintf("%d", s), "|"}
		for _, term := range terms {
			act := t.Action(s, term)
			cell := ""
			switch act.Kind {
			case Accept:
				cell = "acc"
			case Reduce:
				cell = fmt.Sprintf("r%d", act.Prod)
			case Shift:
				cell = fmt.Sprintf("s%d", act.State)
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nonterms {
			cell := ""
			if dest, ok := t.Goto(s, nt); ok {
				cell = fmt.Sprintf("%d", dest)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

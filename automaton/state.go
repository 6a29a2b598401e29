// Package automaton builds the canonical collection of LR item sets (spec
// §4.3 "Item & State Algebra"): closure, goto, BFS state construction, and
// LALR(1) merging by LR(0) core. It is grounded on the teacher's
// automaton.NewLR1ViablePrefixDFA / NewLALR1ViablePrefixDFA, adapted from
// string-set-keyed NFA/DFA states to the integer symbol ids spec §3
// mandates, and simplified to merge states directly instead of round-
// tripping through a generic NFA subset-construction (that round trip
// exists in the teacher to share machinery with lexer DFA construction,
// which this module has no analog of).
package automaton

import (
	"github.com/sturgeon-gen/sturgeon/grammar"
)

// State is one node of the canonical collection: its Kernel (spec's
// definition — dot>0 items, plus every item of production 0 regardless of
// dot), its full Closure, and the Transitions out of it keyed by symbol id.
type State struct {
	ID          int
	Kernel      []grammar.Item
	Items       []grammar.Item
	Transitions map[int]int
}

// Collection is the canonical collection of states produced by BFS
// closure-and-goto from the start item (spec §4.3). Start is always 0.
type Collection struct {
	States []*State
	Start  int
	LR1    bool // whether Items/Kernel lookaheads are meaningful
}

func (c *Collection) State(id int) *State { return c.States[id] }

func (c *Collection) Len() int { return len(c.States) }

package automaton

import (
	"sort"

	"github.com/sturgeon-gen/sturgeon/grammar"
)

// BuildCollection runs the BFS closure-and-goto construction of spec §4.3:
// starting from the closure of {[$accept -> ·start, $end]} (or the
// lookahead-less LR(0) equivalent), repeatedly computing goto on every
// symbol that follows a dot in the current state until no new state is
// produced. Symbols are visited in sorted order at each state so that two
// builds of the same grammar assign identical state ids (spec §8
// "byte-identical tables").
func BuildCollection(g *grammar.Grammar, sets *grammar.Sets, lr1 bool) *Collection {
	startLookahead := grammar.NoLookahead
	if lr1 {
		startLookahead = grammar.SymEOF
	}
	startKernel := []grammar.Item{{Prod: 0, Dot: 0, Lookahead: startLookahead}}
	startClosure := Closure(g, sets, startKernel, lr1)

	indexByKey := map[string]int{}
	var states []*State

	s0 := &State{
		ID:          0,
		Kernel:      ExtractKernel(startClosure),
		Items:       startClosure,
		Transitions: map[int]int{},
	}
	states = append(states, s0)
	indexByKey[stateKey(s0.Kernel, lr1)] = 0

	queue := []int{0}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		st := states[idx]

		symSet := map[int]bool{}
		for _, it := range st.Items {
			if sym, ok := it.NextSymbol(g); ok {
				symSet[sym] = true
			}
		}
		syms := make([]int, 0, len(symSet))
		for sym := range symSet {
			syms = append(syms, sym)
		}
		sort.Ints(syms)

		for _, sym := range syms {
			gotoItems := Goto(g, sets, st.Items, sym, lr1)
			if len(gotoItems) == 0 {
				continue
			}
			kernel := ExtractKernel(gotoItems)
			key := stateKey(kernel, lr1)
			destIdx, exists := indexByKey[key]
			if !exists {
				destIdx = len(states)
				ns := &State{
					ID:          destIdx,
					Kernel:      kernel,
					Items:       gotoItems,
					Transitions: map[int]int{},
				}
				states = append(states, ns)
				indexByKey[key] = destIdx
				queue = append(queue, destIdx)
			}
			st.Transitions[sym] = destIdx
		}
	}

	return &Collection{States: states, Start: 0, LR1: lr1}
}

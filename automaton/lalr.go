package automaton

import (
	"sort"

	"github.com/sturgeon-gen/sturgeon/grammar"
)

// MergeLALR builds the LALR(1) collection from an already-built canonical
// LR(1) collection by merging every group of states that share an LR(0)
// core into one state whose lookaheads are the union of the group's (spec
// §4.3 "LALR(1): ... merge states in the canonical LR(1) collection that
// share an identical LR(0) core, unioning their lookahead sets"). This is
// the "canonical LR(1) then merge" construction the spec sanctions as an
// acceptable, if less memory-efficient, alternative to direct
// lookahead-propagation — and it is what the teacher's own (actually used,
// as opposed to the abandoned lookahead-propagation attempt)
// automaton.NewLALR1ViablePrefixDFA does.
//
// Closures are recomputed from each merged kernel rather than union of the
// pre-existing per-state closures, which sidesteps any subtlety around
// closure items derived from one group member but not another (the
// Dragon Book's "easy but space-consuming" algorithm 4.59).
func MergeLALR(g *grammar.Grammar, sets *grammar.Sets, canonical *Collection) *Collection {
	groups := map[string][]int{}
	var order []string
	for _, st := range canonical.States {
		key := lr0Key(st.Kernel)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], st.ID)
	}

	// Assign new ids by each group's minimum original state id, so the
	// start state (original id 0, whose group has minimum 0) always lands
	// first and merged ids stay reproducible across builds.
	sort.Slice(order, func(i, j int) bool {
		return minOf(groups[order[i]]) < minOf(groups[order[j]])
	})

	oldToNew := map[int]int{}
	mergedKernels := make([][]grammar.Item, len(order))
	for newID, key := range order {
		members := groups[key]
		merged := mergeKernels(canonical, members)
		mergedKernels[newID] = merged
		for _, oldID := range members {
			oldToNew[oldID] = newID
		}
	}

	states := make([]*State, len(order))
	for newID, kernel := range mergedKernels {
		closure := Closure(g, sets, kernel, true)
		states[newID] = &State{
			ID:          newID,
			Kernel:      kernel,
			Items:       closure,
			Transitions: map[int]int{},
		}
	}

	// Every member of a group shares the same LR(0) core, so they agree on
	// which symbols transition and to which group each destination belongs;
	// redirect through oldToNew.
	for newID, key := range order {
		members := groups[key]
		rep := canonical.State(members[0])
		for sym, oldDest := range rep.Transitions {
			states[newID].Transitions[sym] = oldToNew[oldDest]
		}
	}

	return &Collection{States: states, Start: oldToNew[canonical.Start], LR1: true}
}

func mergeKernels(canonical *Collection, memberIDs []int) []grammar.Item {
	byCore := map[string]grammar.Item{}
	var cores []string
	lookaheads := map[string]map[int]bool{}
	for _, id := range memberIDs {
		for _, it := range canonical.State(id).Kernel {
			core := it.Core()
			ck := lr0Key([]grammar.Item{core})
			if _, ok := byCore[ck]; !ok {
				byCore[ck] = core
				cores = append(cores, ck)
				lookaheads[ck] = map[int]bool{}
			}
			lookaheads[ck][it.Lookahead] = true
		}
	}
	sort.Strings(cores)

	var out []grammar.Item
	for _, ck := range cores {
		core := byCore[ck]
		las := make([]int, 0, len(lookaheads[ck]))
		for la := range lookaheads[ck] {
			las = append(las, la)
		}
		sort.Ints(las)
		for _, la := range las {
			out = append(out, grammar.Item{Prod: core.Prod, Dot: core.Dot, Lookahead: la})
		}
	}
	return out
}

func minOf(ids []int) int {
	m := ids[0]
	for _, id := range ids[1:] {
		if id < m {
			m = id
		}
	}
	return m
}

package parse

import (
	"github.com/sturgeon-gen/sturgeon/automaton"
	"github.com/sturgeon-gen/sturgeon/grammar"
)

// Build constructs a Table for the given algorithm (spec §4.4). It never
// returns an error because of a conflict — every conflict it finds while
// filling a cell is resolved via resolveShiftReduce/resolveReduceReduce and
// appended to Table.Conflicts, exactly as vartan's parsing_table_builder.go
// does and as the teacher's slr.go/lalr.go (which panic/fail outright on
// the first conflict) does not.
func Build(g *grammar.Grammar, sets *grammar.Sets, algo Algorithm) (*Table, error) {
	switch algo {
	case LR0:
		coll := automaton.BuildCollection(g, sets, false)
		return buildFromCollection(g, sets, coll, LR0)
	case SLR:
		coll := automaton.BuildCollection(g, sets, false)
		return buildFromCollection(g, sets, coll, SLR)
	case LR1:
		coll := automaton.BuildCollection(g, sets, true)
		return buildFromCollection(g, sets, coll, LR1)
	case LALR:
		canonical := automaton.BuildCollection(g, sets, true)
		merged := automaton.MergeLALR(g, sets, canonical)
		return buildFromCollection(g, sets, merged, LALR)
	default:
		return nil, &unsupportedAlgorithmError{algo}
	}
}

type unsupportedAlgorithmError struct{ algo Algorithm }

func (e *unsupportedAlgorithmError) Error() string {
	return "unsupported algorithm: " + e.algo.String()
}

// reduceTerminals returns the terminals that should trigger a reduce of
// item (whose dot is already at the end of its production), per the
// per-algorithm lookahead policy of spec §4.4: LR0 reduces unconditionally
// on every terminal (the weakest, most conflict-prone policy, by design);
// SLR narrows that to FOLLOW(head); LR1/LALR items already carry the one
// exact lookahead closure/goto derived for them.
func reduceTerminals(g *grammar.Grammar, sets *grammar.Sets, algo Algorithm, it grammar.Item) []int {
	switch algo {
	case LR0:
		terms := append([]int{}, g.Terminals()...)
		return append(terms, grammar.SymEOF)
	case SLR:
		head := g.Production(it.Prod).Head
		return sets.Follow(head)
	default: // LR1, LALR
		return []int{it.Lookahead}
	}
}

func buildFromCollection(g *grammar.Grammar, sets *grammar.Sets, coll *automaton.Collection, algo Algorithm) (*Table, error) {
	t := newTable(g, algo, coll.Len())
	t.Initial = coll.Start

	for _, st := range coll.States {
		for sym, dest := range st.Transitions {
			if g.IsTerminal(sym) {
				t.applyAction(st.ID, sym, Action{Kind: Shift, State: dest})
			} else {
				t.setGoto(st.ID, sym, dest)
			}
		}

		for _, it := range st.Items {
			if !it.AtEnd(g) {
				continue
			}
			if it.Prod == 0 {
				t.applyAction(st.ID, grammar.SymEOF, Action{Kind: Accept})
				continue
			}
			for _, term := range reduceTerminals(g, sets, algo, it) {
				t.applyAction(st.ID, term, Action{Kind: Reduce, Prod: it.Prod})
			}
		}
	}

	return t, nil
}

// applyAction installs a into the (state, terminal) cell, recording and
// resolving a conflict if a different action is already there.
func (t *Table) applyAction(state, terminal int, a Action) {
	existing := t.action[state][terminal]
	if existing.Kind == Error {
		t.setAction(state, terminal, a)
		return
	}
	if existing.Equal(a) {
		return
	}

	var resolved Action
	var reason string
	var kind ConflictKind

	switch {
	case existing.Kind == Shift && a.Kind == Reduce:
		kind = ShiftReduce
		resolved, reason = resolveShiftReduce(t.g, terminal, existing, a.Prod)
	case existing.Kind == Reduce && a.Kind == Shift:
		kind = ShiftReduce
		resolved, reason = resolveShiftReduce(t.g, terminal, a, existing.Prod)
	case existing.Kind == Reduce && a.Kind == Reduce:
		kind = ReduceReduce
		resolved, reason = resolveReduceReduce(existing.Prod, a.Prod)
	default:
		// accept/shift, accept/reduce, or shift/shift: these only arise
		// from a malformed grammar (two distinct shifts to different
		// states on the same terminal, or something racing the accept
		// production); keep the first action seen and record it as an
		// unresolved conflict rather than silently dropping information.
		kind = ShiftReduce
		resolved, reason = existing, "irreconcilable action pair; keeping first seen"
	}

	t.Conflicts = append(t.Conflicts, Conflict{
		State:      state,
		Terminal:   terminal,
		Kind:       kind,
		Candidates: []Action{existing, a},
		Resolved:   resolved,
		Reason:     reason,
	})
	t.setAction(state, terminal, resolved)
}

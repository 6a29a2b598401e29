package parse

import "github.com/sturgeon-gen/sturgeon/grammar"

// LL1Table is the PREDICT table of spec §4.4 "LL(1)": for each
// (nonterminal, terminal) pair, the production to expand, or -1 if the
// pair has no entry (a syntax error at that point in a top-down parse).
// Unlike the LR tables, LL1Table plays no part in the shift-reduce runtime
// of §4.6 — it is offered as an alternative table-construction output for
// callers building their own predictive parser, per spec §2's component
// table listing LL(1) construction as a sibling of the LR family.
type LL1Table struct {
	g       *grammar.Grammar
	predict [][]int // [nonterminal id][terminal id]

	// firstOrigin[head][terminal] is true as long as every PREDICT entry
	// written to that cell so far came from FIRST(body); it flips to false
	// the moment a FOLLOW(head)-sourced entry (from a nullable body) lands
	// there, which is exactly the condition that distinguishes a
	// first/first conflict from a first/follow one.
	firstOrigin [][]bool

	Conflicts []Conflict
}

func (t *LL1Table) Predict(nonterminal, terminal int) (int, bool) {
	prod := t.predict[nonterminal][terminal]
	if prod < 0 {
		return 0, false
	}
	return prod, true
}

// BuildLL1 constructs the PREDICT table (spec §4.4): for a production
// A -> β, every terminal in FIRST(β) predicts it, and if β is nullable,
// every terminal in FOLLOW(A) predicts it too. A grammar with a
// genuine LL(1) conflict (two productions both claiming the same cell)
// still produces a table — the first-declared production wins and the
// collision is recorded, mirroring the LR builders' never-fail policy.
func BuildLL1(g *grammar.Grammar, sets *grammar.Sets) *LL1Table {
	t := &LL1Table{g: g, predict: make([][]int, g.NumSymbols()), firstOrigin: make([][]bool, g.NumSymbols())}
	for id := range t.predict {
		row := make([]int, g.NumSymbols())
		for i := range row {
			row[i] = -1
		}
		t.predict[id] = row
		t.firstOrigin[id] = make([]bool, g.NumSymbols())
	}

	for _, p := range g.Productions() {
		if p.Head == grammar.SymAccept {
			continue // the synthetic augmenting production has no LL(1) role
		}
		first, nullable := sets.FirstOfString(p.Body)
		for _, term := range first {
			t.apply(p.Head, term, p.ID, true)
		}
		if nullable {
			for _, term := range sets.Follow(p.Head) {
				t.apply(p.Head, term, p.ID, false)
			}
		}
	}
	return t
}

// apply installs prodID into the (head, terminal) PREDICT cell. fromFirst
// reports whether this particular write is predicting via FIRST(body)
// (true) or via FOLLOW(head) on a nullable body (false); that, combined
// with the origin already recorded for the cell, is what distinguishes a
// first/first conflict from a first/follow one.
func (t *LL1Table) apply(head, terminal, prodID int, fromFirst bool) {
	if t.predict[head][terminal] < 0 {
		t.predict[head][terminal] = prodID
		t.firstOrigin[head][terminal] = fromFirst
		return
	}
	if t.predict[head][terminal] == prodID {
		return
	}
	existing := t.predict[head][terminal]
	winner := existing
	if prodID < winner {
		winner = prodID
	}

	kind, reason := LLFirstFollow, "LL(1) FIRST/FOLLOW conflict; lower production id wins"
	if t.firstOrigin[head][terminal] && fromFirst {
		kind, reason = LLFirstFirst, "LL(1) FIRST/FIRST conflict; lower production id wins"
	}

	t.Conflicts = append(t.Conflicts, Conflict{
		State:      head,
		Terminal:   terminal,
		Kind:       kind,
		Candidates: []Action{{Kind: Reduce, Prod: existing}, {Kind: Reduce, Prod: prodID}},
		Resolved:   Action{Kind: Reduce, Prod: winner},
		Reason:     reason,
	})
	t.predict[head][terminal] = winner
	t.firstOrigin[head][terminal] = t.firstOrigin[head][terminal] && fromFirst
}

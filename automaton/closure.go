package automaton

import "github.com/sturgeon-gen/sturgeon/grammar"

// Closure computes the closure of a kernel item set (spec §4.3): repeatedly
// add, for every item [A -> α·Bβ, a] with B a nonterminal, every item
// [B -> ·γ, b] for b in FIRST(βa) (LR(1)) or with no lookahead at all
// (LR(0)/SLR). Dedup is by full item equality so LR(1) closure naturally
// produces one Item per distinct lookahead rather than a set-valued one.
func Closure(g *grammar.Grammar, sets *grammar.Sets, kernel []grammar.Item, lr1 bool) []grammar.Item {
	seen := make(map[grammar.Item]bool, len(kernel)*2)
	worklist := make([]grammar.Item, 0, len(kernel)*2)
	for _, it := range kernel {
		if !seen[it] {
			seen[it] = true
			worklist = append(worklist, it)
		}
	}

	for i := 0; i < len(worklist); i++ {
		it := worklist[i]
		sym, ok := it.NextSymbol(g)
		if !ok || g.IsTerminal(sym) {
			continue
		}
		body := g.Production(it.Prod).Body
		beta := body[it.Dot+1:]

		if !lr1 {
			for _, prodID := range g.ProductionsFor(sym) {
				ni := grammar.Item{Prod: prodID, Dot: 0, Lookahead: grammar.NoLookahead}
				if !seen[ni] {
					seen[ni] = true
					worklist = append(worklist, ni)
				}
			}
			continue
		}

		betaA := make([]int, len(beta)+1)
		copy(betaA, beta)
		betaA[len(beta)] = it.Lookahead
		lookaheads, _ := sets.FirstOfString(betaA)
		for _, prodID := range g.ProductionsFor(sym) {
			for _, la := range lookaheads {
				ni := grammar.Item{Prod: prodID, Dot: 0, Lookahead: la}
				if !seen[ni] {
					seen[ni] = true
					worklist = append(worklist, ni)
				}
			}
		}
	}
	return worklist
}

// Goto advances every item in items whose next symbol is sym, then closes
// the result (spec §4.3 "goto"). Returns nil if no item in items is waiting
// on sym.
func Goto(g *grammar.Grammar, sets *grammar.Sets, items []grammar.Item, sym int, lr1 bool) []grammar.Item {
	var kernel []grammar.Item
	for _, it := range items {
		if s, ok := it.NextSymbol(g); ok && s == sym {
			kernel = append(kernel, it.Advance())
		}
	}
	if len(kernel) == 0 {
		return nil
	}
	return Closure(g, sets, kernel, lr1)
}

// ExtractKernel filters a closure down to its kernel items: those with
// Dot > 0, plus every item of production 0 regardless of dot (spec §3
// "LR Item" — production 0's dot-0 item seeds the start state's kernel).
func ExtractKernel(items []grammar.Item) []grammar.Item {
	var out []grammar.Item
	for _, it := range items {
		if it.Dot > 0 || it.Prod == 0 {
			out = append(out, it)
		}
	}
	return out
}

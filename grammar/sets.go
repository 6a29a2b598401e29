package grammar

import "sort"

// Sets holds the three fixed-point closures of spec §4.2: Nullable, FIRST,
// and FOLLOW. They are computed once from an immutable Grammar and are
// themselves immutable afterward (spec §3 "Lifecycle").
type Sets struct {
	g        *Grammar
	nullable []bool
	first    []map[int]bool // indexed by symbol id; terminals hold {self}
	follow   []map[int]bool // indexed by nonterminal id
}

// Solve computes Nullable, FIRST, and FOLLOW for g by monotone fixed-point
// iteration: each pass either grows at least one set or the computation has
// reached its fixpoint (spec §4.2 "Termination").
func Solve(g *Grammar) *Sets {
	s := &Sets{
		g:        g,
		nullable: make([]bool, g.NumSymbols()),
		first:    make([]map[int]bool, g.NumSymbols()),
		follow:   make([]map[int]bool, g.NumSymbols()),
	}

	for id := 0; id < g.NumSymbols(); id++ {
		if g.IsTerminal(id) {
			s.first[id] = map[int]bool{id: true}
		} else {
			s.first[id] = map[int]bool{}
			s.follow[id] = map[int]bool{}
		}
	}

	s.solveNullable()
	s.solveFirst()
	s.solveFollow()
	return s
}

func (s *Sets) solveNullable() {
	g := s.g
	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			if s.nullable[p.Head] {
				continue
			}
			if p.IsEpsilon() || s.bodyNullable(p.Body) {
				s.nullable[p.Head] = true
				changed = true
			}
		}
	}
}

func (s *Sets) bodyNullable(body []int) bool {
	for _, sym := range body {
		if !s.nullable[sym] && !s.g.IsTerminal(sym) {
			return false
		}
		if s.g.IsTerminal(sym) {
			return false
		}
	}
	return true
}

func (s *Sets) solveFirst() {
	g := s.g
	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			set, nullableBody := s.firstOfSeq(p.Body)
			for t := range set {
				if !s.first[p.Head][t] {
					s.first[p.Head][t] = true
					changed = true
				}
			}
			_ = nullableBody // nullability already tracked separately
		}
	}
}

// firstOfSeq computes FIRST(X1 X2 ... Xk) and whether the whole sequence is
// nullable, without mutating any stored set — used both while solving FIRST
// itself and later by closure/goto construction via Sets.FirstOfString.
func (s *Sets) firstOfSeq(seq []int) (map[int]bool, bool) {
	out := map[int]bool{}
	for _, sym := range seq {
		for t := range s.first[sym] {
			out[t] = true
		}
		if !s.nullable[sym] && !s.g.IsTerminal(sym) {
			return out, false
		}
		if s.g.IsTerminal(sym) {
			return out, false
		}
	}
	return out, true
}

func (s *Sets) solveFollow() {
	g := s.g
	s.follow[g.Start()][SymEOF] = true

	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			for i, sym := range p.Body {
				if g.IsTerminal(sym) {
					continue
				}
				beta := p.Body[i+1:]
				betaFirst, betaNullable := s.firstOfSeq(beta)
				for t := range betaFirst {
					if !s.follow[sym][t] {
						s.follow[sym][t] = true
						changed = true
					}
				}
				if betaNullable {
					for t := range s.follow[p.Head] {
						if !s.follow[sym][t] {
							s.follow[sym][t] = true
							changed = true
						}
					}
				}
			}
		}
	}
}

// Nullable reports whether symbol can derive ε.
func (s *Sets) Nullable(sym int) bool { return s.nullable[sym] }

// First returns FIRST(sym) as a sorted slice of terminal ids.
func (s *Sets) First(sym int) []int { return sortedKeys(s.first[sym]) }

// Follow returns FOLLOW(nonterminal) as a sorted slice of terminal ids.
func (s *Sets) Follow(nonterminal int) []int { return sortedKeys(s.follow[nonterminal]) }

// FirstOfString returns (FIRST(α), nullable(α)) for a string of symbols, as
// used during LR(1) closure (spec §4.2 "Also exposes first_of_string").
func (s *Sets) FirstOfString(alpha []int) ([]int, bool) {
	set, nullable := s.firstOfSeq(alpha)
	return sortedKeys(set), nullable
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

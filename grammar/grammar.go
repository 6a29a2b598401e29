package grammar

import (
	"fmt"
	"sort"

	"github.com/sturgeon-gen/sturgeon/ierrors"
)

// ProductionDef is one alternative of a rule in a GrammarDef: Head is the
// nonterminal name, Body is the ordered sequence of symbol names (empty
// means ε). PrecedenceOf optionally names a terminal whose precedence this
// production should inherit instead of the default (the rightmost terminal
// in Body) — the structured-grammar equivalent of yacc's %prec.
type ProductionDef struct {
	Head         string
	Body         []string
	PrecedenceOf string
}

// OperatorDef declares the precedence level and associativity of a group of
// terminals, as accepted by Build (spec §6 "operators").
// Level increases with binding strength: a higher Level binds tighter.
type OperatorDef struct {
	Level int
	Assoc Assoc
	Terms []string
}

// Def is the structured grammar input described in spec §4.1/§6. It is the
// only supported way to construct a Grammar; parsing a grammar from source
// text is explicitly out of scope (spec §1).
type Def struct {
	Start       string
	Tokens      []string
	Productions []ProductionDef
	Operators   []OperatorDef
}

// Grammar is the canonical, immutable in-memory grammar (spec §3 "Grammar").
// It is built once by Build and never mutated afterward; every downstream
// stage (set solving, item/state algebra, table construction) takes a
// *Grammar by reference and reads from it concurrently-safely.
type Grammar struct {
	names    []string
	terminal []bool
	byName   map[string]int

	productions []Production
	start       int // id of the user-declared start nonterminal (not $accept)

	termPrec  map[int]int
	termAssoc map[int]Assoc
	prodPrec  map[int]int

	// byHead indexes productions by Head id, preserving declaration order;
	// built once so FIRST/FOLLOW/closure don't re-scan the full production
	// list on every call.
	byHead map[int][]int
}

// Build interns symbols, classifies them, augments the grammar with
// production 0 (bare $accept -> start), and validates the invariants of
// spec §3/§4.1. The returned Grammar is immutable.
func Build(def Def) (*Grammar, error) {
	if len(def.Productions) == 0 {
		return nil, ierrors.NewGrammarError(ierrors.EmptyGrammar, "grammar declares no productions")
	}
	if def.Start == "" {
		return nil, ierrors.NewGrammarError(ierrors.NoStart, "no start symbol declared")
	}

	g := &Grammar{
		byName:    map[string]int{},
		termPrec:  map[int]int{},
		termAssoc: map[int]Assoc{},
		prodPrec:  map[int]int{},
		byHead:    map[int][]int{},
	}
	g.intern("$accept", true) // SymAccept = 0, classified nonterminal below
	g.intern("$end", true)    // SymEOF = 1
	g.intern("error", true)   // SymError = 2
	g.terminal[SymAccept] = false
	// error is classified terminal despite its grammatical role as a
	// right-hand-side placeholder (spec §3 calls it a "nonterminal"): the
	// runtime needs ACTION[s, ERROR] to be a real ACTION-table cell it can
	// Shift on during synchronization (spec §4.6), and ACTION columns are
	// terminal-indexed. Classic yacc/bison make the same choice for the
	// same reason.

	// Pass 1: collect the set of declared terminals and the set of
	// nonterminals (every LHS), so that pass 2 can validate each RHS symbol
	// against a complete picture instead of guessing as it goes.
	for _, tok := range def.Tokens {
		if _, ok := g.byName[tok]; !ok {
			g.intern(tok, true)
		}
	}
	lhsNames := make(map[string]bool, len(def.Productions))
	for _, p := range def.Productions {
		if p.Head == "" {
			return nil, ierrors.NewGrammarError(ierrors.NoStart, "production with empty head name")
		}
		lhsNames[p.Head] = true
	}
	for name := range lhsNames {
		if id, ok := g.byName[name]; ok && g.terminal[id] {
			return nil, ierrors.NewConflictingClassificationError(name)
		}
	}

	// Pass 2: intern nonterminals (LHS names, in first-seen declaration
	// order for determinism - spec §8), then validate every RHS symbol is
	// either a declared token or some production's LHS.
	for _, p := range def.Productions {
		if _, ok := g.byName[p.Head]; !ok {
			g.intern(p.Head, false)
		}
	}
	for _, p := range def.Productions {
		for _, sym := range p.Body {
			if _, ok := g.byName[sym]; !ok {
				return nil, ierrors.NewUndeclaredSymbolError(sym)
			}
		}
		if p.PrecedenceOf != "" {
			if id, ok := g.byName[p.PrecedenceOf]; !ok || !g.terminal[id] {
				return nil, ierrors.NewUndeclaredSymbolError(p.PrecedenceOf)
			}
		}
	}

	startID, ok := g.byName[def.Start]
	if !ok || g.terminal[startID] {
		return nil, ierrors.NewGrammarError(ierrors.NoStart, fmt.Sprintf("start symbol %q is not a declared nonterminal", def.Start))
	}
	g.start = startID

	// Production 0: $accept -> start. The parser accepts when this
	// production is reduced with $end as the lookahead (spec §3) rather
	// than by shifting $end into the body, so lexers never have to be
	// asked for a token past the one carrying EOF.
	g.addProduction(SymAccept, []int{startID})
	for _, p := range def.Productions {
		body := make([]int, len(p.Body))
		for i, sym := range p.Body {
			body[i] = g.byName[sym]
		}
		g.addProduction(g.byName[p.Head], body)
	}

	if err := g.applyOperators(def); err != nil {
		return nil, err
	}
	g.computeProductionPrecedence()
	g.applyPrecedenceOverrides(def)

	return g, nil
}

func (g *Grammar) intern(name string, terminal bool) int {
	id := len(g.names)
	g.names = append(g.names, name)
	g.terminal = append(g.terminal, terminal)
	g.byName[name] = id
	return id
}

func (g *Grammar) addProduction(head int, body []int) {
	p := Production{ID: len(g.productions), Head: head, Body: body}
	g.productions = append(g.productions, p)
	g.byHead[head] = append(g.byHead[head], p.ID)
}

func (g *Grammar) applyOperators(def Def) error {
	for _, op := range def.Operators {
		for _, name := range op.Terms {
			id, ok := g.byName[name]
			if !ok || !g.terminal[id] {
				return ierrors.NewUndeclaredSymbolError(name)
			}
			g.termPrec[id] = op.Level
			g.termAssoc[id] = op.Assoc
		}
	}
	return nil
}

// computeProductionPrecedence assigns each production the precedence of the
// rightmost terminal in its body, if that terminal has a declared
// precedence. A production whose rightmost terminal has none gets no
// precedence; terminals further left are not consulted. Explicit
// PrecedenceOf overrides are applied afterward by applyPrecedenceOverrides.
func (g *Grammar) computeProductionPrecedence() {
	for _, p := range g.productions {
		for i := len(p.Body) - 1; i >= 0; i-- {
			sym := p.Body[i]
			if g.terminal[sym] {
				if level, ok := g.termPrec[sym]; ok {
					g.prodPrec[p.ID] = level
				}
				break
			}
		}
	}
}

// applyPrecedenceOverrides applies each ProductionDef's PrecedenceOf, if any.
// Production ids are offset by one from def.Productions indices because
// production 0 is the synthetic augmenting rule.
func (g *Grammar) applyPrecedenceOverrides(def Def) {
	for i, p := range def.Productions {
		if p.PrecedenceOf == "" {
			continue
		}
		termID := g.byName[p.PrecedenceOf]
		g.prodPrec[i+1] = g.termPrec[termID]
	}
}

// Name returns the printable name of a symbol id, or a placeholder if id is
// out of range (never the case for ids produced by this package).
func (g *Grammar) Name(id int) string {
	if id < 0 || id >= len(g.names) {
		return fmt.Sprintf("sym(%d)", id)
	}
	return g.names[id]
}

// Lookup returns the id interned for name, if any.
func (g *Grammar) Lookup(name string) (int, bool) {
	id, ok := g.byName[name]
	return id, ok
}

func (g *Grammar) IsTerminal(id int) bool { return g.terminal[id] }

// Start returns the id of the user-declared start nonterminal (not $accept).
func (g *Grammar) Start() int { return g.start }

// NumSymbols returns the count of interned symbols, including the three
// reserved ones.
func (g *Grammar) NumSymbols() int { return len(g.names) }

// Terminals returns the ids of every terminal except EOF and error, sorted.
func (g *Grammar) Terminals() []int {
	var out []int
	for id, isTerm := range g.terminal {
		if isTerm && id != SymEOF && id != SymError {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// Nonterminals returns the ids of every nonterminal except $accept, sorted.
func (g *Grammar) Nonterminals() []int {
	var out []int
	for id, isTerm := range g.terminal {
		if !isTerm && id != SymAccept {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// Productions returns every production including the synthetic production 0.
func (g *Grammar) Productions() []Production { return g.productions }

// Production returns the production with the given id.
func (g *Grammar) Production(id int) Production { return g.productions[id] }

// ProductionsFor returns the ids of every production with the given head,
// in declaration order.
func (g *Grammar) ProductionsFor(head int) []int { return g.byHead[head] }

// TerminalPrecedence returns the declared precedence level of a terminal, or
// (0, false) if none was declared.
func (g *Grammar) TerminalPrecedence(term int) (int, bool) {
	level, ok := g.termPrec[term]
	return level, ok
}

// TerminalAssoc returns the declared associativity of a terminal, or
// AssocNone if none was declared.
func (g *Grammar) TerminalAssoc(term int) Assoc {
	return g.termAssoc[term]
}

// ProductionPrecedence returns the effective precedence of a production
// (explicit override or inherited from its rightmost terminal), or
// (0, false) if the production has no precedence at all.
func (g *Grammar) ProductionPrecedence(prod int) (int, bool) {
	level, ok := g.prodPrec[prod]
	return level, ok
}

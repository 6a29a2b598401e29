package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sturgeon-gen/sturgeon/automaton"
	"github.com/sturgeon-gen/sturgeon/grammar"
)

// exprGrammar is the textbook E -> E + T | T ; T -> T * F | F ; F -> ( E ) | id
// grammar used throughout the table-construction tests.
func exprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Build(grammar.Def{
		Start:  "E",
		Tokens: []string{"+", "*", "(", ")", "id"},
		Productions: []grammar.ProductionDef{
			{Head: "E", Body: []string{"E", "+", "T"}},
			{Head: "E", Body: []string{"T"}},
			{Head: "T", Body: []string{"T", "*", "F"}},
			{Head: "T", Body: []string{"F"}},
			{Head: "F", Body: []string{"(", "E", ")"}},
			{Head: "F", Body: []string{"id"}},
		},
	})
	assert := assert.New(t)
	assert.NoError(err)
	return g
}

func TestBuildCollection_LR0_StartStateKernel(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar(t)
	sets := grammar.Solve(g)

	coll := automaton.BuildCollection(g, sets, false)
	assert.Equal(0, coll.Start)
	start := coll.State(0)
	assert.Len(start.Kernel, 1)
	assert.Equal(0, start.Kernel[0].Prod)
	assert.Equal(0, start.Kernel[0].Dot)
	assert.Equal(grammar.NoLookahead, start.Kernel[0].Lookahead)

	// E, T, F, (, id must all have outgoing transitions from state 0.
	eID, _ := g.Lookup("E")
	tID, _ := g.Lookup("T")
	fID, _ := g.Lookup("F")
	lparen, _ := g.Lookup("(")
	idID, _ := g.Lookup("id")
	assert.Contains(start.Transitions, eID)
	assert.Contains(start.Transitions, tID)
	assert.Contains(start.Transitions, fID)
	assert.Contains(start.Transitions, lparen)
	assert.Contains(start.Transitions, idID)
}

func TestBuildCollection_IsDeterministicAcrossRuns(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar(t)
	sets := grammar.Solve(g)

	c1 := automaton.BuildCollection(g, sets, true)
	c2 := automaton.BuildCollection(g, sets, true)

	assert.Equal(c1.Len(), c2.Len())
	for i := range c1.States {
		assert.ElementsMatch(c1.States[i].Kernel, c2.States[i].Kernel, "state %d kernel", i)
		assert.Equal(c1.States[i].Transitions, c2.States[i].Transitions, "state %d transitions", i)
	}
}

func TestMergeLALR_ReducesStateCount(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar(t)
	sets := grammar.Solve(g)

	canonical := automaton.BuildCollection(g, sets, true)
	lalr := automaton.MergeLALR(g, sets, canonical)

	assert.Less(lalr.Len(), canonical.Len())
	assert.Equal(0, lalr.Start)

	// Every original state must map somewhere; transitions on a merged
	// state must all point at valid merged state ids.
	for _, st := range lalr.States {
		for sym, dest := range st.Transitions {
			assert.GreaterOrEqual(dest, 0)
			assert.Less(dest, lalr.Len(), "symbol %d transition out of range", sym)
		}
	}
}

func TestClosure_LR1AddsLookaheadsFromFollow(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar(t)
	sets := grammar.Solve(g)

	start := []grammar.Item{{Prod: 0, Dot: 0, Lookahead: grammar.SymEOF}}
	closure := automaton.Closure(g, sets, start, true)

	// Closure must include F -> . id, derived transitively through E and T.
	// Its lookaheads are the terminals that can follow F at the top level:
	// '+', '*' and $end (')' only follows F inside parentheses).
	found := false
	var las []int
	for _, it := range closure {
		if it.Prod == 6 && it.Dot == 0 { // F -> . id
			found = true
			las = append(las, it.Lookahead)
		}
	}
	assert.True(found, "expected F -> . id to appear in closure of the start item")
	plus, _ := g.Lookup("+")
	star, _ := g.Lookup("*")
	assert.ElementsMatch([]int{plus, star, grammar.SymEOF}, las)
}

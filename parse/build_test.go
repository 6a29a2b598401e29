package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sturgeon-gen/sturgeon/grammar"
	"github.com/sturgeon-gen/sturgeon/parse"
)

func exprGrammar(t *testing.T) (*grammar.Grammar, *grammar.Sets) {
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
	assert.NoError(t, err)
	return g, grammar.Solve(g)
}

func Test_Build_SLR_NoConflictsOnExprGrammar(t *testing.T) {
	assert := assert.New(t)
	g, sets := exprGrammar(t)

	table, err := parse.Build(g, sets, parse.SLR)
	assert.NoError(err)
	assert.Empty(table.Conflicts)

	id, _ := g.Lookup("id")
	act := table.Action(table.Initial, id)
	assert.Equal(parse.Shift, act.Kind)
}

func Test_Build_LALR_NoConflictsOnExprGrammar(t *testing.T) {
	assert := assert.New(t)
	g, sets := exprGrammar(t)

	table, err := parse.Build(g, sets, parse.LALR)
	assert.NoError(err)
	assert.Empty(table.Conflicts)
}

func Test_Build_LR0_HasShiftReduceConflicts(t *testing.T) {
	assert := assert.New(t)
	g, sets := exprGrammar(t)

	// LR0 reduces unconditionally on every terminal, so a grammar this
	// ambiguous under no-lookahead construction is expected to conflict.
	table, err := parse.Build(g, sets, parse.LR0)
	assert.NoError(err)
	assert.NotEmpty(table.Conflicts)
}

func Test_Build_DanglingElse_DefaultsToShift(t *testing.T) {
	assert := assert.New(t)
	g, err := grammar.Build(grammar.Def{
		Start:  "S",
		Tokens: []string{"if", "then", "else", "id"},
		Productions: []grammar.ProductionDef{
			{Head: "S", Body: []string{"if", "S", "then", "S"}},
			{Head: "S", Body: []string{"if", "S", "then", "S", "else", "S"}},
			{Head: "S", Body: []string{"id"}},
		},
	})
	assert.NoError(err)
	sets := grammar.Solve(g)

	table, buildErr := parse.Build(g, sets, parse.LALR)
	assert.NoError(buildErr)
	assert.NotEmpty(table.Conflicts)
	// With no declared precedence on either side, shift wins (binding
	// "else" to the nearest "if"), so any recorded shift/reduce conflict
	// must have resolved to a Shift action.
	for _, c := range table.Conflicts {
		if c.Kind == parse.ShiftReduce {
			assert.Equal(parse.Shift, c.Resolved.Kind)
		}
	}
}

func Test_Compress_DefaultActionAndPruning(t *testing.T) {
	assert := assert.New(t)
	g, sets := exprGrammar(t)

	table, err := parse.Build(g, sets, parse.LALR)
	assert.NoError(err)

	compressed := parse.Compress(table)
	assert.LessOrEqual(compressed.NumStates(), table.NumStates())

	// Parsing behavior must be unchanged by compression: every (state,
	// terminal) reachable cell still resolves to an action of the same
	// kind as before (modulo renumbered destinations).
	id, _ := g.Lookup("id")
	before := table.Action(table.Initial, id)
	after := compressed.Action(compressed.Initial, id)
	assert.Equal(before.Kind, after.Kind)
}

func Test_BuildLL1_PredictsOnFirstSet(t *testing.T) {
	assert := assert.New(t)
	g, sets := exprGrammar(t)

	ll1 := parse.BuildLL1(g, sets)
	lparen, _ := g.Lookup("(")
	eID, _ := g.Lookup("E")
	prod, ok := ll1.Predict(eID, lparen)
	assert.True(ok)
	assert.GreaterOrEqual(prod, 0)
}

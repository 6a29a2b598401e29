package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sturgeon-gen/sturgeon/ierrors"
)

func Test_Build(t *testing.T) {
	testCases := []struct {
		name      string
		def       Def
		expectErr ierrors.GrammarErrorKind
	}{
		{
			name:      "empty grammar",
			def:       Def{},
			expectErr: ierrors.EmptyGrammar,
		},
		{
			name: "no start symbol",
			def: Def{
				Tokens:      []string{"id"},
				Productions: []ProductionDef{{Head: "S", Body: []string{"id"}}},
			},
			expectErr: ierrors.NoStart,
		},
		{
			name: "undeclared symbol in body",
			def: Def{
				Start:       "S",
				Tokens:      []string{"id"},
				Productions: []ProductionDef{{Head: "S", Body: []string{"A"}}},
			},
			expectErr: ierrors.UndeclaredSymbol,
		},
		{
			name: "symbol declared as both token and LHS",
			def: Def{
				Start:       "S",
				Tokens:      []string{"S"},
				Productions: []ProductionDef{{Head: "S", Body: []string{}}},
			},
			expectErr: ierrors.ConflictingClassification,
		},
		{
			name: "minimal valid grammar",
			def: Def{
				Start:       "S",
				Tokens:      []string{"id"},
				Productions: []ProductionDef{{Head: "S", Body: []string{"id"}}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g, err := Build(tc.def)

			if tc.expectErr != 0 {
				if assert.Error(err) {
					gerr, ok := err.(*ierrors.GrammarError)
					if assert.True(ok, "error should be a *ierrors.GrammarError") {
						assert.Equal(tc.expectErr, gerr.Kind)
					}
				}
				return
			}

			assert.NoError(err)
			assert.NotNil(g)
		})
	}
}

func Test_Build_Augments(t *testing.T) {
	assert := assert.New(t)
	g, err := Build(Def{
		Start:       "S",
		Tokens:      []string{"id"},
		Productions: []ProductionDef{{Head: "S", Body: []string{"id"}}},
	})
	assert.NoError(err)

	// Production 0 is the synthetic accept production, bare $accept -> S.
	p0 := g.Production(0)
	assert.Equal(SymAccept, p0.Head)
	idID, ok := g.Lookup("id")
	assert.True(ok)
	sID, ok := g.Lookup("S")
	assert.True(ok)
	assert.Equal(sID, g.Start())
	assert.Equal([]int{sID}, p0.Body)

	// user's production is production 1.
	p1 := g.Production(1)
	assert.Equal(sID, p1.Head)
	assert.Equal([]int{idID}, p1.Body)
}

func Test_Build_PrecedenceFromOperators(t *testing.T) {
	assert := assert.New(t)
	g, err := Build(Def{
		Start:  "E",
		Tokens: []string{"+", "*", "id"},
		Productions: []ProductionDef{
			{Head: "E", Body: []string{"E", "+", "E"}},
			{Head: "E", Body: []string{"E", "*", "E"}},
			{Head: "E", Body: []string{"id"}},
		},
		Operators: []OperatorDef{
			{Level: 1, Assoc: AssocLeft, Terms: []string{"+"}},
			{Level: 2, Assoc: AssocLeft, Terms: []string{"*"}},
		},
	})
	assert.NoError(err)

	plus, _ := g.Lookup("+")
	star, _ := g.Lookup("*")
	level, ok := g.TerminalPrecedence(plus)
	assert.True(ok)
	assert.Equal(1, level)
	assert.Equal(AssocLeft, g.TerminalAssoc(plus))

	// production 2 is E -> E * E (0 is $accept, 1 is E -> E + E).
	prec, ok := g.ProductionPrecedence(2)
	assert.True(ok)
	starLevel, _ := g.TerminalPrecedence(star)
	assert.Equal(starLevel, prec)
}

func Test_Terminals_Nonterminals_ExcludeReserved(t *testing.T) {
	assert := assert.New(t)
	g, err := Build(Def{
		Start:       "S",
		Tokens:      []string{"id"},
		Productions: []ProductionDef{{Head: "S", Body: []string{"id"}}},
	})
	assert.NoError(err)

	assert.NotContains(g.Nonterminals(), SymAccept)
	assert.NotContains(g.Terminals(), SymEOF)
}

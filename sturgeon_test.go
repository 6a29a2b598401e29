package sturgeon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sturgeon-gen/sturgeon"
	"github.com/sturgeon-gen/sturgeon/grammar"
	"github.com/sturgeon-gen/sturgeon/parse"
)

func TestBuild_EndToEnd(t *testing.T) {
	assert := assert.New(t)
	def := grammar.Def{
		Start:  "E",
		Tokens: []string{"+", "id"},
		Productions: []grammar.ProductionDef{
			{Head: "E", Body: []string{"E", "+", "id"}},
			{Head: "E", Body: []string{"id"}},
		},
	}

	table, err := sturgeon.Build(def, parse.LALR)
	assert.NoError(err)
	assert.Empty(table.Conflicts)
	assert.Greater(table.NumStates(), 0)
}

func TestBuildLL1_EndToEnd(t *testing.T) {
	assert := assert.New(t)
	def := grammar.Def{
		Start:  "S",
		Tokens: []string{"a"},
		Productions: []grammar.ProductionDef{
			{Head: "S", Body: []string{"a"}},
		},
	}

	ll1, err := sturgeon.BuildLL1(def)
	assert.NoError(err)
	assert.NotNil(ll1)
}

func TestBuild_PropagatesGrammarError(t *testing.T) {
	assert := assert.New(t)
	_, err := sturgeon.Build(grammar.Def{}, parse.LALR)
	assert.Error(err)
}

package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Item_AdvanceAndAtEnd(t *testing.T) {
	assert := assert.New(t)
	g, err := Build(Def{
		Start:       "S",
		Tokens:      []string{"a", "b"},
		Productions: []ProductionDef{{Head: "S", Body: []string{"a", "b"}}},
	})
	assert.NoError(err)

	it := Item{Prod: 1, Dot: 0, Lookahead: NoLookahead}
	assert.False(it.AtEnd(g))
	sym, ok := it.NextSymbol(g)
	assert.True(ok)
	aID, _ := g.Lookup("a")
	assert.Equal(aID, sym)

	it = it.Advance()
	assert.False(it.AtEnd(g))
	it = it.Advance()
	assert.True(it.AtEnd(g))
	_, ok = it.NextSymbol(g)
	assert.False(ok)
}

func Test_Item_CoreEqualIgnoresLookahead(t *testing.T) {
	assert := assert.New(t)
	a := Item{Prod: 3, Dot: 1, Lookahead: 5}
	b := Item{Prod: 3, Dot: 1, Lookahead: 9}
	assert.True(a.CoreEqual(b))
	assert.False(a.Equal(b))
	assert.Equal(b.Core(), a.Core())
}

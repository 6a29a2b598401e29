package parse_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sturgeon-gen/sturgeon/grammar"
	"github.com/sturgeon-gen/sturgeon/ierrors"
	"github.com/sturgeon-gen/sturgeon/parse"
	"github.com/sturgeon-gen/sturgeon/types"
)

// tokenStream is a fixed slice of tokens for driving the parser in tests,
// standing in for a real lexer.
type tokenStream struct {
	toks []types.Token
	i    int
}

func (s *tokenStream) Next() (types.Token, error) {
	if s.i >= len(s.toks) {
		return types.Token{Terminal: grammar.SymEOF}, nil
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func tok(terminal int, text string) types.Token {
	return types.Token{Terminal: terminal, Text: text, Value: text}
}

func Test_Parser_EvaluatesSimpleExpression(t *testing.T) {
	assert := assert.New(t)
	g, sets := exprGrammar(t)
	table, err := parse.Build(g, sets, parse.LALR)
	assert.NoError(err)

	plus, _ := g.Lookup("+")
	star, _ := g.Lookup("*")
	id, _ := g.Lookup("id")

	// "2 + 3 * 4" = 14
	stream := &tokenStream{toks: []types.Token{
		tok(id, "2"), tok(plus, "+"), tok(id, "3"), tok(star, "*"), tok(id, "4"),
	}}

	action := func(prod grammar.Production, values []any, locs []types.Location) (any, error) {
		switch len(prod.Body) {
		case 3: // E -> E + T | T -> T * F
			left := values[0].(int)
			right := values[2].(int)
			if prod.Body[1] == plus {
				return left + right, nil
			}
			return left * right, nil
		case 1:
			if prod.Body[0] == id {
				return strconv.Atoi(values[0].(string))
			}
			return values[0], nil
		default:
			return values[0], nil
		}
	}

	p := parse.NewParser(table, action, nil)
	result, err := p.Parse(context.Background(), stream)
	assert.NoError(err)
	assert.Equal(14, result)
}

func Test_Parser_PanicModeRecovery(t *testing.T) {
	assert := assert.New(t)
	g, err := grammar.Build(grammar.Def{
		Start:  "S",
		Tokens: []string{";", "id"},
		Productions: []grammar.ProductionDef{
			{Head: "S", Body: []string{"stmt", ";", "S"}},
			{Head: "S", Body: []string{}},
			{Head: "stmt", Body: []string{"id"}},
			{Head: "stmt", Body: []string{"error"}},
		},
	})
	assert.NoError(err)
	sets := grammar.Solve(g)
	table, err := parse.Build(g, sets, parse.LALR)
	assert.NoError(err)

	semi, _ := g.Lookup(";")
	id, _ := g.Lookup("id")

	// "a ; ; ; b ;" - each doubled ';' is a syntax error recovered through
	// stmt -> error, matching the grammar's own error-recovery production.
	stream := &tokenStream{toks: []types.Token{
		tok(id, "a"), tok(semi, ";"), tok(semi, ";"), tok(semi, ";"), tok(id, "b"), tok(semi, ";"),
	}}

	errSeen := false
	action := func(prod grammar.Production, values []any, locs []types.Location) (any, error) {
		return nil, nil
	}
	onError := func(e *ierrors.SyntaxError) bool {
		errSeen = true
		return true
	}

	p := parse.NewParser(table, action, onError)
	_, parseErr := p.Parse(context.Background(), stream)
	assert.NoError(parseErr)
	assert.True(errSeen, "error handler should have been invoked for the mid-stream syntax error")
}

package parse

import (
	"fmt"

	"github.com/sturgeon-gen/sturgeon/grammar"
)

// resolveShiftReduce decides between a pending shift and a candidate reduce
// on the same terminal, per spec §4.4: higher production precedence wins;
// equal precedence falls back to the terminal's declared associativity
// (left binds to the reduce, right binds to the shift, nonassoc is an
// error entry); if either side has no declared precedence at all, the
// shift wins (the conventional yacc default) and the pair is still
// recorded as a conflict. Grounded on vartan's precAndAssoc lookup
// (terminalPrecedence/terminalAssociativity/productionPrecedence) for the
// comparison itself, and on the teacher's makeLRConflictError for which
// pairings are worth naming distinctly in the Reason string.
func resolveShiftReduce(g *grammar.Grammar, terminal int, shift Action, reduceProd int) (Action, string) {
	prodPrec, prodOK := g.ProductionPrecedence(reduceProd)
	termPrec, termOK := g.TerminalPrecedence(terminal)

	if !prodOK || !termOK {
		return shift, "no declared precedence on one side; defaulting to shift"
	}
	switch {
	case prodPrec > termPrec:
		return Action{Kind: Reduce, Prod: reduceProd}, "production precedence higher than terminal"
	case termPrec > prodPrec:
		return shift, "terminal precedence higher than production"
	default:
		switch g.TerminalAssoc(terminal) {
		case grammar.AssocLeft:
			return Action{Kind: Reduce, Prod: reduceProd}, "equal precedence, left associative"
		case grammar.AssocRight:
			return shift, "equal precedence, right associative"
		case grammar.AssocNonAssoc:
			return Action{Kind: Error}, "equal precedence, nonassociative"
		default:
			return shift, "equal precedence, no declared associativity; defaulting to shift"
		}
	}
}

// resolveReduceReduce picks the lower-numbered production, the conventional
// tie-break when two reduces compete and neither carries usable precedence
// information to decide otherwise (spec §4.4).
func resolveReduceReduce(prodA, prodB int) (Action, string) {
	winner := prodA
	if prodB < prodA {
		winner = prodB
	}
	return Action{Kind: Reduce, Prod: winner}, fmt.Sprintf("lower production id wins (%d)", winner)
}

package parse

import (
	"context"

	"github.com/sturgeon-gen/sturgeon/grammar"
	"github.com/sturgeon-gen/sturgeon/ierrors"
	"github.com/sturgeon-gen/sturgeon/types"
)

// recoveryShiftBudget is the number of consecutive successful shifts that
// must occur after a synchronization before panic-mode recovery re-arms
// (spec §4.6 "three consecutive successful shifts exit recovery mode").
const recoveryShiftBudget = 3

// SemanticAction is invoked when production prod is reduced, with the
// values and locations of its k right-hand-side symbols (spec §4.6
// "invoke the external semantic action callback with (production id, value
// stack slice, location stack slice)"). Its return value becomes the
// reduced nonterminal's semantic value.
type SemanticAction func(prod grammar.Production, values []any, locations []types.Location) (any, error)

// ErrorHandler is invoked the first time panic-mode recovery is triggered
// after the recovery counter reaches zero (spec §4.6 "invoke the external
// parse_error callback"). Returning false aborts the parse with the
// SyntaxError as fatal instead of attempting synchronization.
type ErrorHandler func(err *ierrors.SyntaxError) (recoverable bool)

// Parser drives the shift-reduce loop of spec §4.6 over an immutable
// Table. Grounded on the teacher's lrParser.Parse (three-stack shape,
// shift/reduce/accept/error switch), with parse-tree construction replaced
// by the SemanticAction callback and the TODO'd-out error recovery in
// parse/lr.go actually implemented per spec §4.6.
type Parser struct {
	table   *Table
	g       *grammar.Grammar
	action  SemanticAction
	onError ErrorHandler
}

func NewParser(table *Table, action SemanticAction, onError ErrorHandler) *Parser {
	return &Parser{table: table, g: table.g, action: action, onError: onError}
}

// Parse runs the shift-reduce loop over stream until Accept or a fatal
// error. ctx is checked at the top of every iteration (spec §5
// "Cancellation and timeouts"); its Err(), if non-nil, is reported as
// ierrors.CancelledError.
func (p *Parser) Parse(ctx context.Context, stream types.TokenStream) (any, error) {
	stateStack := []int{p.table.Initial}
	var valueStack []any
	var locStack []types.Location

	var la *types.Token
	recoveryCounter := 0

	next := func() error {
		tok, err := stream.Next()
		if err != nil {
			return ierrors.NewLexerError(err)
		}
		la = &tok
		return nil
	}

	for {
		if ctx != nil && ctx.Err() != nil {
			return nil, ierrors.NewCancelledError()
		}

		s := stateStack[len(stateStack)-1]

		// spec §4.6 step 1: a default-action row doesn't depend on the
		// lookahead at all, so take it without asking the lexer for a
		// token it won't use.
		act, isDefault := p.table.DefaultAction(s)
		if !isDefault {
			if la == nil {
				if err := next(); err != nil {
					return nil, err
				}
			}
			act = p.table.Action(s, la.Terminal)
		}

		switch act.Kind {
		case Shift:
			valueStack = append(valueStack, la.Value)
			locStack = append(locStack, la.Location)
			stateStack = append(stateStack, act.State)
			la = nil
			if recoveryCounter > 0 {
				recoveryCounter--
			}

		case Reduce:
			prod := p.g.Production(act.Prod)
			k := len(prod.Body)

			vals := append([]any{}, valueStack[len(valueStack)-k:]...)
			locs := append([]types.Location{}, locStack[len(locStack)-k:]...)

			var loc types.Location
			if k > 0 {
				loc = types.Join(locs[0], locs[k-1])
			} else if la != nil {
				loc = la.Location
			}

			value, err := p.action(prod, vals, locs)
			if err != nil {
				return nil, err
			}

			valueStack = valueStack[:len(valueStack)-k]
			locStack = locStack[:len(locStack)-k]
			stateStack = stateStack[:len(stateStack)-k]

			top := stateStack[len(stateStack)-1]
			dest, ok := p.table.Goto(top, prod.Head)
			if !ok {
				text, term := "", grammar.SymEOF
				if la != nil {
					text, term = la.Text, la.Terminal
				}
				return nil, ierrors.NewSyntaxError(
					"parser has no valid transition after this reduction",
					text, term, loc.FirstLine, loc.FirstColumn, nil, false)
			}
			stateStack = append(stateStack, dest)
			valueStack = append(valueStack, value)
			locStack = append(locStack, loc)

		case Accept:
			if len(valueStack) == 0 {
				return nil, nil
			}
			return valueStack[len(valueStack)-1], nil

		default: // Error
			recovered, err := p.recover(&stateStack, &valueStack, &locStack, &la, next, s, &recoveryCounter)
			if err != nil {
				return nil, err
			}
			if !recovered {
				return nil, ierrors.NewSyntaxError(
					"unrecoverable syntax error", la.Text, la.Terminal,
					la.Location.FirstLine, la.Location.FirstColumn,
					p.expectedNames(s), false)
			}
		}
	}
}

// recover implements spec §4.6's synchronization step, which the GLOSSARY
// defines as discarding both stack frames and input tokens until the error
// nonterminal is valid: pop stacks until a state s* is found where
// ACTION[s*, error] is a Shift, push it, then keep pulling lookahead tokens
// from the stream (discarding each one that still has no action in the new
// state) until one is found that does, or input is exhausted. Returns
// (false, nil) if no synchronizing state exists on the stack, or if no
// token before EOF lets parsing resume (both fatal), or (false, err) if the
// error handler rejects recovery outright.
func (p *Parser) recover(stateStack *[]int, valueStack *[]any, locStack *[]types.Location, la **types.Token, next func() error, s int, counter *int) (bool, error) {
	tok := *la
	if *counter == 0 {
		synErr := ierrors.NewSyntaxError(
			"unexpected "+tok.Text, tok.Text, tok.Terminal,
			tok.Location.FirstLine, tok.Location.FirstColumn,
			p.expectedNames(s), true)
		if p.onError != nil && !p.onError(synErr) {
			return false, synErr
		}
	}

	syncState := -1
	for i := len(*stateStack) - 1; i >= 0; i-- {
		candidate := (*stateStack)[i]
		if errAct := p.table.Action(candidate, grammar.SymError); errAct.Kind == Shift {
			*stateStack = (*stateStack)[:i+1]
			if len(*valueStack) > i {
				*valueStack = (*valueStack)[:i]
			}
			if len(*locStack) > i {
				*locStack = (*locStack)[:i]
			}
			*stateStack = append(*stateStack, errAct.State)
			*valueStack = append(*valueStack, nil)
			*locStack = append(*locStack, tok.Location)
			*counter = recoveryShiftBudget
			syncState = errAct.State
			break
		}
	}
	if syncState < 0 {
		return false, nil
	}

	// Discard lookahead tokens until one has a valid action in syncState,
	// per the GLOSSARY's "discarding ... input tokens" half of panic-mode
	// recovery. *la is re-read every iteration since next() updates the
	// caller's lookahead variable through the shared closure.
	for p.table.Action(syncState, (*la).Terminal).Kind == Error {
		if (*la).Terminal == grammar.SymEOF {
			return false, nil
		}
		if err := next(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// expectedNames computes the expected-terminal set of spec §7 "User-visible
// ParseError carries ... expected-terminal set": every terminal for which
// ACTION[s] is not an error entry.
func (p *Parser) expectedNames(s int) []string {
	var names []string
	for _, term := range p.g.Terminals() {
		if p.table.Action(s, term).Kind != Error {
			names = append(names, p.g.Name(term))
		}
	}
	if p.table.Action(s, grammar.SymEOF).Kind != Error {
		names = append(names, p.g.Name(grammar.SymEOF))
	}
	return names
}

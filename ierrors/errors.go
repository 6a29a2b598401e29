// Package ierrors holds the structured error taxonomy of spec §7: build-time
// GrammarErrors that abort construction, and parse-time SyntaxError /
// LexerError / CancelledError that the runtime and its callers negotiate.
//
// Named ierrors (not errors) so call sites that also import the standard
// library errors package don't have to alias either.
package ierrors

import "fmt"

// GrammarErrorKind distinguishes the handful of ways a grammar definition can
// fail to build (spec §4.1, §7). Construction always aborts on these; there
// is no recovery.
type GrammarErrorKind int

const (
	_ GrammarErrorKind = iota
	EmptyGrammar
	NoStart
	UndeclaredSymbol
	ConflictingClassification
)

func (k GrammarErrorKind) String() string {
	switch k {
	case EmptyGrammar:
		return "EmptyGrammar"
	case NoStart:
		return "NoStart"
	case UndeclaredSymbol:
		return "UndeclaredSymbol"
	case ConflictingClassification:
		return "ConflictingClassification"
	default:
		return "GrammarError"
	}
}

// GrammarError reports a problem discovered while building a Grammar from a
// GrammarDef. Symbol is populated for UndeclaredSymbol and
// ConflictingClassification; it is empty otherwise.
type GrammarError struct {
	Kind   GrammarErrorKind
	Symbol string
	detail string
}

func NewGrammarError(kind GrammarErrorKind, detail string) *GrammarError {
	return &GrammarError{Kind: kind, detail: detail}
}

func NewUndeclaredSymbolError(name string) *GrammarError {
	return &GrammarError{Kind: UndeclaredSymbol, Symbol: name, detail: fmt.Sprintf("symbol %q is used but never declared as a token or defined as a nonterminal", name)}
}

func NewConflictingClassificationError(name string) *GrammarError {
	return &GrammarError{Kind: ConflictingClassification, Symbol: name, detail: fmt.Sprintf("symbol %q is declared as both a token and a nonterminal left-hand side", name)}
}

func (e *GrammarError) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.detail)
	}
	return e.Kind.String()
}

// SyntaxError reports a parse-time failure: an unexpected token, or (when
// panic-mode recovery finds no synchronizing state or reaches end of input)
// an unrecoverable parse. Expected holds the human-readable names of the
// terminals that would have been accepted in the state where the error
// occurred (spec §7 "expected-terminal set"). Recoverable is true on the
// error handed to the error handler before synchronization is tried, and
// stays true when the handler rejects recovery and that error is returned;
// the error returned after synchronization fails has Recoverable false.
type SyntaxError struct {
	Message     string
	Token       string // offending token's printable text
	TerminalID  int
	Line        int
	Column      int
	Expected    []string
	Recoverable bool
}

func NewSyntaxError(message, token string, termID, line, col int, expected []string, recoverable bool) *SyntaxError {
	return &SyntaxError{
		Message:     message,
		Token:       token,
		TerminalID:  termID,
		Line:        line,
		Column:      col,
		Expected:    expected,
		Recoverable: recoverable,
	}
}

func (e *SyntaxError) Error() string { return e.Message }

// FullMessage renders the error with its source position, in the style of
// the teacher's icterrors.SyntaxError.FullMessage().
func (e *SyntaxError) FullMessage() string {
	if e.Line <= 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// LexerError wraps an error returned by the caller-supplied TokenStream, so
// callers can distinguish lexical failures from syntax errors raised by the
// parser itself (spec §7).
type LexerError struct {
	Cause error
}

func NewLexerError(cause error) *LexerError { return &LexerError{Cause: cause} }

func (e *LexerError) Error() string { return fmt.Sprintf("lexer error: %s", e.Cause) }

func (e *LexerError) Unwrap() error { return e.Cause }

// CancelledError reports that a caller-supplied cancellation signal fired
// mid-parse (spec §5 "Cancellation and timeouts").
type CancelledError struct{}

func NewCancelledError() *CancelledError { return &CancelledError{} }

func (e *CancelledError) Error() string { return "parse cancelled" }

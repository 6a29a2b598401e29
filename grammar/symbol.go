package grammar

// Reserved symbol ids, fixed regardless of grammar content (spec §3). A
// Symbol's id is stable for the lifetime of a built Grammar and is the value
// every downstream table, item, and action keys off of.
const (
	// SymAccept is the synthetic nonterminal S' introduced by augmentation.
	SymAccept = 0
	// SymEOF is the end-of-input terminal every lexer must emit exactly once.
	SymEOF = 1
	// SymError is the placeholder terminal used for panic-mode recovery.
	SymError = 2

	firstUserSymbol = 3
)

// Symbol is a named, classified grammar symbol. Symbols are interned at
// grammar build time; callers work with plain ints (a Symbol's ID) almost
// everywhere else, and use Grammar.Name(id) only when a printable name is
// needed for diagnostics.
type Symbol struct {
	ID       int
	Name     string
	Terminal bool
}

// Assoc is the associativity declared for a terminal's precedence level.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
	AssocNonAssoc
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	case AssocNonAssoc:
		return "nonassoc"
	default:
		return "none"
	}
}

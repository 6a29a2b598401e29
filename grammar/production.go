package grammar

import (
	"fmt"
	"strings"
)

// Production is an ordered rule Head -> Body (Body may be empty, i.e. ε).
// Production 0 is always the synthetic augmenting rule $accept -> start
// (spec §3/§4.1; the accept check is keyed on $end as the lookahead, not
// on $end appearing in the body); user productions follow in declaration
// order starting at id 1.
type Production struct {
	ID   int
	Head int
	Body []int
}

// IsEpsilon reports whether the production derives the empty string.
func (p Production) IsEpsilon() bool {
	return len(p.Body) == 0
}

// String renders the production using g to resolve symbol names; it is here
// (rather than a bare Stringer) because a Production has no names of its
// own, only ids.
func (p Production) String(g *Grammar) string {
	parts := make([]string, len(p.Body))
	for i, sym := range p.Body {
		parts[i] = g.Name(sym)
	}
	rhs := strings.Join(parts, " ")
	if rhs == "" {
		rhs = "ε"
	}
	return fmt.Sprintf("%s -> %s", g.Name(p.Head), rhs)
}

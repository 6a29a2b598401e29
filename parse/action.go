// Package parse builds the ACTION/GOTO tables of spec §4.4 from a grammar's
// canonical collection, compresses them (§4.5), and drives the shift-reduce
// runtime (§4.6) over them. Grounded on the teacher's parse package
// (lr.go, lraction.go, slr.go, lalr.go, ll1.go), redesigned per spec §9 to
// build a dense table once instead of recomputing Action/Goto from the item
// sets on every call, and to record conflicts as data instead of failing
// the build (grounded on vartan's parsing_table_builder.go policy).
package parse

import "fmt"

// ActionKind is the discriminant of an Action (spec §3 "Table").
type ActionKind int

const (
	// Error is the zero value so a freshly-allocated dense row defaults to
	// "no entry" without any explicit initialization.
	Error ActionKind = iota
	Shift
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table cell: a shift to State, a reduce of Prod, an
// accept, or (the zero value) an error entry.
type Action struct {
	Kind  ActionKind
	State int // destination state, when Kind == Shift
	Prod  int // production id, when Kind == Reduce
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %d", a.Prod)
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

func (a Action) Equal(o Action) bool {
	return a.Kind == o.Kind && a.State == o.State && a.Prod == o.Prod
}

// ConflictKind distinguishes the ways two actions can compete for the same
// cell (spec §3 "Conflict Record"): the two LR conflicts share an ACTION
// table cell (state, terminal); the two LL(1) conflicts share a PREDICT
// table cell (nonterminal, terminal) and are further distinguished by
// whether the colliding terminal came from FIRST(α) on both sides
// (LLFirstFirst) or from FOLLOW(A) on at least one nullable alternative
// (LLFirstFollow), per spec §4.4.
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
	LLFirstFirst
	LLFirstFollow
)

func (k ConflictKind) String() string {
	switch k {
	case ShiftReduce:
		return "shift/reduce"
	case ReduceReduce:
		return "reduce/reduce"
	case LLFirstFirst:
		return "LL(1) first/first"
	case LLFirstFollow:
		return "LL(1) first/follow"
	default:
		return "conflict"
	}
}

// Conflict records a competing pair of actions discovered while building a
// table cell, the resolution applied, and why (spec §4.4 "every conflict
// the build discovers is recorded ... the build never fails because of a
// conflict"). Candidates is stable-ordered: the action that was already in
// the cell first, then the one that was about to overwrite it.
type Conflict struct {
	State      int
	Terminal   int
	Kind       ConflictKind
	Candidates []Action
	Resolved   Action
	Reason     string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on terminal %d: %v -> resolved %s (%s)",
		c.Kind, c.State, c.Terminal, c.Candidates, c.Resolved, c.Reason)
}

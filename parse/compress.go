package parse

// Compress applies the two space-reduction passes of spec §4.5 to t,
// returning a new, equivalent Table: default-action detection (a state
// whose only non-error cells are all the same reduce collapses to a single
// fallback instead of one cell per terminal) and unreachable-state pruning
// (states no shift or goto transition can ever land on are dropped and the
// survivors renumbered contiguously). The teacher has no analog of this
// pass — its recompute-per-call Action()/Goto() never materializes a dense
// table in the first place — so this is built fresh from the spec's
// wording rather than adapted from a teacher file.
func Compress(t *Table) *Table {
	withDefaults := applyDefaultActions(t)
	return pruneUnreachable(withDefaults)
}

// applyDefaultActions finds, for each state, whether every populated
// action cell is the same reduce, and if so records it as that row's
// default instead of repeating it once per terminal. A row with any shift
// or accept gets no default, since the runtime takes a default without
// reading the lookahead and a shift needs to know which token it consumes.
func applyDefaultActions(t *Table) *Table {
	out := &Table{
		g:             t.g,
		Algorithm:     t.Algorithm,
		Initial:       t.Initial,
		action:        make([][]Action, len(t.action)),
		goto_:         t.goto_,
		defaultReduce: make([]int, len(t.action)),
		Conflicts:     t.Conflicts,
	}

	for s := range t.action {
		row := append([]Action{}, t.action[s]...)
		out.defaultReduce[s] = -1

		hasShift := false
		soleReduce := -1
		uniform := true
		for _, a := range row {
			switch a.Kind {
			case Shift, Accept:
				hasShift = true
			case Reduce:
				if soleReduce == -1 {
					soleReduce = a.Prod
				} else if soleReduce != a.Prod {
					uniform = false
				}
			}
		}

		if !hasShift && uniform && soleReduce != -1 {
			out.defaultReduce[s] = soleReduce
			for i, a := range row {
				if a.Kind == Reduce {
					row[i] = Action{}
				}
			}
		}
		out.action[s] = row
	}
	return out
}

// pruneUnreachable drops states no transition reaches from Initial and
// renumbers the rest contiguously, starting the search from Initial and
// following both shifts and gotos (spec §4.5 "a state with no incoming
// transition from any reachable state is dead weight").
func pruneUnreachable(t *Table) *Table {
	reachable := make([]bool, t.NumStates())
	queue := []int{t.Initial}
	reachable[t.Initial] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, a := range t.action[s] {
			if a.Kind == Shift && !reachable[a.State] {
				reachable[a.State] = true
				queue = append(queue, a.State)
			}
		}
		for _, dest := range t.goto_[s] {
			if dest >= 0 && !reachable[dest] {
				reachable[dest] = true
				queue = append(queue, dest)
			}
		}
	}

	if allTrue(reachable) {
		return t
	}

	remap := make([]int, len(reachable))
	newID := 0
	for old, live := range reachable {
		if live {
			remap[old] = newID
			newID++
		} else {
			remap[old] = -1
		}
	}

	out := &Table{
		g:             t.g,
		Algorithm:     t.Algorithm,
		Initial:       remap[t.Initial],
		action:        make([][]Action, newID),
		goto_:         make([][]int, newID),
		defaultReduce: make([]int, newID),
		Conflicts:     t.Conflicts,
	}
	for old, live := range reachable {
		if !live {
			continue
		}
		n := remap[old]
		row := append([]Action{}, t.action[old]...)
		for i, a := range row {
			if a.Kind == Shift {
				row[i] = Action{Kind: Shift, State: remap[a.State]}
			}
		}
		out.action[n] = row

		gotoRow := append([]int{}, t.goto_[old]...)
		for i, dest := range gotoRow {
			if dest >= 0 {
				gotoRow[i] = remap[dest]
			}
		}
		out.goto_[n] = gotoRow
		out.defaultReduce[n] = t.defaultReduce[old]
	}
	return out
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}

package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sturgeon-gen/sturgeon/grammar"
)

// stateKey renders a deterministic, order-independent key for a kernel item
// set so the BFS construction can recognize a previously-seen state (spec
// §3 "Canonical key ... deterministic across repeated builds of the same
// grammar"). LR(0)/SLR/LALR keys are over the bare (Prod, Dot) core; LR(1)
// keys additionally group by core and include the sorted union of
// lookaheads, so two kernels with the same cores but different lookahead
// sets are correctly kept distinct.
func stateKey(kernel []grammar.Item, lr1 bool) string {
	if !lr1 {
		cores := make([]string, len(kernel))
		for i, it := range kernel {
			cores[i] = fmt.Sprintf("%d.%d", it.Prod, it.Dot)
		}
		sort.Strings(cores)
		return strings.Join(cores, "|")
	}

	byCore := map[string]map[int]bool{}
	for _, it := range kernel {
		core := fmt.Sprintf("%d.%d", it.Prod, it.Dot)
		if byCore[core] == nil {
			byCore[core] = map[int]bool{}
		}
		byCore[core][it.Lookahead] = true
	}
	cores := make([]string, 0, len(byCore))
	for core := range byCore {
		cores = append(cores, core)
	}
	sort.Strings(cores)

	parts := make([]string, len(cores))
	for i, core := range cores {
		las := make([]int, 0, len(byCore[core]))
		for la := range byCore[core] {
			las = append(las, la)
		}
		sort.Ints(las)
		parts[i] = fmt.Sprintf("%s/%v", core, las)
	}
	return strings.Join(parts, "|")
}

// lr0Key renders the bare LR(0) core key of a kernel, ignoring lookaheads
// even for LR(1) kernels — used by MergeLALR to group canonical-LR(1)
// states that share a core.
func lr0Key(kernel []grammar.Item) string {
	cores := make([]string, len(kernel))
	for i, it := range kernel {
		cores[i] = fmt.Sprintf("%d.%d", it.Prod, it.Dot)
	}
	sort.Strings(cores)
	return strings.Join(cores, "|")
}

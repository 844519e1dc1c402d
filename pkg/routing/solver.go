// Package routing implements the Routing Solver (Component E): an
// exhaustive, sufficient-condition backtracking search that constructs a
// concrete multiplexer/select assignment repairing a fault.
package routing

import (
	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
)

// MuxSel is one (mux, sel) pair in a repair assignment.
type MuxSel struct {
	Mux string
	Sel string
}

// Result is the per-chain mux/sel assignment produced by a successful solve.
type Result struct {
	Assignments map[string][]MuxSel // chain -> ordered (mux, sel) pairs, one per routed signal
}

// Solve attempts to repair faultBumps across every chain in chains. It
// returns (Result, true) iff every chain finds at least one solution;
// otherwise (Result{}, false) — Unrepairable, not an error (§7).
func Solve(bumps *bumpmap.Table, routes *irl.Table, faultBumps []string, chains map[string]struct{}) (Result, bool) {
	faulty := map[string]bool{}
	for _, b := range faultBumps {
		faulty[b] = true
	}
	working := routes.WithoutConnections(faulty)

	result := Result{Assignments: map[string][]MuxSel{}}
	for chain := range chains {
		signals := signalsToRoute(routes, chain, faultBumps)
		rows, ok := solveChain(working, chain, signals)
		if !ok {
			return Result{}, false
		}
		assignment := make([]MuxSel, len(rows))
		for i, r := range rows {
			assignment[i] = MuxSel{Mux: r.Mux, Sel: r.Sel}
		}
		result.Assignments[chain] = assignment
	}
	return result, true
}

// signalsToRoute builds the list of signals in chain needing a live
// connection (excluding spares), per §4.E's pre-processing step. The
// heuristic reordering — reverse the list if the faulty bump's own signal
// lies in the second half — is applied using the last fault bump that
// belongs to this chain, matching the source's per-connection overwrite
// behavior. It is a tie-breaker only, required for behavioral parity, not
// an optimization floor (§9).
func signalsToRoute(routes *irl.Table, chain string, faultBumps []string) []string {
	base := buildSignalList(routes, chain)

	list := base
	for _, conn := range faultBumps {
		if !connBelongsToChain(routes, chain, conn) {
			continue
		}
		signal := fault.SignalOf(conn)
		list = reorderFor(base, signal)
	}
	return list
}

func buildSignalList(routes *irl.Table, chain string) []string {
	seen := map[string]bool{}
	var list []string
	for _, row := range routes.ByChain(chain) {
		if isSpareConnection(routes, row.Connection) {
			continue
		}
		if seen[row.Signal] {
			continue
		}
		seen[row.Signal] = true
		list = append(list, row.Signal)
	}
	return list
}

func reorderFor(base []string, signal string) []string {
	idx := -1
	for i, s := range base {
		if s == signal {
			idx = i
			break
		}
	}
	if idx < 0 || float64(idx) <= float64(len(base))/2 {
		out := make([]string, len(base))
		copy(out, base)
		return out
	}
	out := make([]string, len(base))
	for i, s := range base {
		out[len(base)-1-i] = s
	}
	return out
}

func isSpareConnection(routes *irl.Table, connection string) bool {
	return !routes.HasDefault(connection)
}

func connBelongsToChain(routes *irl.Table, chain, connection string) bool {
	for _, row := range routes.ByConnection(connection) {
		if row.RepairChain == chain {
			return true
		}
	}
	return false
}

// solveChain runs the CSP backtracking search for one chain: variables are
// the signals in order, domains are candidate rows in Route-Table order,
// constraint is all-different over connections. Stops at the first
// complete solution (§4.E).
func solveChain(working *irl.Table, chain string, signals []string) ([]irl.RouteRow, bool) {
	used := map[string]bool{}
	assignment := make([]irl.RouteRow, 0, len(signals))
	ok := backtrack(working, signals, 0, used, &assignment)
	return assignment, ok
}

func backtrack(working *irl.Table, signals []string, i int, used map[string]bool, assignment *[]irl.RouteRow) bool {
	if i == len(signals) {
		return true
	}
	for _, row := range working.BySignal(signals[i]) {
		if used[row.Connection] {
			continue
		}
		used[row.Connection] = true
		*assignment = append(*assignment, row)

		if backtrack(working, signals, i+1, used, assignment) {
			return true
		}

		used[row.Connection] = false
		*assignment = (*assignment)[:len(*assignment)-1]
	}
	return false
}

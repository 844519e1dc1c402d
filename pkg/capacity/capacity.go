// Package capacity implements the Capacity Solver (Component D): a fast,
// necessary-condition check that decides repairability by counting spares
// per chain against the chain's faulty demand.
package capacity

import (
	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
)

// Solve decides Repairable/Unrepairable for the fault faultBumps over the
// chains in chains, without constructing a concrete route (§4.D). It is purely
// arithmetic: sound as a necessary condition, possibly optimistic.
func Solve(bumps *bumpmap.Table, routes *irl.Table, faultBumps []string, chains map[string]struct{}) fault.Tag {
	for chain := range chains {
		if !chainRepairable(bumps, routes, faultBumps, chain) {
			return fault.Unrepairable
		}
	}
	return fault.Repairable
}

func chainRepairable(bumps *bumpmap.Table, routes *irl.Table, faultBumps []string, chain string) bool {
	rows := routes.ByChain(chain)

	spareCount := 0
	seenConn := map[string]bool{}
	for _, row := range rows {
		if seenConn[row.Connection] {
			continue
		}
		seenConn[row.Connection] = true
		if isSpareConnection(bumps, routes, row.Connection) {
			spareCount++
		}
	}

	faultyDemand := 0
	for _, faultBump := range faultBumps {
		if connBelongsToChain(routes, chain, faultBump) {
			faultyDemand++
		}

		signal := fault.SignalOf(faultBump)
		if signalUnrescuable(routes, chain, signal) {
			return false
		}
	}

	return faultyDemand <= spareCount
}

// isSpareConnection reports whether a connection is spare: either the
// bump map says Spare=true, or it has no Default row (spare-only connection).
func isSpareConnection(bumps *bumpmap.Table, routes *irl.Table, connection string) bool {
	if b, ok := bumps.Lookup(connection); ok && b.Spare {
		return true
	}
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

// signalUnrescuable reports whether signal is a member of chain but has no
// non-Default row — it can never be rerouted, forcing Unrepairable.
func signalUnrescuable(routes *irl.Table, chain, signal string) bool {
	rows := routes.BySignal(signal)
	inChain := false
	hasNonDefault := false
	for _, row := range rows {
		if row.RepairChain != chain {
			continue
		}
		inChain = true
		if row.Status != irl.StatusDefault {
			hasNonDefault = true
		}
	}
	return inChain && !hasNonDefault
}

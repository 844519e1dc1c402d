// Package bundle implements the Bundle Solver (Component F): the
// alternative repair-granularity check used when repair is tracked per
// bundle rather than per signal.
package bundle

import (
	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
)

// Solve decides Repairable/Unrepairable in bundle mode (§4.F). For each
// distinct non-null bundle referenced by faultBumps: if it has a Default
// row (it is not a pure-spare bundle) and its own repair-target bundle is
// also in the fault's bundle set, the fault is Unrepairable — every live
// bundle needs a distinct, unaffected spare to fall back to.
//
// A fault bump with no bundle (Bundle=None in the source) is silently
// excluded from the check rather than treated as an error (§9 open
// question, resolved as benign-ignore).
func Solve(bumps *bumpmap.Table, routes *irl.Table, faultBumps []string) fault.Tag {
	faultBundles := map[string]bool{}
	var order []string
	for _, name := range faultBumps {
		b, ok := bumps.Lookup(name)
		if !ok || b.Bundle == nil {
			continue
		}
		if !faultBundles[*b.Bundle] {
			faultBundles[*b.Bundle] = true
			order = append(order, *b.Bundle)
		}
	}

	for _, bundle := range order {
		if !routes.HasDefault(bundle) {
			continue // pure-spare bundle: safe
		}
		signal := fault.SignalOf(bundle)
		repairTarget := repairConnectionFor(routes, signal)
		if repairTarget != "" && faultBundles[repairTarget] {
			return fault.Unrepairable
		}
	}
	return fault.Repairable
}

// repairConnectionFor returns the Connection of signal's first Repair-status
// row, or "" if none exists.
func repairConnectionFor(routes *irl.Table, signal string) string {
	for _, row := range routes.BySignal(signal) {
		if row.Status == irl.StatusRepair {
			return row.Connection
		}
	}
	return ""
}

// Package classify implements the Fault Classifier (Component H): the
// shared routine that tags a candidate fault Benign, Repair, or
// Catastrophic and computes the set of repair chains it touches.
package classify

import (
	"fmt"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/d2derr"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
)

// effectiveTypeLattice maps a bump's normalized effective type to its
// classification (§4.H step 3).
var effectiveTypeLattice = map[bumpmap.BumpType]fault.Tag{
	bumpmap.POWER: fault.Benign,
	bumpmap.GND:    fault.Benign,
	bumpmap.SPARE:  fault.Benign,
	bumpmap.NONE:   fault.Benign,
	bumpmap.DATA:     fault.Repair,
	bumpmap.CLK:      fault.Repair,
	bumpmap.ADDR:     fault.Repair,
	bumpmap.SIDEBAND: fault.Repair,
}

// Classify derives a candidate's preliminary tag and involved-chain set
// (§4.H). bumpNames is the fault's bump list (candidate.Bumps).
func Classify(bumps *bumpmap.Table, routes *irl.Table, kind fault.Kind, bumpNames []string) (fault.Tag, map[string]struct{}, error) {
	resolved := make([]bumpmap.Bump, len(bumpNames))
	for i, name := range bumpNames {
		b, ok := bumps.Lookup(name)
		if !ok {
			return "", nil, fmt.Errorf("classify: bump %q not in bump map: %w", name, d2derr.MissingReference)
		}
		resolved[i] = b
	}

	chains := involvedChains(routes, bumpNames)

	if kind == fault.Short && hasPowerAndGND(resolved) {
		return fault.Catastrophic, chains, nil
	}

	tag := fault.Benign
	for _, b := range resolved {
		eff := effectiveType(b, routes)
		if effectiveTypeLattice[eff] == fault.Repair {
			tag = fault.Repair
			break
		}
	}
	return tag, chains, nil
}

// effectiveType normalizes a bump's type per §4.H step 2: spare bumps
// become SPARE; non-DATA bumps with no Default route row become NONE;
// otherwise the bump's own type is used.
func effectiveType(b bumpmap.Bump, routes *irl.Table) bumpmap.BumpType {
	if b.Spare {
		return bumpmap.SPARE
	}
	if b.Type != bumpmap.DATA && !routes.HasDefault(b.Name) {
		return bumpmap.NONE
	}
	return b.Type
}

func hasPowerAndGND(bumps []bumpmap.Bump) bool {
	var hasPower, hasGND bool
	for _, b := range bumps {
		switch b.Type {
		case bumpmap.POWER:
			hasPower = true
		case bumpmap.GND:
			hasGND = true
		}
	}
	return hasPower && hasGND
}

// involvedChains unions RepairChain over every route row whose Connection
// is a faulty bump.
func involvedChains(routes *irl.Table, bumpNames []string) map[string]struct{} {
	chains := map[string]struct{}{}
	for _, name := range bumpNames {
		for _, row := range routes.ByConnection(name) {
			chains[row.RepairChain] = struct{}{}
		}
	}
	return chains
}

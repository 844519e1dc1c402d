package fault

import "strings"

// SignalOf derives a functional signal name from a connection (physical
// bump) name by stripping a trailing "_phy" suffix, per §4.D.
func SignalOf(connection string) string {
	return strings.TrimSuffix(connection, "_phy")
}

// Kind is the fault mechanism.
type Kind string

const (
	Short Kind = "Short"
	Open  Kind = "Open"
)

// FaultType parameterizes a fault pattern: bump count K (and, for shorts,
// the geometric threshold D in µm).
type FaultType struct {
	Kind Kind
	K    int
	D    float64
}

// Tag is the position in the fault tag lattice (§3): Benign ⊂ Repair ⊂
// {Repairable, Unrepairable}; Catastrophic is disjoint.
type Tag string

const (
	Benign       Tag = "Benign"
	Repair       Tag = "Repair"
	Catastrophic Tag = "Catastrophic"
	Repairable   Tag = "Repairable"
	Unrepairable Tag = "Unrepairable"
)

// Candidate is an as-yet-unclassified emission from the enumerator: a
// bump-list plus, for multi-fault patterns, the sub-fault structure that
// produced it.
type Candidate struct {
	Bumps     []string
	SubFaults [][]string // nil unless this candidate came from a preserved multi-fault pattern
}

// MultiPattern groups the independently-chosen k-combinations of a
// multi-fault short (§4.C, m≥2). Flatten reproduces the source's
// behavior of merging sub-faults into one index list, duplicates and all;
// Distinct keeps them separate and reports whether they overlap.
type MultiPattern struct {
	SubFaults [][]string
}

// Flatten concatenates every sub-fault's bumps into one list, preserving
// order and duplicates — the known source limitation of §4.C/§9.
func (p MultiPattern) Flatten() []string {
	var out []string
	for _, sub := range p.SubFaults {
		out = append(out, sub...)
	}
	return out
}

// Distinct reports whether the sub-faults are pairwise bump-disjoint. When
// false, a caller honoring the corrected (non-flattening) semantics should
// reject the pattern rather than silently merging it.
func (p MultiPattern) Distinct() bool {
	seen := map[string]bool{}
	for _, sub := range p.SubFaults {
		for _, b := range sub {
			if seen[b] {
				return false
			}
			seen[b] = true
		}
	}
	return true
}

// Fault is a classified fault: its bump list, the repair chains it
// touches, and its lattice tag.
type Fault struct {
	Bumps  []string
	Chains map[string]struct{}
	Tag    Tag
}

// Package engine coordinates Components A-H into the three CLI-facing
// operations: reparability statistics, repair solutions, and (via
// pkg/yield, invoked directly by the meta subcommand) Monte-Carlo yield
// estimation. It is where the fault enumerator and the classifier —
// deliberately decoupled to avoid an import cycle (pkg/fault cannot import
// pkg/classify: classify already imports fault for Tag/Kind) — are wired
// together.
package engine

import (
	"fmt"
	"time"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/bundle"
	"github.com/jkim-oss/d2drepair/pkg/capacity"
	"github.com/jkim-oss/d2drepair/pkg/classify"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
	"github.com/jkim-oss/d2drepair/pkg/metrics"
	"github.com/jkim-oss/d2drepair/pkg/reporting"
	"github.com/jkim-oss/d2drepair/pkg/routing"
)

// FaultRow is one emitted row of the Fault Table: a classified fault
// pattern before any solver has run (§6 output tables).
type FaultRow struct {
	Bumps  []string
	Tag    fault.Tag
	Chains []string
}

// ReparabilityRow is a Fault Table row extended with the Capacity Solver's
// resolved tag (the Reparability Table, §6).
type ReparabilityRow struct {
	FaultRow
	Resolved fault.Tag
}

// RepairSolutionRow is a Reparability Table row extended with the concrete
// per-chain multiplexer assignment the Routing Solver found, when one
// exists (the Repair Solutions Table, §6).
type RepairSolutionRow struct {
	FaultRow
	Resolved    fault.Tag
	Assignments map[string][]routing.MuxSel
}

// Engine holds the loaded Bump Table and Route Table a fault-model sweep
// runs against.
type Engine struct {
	Bumps   *bumpmap.Table
	Routes  *irl.Table
	Log     *reporting.Logger // optional
	Metrics *metrics.Recorder // optional
}

// New builds an Engine over an already-loaded bump map and route table.
func New(bumps *bumpmap.Table, routes *irl.Table, log *reporting.Logger) *Engine {
	return &Engine{Bumps: bumps, Routes: routes, Log: log}
}

// WithMetrics attaches a Recorder that every subsequent Stats/Repair call
// instruments.
func (e *Engine) WithMetrics(m *metrics.Recorder) *Engine {
	e.Metrics = m
	return e
}

func (e *Engine) logProgress(stage string, done, total int) {
	if e.Log == nil {
		return
	}
	e.Log.Debug(stage, "done", done, "total", total)
}

// enumerateAndClassify runs the enumerator then classifies every candidate,
// the shared first half of both stats and repair.
func (e *Engine) enumerateAndClassify(ft fault.FaultType, faultsNumber int, opts fault.Options) ([]FaultRow, error) {
	candidates, err := fault.Enumerate(e.Bumps, ft, faultsNumber, opts)
	if err != nil {
		return nil, fmt.Errorf("engine: enumerate: %w", err)
	}

	rows := make([]FaultRow, 0, len(candidates))
	for i, c := range candidates {
		tag, chains, err := classify.Classify(e.Bumps, e.Routes, ft.Kind, c.Bumps)
		if err != nil {
			return nil, fmt.Errorf("engine: classify fault %v: %w", c.Bumps, err)
		}
		if e.Metrics != nil {
			e.Metrics.ObserveClassification(string(tag))
		}
		rows = append(rows, FaultRow{Bumps: c.Bumps, Tag: tag, Chains: chainNames(chains)})
		if i%1000 == 0 {
			e.logProgress("classifying faults", i, len(candidates))
		}
	}
	return rows, nil
}

// Stats implements the `stats` operation (`--Reparability_Statistics`):
// enumerate, classify, and resolve every Repair-tagged candidate with the
// Capacity Solver, a fast necessary-condition check (§4.D).
func (e *Engine) Stats(ft fault.FaultType, faultsNumber int, opts fault.Options) ([]ReparabilityRow, error) {
	rows, err := e.enumerateAndClassify(ft, faultsNumber, opts)
	if err != nil {
		return nil, err
	}

	out := make([]ReparabilityRow, len(rows))
	for i, row := range rows {
		out[i] = ReparabilityRow{FaultRow: row, Resolved: e.resolveCapacity(row)}
		if i%1000 == 0 {
			e.logProgress("solving capacity", i, len(rows))
		}
	}
	return out, nil
}

func (e *Engine) resolveCapacity(row FaultRow) fault.Tag {
	switch row.Tag {
	case fault.Benign:
		return fault.Benign
	case fault.Catastrophic:
		return fault.Unrepairable
	default:
		start := time.Now()
		resolved := capacity.Solve(e.Bumps, e.Routes, row.Bumps, chainSet(row.Chains))
		if e.Metrics != nil {
			e.Metrics.ObserveSolve("capacity", time.Since(start), string(resolved))
		}
		return resolved
	}
}

// Repair implements the `repair` operation (`--Repair_Solutions`):
// enumerate, classify, and resolve every Repair-tagged candidate with the
// Routing Solver (or the Bundle Solver, in bundle mode), attaching the
// concrete multiplexer assignment whenever one is found (§4.E/§4.F).
func (e *Engine) Repair(ft fault.FaultType, faultsNumber int, opts fault.Options, bundleMode bool) ([]RepairSolutionRow, error) {
	rows, err := e.enumerateAndClassify(ft, faultsNumber, opts)
	if err != nil {
		return nil, err
	}

	out := make([]RepairSolutionRow, len(rows))
	for i, row := range rows {
		out[i] = e.resolveRepair(row, bundleMode)
		if i%1000 == 0 {
			e.logProgress("solving repair", i, len(rows))
		}
	}
	return out, nil
}

func (e *Engine) resolveRepair(row FaultRow, bundleMode bool) RepairSolutionRow {
	switch row.Tag {
	case fault.Benign:
		return RepairSolutionRow{FaultRow: row, Resolved: fault.Benign}
	case fault.Catastrophic:
		return RepairSolutionRow{FaultRow: row, Resolved: fault.Unrepairable}
	}

	start := time.Now()
	if bundleMode {
		resolved := bundle.Solve(e.Bumps, e.Routes, row.Bumps)
		if e.Metrics != nil {
			e.Metrics.ObserveSolve("bundle", time.Since(start), string(resolved))
		}
		return RepairSolutionRow{FaultRow: row, Resolved: resolved}
	}

	result, ok := routing.Solve(e.Bumps, e.Routes, row.Bumps, chainSet(row.Chains))
	resolved := fault.Repairable
	if !ok {
		resolved = fault.Unrepairable
	}
	if e.Metrics != nil {
		e.Metrics.ObserveSolve("routing", time.Since(start), string(resolved))
	}
	if !ok {
		return RepairSolutionRow{FaultRow: row, Resolved: fault.Unrepairable}
	}
	return RepairSolutionRow{FaultRow: row, Resolved: fault.Repairable, Assignments: result.Assignments}
}

func chainNames(chains map[string]struct{}) []string {
	names := make([]string, 0, len(chains))
	for c := range chains {
		names = append(names, c)
	}
	return names
}

func chainSet(chains []string) map[string]struct{} {
	set := make(map[string]struct{}, len(chains))
	for _, c := range chains {
		set[c] = struct{}{}
	}
	return set
}

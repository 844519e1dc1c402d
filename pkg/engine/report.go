package engine

import (
	"github.com/jkim-oss/d2drepair/pkg/reporting"
)

// ToFaultRecords converts engine Fault Table rows to their persisted form.
func ToFaultRecords(rows []FaultRow) []reporting.FaultRecord {
	out := make([]reporting.FaultRecord, len(rows))
	for i, r := range rows {
		out[i] = reporting.FaultRecord{Bumps: r.Bumps, Tag: string(r.Tag), Chains: r.Chains}
	}
	return out
}

// ToReparabilityRecords converts engine Reparability Table rows to their
// persisted form.
func ToReparabilityRecords(rows []ReparabilityRow) []reporting.ReparabilityRecord {
	out := make([]reporting.ReparabilityRecord, len(rows))
	for i, r := range rows {
		out[i] = reporting.ReparabilityRecord{
			FaultRecord: reporting.FaultRecord{Bumps: r.Bumps, Tag: string(r.Tag), Chains: r.Chains},
			Resolved:    string(r.Resolved),
		}
	}
	return out
}

// ToRepairSolutionRecords converts engine Repair Solutions Table rows to
// their persisted form.
func ToRepairSolutionRecords(rows []RepairSolutionRow) []reporting.RepairSolutionRecord {
	out := make([]reporting.RepairSolutionRecord, len(rows))
	for i, r := range rows {
		var assignments map[string][]reporting.MuxAssignment
		if len(r.Assignments) > 0 {
			assignments = make(map[string][]reporting.MuxAssignment, len(r.Assignments))
			for chain, muxSels := range r.Assignments {
				converted := make([]reporting.MuxAssignment, len(muxSels))
				for j, ms := range muxSels {
					converted[j] = reporting.MuxAssignment{Mux: ms.Mux, Sel: ms.Sel}
				}
				assignments[chain] = converted
			}
		}
		out[i] = reporting.RepairSolutionRecord{
			FaultRecord: reporting.FaultRecord{Bumps: r.Bumps, Tag: string(r.Tag), Chains: r.Chains},
			Resolved:    string(r.Resolved),
			Assignments: assignments,
		}
	}
	return out
}

package reporting

import "time"

// Operation identifies which CLI-facing engine operation produced a run.
type Operation string

const (
	OperationStats  Operation = "stats"
	OperationRepair Operation = "repair"
	OperationMeta   Operation = "meta"
)

// RunStatus is the terminal state of a run.
type RunStatus string

const (
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// FaultRecord is the JSON/CSV-stable form of a classified fault pattern,
// independent of the engine package's fault.Tag type.
type FaultRecord struct {
	Bumps  []string `json:"bumps"`
	Tag    string   `json:"tag"`
	Chains []string `json:"chains,omitempty"`
}

// ReparabilityRecord extends FaultRecord with the Capacity Solver's resolved
// tag, the Reparability Table row (§6 output tables).
type ReparabilityRecord struct {
	FaultRecord
	Resolved string `json:"resolved"`
}

// MuxAssignment is one (Mux, Sel) control setting in a repair solution.
type MuxAssignment struct {
	Mux string `json:"mux"`
	Sel string `json:"sel"`
}

// RepairSolutionRecord extends FaultRecord with the concrete per-chain
// multiplexer assignment the Routing or Bundle Solver found, the Repair
// Solutions Table row (§6 output tables).
type RepairSolutionRecord struct {
	FaultRecord
	Resolved    string                     `json:"resolved"`
	Assignments map[string][]MuxAssignment `json:"assignments,omitempty"`
}

// TagCounts tallies fault records by their resolved tag.
type TagCounts map[string]int

// YieldPoint is one sample of a Monte-Carlo yield sweep.
type YieldPoint struct {
	Yield         float64 `json:"yield"`
	WithoutRepair float64 `json:"without_repair"`
	WithRepair    float64 `json:"with_repair"`
}

// YieldSummary carries a yield sweep curve and, in system mode, the
// associated surface-cost figures (§4.G).
type YieldSummary struct {
	InterfaceName string       `json:"interface_name,omitempty"`
	SystemMode    bool         `json:"system_mode"`
	Points        []YieldPoint `json:"points"`

	TotalSurface       float64 `json:"total_surface,omitempty"`
	TotalSurfaceRepair float64 `json:"total_surface_repair,omitempty"`
	WastedSurface      float64 `json:"wasted_surface,omitempty"`
	SurfaceRatio       float64 `json:"surface_ratio,omitempty"`
}

// RunReport is the top-level persisted record of one stats, repair, or meta
// invocation against a bump map and route table.
type RunReport struct {
	RunID       string    `json:"run_id"`
	Operation   Operation `json:"operation"`
	BumpMapFile string    `json:"bump_map_file"`
	IRLFile     string    `json:"irl_file"`

	FaultKind    string `json:"fault_kind,omitempty"`
	FaultsNumber int    `json:"faults_number,omitempty"`
	BundleMode   bool   `json:"bundle_mode,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  string    `json:"duration"`
	Status    RunStatus `json:"status"`
	Message   string    `json:"message,omitempty"`

	TagCounts TagCounts `json:"tag_counts,omitempty"`

	FaultRows          []FaultRecord          `json:"fault_rows,omitempty"`
	ReparabilityRows   []ReparabilityRecord   `json:"reparability_rows,omitempty"`
	RepairSolutionRows []RepairSolutionRecord `json:"repair_solution_rows,omitempty"`

	Yield *YieldSummary `json:"yield,omitempty"`

	Errors []string `json:"errors,omitempty"`
}

// CountReparabilityTags tallies the Resolved tag of every reparability row.
func CountReparabilityTags(rows []ReparabilityRecord) TagCounts {
	counts := TagCounts{}
	for _, r := range rows {
		counts[r.Resolved]++
	}
	return counts
}

// CountRepairSolutionTags tallies the Resolved tag of every repair row.
func CountRepairSolutionTags(rows []RepairSolutionRecord) TagCounts {
	counts := TagCounts{}
	for _, r := range rows {
		counts[r.Resolved]++
	}
	return counts
}

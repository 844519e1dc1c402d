// Package irl implements the Route Table (Component B): the flattened,
// immutable view of an Interconnect Repair List.
package irl

// RowStatus distinguishes a signal's default wiring from its repair
// alternatives.
type RowStatus string

const (
	StatusDefault RowStatus = "Default"
	StatusRepair  RowStatus = "Repair"
)

// RouteRow is one (signal, connection, mux, sel, status, repair-chain)
// tuple, as defined in §3 of the data model.
type RouteRow struct {
	Signal      string
	Connection  string
	Mux         string
	Sel         string
	Status      RowStatus
	RepairChain string
}

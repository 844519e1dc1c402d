package irl

// Table is the immutable, indexed Route Table (Component B).
type Table struct {
	rows []RouteRow

	bySignal     map[string][]int
	byConnection map[string][]int
	byChain      map[string][]int
}

func newTable(rows []RouteRow) *Table {
	t := &Table{
		rows:         rows,
		bySignal:     map[string][]int{},
		byConnection: map[string][]int{},
		byChain:      map[string][]int{},
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.bySignal = map[string][]int{}
	t.byConnection = map[string][]int{}
	t.byChain = map[string][]int{}
	for i, r := range t.rows {
		t.bySignal[r.Signal] = append(t.bySignal[r.Signal], i)
		t.byConnection[r.Connection] = append(t.byConnection[r.Connection], i)
		t.byChain[r.RepairChain] = append(t.byChain[r.RepairChain], i)
	}
}

// All returns every row, in load order.
func (t *Table) All() []RouteRow {
	return t.rows
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the row at index i.
func (t *Table) Row(i int) RouteRow { return t.rows[i] }

// BySignal returns all rows for a given functional signal, in Route-Table order.
func (t *Table) BySignal(signal string) []RouteRow {
	return t.collect(t.bySignal[signal])
}

// ByConnection returns all rows for a given physical connection, in Route-Table order.
func (t *Table) ByConnection(connection string) []RouteRow {
	return t.collect(t.byConnection[connection])
}

// ByChain returns all rows belonging to a repair chain, in Route-Table order.
func (t *Table) ByChain(chain string) []RouteRow {
	return t.collect(t.byChain[chain])
}

// Chains returns the distinct repair-chain ids, in first-seen order.
func (t *Table) Chains() []string {
	seen := map[string]bool{}
	var chains []string
	for _, r := range t.rows {
		if !seen[r.RepairChain] {
			seen[r.RepairChain] = true
			chains = append(chains, r.RepairChain)
		}
	}
	return chains
}

// HasDefault reports whether connection has a Default-status row.
func (t *Table) HasDefault(connection string) bool {
	for _, i := range t.byConnection[connection] {
		if t.rows[i].Status == StatusDefault {
			return true
		}
	}
	return false
}

func (t *Table) collect(idx []int) []RouteRow {
	out := make([]RouteRow, len(idx))
	for i, j := range idx {
		out[i] = t.rows[j]
	}
	return out
}

// WithoutConnections returns a shallow-copy Table with every row whose
// Connection is in remove dropped. The receiver is never mutated — solvers
// operate on private copies, per the concurrency model.
func (t *Table) WithoutConnections(remove map[string]bool) *Table {
	kept := make([]RouteRow, 0, len(t.rows))
	for _, r := range t.rows {
		if !remove[r.Connection] {
			kept = append(kept, r)
		}
	}
	return newTable(kept)
}

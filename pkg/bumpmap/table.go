package bumpmap

// Table is the immutable, indexed Bump Table (Component A). Names resolve
// to stable integer indices at load time so hot loops (enumerator,
// solvers) never repeat a string lookup.
type Table struct {
	bumps   []Bump
	byName  map[string]int
	spareAt []int
}

func newTable(bumps []Bump) *Table {
	byName := make(map[string]int, len(bumps))
	var spares []int
	for i, b := range bumps {
		byName[b.Name] = i
		if b.Spare {
			spares = append(spares, i)
		}
	}
	return &Table{bumps: bumps, byName: byName, spareAt: spares}
}

// Len returns N, the total bump count.
func (t *Table) Len() int { return len(t.bumps) }

// Bump returns the bump at index i.
func (t *Table) Bump(i int) Bump { return t.bumps[i] }

// Index looks up a bump's index by name, O(1) expected.
func (t *Table) Index(name string) (int, bool) {
	i, ok := t.byName[name]
	return i, ok
}

// Lookup returns a bump by name.
func (t *Table) Lookup(name string) (Bump, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Bump{}, false
	}
	return t.bumps[i], true
}

// All returns every bump in file (load) order.
func (t *Table) All() []Bump {
	return t.bumps
}

// Spares returns the indices of bumps with Spare=true, in load order.
func (t *Table) Spares() []int {
	return t.spareAt
}

// Names returns every bump name in load order.
func (t *Table) Names() []string {
	names := make([]string, len(t.bumps))
	for i, b := range t.bumps {
		names[i] = b.Name
	}
	return names
}

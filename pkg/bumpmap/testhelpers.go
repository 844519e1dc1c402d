package bumpmap

// NewTableForTest builds a Table directly from bumps, bypassing loading and
// disambiguation. Exported for use by other packages' tests that need a
// Bump Table without a file fixture.
func NewTableForTest(bumps []Bump) *Table {
	return newTable(bumps)
}

package fault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
)

func squareBumps() *bumpmap.Table {
	// Four bumps in a line: a-b-c 10µm apart, d far away at X=100.
	recs := []bumpmap.Bump{
		{Name: "a", X: 0, Y: 0, Type: bumpmap.DATA},
		{Name: "b", X: 10, Y: 0, Type: bumpmap.DATA},
		{Name: "c", X: 20, Y: 0, Type: bumpmap.DATA},
		{Name: "d", X: 100, Y: 0, Type: bumpmap.DATA}, // isolated
	}
	return bumpmap.NewTableForTest(recs)
}

func TestEnumerate_OpenSingle(t *testing.T) {
	bumps := squareBumps()
	candidates, err := Enumerate(bumps, FaultType{Kind: Open, K: 1}, 1, Options{})
	require.NoError(t, err)
	assert.Len(t, candidates, 4)
	for _, c := range candidates {
		assert.Len(t, c.Bumps, 1)
	}
}

func TestEnumerate_OpenMulti(t *testing.T) {
	bumps := squareBumps()
	candidates, err := Enumerate(bumps, FaultType{Kind: Open, K: 1}, 2, Options{})
	require.NoError(t, err)
	// C(4,2) = 6 distinct-bump pairs.
	assert.Len(t, candidates, 6)
	for _, c := range candidates {
		assert.Len(t, c.Bumps, 2)
		assert.NotEqual(t, c.Bumps[0], c.Bumps[1])
	}
}

func TestEnumerate_ShortConnectivity(t *testing.T) {
	bumps := squareBumps()
	// threshold 15: a-b and b-c are edges (dist 10), a-c is not (dist 20).
	candidates, err := Enumerate(bumps, FaultType{Kind: Short, K: 3, D: 15}, 1, Options{})
	require.NoError(t, err)

	// Only {a,b,c} is connected among all 3-combinations of {a,b,c,d}.
	require.Len(t, candidates, 1)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, candidates[0].Bumps)
}

func TestEnumerate_ShortRejectsDisconnected(t *testing.T) {
	bumps := squareBumps()
	candidates, err := Enumerate(bumps, FaultType{Kind: Short, K: 2, D: 15}, 1, Options{})
	require.NoError(t, err)
	for _, c := range candidates {
		assert.NotContains(t, [][]string{{"a", "d"}, {"a", "c"}}, c.Bumps)
	}
}

func TestEnumerate_MultiFaultFlattenVsPreserve(t *testing.T) {
	bumps := squareBumps()
	ft := FaultType{Kind: Short, K: 2, D: 15}

	flat, err := Enumerate(bumps, ft, 2, Options{PreserveSubFaults: false})
	require.NoError(t, err)
	require.NotEmpty(t, flat)

	distinct, err := Enumerate(bumps, ft, 2, Options{PreserveSubFaults: true})
	require.NoError(t, err)

	// Flatten mode never rejects on overlap; preserve mode may produce
	// fewer or equal candidates because overlapping atom-pairs are dropped.
	assert.LessOrEqual(t, len(distinct), len(flat))
}

func TestEnumerate_InvalidParameter(t *testing.T) {
	bumps := squareBumps()
	_, err := Enumerate(bumps, FaultType{Kind: Short, K: 2, D: 15}, 0, Options{})
	require.Error(t, err)
}

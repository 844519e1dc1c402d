package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
)

func bundleA() string { return "bundleA_phy" }
func bundleB() string { return "bundleB_phy" }

// S6: A's repair target is B and B's is A; fault set = {A, B}.
func TestSolve_S6_FallbackLoopUnrepairable(t *testing.T) {
	doc := `chainA:
  bundleA:
    Name: bundleA
    Default: {To: bundleA_phy, Control: {Mux: mux0, Sel: "0"}}
    Repair: {To: bundleB_phy, Control: {Mux: mux0, Sel: "1"}}
  bundleB:
    Name: bundleB
    Default: {To: bundleB_phy, Control: {Mux: mux1, Sel: "0"}}
    Repair: {To: bundleA_phy, Control: {Mux: mux1, Sel: "1"}}
`
	routes, err := irl.Load([]byte(doc))
	require.NoError(t, err)

	a, b := bundleA(), bundleB()
	bumps := bumpmap.NewTableForTest([]bumpmap.Bump{
		{Name: a, Type: bumpmap.DATA, Bundle: &a},
		{Name: b, Type: bumpmap.DATA, Bundle: &b},
	})

	tag := Solve(bumps, routes, []string{a, b})
	assert.Equal(t, fault.Unrepairable, tag)
}

func TestSolve_UnbundledBumpIgnored(t *testing.T) {
	doc := `chainA:
  bundleA:
    Name: bundleA
    Default: {To: bundleA_phy, Control: {Mux: mux0, Sel: "0"}}
    Repair: {To: bundleB_phy, Control: {Mux: mux0, Sel: "1"}}
`
	routes, err := irl.Load([]byte(doc))
	require.NoError(t, err)

	bumps := bumpmap.NewTableForTest([]bumpmap.Bump{
		{Name: "loose_phy", Type: bumpmap.DATA, Bundle: nil},
	})

	tag := Solve(bumps, routes, []string{"loose_phy"})
	assert.Equal(t, fault.Repairable, tag)
}

func TestSolve_SpareOnlyBundleSafe(t *testing.T) {
	doc := `chainA:
  bundleA:
    Name: bundleA
    Default: {To: bundleA_phy, Control: {Mux: mux0, Sel: "0"}}
    Repair: {To: spareBundle_phy, Control: {Mux: mux0, Sel: "1"}}
`
	routes, err := irl.Load([]byte(doc))
	require.NoError(t, err)

	spare := "spareBundle_phy"
	bumps := bumpmap.NewTableForTest([]bumpmap.Bump{
		{Name: spare, Type: bumpmap.DATA, Spare: true, Bundle: &spare},
	})

	tag := Solve(bumps, routes, []string{spare})
	assert.Equal(t, fault.Repairable, tag)
}

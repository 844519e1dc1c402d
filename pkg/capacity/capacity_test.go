package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
)

func chainWithSpares(n int) *irl.Table {
	doc := `chainA:
  rxdata0:
    Name: rxdata0
    Default: {To: rxdata0_phy, Control: {Mux: mux0, Sel: "0"}}
    Repair: {To: spare0_phy, Control: {Mux: mux0, Sel: "1"}}
  rxdata1:
    Name: rxdata1
    Default: {To: rxdata1_phy, Control: {Mux: mux1, Sel: "0"}}
    Repair: {To: spare1_phy, Control: {Mux: mux1, Sel: "1"}}
`
	if n == 1 {
		doc = `chainA:
  rxdata0:
    Name: rxdata0
    Default: {To: rxdata0_phy, Control: {Mux: mux0, Sel: "0"}}
    Repair: {To: spare0_phy, Control: {Mux: mux0, Sel: "1"}}
  rxdata1:
    Name: rxdata1
    Default: {To: rxdata1_phy, Control: {Mux: mux1, Sel: "0"}}
`
	}
	table, err := irl.Load([]byte(doc))
	if err != nil {
		panic(err)
	}
	return table
}

func chainBumps() *bumpmap.Table {
	return bumpmap.NewTableForTest([]bumpmap.Bump{
		{Name: "rxdata0_phy", X: 0, Y: 0, Type: bumpmap.DATA},
		{Name: "rxdata1_phy", X: 25, Y: 0, Type: bumpmap.DATA},
		{Name: "spare0_phy", X: 10, Y: 5, Type: bumpmap.DATA, Spare: true},
		{Name: "spare1_phy", X: 15, Y: 5, Type: bumpmap.DATA, Spare: true},
	})
}

// S2: two-spare chain, both rxdata bumps faulted -> Repairable.
func TestSolve_S2_Repairable(t *testing.T) {
	routes := chainWithSpares(2)
	bumps := chainBumps()
	tag := Solve(bumps, routes, []string{"rxdata0_phy", "rxdata1_phy"}, map[string]struct{}{"chainA": {}})
	assert.Equal(t, fault.Repairable, tag)
}

// S3: one spare removed from IRL -> Unrepairable.
func TestSolve_S3_Unrepairable(t *testing.T) {
	routes := chainWithSpares(1)
	bumps := chainBumps()
	tag := Solve(bumps, routes, []string{"rxdata0_phy", "rxdata1_phy"}, map[string]struct{}{"chainA": {}})
	assert.Equal(t, fault.Unrepairable, tag)
}

func TestSolve_NoChainsAlwaysRepairable(t *testing.T) {
	routes := chainWithSpares(2)
	bumps := chainBumps()
	tag := Solve(bumps, routes, []string{"unrelated_phy"}, map[string]struct{}{})
	require.Equal(t, fault.Repairable, tag)
}

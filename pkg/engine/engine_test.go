package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
)

func twoSpareFixture() (*bumpmap.Table, *irl.Table) {
	bumps := bumpmap.NewTableForTest([]bumpmap.Bump{
		{Name: "rxdata0_phy", X: 0, Y: 0, Type: bumpmap.DATA},
		{Name: "rxdata1_phy", X: 25, Y: 0, Type: bumpmap.DATA},
		{Name: "spare0_phy", X: 10, Y: 5, Type: bumpmap.DATA, Spare: true},
		{Name: "spare1_phy", X: 15, Y: 5, Type: bumpmap.DATA, Spare: true},
		{Name: "VDD_phy", X: 0, Y: 10, Type: bumpmap.POWER},
		{Name: "VSS_phy", X: 10, Y: 10, Type: bumpmap.GND},
	})
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
	routes, err := irl.Load([]byte(doc))
	if err != nil {
		panic(err)
	}
	return bumps, routes
}

func findRow(rows []ReparabilityRow, bumps ...string) (ReparabilityRow, bool) {
	for _, r := range rows {
		if len(r.Bumps) != len(bumps) {
			continue
		}
		match := true
		for i := range bumps {
			if r.Bumps[i] != bumps[i] {
				match = false
				break
			}
		}
		if match {
			return r, true
		}
	}
	return ReparabilityRow{}, false
}

func TestStats_OpenSingle_ClassifiesAndResolves(t *testing.T) {
	bumps, routes := twoSpareFixture()
	e := New(bumps, routes, nil)

	rows, err := e.Stats(fault.FaultType{Kind: fault.Open, K: 1}, 1, fault.Options{})
	require.NoError(t, err)
	require.Len(t, rows, 6)

	dataRow, ok := findRow(rows, "rxdata0_phy")
	require.True(t, ok)
	assert.Equal(t, fault.Repair, dataRow.Tag)
	assert.Equal(t, fault.Repairable, dataRow.Resolved)

	gndRow, ok := findRow(rows, "VSS_phy")
	require.True(t, ok)
	assert.Equal(t, fault.Benign, gndRow.Tag)
	assert.Equal(t, fault.Benign, gndRow.Resolved)
}

func TestStats_ShortBothPowerBumps_Catastrophic(t *testing.T) {
	bumps, routes := twoSpareFixture()
	e := New(bumps, routes, nil)

	rows, err := e.Stats(fault.FaultType{Kind: fault.Short, K: 2, D: 15}, 1, fault.Options{})
	require.NoError(t, err)

	row, ok := findRow(rows, "VDD_phy", "VSS_phy")
	require.True(t, ok)
	assert.Equal(t, fault.Catastrophic, row.Tag)
	assert.Equal(t, fault.Unrepairable, row.Resolved)
}

func TestRepair_ProducesAssignmentForRepairableFault(t *testing.T) {
	bumps, routes := twoSpareFixture()
	e := New(bumps, routes, nil)

	rows, err := e.Repair(fault.FaultType{Kind: fault.Open, K: 1}, 2, fault.Options{}, false)
	require.NoError(t, err)

	var target RepairSolutionRow
	found := false
	for _, r := range rows {
		if len(r.Bumps) == 2 && contains(r.Bumps, "rxdata0_phy") && contains(r.Bumps, "rxdata1_phy") {
			target = r
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, fault.Repairable, target.Resolved)
	assert.NotEmpty(t, target.Assignments["chainA"])
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

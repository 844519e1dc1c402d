package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
)

func testBumps() *bumpmap.Table {
	return bumpmap.NewTableForTest([]bumpmap.Bump{
		{Name: "VDD_phy", Type: bumpmap.POWER},
		{Name: "VSS_phy", Type: bumpmap.GND},
		{Name: "rxdata0_phy", Type: bumpmap.DATA},
		{Name: "rxdata1_phy", Type: bumpmap.DATA},
		{Name: "spare0_phy", Type: bumpmap.DATA, Spare: true},
	})
}

func testRoutes() *irl.Table {
	doc := `chainA:
  rxdata0:
    Name: rxdata0
    Default: {To: rxdata0_phy, Control: {Mux: mux0, Sel: "0"}}
    Repair: {To: spare0_phy, Control: {Mux: mux0, Sel: "1"}}
  rxdata1:
    Name: rxdata1
    Default: {To: rxdata1_phy, Control: {Mux: mux1, Sel: "0"}}
`
	table, err := irl.Load([]byte(doc))
	if err != nil {
		panic(err)
	}
	return table
}

func TestClassify_Catastrophic(t *testing.T) {
	tag, _, err := Classify(testBumps(), testRoutes(), fault.Short, []string{"VDD_phy", "VSS_phy"})
	require.NoError(t, err)
	assert.Equal(t, fault.Catastrophic, tag)
}

func TestClassify_CatastrophicMonotone(t *testing.T) {
	// Invariant 8.3: adding POWER+GND to any existing short always yields Catastrophic.
	tag, _, err := Classify(testBumps(), testRoutes(), fault.Short,
		[]string{"rxdata0_phy", "VDD_phy", "VSS_phy"})
	require.NoError(t, err)
	assert.Equal(t, fault.Catastrophic, tag)
}

func TestClassify_RepairOnDataBump(t *testing.T) {
	tag, chains, err := Classify(testBumps(), testRoutes(), fault.Open, []string{"rxdata0_phy"})
	require.NoError(t, err)
	assert.Equal(t, fault.Repair, tag)
	_, ok := chains["chainA"]
	assert.True(t, ok)
}

func TestClassify_BenignSpare(t *testing.T) {
	tag, _, err := Classify(testBumps(), testRoutes(), fault.Open, []string{"spare0_phy"})
	require.NoError(t, err)
	assert.Equal(t, fault.Benign, tag)
}

func TestClassify_BenignGND(t *testing.T) {
	tag, _, err := Classify(testBumps(), testRoutes(), fault.Open, []string{"VSS_phy"})
	require.NoError(t, err)
	assert.Equal(t, fault.Benign, tag)
}

func TestClassify_MissingReference(t *testing.T) {
	_, _, err := Classify(testBumps(), testRoutes(), fault.Open, []string{"nonexistent_phy"})
	require.Error(t, err)
}

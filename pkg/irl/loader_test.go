package irl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoChainIRL = `# leading comment block
# describing the file, must be stripped
chainA:
  rxdata0:
    Name: rxdata0
    Default:
      To: rxdata0_phy
      Control: {Mux: mux0, Sel: "0"}
    Repair:
      To: spare0_phy
      Control: {Mux: mux0, Sel: "1"}
chainB:
  rxdata1:
    Name: rxdata1
    Default:
      To: rxdata1_phy
      Control: {Mux: mux1, Sel: "0"}
`

func TestLoad_AllChainsLoaded(t *testing.T) {
	// Regression test for the source's early-return bug: every chain must
	// be present, not just the first one encountered.
	table, err := Load([]byte(twoChainIRL))
	require.NoError(t, err)

	chains := table.Chains()
	assert.ElementsMatch(t, []string{"chainA", "chainB"}, chains)
	assert.Len(t, table.ByChain("chainA"), 2)
	assert.Len(t, table.ByChain("chainB"), 1)
}

func TestLoad_FlattensRows(t *testing.T) {
	table, err := Load([]byte(twoChainIRL))
	require.NoError(t, err)

	rows := table.BySignal("rxdata0")
	require.Len(t, rows, 2)
	assert.Equal(t, "rxdata0_phy", rows[0].Connection)
	assert.Equal(t, StatusDefault, rows[0].Status)
	assert.Equal(t, "spare0_phy", rows[1].Connection)
	assert.Equal(t, StatusRepair, rows[1].Status)

	assert.True(t, table.HasDefault("rxdata0_phy"))
	assert.False(t, table.HasDefault("spare0_phy"))
}

func TestLoad_StripsLeadingComments(t *testing.T) {
	table, err := Load([]byte(twoChainIRL))
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load([]byte("not: [valid"))
	require.Error(t, err)
}

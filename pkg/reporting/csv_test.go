package reporting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFaultTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fault_table.csv")

	rows := []FaultRecord{
		{Bumps: []string{"rxdata0_phy"}, Tag: "Repair", Chains: []string{"chainA"}},
		{Bumps: []string{"VSS_phy"}, Tag: "Benign"},
	}

	require.NoError(t, WriteFaultTable(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bumps,tag,chains")
	assert.Contains(t, string(data), "rxdata0_phy,Repair,chainA")
	assert.Contains(t, string(data), "VSS_phy,Benign,")
}

func TestWriteRepairSolutionsTable_FormatsAssignments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repair_solutions.csv")

	rows := []RepairSolutionRecord{
		{
			FaultRecord: FaultRecord{Bumps: []string{"rxdata0_phy"}, Tag: "Repair", Chains: []string{"chainA"}},
			Resolved:    "Repairable",
			Assignments: map[string][]MuxAssignment{
				"chainA": {{Mux: "mux0", Sel: "1"}},
			},
		},
	}

	require.NoError(t, WriteRepairSolutionsTable(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "chainA:mux0=1")
}

func TestFormatAssignments_Empty(t *testing.T) {
	assert.Equal(t, "", formatAssignments(nil))
}

package bumpmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_CSV_Disambiguation(t *testing.T) {
	// Three bumps share the name "VDD_phy" — invariant 8.1 requires the
	// suffix sequence "", "_1", "_2" in file order.
	csv := "Name,X,Y,Type,Spare,Bundle\n" +
		"VDD_phy,0,0,POWER,false,\n" +
		"rxdata0_phy,10,0,DATA,false,chainA\n" +
		"VDD_phy,20,0,POWER,false,\n" +
		"VDD_phy,30,0,POWER,false,\n"
	path := writeTemp(t, "bumps.csv", csv)

	table, err := LoadFile(path, DefaultScale)
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	names := table.Names()
	assert.Equal(t, []string{"VDD_phy", "rxdata0_phy", "VDD_phy_1", "VDD_phy_2"}, names)

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate name %s after disambiguation", n)
		seen[n] = true
	}

	b, ok := table.Lookup("rxdata0_phy")
	require.True(t, ok)
	assert.Equal(t, DATA, b.Type)
	require.NotNil(t, b.Bundle)
	assert.Equal(t, "chainA", *b.Bundle)
}

func TestLoadFile_JSON(t *testing.T) {
	doc := `[
		{"Name":"a_phy","X":1,"Y":2,"Type":"DATA","Spare":false},
		{"Name":"b_phy","X":3,"Y":4,"Type":"SPARE","Spare":true}
	]`
	path := writeTemp(t, "bumps.json", doc)

	table, err := LoadFile(path, Scale{X: 2, Y: 2})
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	b, ok := table.Lookup("a_phy")
	require.True(t, ok)
	assert.Equal(t, 2.0, b.X) // scaled
	assert.Equal(t, 4.0, b.Y)

	assert.Equal(t, []int{1}, table.Spares())
}

func TestLoadFile_YAML(t *testing.T) {
	doc := "Name: [a_phy, b_phy]\nX: [0, 25]\nY: [0, 0]\nType: [DATA, DATA]\nSpare: [false, false]\n"
	path := writeTemp(t, "bumps.yaml", doc)

	table, err := LoadFile(path, DefaultScale)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	b, ok := table.Lookup("b_phy")
	require.True(t, ok)
	assert.Equal(t, 25.0, b.X)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "bumps.txt", "nope")
	_, err := LoadFile(path, DefaultScale)
	require.Error(t, err)
}

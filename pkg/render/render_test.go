package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkim-oss/d2drepair/pkg/aspect"
	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
)

func fixtureAspects(t *testing.T) *aspect.Table {
	t.Helper()
	doc := "Type,Color,Shape\n" +
		"DATA,blue,Circle\n" +
		"POWER,red,Square\n" +
		"GND,black,Square\n" +
		"SPARE,green,Triangle\n" +
		"Catastrophic,red,Line\n" +
		"Benign,gray,Line\n" +
		"Repairable,orange,Line\n"
	table, err := aspect.Load([]byte(doc))
	require.NoError(t, err)
	return table
}

func fixtureBumps() *bumpmap.Table {
	return bumpmap.NewTableForTest([]bumpmap.Bump{
		{Name: "rxdata0_phy", X: 0, Y: 0, Type: bumpmap.DATA},
		{Name: "rxdata1_phy", X: 20, Y: 0, Type: bumpmap.DATA},
		{Name: "spare0_phy", X: 10, Y: 10, Type: bumpmap.DATA, Spare: true},
		{Name: "VDD_phy", X: 0, Y: 20, Type: bumpmap.POWER},
		{Name: "VSS_phy", X: 20, Y: 20, Type: bumpmap.GND},
	})
}

func TestRender_ProducesValidSVGDocument(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, fixtureBumps(), fixtureAspects(t), Options{BumpDiameter: 10, Pitch: 20})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml") || strings.Contains(out, "<svg"))
	assert.Contains(t, out, "</svg>")
}

func TestRender_AutoDerivesPitchAndWarns(t *testing.T) {
	var buf bytes.Buffer
	var warned string
	opts := Options{
		BumpDiameter:  10,
		WarnPitchZero: func(msg string) { warned = msg },
	}
	err := Render(&buf, fixtureBumps(), fixtureAspects(t), opts)
	require.NoError(t, err)
	assert.NotEmpty(t, warned)
}

func TestRender_WithLegendAndReparabilityOverlay(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{
		BumpDiameter: 10,
		Pitch:        20,
		Legend:       true,
		BumpName:     true,
		Reparability: []Fault{
			{Bumps: [2]string{"VDD_phy", "VSS_phy"}, RepairType: "Catastrophic"},
		},
	}
	err := Render(&buf, fixtureBumps(), fixtureAspects(t), opts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "</svg>")
}

func TestRender_EmptyBumpMapErrors(t *testing.T) {
	var buf bytes.Buffer
	empty := bumpmap.NewTableForTest(nil)
	err := Render(&buf, empty, fixtureAspects(t), Options{})
	assert.Error(t, err)
}

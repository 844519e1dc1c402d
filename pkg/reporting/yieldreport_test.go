package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkim-oss/d2drepair/pkg/yield"
)

func TestFromCurve(t *testing.T) {
	curve := yield.Curve{
		YieldRange:    []float64{0, 1},
		WithoutRepair: []float64{0, 1},
		WithRepair:    []float64{0, 1},
	}
	summary := FromCurve("chainA", curve)
	require.Len(t, summary.Points, 2)
	assert.Equal(t, "chainA", summary.InterfaceName)
	assert.False(t, summary.SystemMode)
	assert.Equal(t, 1.0, summary.Points[1].WithRepair)
}

func TestFromSystemResult(t *testing.T) {
	result := yield.SystemResult{
		YieldRange:          []float64{0, 1},
		SystemWithoutRepair: []float64{0, 1},
		SystemWithRepair:    []float64{0, 1},
		TotalSurface:        20,
		TotalSurfaceRepair:  5,
		WastedSurface:       2,
		SurfaceRatio:        0.4,
	}
	summary := FromSystemResult(result)
	require.Len(t, summary.Points, 2)
	assert.True(t, summary.SystemMode)
	assert.InDelta(t, 0.4, summary.SurfaceRatio, 1e-9)
}

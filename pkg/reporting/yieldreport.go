package reporting

import "github.com/jkim-oss/d2drepair/pkg/yield"

// FromCurve converts a single-interface Monte-Carlo yield curve into its
// persisted form.
func FromCurve(interfaceName string, curve yield.Curve) *YieldSummary {
	points := make([]YieldPoint, len(curve.YieldRange))
	for i := range curve.YieldRange {
		points[i] = YieldPoint{
			Yield:         curve.YieldRange[i],
			WithoutRepair: curve.WithoutRepair[i],
			WithRepair:    curve.WithRepair[i],
		}
	}
	return &YieldSummary{InterfaceName: interfaceName, Points: points}
}

// FromSystemResult converts a whole-system Monte-Carlo yield sweep into its
// persisted form, including the surface-cost figures (§4.G system mode).
func FromSystemResult(result yield.SystemResult) *YieldSummary {
	points := make([]YieldPoint, len(result.YieldRange))
	for i := range result.YieldRange {
		points[i] = YieldPoint{
			Yield:         result.YieldRange[i],
			WithoutRepair: result.SystemWithoutRepair[i],
			WithRepair:    result.SystemWithRepair[i],
		}
	}
	return &YieldSummary{
		SystemMode:         true,
		Points:             points,
		TotalSurface:       result.TotalSurface,
		TotalSurfaceRepair: result.TotalSurfaceRepair,
		WastedSurface:      result.WastedSurface,
		SurfaceRatio:       result.SurfaceRatio,
	}
}

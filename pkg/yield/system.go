package yield

import (
	"fmt"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/irl"
	"github.com/jkim-oss/d2drepair/pkg/system"
)

// InterfaceLoader resolves a die's bump-map and IRL files into loaded
// tables. Kept as an interface so system-mode composition doesn't need to
// know how files are read (tests can stub it).
type InterfaceLoader func(iface system.Interface) (*bumpmap.Table, *irl.Table, error)

// LoadInterfaceFiles is the production InterfaceLoader: it loads the
// bump-map and IRL files named in the system description, using the given
// bump-map axis scale.
func LoadInterfaceFiles(scale bumpmap.Scale) InterfaceLoader {
	return func(iface system.Interface) (*bumpmap.Table, *irl.Table, error) {
		bumps, err := bumpmap.LoadFile(iface.BumpMapFile, scale)
		if err != nil {
			return nil, nil, fmt.Errorf("load bump map %s: %w", iface.BumpMapFile, err)
		}
		routes, err := irl.LoadFile(iface.IRLFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load IRL %s: %w", iface.IRLFile, err)
		}
		return bumps, routes, nil
	}
}

// SystemResult is the system-mode sweep output: system yield composed
// across every die's interfaces, plus the surface-cost figures (§4.G
// system mode).
type SystemResult struct {
	YieldRange          []float64
	SystemWithoutRepair []float64
	SystemWithRepair    []float64
	TotalSurface        float64
	TotalSurfaceRepair  float64
	WastedSurface       float64 // at the last (highest-yield) sweep point
	SurfaceRatio        float64 // WastedSurface / TotalSurfaceRepair
}

// EstimateSystem composes per-interface Monte-Carlo yield curves into a
// whole-system curve: per yield point, system yield is the product over
// every die's interfaces of that interface's yield (§4.G system mode).
//
// Every interface is swept with the same Config (yield range and sample
// count); only its bump map, IRL, and per-die resource figures differ.
func EstimateSystem(desc *system.Description, load InterfaceLoader, cfg Config) (SystemResult, error) {
	dies := desc.Dies()
	if len(dies) == 0 {
		return SystemResult{}, fmt.Errorf("system: no dies in description")
	}

	points := YieldPoints(cfg)
	systemWithout := make([]float64, len(points))
	systemWith := make([]float64, len(points))
	for i := range points {
		systemWithout[i] = 1
		systemWith[i] = 1
	}

	var totalSurface, totalSurfaceRepair float64

	for _, dieID := range dies {
		iface, _ := desc.Interface(dieID)

		bumps, routes, err := load(iface)
		if err != nil {
			return SystemResult{}, fmt.Errorf("system: die %q: %w", dieID, err)
		}

		curve := Estimate(bumps, routes, cfg)
		for i := range points {
			systemWithout[i] *= curve.WithoutRepair[i]
			systemWith[i] *= curve.WithRepair[i]
		}

		dieSurface := iface.Ressources.Surface
		totalSurface += dieSurface * float64(iface.DieNumber)

		spareFraction := spareFraction(bumps)
		totalSurfaceRepair += spareFraction * dieSurface * float64(iface.InterfaceNumber)
	}

	last := len(points) - 1
	wastedSurface := (1 - systemWithout[last]) * totalSurface
	surfaceRatio := 0.0
	if totalSurfaceRepair != 0 {
		surfaceRatio = wastedSurface / totalSurfaceRepair
	}

	return SystemResult{
		YieldRange:          points,
		SystemWithoutRepair: systemWithout,
		SystemWithRepair:    systemWith,
		TotalSurface:        totalSurface,
		TotalSurfaceRepair:  totalSurfaceRepair,
		WastedSurface:       wastedSurface,
		SurfaceRatio:        surfaceRatio,
	}, nil
}

func spareFraction(bumps *bumpmap.Table) float64 {
	n := bumps.Len()
	if n == 0 {
		return 0
	}
	return float64(len(bumps.Spares())) / float64(n)
}

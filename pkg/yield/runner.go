// Package yield implements the Monte-Carlo Yield Estimator (Component G):
// a sweep over electrical yields that samples random fault populations and
// composes interface (and, in system mode, whole-system) yield with and
// without repair.
package yield

import (
	"math/rand"
	"sync"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/bundle"
	"github.com/jkim-oss/d2drepair/pkg/capacity"
	"github.com/jkim-oss/d2drepair/pkg/classify"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
)

// Config parameterizes one yield sweep.
type Config struct {
	Seed int64 // 0 = nondeterministic (rand.Int63())

	MinYield, MaxYield float64
	YieldPoints        int // "Number_of_electrical_yield_tested"
	LogScale           bool

	SamplesPerYield int // "Number_of_faults_tested" (M)
	BundleMode      bool
}

// Curve is the sweep's output: per-yield-point system/interface yield with
// and without repair.
type Curve struct {
	YieldRange    []float64
	WithoutRepair []float64
	WithRepair    []float64
}

// YieldPoints computes the electrical-yield sweep values, linear or
// logarithmic (§4.G).
func YieldPoints(cfg Config) []float64 {
	if cfg.LogScale {
		points := make([]float64, cfg.YieldPoints)
		for i := 1; i <= cfg.YieldPoints; i++ {
			points[i-1] = 1 - pow10(-i)
		}
		return points
	}
	n := cfg.YieldPoints + 1
	points := make([]float64, n)
	if n == 1 {
		points[0] = cfg.MinYield
		return points
	}
	step := (cfg.MaxYield - cfg.MinYield) / float64(n-1)
	for i := 0; i < n; i++ {
		points[i] = cfg.MinYield + step*float64(i)
	}
	return points
}

func pow10(exp int) float64 {
	v := 1.0
	if exp >= 0 {
		for i := 0; i < exp; i++ {
			v *= 10
		}
		return v
	}
	for i := 0; i < -exp; i++ {
		v /= 10
	}
	return v
}

// Estimate runs the Monte-Carlo sweep for a single interface, fanning the
// outer per-yield-point loop out across worker goroutines each seeded
// deterministically from cfg.Seed (§5).
func Estimate(bumps *bumpmap.Table, routes *irl.Table, cfg Config) Curve {
	masterSeed := cfg.Seed
	if masterSeed == 0 {
		masterSeed = rand.Int63() //nolint:gosec
	}

	points := YieldPoints(cfg)
	without := make([]float64, len(points))
	with := make([]float64, len(points))

	var wg sync.WaitGroup
	for i, y := range points {
		wg.Add(1)
		go func(i int, y float64) {
			defer wg.Done()
			rng := newWorkerRand(masterSeed, i)
			benign, repair := classifySamples(bumps, routes, cfg, rng, y)
			without[i] = float64(benign) / float64(cfg.SamplesPerYield)
			with[i] = float64(benign+repair) / float64(cfg.SamplesPerYield)
		}(i, y)
	}
	wg.Wait()

	return Curve{YieldRange: points, WithoutRepair: without, WithRepair: with}
}

// classifySamples draws cfg.SamplesPerYield faulty-bump combinations for
// electrical yield y and tallies Benign / Repairable outcomes.
func classifySamples(bumps *bumpmap.Table, routes *irl.Table, cfg Config, rng *rand.Rand, y float64) (benign, repaired int) {
	n := bumps.Len()
	names := bumps.Names()
	combos := sampleFaultyIndexSets(rng, n, cfg.SamplesPerYield, y)

	for _, combo := range combos {
		bumpNames := make([]string, len(combo))
		for i, idx := range combo {
			bumpNames[i] = names[idx]
		}

		// The sweep draws arbitrary simultaneous opens, never geometry-
		// constrained shorts, so Catastrophic (Short-only) never applies.
		tag, chains, err := classify.Classify(bumps, routes, fault.Open, bumpNames)
		if err != nil {
			continue
		}

		if tag == fault.Benign {
			benign++
			continue
		}

		var outcome fault.Tag
		if cfg.BundleMode {
			outcome = bundle.Solve(bumps, routes, bumpNames)
		} else {
			outcome = capacity.Solve(bumps, routes, bumpNames, chains)
		}
		if outcome == fault.Repairable {
			repaired++
		}
	}
	return benign, repaired
}

package yield

import "math/rand"

// splitmix64 derives a deterministic 64-bit stream state from a seed. Used
// to hand each parallel sweep worker an independent stream derived from a
// single master seed (§5: "one stream per worker derived deterministically
// from the master seed").
func splitmix64(state uint64) uint64 {
	state += 0x9E3779B97F4A7C15
	z := state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// workerSeed derives worker index's seed from the master seed.
func workerSeed(masterSeed int64, workerIndex int) int64 {
	state := uint64(masterSeed) + uint64(workerIndex)*0x2545F4914F6CDD1D
	return int64(splitmix64(state))
}

// newWorkerRand returns a private *rand.Rand for the given worker index,
// deterministic for a fixed masterSeed.
func newWorkerRand(masterSeed int64, workerIndex int) *rand.Rand {
	return rand.New(rand.NewSource(workerSeed(masterSeed, workerIndex)))
}

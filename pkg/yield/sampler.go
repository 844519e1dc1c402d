package yield

import "math/rand"

// sampleFaultyIndexSets draws the Number_of_faults_tested (M) combinations
// of faulty bump indices for one electrical-yield point, following §4.G:
// expected faulty count Nc=(1-y)*N splits into an integer part A and
// fractional part a; Nsup=⌊M·a⌋ samples draw A+1 indices, the rest draw A;
// the combined list is then shuffled.
func sampleFaultyIndexSets(rng *rand.Rand, n int, samplesTested int, y float64) [][]int {
	nc := (1 - y) * float64(n)
	a := int(nc)
	frac := nc - float64(a)

	nsup := int(float64(samplesTested) * frac)
	ninf := samplesTested - nsup

	combos := make([][]int, 0, samplesTested)
	for i := 0; i < ninf; i++ {
		combos = append(combos, sampleIndices(rng, n, a))
	}
	for i := 0; i < nsup; i++ {
		combos = append(combos, sampleIndices(rng, n, a+1))
	}

	rng.Shuffle(len(combos), func(i, j int) { combos[i], combos[j] = combos[j], combos[i] })
	return combos
}

// sampleIndices draws k distinct indices from [0,n) uniformly without
// replacement. A zero-bump sample (k=0) is valid and is counted Benign
// downstream (§7).
func sampleIndices(rng *rand.Rand, n, k int) []int {
	if k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	perm := rng.Perm(n)
	out := make([]int, k)
	copy(out, perm[:k])
	return out
}

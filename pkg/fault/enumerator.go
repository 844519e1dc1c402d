package fault

import (
	"fmt"
	"math"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/d2derr"
)

// Options configures enumeration behavior left open by §9.
type Options struct {
	// PreserveSubFaults selects the corrected multi-fault semantics
	// (distinct sub-faults, overlap rejected) instead of the source's
	// flatten-and-allow-collisions behavior. See §4.C/§9.
	PreserveSubFaults bool
}

// Enumerate produces every fault pattern consistent with ft and
// faultsNumber (the "m" multiplicity of §4.C), in deterministic
// lexicographic index order, per §5.
func Enumerate(bumps *bumpmap.Table, ft FaultType, faultsNumber int, opts Options) ([]Candidate, error) {
	if faultsNumber < 1 {
		return nil, fmt.Errorf("fault: faults number %d < 1: %w", faultsNumber, d2derr.InvalidParameter)
	}
	k := ft.K
	if ft.Kind == Open {
		k = 1
	}
	if k < 1 || k > bumps.Len() {
		return nil, fmt.Errorf("fault: bump count %d out of range [1,%d]: %w", k, bumps.Len(), d2derr.InvalidParameter)
	}

	atoms, err := atomsFor(bumps, ft, k)
	if err != nil {
		return nil, err
	}

	if faultsNumber == 1 {
		candidates := make([]Candidate, len(atoms))
		for i, a := range atoms {
			candidates[i] = Candidate{Bumps: append([]string(nil), a...)}
		}
		return candidates, nil
	}

	var candidates []Candidate
	combIndexes(len(atoms), faultsNumber, func(pick []int) {
		subFaults := make([][]string, len(pick))
		for i, idx := range pick {
			subFaults[i] = atoms[idx]
		}
		pattern := MultiPattern{SubFaults: subFaults}

		if opts.PreserveSubFaults {
			if !pattern.Distinct() {
				return // corrected semantics: reject overlapping sub-faults
			}
			candidates = append(candidates, Candidate{
				Bumps:     pattern.Flatten(),
				SubFaults: subFaults,
			})
			return
		}

		// Parity with the source: flatten regardless of overlap.
		candidates = append(candidates, Candidate{Bumps: pattern.Flatten()})
	})

	return candidates, nil
}

// atomsFor computes the base k-bump patterns for ft: every k-combination
// for Open/degenerate-Short (k=1), or every geometrically-connected
// k-combination for Short with k≥2.
func atomsFor(bumps *bumpmap.Table, ft FaultType, k int) ([][]string, error) {
	names := bumps.Names()
	n := len(names)

	var atoms [][]string
	if ft.Kind == Short && k >= 2 {
		combIndexes(n, k, func(pick []int) {
			if !isShortConnected(bumps, pick, ft.D) {
				return
			}
			atom := make([]string, k)
			for i, idx := range pick {
				atom[i] = names[idx]
			}
			atoms = append(atoms, atom)
		})
		return atoms, nil
	}

	// Open (any k=1) or degenerate Short (k=1): every single bump is its
	// own atom; m-combinations of these atoms are exactly "every
	// m-combination of distinct bumps" (§4.C).
	for _, name := range names {
		atoms = append(atoms, []string{name})
	}
	return atoms, nil
}

// isShortConnected checks the induced geometric graph (nodes = the picked
// bumps, edges = pairs at distance < d) for connectivity via BFS from an
// arbitrary start, accepting iff every node has at least one edge and
// every node is reachable (§4.C, §8.2).
func isShortConnected(bumps *bumpmap.Table, pick []int, d float64) bool {
	k := len(pick)
	adj := make([][]int, k)
	for i := 0; i < k; i++ {
		bi := bumps.Bump(pick[i])
		for j := i + 1; j < k; j++ {
			bj := bumps.Bump(pick[j])
			if distance(bi, bj) < d {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}
	for i := 0; i < k; i++ {
		if len(adj[i]) == 0 {
			return false
		}
	}

	visited := make([]bool, k)
	queue := []int{0}
	visited[0] = true
	count := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				count++
				queue = append(queue, next)
			}
		}
	}
	return count == k
}

// distance computes Euclidean distance over the intersection of available
// axes among {X, Y, Z} — the model is dimension-agnostic (§4.C).
func distance(a, b bumpmap.Bump) float64 {
	dx := a.X - b.X
	sum := dx * dx
	dy := a.Y - b.Y
	sum += dy * dy
	if a.HasZ() && b.HasZ() {
		dz := a.Z - b.Z
		sum += dz * dz
	}
	return math.Sqrt(sum)
}

// combIndexes calls fn with every r-combination of {0,...,n-1}, in
// lexicographic order, as a freshly allocated slice each call.
func combIndexes(n, r int, fn func(pick []int)) {
	if r < 0 || r > n {
		return
	}
	if r == 0 {
		fn(nil)
		return
	}
	pick := make([]int, r)
	for i := range pick {
		pick[i] = i
	}
	for {
		out := make([]int, r)
		copy(out, pick)
		fn(out)

		i := r - 1
		for i >= 0 && pick[i] == n-r+i {
			i--
		}
		if i < 0 {
			return
		}
		pick[i]++
		for j := i + 1; j < r; j++ {
			pick[j] = pick[j-1] + 1
		}
	}
}

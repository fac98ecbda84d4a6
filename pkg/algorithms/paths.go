package algorithms

import (
	"math"
	"math/rand"
	"sort"

	"github.com/skyroutes/airnet/pkg/graph"
)

// AverageShortestPathLength computes the exact mean hop distance over all
// ordered node pairs of a connected graph. Returns NaN for graphs with fewer
// than 2 nodes and ErrDisconnected when some pair is unreachable.
func AverageShortestPathLength(g *graph.Graph) (float64, error) {
	ids := g.NodeIDs()
	n := len(ids)
	if n < 2 {
		return math.NaN(), nil
	}

	total := 0
	for _, source := range ids {
		distances := bfsDistances(g, source)
		if len(distances) != n-1 {
			return math.NaN(), &graph.GraphError{
				Op:     "AverageShortestPathLength",
				Entity: "graph",
				Cause:  graph.ErrDisconnected,
			}
		}
		for _, d := range distances {
			total += d
		}
	}

	return float64(total) / float64(n*(n-1)), nil
}

// EfficiencyOptions configures the sampled efficiency estimate.
type EfficiencyOptions struct {
	// Pairs is the number of distinct unordered node pairs to sample.
	Pairs int
	Seed  int64
}

// ApproxEfficiency estimates network efficiency as the average of 1/dist(u,v)
// over sampled distinct unordered node pairs. Same-node draws are rejected;
// pairs with no connecting path are treated as infinite distance and excluded
// from both numerator and denominator. Deterministic for a given seed.
func ApproxEfficiency(g *graph.Graph, opts EfficiencyOptions) float64 {
	ids := g.NodeIDs()
	n := len(ids)
	if n < 2 || opts.Pairs <= 0 {
		return 0.0
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	// Sample distinct unordered pairs. When the graph is small enough that
	// the requested sample covers all pairs, cap it so the loop terminates.
	maxPairs := n * (n - 1) / 2
	want := opts.Pairs
	if want > maxPairs {
		want = maxPairs
	}

	type pair struct{ u, v graph.NodeID }
	pairs := make(map[pair]struct{}, want)
	for len(pairs) < want {
		u := ids[rng.Intn(n)]
		v := ids[rng.Intn(n)]
		if u == v {
			continue
		}
		if u > v {
			u, v = v, u
		}
		pairs[pair{u, v}] = struct{}{}
	}

	// One BFS per distinct source covers every sampled pair from it
	bySource := make(map[graph.NodeID][]graph.NodeID)
	for p := range pairs {
		bySource[p.u] = append(bySource[p.u], p.v)
	}

	// Sum in sorted order: float addition is order-sensitive, and map
	// iteration order would otherwise vary the result across identical calls.
	sources := make([]graph.NodeID, 0, len(bySource))
	for source := range bySource {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	sum := 0.0
	count := 0
	for _, source := range sources {
		targets := bySource[source]
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

		distances := bfsDistances(g, source)
		for _, target := range targets {
			if d, ok := distances[target]; ok && d > 0 {
				sum += 1.0 / float64(d)
				count++
			}
		}
	}

	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}

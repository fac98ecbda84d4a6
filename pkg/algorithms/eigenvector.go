package algorithms

import (
	"math"

	"github.com/skyroutes/airnet/pkg/graph"
)

// EigenvectorOptions configures the power iteration.
type EigenvectorOptions struct {
	MaxIterations int
	Tolerance     float64
}

// DefaultEigenvectorOptions matches the iteration budget the analysis
// pipeline uses for the airline network.
func DefaultEigenvectorOptions() EigenvectorOptions {
	return EigenvectorOptions{
		MaxIterations: 500,
		Tolerance:     1e-6,
	}
}

// EigenvectorCentrality computes the principal eigenvector of the adjacency
// matrix via power iteration, L2-normalized. Fails with ErrNoConvergence when
// the iteration budget runs out; callers treat that as recoverable and
// substitute a degenerate ranking.
func EigenvectorCentrality(g *graph.Graph, opts EigenvectorOptions) (map[graph.NodeID]float64, error) {
	ids := g.NodeIDs()
	n := len(ids)
	if n == 0 {
		return map[graph.NodeID]float64{}, nil
	}
	if opts.MaxIterations <= 0 {
		opts = DefaultEigenvectorOptions()
	}

	scores := make(map[graph.NodeID]float64, n)
	initial := 1.0 / math.Sqrt(float64(n))
	for _, id := range ids {
		scores[id] = initial
	}

	next := make(map[graph.NodeID]float64, n)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		// Iterate on I+A rather than A: same principal eigenvector, but the
		// identity shift keeps bipartite structures (stars) from oscillating.
		for _, id := range ids {
			sum := scores[id]
			for _, w := range g.Neighbors(id) {
				sum += scores[w]
			}
			next[id] = sum
		}

		// L2 normalization; an all-zero vector (edgeless graph) stays put
		norm := 0.0
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return scores, nil
		}
		for id := range next {
			next[id] /= norm
		}

		maxDiff := 0.0
		for _, id := range ids {
			diff := math.Abs(next[id] - scores[id])
			if diff > maxDiff {
				maxDiff = diff
			}
		}

		scores, next = next, scores

		if maxDiff < opts.Tolerance {
			return scores, nil
		}
	}

	return nil, &graph.GraphError{
		Op:     "EigenvectorCentrality",
		Entity: "graph",
		Cause:  graph.ErrNoConvergence,
	}
}

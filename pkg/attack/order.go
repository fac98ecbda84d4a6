package attack

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/skyroutes/airnet/pkg/algorithms"
	"github.com/skyroutes/airnet/pkg/graph"
)

// RandomOrder returns a uniformly shuffled permutation of all node IDs,
// seeded for reproducibility: identical (graph, seed) yields an identical
// permutation.
func RandomOrder(g *graph.Graph, seed int64) []graph.NodeID {
	ids := g.NodeIDs()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids
}

// TargetedOrder sorts all nodes descending by the chosen centrality measure.
// Ties break by ascending node id, the module-wide deterministic tie-break.
// StrategyRandom is not a targeted strategy and is rejected here.
//
// Eigenvector non-convergence is reported through graph.ErrNoConvergence
// together with a usable fallback ordering (all-equal scores, i.e. ascending
// node id) so adaptive runs can degrade instead of aborting.
func TargetedOrder(g *graph.Graph, strategy Strategy, opts Options) ([]graph.NodeID, error) {
	scores, err := centralityScores(g, strategy, opts)
	if err != nil && !errors.Is(err, graph.ErrNoConvergence) {
		return nil, err
	}

	order := sortByScore(g.NodeIDs(), scores)
	return order, err
}

// centralityScores evaluates one strategy's measure on the current graph.
// On non-convergence the returned map is empty (zero-valued lookups) and the
// error carries graph.ErrNoConvergence.
func centralityScores(g *graph.Graph, strategy Strategy, opts Options) (map[graph.NodeID]float64, error) {
	switch strategy {
	case StrategyDegree:
		return algorithms.DegreeCentrality(g), nil
	case StrategyBetweenness:
		return algorithms.BetweennessCentrality(g, algorithms.BetweennessOptions{
			SampleK: opts.BetweennessSampleK,
			Seed:    opts.Seed,
		}), nil
	case StrategyCloseness:
		return algorithms.ClosenessCentrality(g), nil
	case StrategyEigenvector:
		scores, err := algorithms.EigenvectorCentrality(g, algorithms.EigenvectorOptions{
			MaxIterations: opts.EigenMaxIterations,
			Tolerance:     1e-6,
		})
		if err != nil {
			return map[graph.NodeID]float64{}, err
		}
		return scores, nil
	default:
		return nil, &graph.GraphError{
			Op:      "centralityScores",
			Entity:  "strategy",
			Context: string(strategy),
			Cause:   graph.ErrUnknownStrategy,
		}
	}
}

// sortByScore orders ids descending by score, ascending id on ties. Missing
// keys read as 0, so a degenerate (empty) score map produces ascending-id
// order.
func sortByScore(ids []graph.NodeID, scores map[graph.NodeID]float64) []graph.NodeID {
	sort.SliceStable(ids, func(i, j int) bool {
		si, sj := scores[ids[i]], scores[ids[j]]
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j]
	})
	return ids
}

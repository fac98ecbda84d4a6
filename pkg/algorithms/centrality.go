package algorithms

import (
	"container/list"
	"math/rand"

	"github.com/skyroutes/airnet/pkg/graph"
)

// BetweennessOptions configures the Brandes betweenness computation.
type BetweennessOptions struct {
	// SampleK selects this many distinct BFS sources at random instead of
	// running from every node. 0 (or >= |V|) means exact computation.
	SampleK int
	// Seed drives source selection; identical seed and graph give identical
	// scores.
	Seed int64
}

// DegreeCentrality computes degree(n)/(|V|-1) for every node.
func DegreeCentrality(g *graph.Graph) map[graph.NodeID]float64 {
	ids := g.NodeIDs()
	scores := make(map[graph.NodeID]float64, len(ids))

	if len(ids) < 2 {
		for _, id := range ids {
			scores[id] = 0.0
		}
		return scores
	}

	denom := float64(len(ids) - 1)
	for _, id := range ids {
		scores[id] = float64(g.Degree(id)) / denom
	}
	return scores
}

// ClosenessCentrality computes (|V|-1) / sum of shortest-path distances from
// each node to all nodes it can reach. Isolated nodes score 0.
func ClosenessCentrality(g *graph.Graph) map[graph.NodeID]float64 {
	ids := g.NodeIDs()
	scores := make(map[graph.NodeID]float64, len(ids))

	for _, source := range ids {
		distances := bfsDistances(g, source)

		total := 0
		for _, d := range distances {
			total += d
		}

		if total > 0 && len(ids) > 1 {
			scores[source] = float64(len(ids)-1) / float64(total)
		} else {
			scores[source] = 0.0
		}
	}
	return scores
}

// BetweennessCentrality computes node betweenness via Brandes' algorithm on
// the undirected graph. With SampleK > 0 only min(k,|V|) seeded-random
// sources run a BFS pass; their contributions are scaled by |V|/k so sampled
// and exact scores stay comparable. Scores are normalized by 1/((n-1)(n-2)),
// which folds in the usual halving for undirected pair double-counting.
func BetweennessCentrality(g *graph.Graph, opts BetweennessOptions) map[graph.NodeID]float64 {
	ids := g.NodeIDs()
	n := len(ids)

	scores := make(map[graph.NodeID]float64, n)
	for _, id := range ids {
		scores[id] = 0.0
	}
	if n < 3 {
		return scores
	}

	sources := ids
	scale := 1.0
	if opts.SampleK > 0 && opts.SampleK < n {
		rng := rand.New(rand.NewSource(opts.Seed))
		perm := rng.Perm(n)
		sources = make([]graph.NodeID, opts.SampleK)
		for i := 0; i < opts.SampleK; i++ {
			sources[i] = ids[perm[i]]
		}
		scale = float64(n) / float64(opts.SampleK)
	}

	for _, source := range sources {
		brandesPass(g, source, scores, scale)
	}

	normFactor := 1.0 / float64((n-1)*(n-2))
	for id := range scores {
		scores[id] *= normFactor
	}
	return scores
}

// brandesPass runs a single-source BFS and back-propagation, accumulating
// scaled dependency values into scores.
func brandesPass(g *graph.Graph, source graph.NodeID, scores map[graph.NodeID]float64, scale float64) {
	stack := make([]graph.NodeID, 0, g.NodeCount())
	predecessors := make(map[graph.NodeID][]graph.NodeID)
	sigma := make(map[graph.NodeID]float64)
	distance := make(map[graph.NodeID]int)

	sigma[source] = 1.0
	distance[source] = 0

	queue := list.New()
	queue.PushBack(source)

	for queue.Len() > 0 {
		v, ok := queue.Remove(queue.Front()).(graph.NodeID)
		if !ok {
			continue
		}
		stack = append(stack, v)

		for _, w := range g.Neighbors(v) {
			if _, seen := distance[w]; !seen {
				distance[w] = distance[v] + 1
				queue.PushBack(w)
			}
			if distance[w] == distance[v]+1 {
				sigma[w] += sigma[v]
				predecessors[w] = append(predecessors[w], v)
			}
		}
	}

	// Back-propagation of dependencies
	delta := make(map[graph.NodeID]float64, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, v := range predecessors[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
		}
		if w != source {
			scores[w] += delta[w] * scale
		}
	}
}

// bfsDistances returns hop distances from source to every reachable node,
// excluding the source itself.
func bfsDistances(g *graph.Graph, source graph.NodeID) map[graph.NodeID]int {
	distance := map[graph.NodeID]int{source: 0}

	queue := list.New()
	queue.PushBack(source)

	for queue.Len() > 0 {
		v, ok := queue.Remove(queue.Front()).(graph.NodeID)
		if !ok {
			continue
		}
		for _, w := range g.Neighbors(v) {
			if _, seen := distance[w]; !seen {
				distance[w] = distance[v] + 1
				queue.PushBack(w)
			}
		}
	}

	delete(distance, source)
	return distance
}

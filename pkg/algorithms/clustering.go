package algorithms

import "github.com/skyroutes/airnet/pkg/graph"

// ClusteringResult holds per-node clustering coefficients, the global
// triangle count, and the network average.
type ClusteringResult struct {
	Coefficients map[graph.NodeID]float64
	PerNode      map[graph.NodeID]int
	GlobalCount  int
	Average      float64
}

// Clustering counts triangles and derives local clustering coefficients in a
// single pass over neighbor pairs. For each node u every unordered neighbor
// pair (v,w) is tested for adjacency; each triangle is therefore counted once
// per participating node, so GlobalCount = sum(PerNode) / 3.
func Clustering(g *graph.Graph) *ClusteringResult {
	ids := g.NodeIDs()

	perNode := make(map[graph.NodeID]int, len(ids))
	coefficients := make(map[graph.NodeID]float64, len(ids))

	for _, u := range ids {
		neighbors := g.Neighbors(u)

		count := 0
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if g.HasRoute(neighbors[i], neighbors[j]) {
					count++
				}
			}
		}
		perNode[u] = count

		k := len(neighbors)
		if k < 2 {
			coefficients[u] = 0.0
		} else {
			coefficients[u] = 2.0 * float64(count) / float64(k*(k-1))
		}
	}

	total := 0
	sum := 0.0
	for _, u := range ids {
		total += perNode[u]
		sum += coefficients[u]
	}

	avg := 0.0
	if len(ids) > 0 {
		avg = sum / float64(len(ids))
	}

	return &ClusteringResult{
		Coefficients: coefficients,
		PerNode:      perNode,
		GlobalCount:  total / 3,
		Average:      avg,
	}
}

package algorithms

import (
	"sort"

	"github.com/skyroutes/airnet/pkg/graph"
)

// CoreNumbers computes the k-core index of every node: the largest k such
// that the node belongs to a maximal subgraph where every node has at least k
// neighbors within it. Uses the standard peeling order (repeatedly strip the
// minimum-degree node), processing equal degrees in ascending node id.
func CoreNumbers(g *graph.Graph) map[graph.NodeID]int {
	ids := g.NodeIDs()

	degree := make(map[graph.NodeID]int, len(ids))
	for _, id := range ids {
		degree[id] = g.Degree(id)
	}

	// Peeling order: ascending by current degree, ascending id on ties
	order := make([]graph.NodeID, len(ids))
	copy(order, ids)
	sort.Slice(order, func(i, j int) bool {
		if degree[order[i]] != degree[order[j]] {
			return degree[order[i]] < degree[order[j]]
		}
		return order[i] < order[j]
	})

	core := make(map[graph.NodeID]int, len(ids))
	removed := make(map[graph.NodeID]bool, len(ids))
	current := 0

	for len(order) > 0 {
		// Re-sort lazily: pick the minimum-degree remaining node
		minIdx := 0
		for i := 1; i < len(order); i++ {
			di, dm := degree[order[i]], degree[order[minIdx]]
			if di < dm || (di == dm && order[i] < order[minIdx]) {
				minIdx = i
			}
		}
		v := order[minIdx]
		order = append(order[:minIdx], order[minIdx+1:]...)

		if degree[v] > current {
			current = degree[v]
		}
		core[v] = current
		removed[v] = true

		for _, w := range g.Neighbors(v) {
			if !removed[w] && degree[w] > degree[v] {
				degree[w]--
			}
		}
	}

	return core
}

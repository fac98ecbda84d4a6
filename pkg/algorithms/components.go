package algorithms

import (
	"container/list"

	"github.com/skyroutes/airnet/pkg/graph"
)

// Component is one connected component, discovered in ascending node-id
// order. Nodes within a component are listed in BFS visit order.
type Component struct {
	ID    int
	Nodes []graph.NodeID
	Size  int
}

// ComponentsResult holds the full reachability partition of a graph.
type ComponentsResult struct {
	Components    []*Component
	NodeComponent map[graph.NodeID]int
}

// ConnectedComponents finds all connected components via BFS. Components are
// numbered in the order their first node appears in ascending node-id
// enumeration, which makes the partition deterministic for a given graph.
func ConnectedComponents(g *graph.Graph) *ComponentsResult {
	visited := make(map[graph.NodeID]bool, g.NodeCount())
	nodeComponent := make(map[graph.NodeID]int, g.NodeCount())
	components := make([]*Component, 0)
	componentID := 0

	for _, start := range g.NodeIDs() {
		if visited[start] {
			continue
		}

		component := &Component{
			ID:    componentID,
			Nodes: make([]graph.NodeID, 0),
		}

		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(graph.NodeID)
			if !ok {
				continue
			}
			component.Nodes = append(component.Nodes, v)
			nodeComponent[v] = componentID

			for _, w := range g.Neighbors(v) {
				if !visited[w] {
					visited[w] = true
					queue.PushBack(w)
				}
			}
		}

		component.Size = len(component.Nodes)
		components = append(components, component)
		componentID++
	}

	return &ComponentsResult{
		Components:    components,
		NodeComponent: nodeComponent,
	}
}

// GiantComponent returns the induced subgraph on the largest connected
// component. Ties break toward the first-discovered component, i.e. the one
// containing the smallest node id. Fails with ErrEmptyGraph on zero nodes.
func GiantComponent(g *graph.Graph) (*graph.Graph, error) {
	if g.NodeCount() == 0 {
		return nil, graph.EmptyGraphError("GiantComponent")
	}

	result := ConnectedComponents(g)
	largest := result.Components[0]
	for _, c := range result.Components[1:] {
		if c.Size > largest.Size {
			largest = c
		}
	}

	return g.Subgraph(largest.Nodes), nil
}

// GiantComponentSize returns the node count of the largest component without
// materializing the subgraph. Returns 0 for an empty graph.
func GiantComponentSize(g *graph.Graph) int {
	if g.NodeCount() == 0 {
		return 0
	}
	result := ConnectedComponents(g)
	max := 0
	for _, c := range result.Components {
		if c.Size > max {
			max = c.Size
		}
	}
	return max
}

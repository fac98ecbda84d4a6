package graph

import "sort"

// Graph is an in-memory undirected simple graph over airports. Nodes live in
// an arena keyed by NodeID and adjacency is a map from NodeID to the set of
// neighbor NodeIDs. Removing a node deletes its arena entry and its ID from
// every neighbor's set, so no dangling references are possible: all lookups
// go through the identifier, never through pointers.
//
// A Graph is not safe for concurrent mutation. Simulation runs are expected
// to take a Clone and mutate that privately.
type Graph struct {
	airports  map[NodeID]*Airport
	adjacency map[NodeID]map[NodeID]struct{}
	distances map[edgeKey]float64
	edgeCount int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		airports:  make(map[NodeID]*Airport),
		adjacency: make(map[NodeID]map[NodeID]struct{}),
		distances: make(map[edgeKey]float64),
	}
}

// AddAirport inserts a node. Re-adding an existing ID replaces the metadata
// and keeps the adjacency intact.
func (g *Graph) AddAirport(a *Airport) {
	g.airports[a.ID] = a
	if g.adjacency[a.ID] == nil {
		g.adjacency[a.ID] = make(map[NodeID]struct{})
	}
}

// AddRoute inserts an undirected edge. Both endpoints must exist and must
// differ. Adding an existing route only refreshes the stored distance.
func (g *Graph) AddRoute(from, to NodeID, distanceKm float64) error {
	if from == to {
		return RouteError("AddRoute", from, to, ErrSelfLoop)
	}
	if _, ok := g.airports[from]; !ok {
		return NodeError("AddRoute", from, ErrNodeNotFound)
	}
	if _, ok := g.airports[to]; !ok {
		return NodeError("AddRoute", to, ErrNodeNotFound)
	}

	key := keyFor(from, to)
	if _, exists := g.distances[key]; !exists {
		g.adjacency[from][to] = struct{}{}
		g.adjacency[to][from] = struct{}{}
		g.edgeCount++
	}
	g.distances[key] = distanceKm
	return nil
}

// RemoveNode deletes a node, its adjacency entry, and its ID from every
// neighbor's set.
func (g *Graph) RemoveNode(id NodeID) error {
	if _, ok := g.airports[id]; !ok {
		return NodeError("RemoveNode", id, ErrNodeNotFound)
	}

	for neighbor := range g.adjacency[id] {
		delete(g.adjacency[neighbor], id)
		delete(g.distances, keyFor(id, neighbor))
		g.edgeCount--
	}
	delete(g.adjacency, id)
	delete(g.airports, id)
	return nil
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.airports[id]
	return ok
}

// HasRoute reports whether an undirected edge exists between u and v.
func (g *Graph) HasRoute(u, v NodeID) bool {
	_, ok := g.distances[keyFor(u, v)]
	return ok
}

// Airport returns the node metadata for an ID.
func (g *Graph) Airport(id NodeID) (*Airport, error) {
	a, ok := g.airports[id]
	if !ok {
		return nil, NodeError("Airport", id, ErrNodeNotFound)
	}
	return a, nil
}

// Neighbors returns the neighbor IDs of a node in ascending order. The sort
// keeps every traversal in the package deterministic.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	set, ok := g.adjacency[id]
	if !ok {
		return nil
	}
	out := make([]NodeID, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Degree returns the number of neighbors of a node, 0 if absent.
func (g *Graph) Degree(id NodeID) int {
	return len(g.adjacency[id])
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.airports)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// NodeIDs returns all node IDs in ascending order. This is the canonical
// deterministic enumeration order for the whole module.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.airports))
	for id := range g.airports {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EdgeDistance returns the stored distance for an edge.
func (g *Graph) EdgeDistance(u, v NodeID) (float64, bool) {
	d, ok := g.distances[keyFor(u, v)]
	return d, ok
}

// Routes returns every undirected edge exactly once, ordered by (From, To)
// ascending with From < To.
func (g *Graph) Routes() []Route {
	routes := make([]Route, 0, g.edgeCount)
	for key, dist := range g.distances {
		routes = append(routes, Route{From: key.a, To: key.b, DistanceKm: dist})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].From != routes[j].From {
			return routes[i].From < routes[j].From
		}
		return routes[i].To < routes[j].To
	})
	return routes
}

// Clone returns a deep copy. Airport structs are shared (immutable by
// contract); adjacency and distances are copied so destructive removal on the
// clone never touches the original.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		airports:  make(map[NodeID]*Airport, len(g.airports)),
		adjacency: make(map[NodeID]map[NodeID]struct{}, len(g.adjacency)),
		distances: make(map[edgeKey]float64, len(g.distances)),
		edgeCount: g.edgeCount,
	}
	for id, a := range g.airports {
		c.airports[id] = a
	}
	for id, set := range g.adjacency {
		ns := make(map[NodeID]struct{}, len(set))
		for n := range set {
			ns[n] = struct{}{}
		}
		c.adjacency[id] = ns
	}
	for key, dist := range g.distances {
		c.distances[key] = dist
	}
	return c
}

// Subgraph returns the induced subgraph on the given node IDs. Unknown IDs
// are ignored. Edges are kept only when both endpoints are in the set.
func (g *Graph) Subgraph(ids []NodeID) *Graph {
	keep := make(map[NodeID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := g.airports[id]; ok {
			keep[id] = struct{}{}
		}
	}

	sub := New()
	for id := range keep {
		sub.AddAirport(g.airports[id])
	}
	for key, dist := range g.distances {
		if _, okA := keep[key.a]; !okA {
			continue
		}
		if _, okB := keep[key.b]; !okB {
			continue
		}
		sub.adjacency[key.a][key.b] = struct{}{}
		sub.adjacency[key.b][key.a] = struct{}{}
		sub.distances[key] = dist
		sub.edgeCount++
	}
	return sub
}

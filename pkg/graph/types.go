package graph

// NodeID identifies an airport in the network. OpenFlights airport IDs are
// positive integers; country super-nodes reuse the same space with synthetic
// IDs assigned at aggregation time.
type NodeID int64

// Airport is a node in the route network. The struct is immutable once
// loaded; derived annotations (degree, centrality, k-core, community) live in
// per-run tables keyed by NodeID, never on the node itself.
type Airport struct {
	ID        NodeID
	Name      string
	City      string
	Country   string
	IATA      string
	ICAO      string
	Latitude  float64
	Longitude float64
}

// Route is one undirected edge, reported with From < To so each edge appears
// exactly once when enumerating.
type Route struct {
	From       NodeID
	To         NodeID
	DistanceKm float64
}

// edgeKey canonicalizes an unordered node pair.
type edgeKey struct {
	a, b NodeID
}

func keyFor(u, v NodeID) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{a: u, b: v}
}

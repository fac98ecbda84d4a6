package graph

import (
	"errors"
	"testing"
)

// buildPath creates the path graph 1-2-3-4.
func buildPath(t *testing.T) *Graph {
	t.Helper()

	g := New()
	for id := NodeID(1); id <= 4; id++ {
		g.AddAirport(&Airport{ID: id})
	}
	for _, pair := range [][2]NodeID{{1, 2}, {2, 3}, {3, 4}} {
		if err := g.AddRoute(pair[0], pair[1], 100); err != nil {
			t.Fatalf("AddRoute(%d,%d) failed: %v", pair[0], pair[1], err)
		}
	}
	return g
}

func TestAddRoute_RejectsSelfLoop(t *testing.T) {
	g := New()
	g.AddAirport(&Airport{ID: 1})

	err := g.AddRoute(1, 1, 0)
	if !errors.Is(err, ErrSelfLoop) {
		t.Errorf("Expected ErrSelfLoop, got %v", err)
	}
}

func TestAddRoute_RejectsUnknownEndpoint(t *testing.T) {
	g := New()
	g.AddAirport(&Airport{ID: 1})

	err := g.AddRoute(1, 99, 0)
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
}

func TestAddRoute_Idempotent(t *testing.T) {
	g := New()
	g.AddAirport(&Airport{ID: 1})
	g.AddAirport(&Airport{ID: 2})

	if err := g.AddRoute(1, 2, 100); err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}
	if err := g.AddRoute(2, 1, 250); err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}

	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge after duplicate add, got %d", g.EdgeCount())
	}
	if d, _ := g.EdgeDistance(1, 2); d != 250 {
		t.Errorf("Expected distance refresh to 250, got %f", d)
	}
}

func TestRemoveNode_CleansAdjacency(t *testing.T) {
	g := buildPath(t)

	if err := g.RemoveNode(2); err != nil {
		t.Fatalf("RemoveNode failed: %v", err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("Expected 3 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
	if g.Degree(1) != 0 {
		t.Errorf("Node 1 should be isolated, degree=%d", g.Degree(1))
	}
	if g.HasRoute(1, 2) || g.HasRoute(2, 3) {
		t.Error("Routes through removed node survived")
	}
}

func TestRemoveNode_Missing(t *testing.T) {
	g := New()
	if err := g.RemoveNode(7); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
}

func TestNodeIDs_Ascending(t *testing.T) {
	g := New()
	for _, id := range []NodeID{42, 7, 19, 3} {
		g.AddAirport(&Airport{ID: id})
	}

	ids := g.NodeIDs()
	want := []NodeID{3, 7, 19, 42}
	for i, id := range ids {
		if id != want[i] {
			t.Fatalf("NodeIDs()[%d] = %d, want %d", i, id, want[i])
		}
	}
}

func TestClone_IsolatesMutation(t *testing.T) {
	g := buildPath(t)
	c := g.Clone()

	if err := c.RemoveNode(2); err != nil {
		t.Fatalf("RemoveNode on clone failed: %v", err)
	}

	if g.NodeCount() != 4 || g.EdgeCount() != 3 {
		t.Errorf("Original mutated: nodes=%d edges=%d", g.NodeCount(), g.EdgeCount())
	}
	if !g.HasRoute(1, 2) {
		t.Error("Original lost route 1-2 after clone mutation")
	}
}

func TestSubgraph_InducedEdges(t *testing.T) {
	g := buildPath(t)

	sub := g.Subgraph([]NodeID{1, 2, 4, 99})

	if sub.NodeCount() != 3 {
		t.Errorf("Expected 3 nodes, got %d", sub.NodeCount())
	}
	if sub.EdgeCount() != 1 {
		t.Errorf("Expected induced edge 1-2 only, got %d edges", sub.EdgeCount())
	}
	if !sub.HasRoute(1, 2) {
		t.Error("Missing induced edge 1-2")
	}
	if sub.HasRoute(3, 4) {
		t.Error("Edge 3-4 should not survive (3 excluded)")
	}
}

func TestRoutes_CanonicalOrder(t *testing.T) {
	g := buildPath(t)

	routes := g.Routes()
	if len(routes) != 3 {
		t.Fatalf("Expected 3 routes, got %d", len(routes))
	}
	for i, r := range routes {
		if r.From >= r.To {
			t.Errorf("Route %d not canonical: %d-%d", i, r.From, r.To)
		}
		if i > 0 && routes[i-1].From > r.From {
			t.Errorf("Routes not sorted at index %d", i)
		}
	}
}

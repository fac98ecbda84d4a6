package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/skyroutes/airnet/pkg/graph"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDegreeCentrality_Path(t *testing.T) {
	g := pathGraph(t)

	scores := DegreeCentrality(g)

	if !almostEqual(scores[1], 1.0/3.0) || !almostEqual(scores[4], 1.0/3.0) {
		t.Errorf("End nodes: got %f, %f, want 1/3", scores[1], scores[4])
	}
	if !almostEqual(scores[2], 2.0/3.0) || !almostEqual(scores[3], 2.0/3.0) {
		t.Errorf("Inner nodes: got %f, %f, want 2/3", scores[2], scores[3])
	}
}

func TestDegreeCentrality_SingleNode(t *testing.T) {
	g := buildGraph(t, []graph.NodeID{1}, nil)

	scores := DegreeCentrality(g)
	if scores[1] != 0.0 {
		t.Errorf("Single node degree centrality = %f, want 0", scores[1])
	}
}

func TestClosenessCentrality_Path(t *testing.T) {
	g := pathGraph(t)

	scores := ClosenessCentrality(g)

	// Node 1: distances 1,2,3 sum 6 -> 3/6
	if !almostEqual(scores[1], 0.5) {
		t.Errorf("Closeness(1) = %f, want 0.5", scores[1])
	}
	// Node 2: distances 1,1,2 sum 4 -> 3/4
	if !almostEqual(scores[2], 0.75) {
		t.Errorf("Closeness(2) = %f, want 0.75", scores[2])
	}
}

func TestClosenessCentrality_IsolatedNode(t *testing.T) {
	g := buildGraph(t, []graph.NodeID{1, 2, 3}, [][2]graph.NodeID{{1, 2}})

	scores := ClosenessCentrality(g)
	if scores[3] != 0.0 {
		t.Errorf("Isolated node closeness = %f, want 0", scores[3])
	}
}

func TestBetweennessCentrality_Path(t *testing.T) {
	g := pathGraph(t)

	scores := BetweennessCentrality(g, BetweennessOptions{})

	// P4 normalized betweenness: ends 0, inner nodes 2/3
	if !almostEqual(scores[1], 0.0) || !almostEqual(scores[4], 0.0) {
		t.Errorf("End betweenness: %f, %f, want 0", scores[1], scores[4])
	}
	if !almostEqual(scores[2], 2.0/3.0) || !almostEqual(scores[3], 2.0/3.0) {
		t.Errorf("Inner betweenness: %f, %f, want 2/3", scores[2], scores[3])
	}
}

func TestBetweennessCentrality_StarHub(t *testing.T) {
	g := starGraph(t)

	scores := BetweennessCentrality(g, BetweennessOptions{})

	if !almostEqual(scores[1], 1.0) {
		t.Errorf("Star hub betweenness = %f, want 1.0", scores[1])
	}
	for id := graph.NodeID(2); id <= 6; id++ {
		if !almostEqual(scores[id], 0.0) {
			t.Errorf("Leaf %d betweenness = %f, want 0", id, scores[id])
		}
	}
}

func TestBetweennessCentrality_SampledCoversAllKeys(t *testing.T) {
	g := starGraph(t)

	scores := BetweennessCentrality(g, BetweennessOptions{SampleK: 2, Seed: 7})

	if len(scores) != g.NodeCount() {
		t.Errorf("Expected %d keys, got %d", g.NodeCount(), len(scores))
	}
}

func TestBetweennessCentrality_SampledDeterministic(t *testing.T) {
	g := starGraph(t)

	a := BetweennessCentrality(g, BetweennessOptions{SampleK: 3, Seed: 42})
	b := BetweennessCentrality(g, BetweennessOptions{SampleK: 3, Seed: 42})

	for id, score := range a {
		if !almostEqual(score, b[id]) {
			t.Errorf("Node %d: %f != %f for identical seed", id, score, b[id])
		}
	}
}

func TestBetweennessCentrality_SampleKAtLeastNIsExact(t *testing.T) {
	g := pathGraph(t)

	exact := BetweennessCentrality(g, BetweennessOptions{})
	sampled := BetweennessCentrality(g, BetweennessOptions{SampleK: 100, Seed: 1})

	for id, score := range exact {
		if !almostEqual(score, sampled[id]) {
			t.Errorf("Node %d: sampled %f != exact %f", id, sampled[id], score)
		}
	}
}

func TestEigenvectorCentrality_Triangle(t *testing.T) {
	g := buildGraph(t,
		[]graph.NodeID{1, 2, 3},
		[][2]graph.NodeID{{1, 2}, {2, 3}, {1, 3}})

	scores, err := EigenvectorCentrality(g, DefaultEigenvectorOptions())
	if err != nil {
		t.Fatalf("EigenvectorCentrality failed: %v", err)
	}

	want := 1.0 / math.Sqrt(3.0)
	for id, score := range scores {
		if math.Abs(score-want) > 1e-4 {
			t.Errorf("Node %d: %f, want %f", id, score, want)
		}
	}
}

func TestEigenvectorCentrality_HubDominates(t *testing.T) {
	g := starGraph(t)

	scores, err := EigenvectorCentrality(g, DefaultEigenvectorOptions())
	if err != nil {
		t.Fatalf("EigenvectorCentrality failed: %v", err)
	}

	for id := graph.NodeID(2); id <= 6; id++ {
		if scores[1] <= scores[id] {
			t.Errorf("Hub score %f should exceed leaf %d score %f", scores[1], id, scores[id])
		}
	}
}

func TestEigenvectorCentrality_BudgetExhausted(t *testing.T) {
	g := pathGraph(t)

	_, err := EigenvectorCentrality(g, EigenvectorOptions{MaxIterations: 1, Tolerance: 1e-12})
	if !errors.Is(err, graph.ErrNoConvergence) {
		t.Fatalf("Expected ErrNoConvergence with a one-iteration budget, got %v", err)
	}
}

func TestTopAirports_OrderAndTieBreak(t *testing.T) {
	g := buildGraph(t, []graph.NodeID{1, 2, 3, 4}, nil)
	scores := map[graph.NodeID]float64{1: 0.5, 2: 0.9, 3: 0.5, 4: 0.1}

	top := TopAirports(g, scores, 3)

	if len(top) != 3 {
		t.Fatalf("Expected 3 ranked airports, got %d", len(top))
	}
	if top[0].NodeID != 2 {
		t.Errorf("Top should be node 2, got %d", top[0].NodeID)
	}
	// Tie at 0.5 breaks ascending by id
	if top[1].NodeID != 1 || top[2].NodeID != 3 {
		t.Errorf("Tie-break wrong: got %d then %d, want 1 then 3", top[1].NodeID, top[2].NodeID)
	}
}

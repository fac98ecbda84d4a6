package attack

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyroutes/airnet/pkg/graph"
)

// pathGraph builds the path 1-2-...-n.
func pathGraph(t *testing.T, n int) *graph.Graph {
	t.Helper()
	g := graph.New()
	for i := 1; i <= n; i++ {
		g.AddAirport(&graph.Airport{ID: graph.NodeID(i), Name: fmt.Sprintf("A%d", i)})
	}
	for i := 1; i < n; i++ {
		require.NoError(t, g.AddRoute(graph.NodeID(i), graph.NodeID(i+1), 100))
	}
	return g
}

// starGraph builds a hub (id 1) with the given number of leaves (ids 2..).
func starGraph(t *testing.T, leaves int) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.AddAirport(&graph.Airport{ID: 1, Name: "HUB"})
	for i := 0; i < leaves; i++ {
		id := graph.NodeID(i + 2)
		g.AddAirport(&graph.Airport{ID: id, Name: fmt.Sprintf("L%d", id)})
		require.NoError(t, g.AddRoute(1, id, 100))
	}
	return g
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies {
		parsed, err := ParseStrategy(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStrategy("pagerank")
	assert.ErrorIs(t, err, graph.ErrUnknownStrategy)
}

func TestRandomOrder_SeededPermutation(t *testing.T) {
	g := pathGraph(t, 6)

	first := RandomOrder(g, 42)
	second := RandomOrder(g, 42)
	other := RandomOrder(g, 43)

	assert.Equal(t, first, second)
	assert.Len(t, first, 6)
	assert.ElementsMatch(t, g.NodeIDs(), first)
	assert.ElementsMatch(t, g.NodeIDs(), other)
}

func TestTargetedOrder_DegreePutsCoreFirst(t *testing.T) {
	// Path 1-2-3-4: inner nodes have degree 2, ends degree 1.
	// Ties resolve to the smaller id.
	g := pathGraph(t, 4)

	order, err := TargetedOrder(g, StrategyDegree, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []graph.NodeID{2, 3, 1, 4}, order)
}

func TestTargetedOrder_BetweennessStarHubFirst(t *testing.T) {
	g := starGraph(t, 5)

	order, err := TargetedOrder(g, StrategyBetweenness, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, graph.NodeID(1), order[0])
	assert.Len(t, order, 6)
}

func TestTargetedOrder_RejectsRandom(t *testing.T) {
	g := pathGraph(t, 3)

	_, err := TargetedOrder(g, StrategyRandom, DefaultOptions())
	assert.ErrorIs(t, err, graph.ErrUnknownStrategy)
}

func TestTargetedOrder_EigenvectorNonConvergenceFallsBack(t *testing.T) {
	g := starGraph(t, 4)

	opts := DefaultOptions()
	opts.EigenMaxIterations = 1

	order, err := TargetedOrder(g, StrategyEigenvector, opts)
	assert.ErrorIs(t, err, graph.ErrNoConvergence)
	// Fallback ordering is still usable: all ids, ascending
	assert.Equal(t, []graph.NodeID{1, 2, 3, 4, 5}, order)
}

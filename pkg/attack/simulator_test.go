package attack

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyroutes/airnet/pkg/graph"
	"github.com/skyroutes/airnet/pkg/metrics"
)

func newTestSimulator(t *testing.T, opts Options) *Simulator {
	t.Helper()
	sim, err := NewSimulator(opts, nil, metrics.NewRegistry())
	require.NoError(t, err)
	return sim
}

func TestNewSimulator_RejectsUnknownStrategy(t *testing.T) {
	opts := DefaultOptions()
	opts.Strategy = "pagerank"

	_, err := NewSimulator(opts, nil, nil)
	assert.ErrorIs(t, err, graph.ErrUnknownStrategy)
}

func TestRun_EmptyGraphFails(t *testing.T) {
	sim := newTestSimulator(t, DefaultOptions())

	_, err := sim.Run(context.Background(), graph.New())
	assert.ErrorIs(t, err, graph.ErrEmptyGraph)
}

func TestRun_BaselineOnly(t *testing.T) {
	g := pathGraph(t, 4)
	opts := DefaultOptions()
	opts.MaxRemovalFraction = 0 // schedule collapses to the intact baseline

	cps, err := newTestSimulator(t, opts).Run(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, cps, 1)

	assert.Equal(t, 0, cps[0].RemovedCount)
	assert.Equal(t, 4, cps[0].GiantSize)
	assert.Equal(t, 1.0, cps[0].GiantFraction)
	assert.Equal(t, 1, cps[0].ComponentCount)
	assert.InDelta(t, 10.0/6.0, cps[0].AvgPathLength, 1e-9)
	assert.Equal(t, 4, g.NodeCount(), "caller graph must stay intact")
}

func TestRun_DegreeAttackOnPath(t *testing.T) {
	// Path 1-2-3-4. Degree order is [2,3,1,4]; removing node 2 splits the
	// graph into {1} and {3,4}, so the giant component drops to 2 nodes.
	g := pathGraph(t, 4)
	opts := DefaultOptions()
	opts.Steps = 4
	opts.MaxRemovalFraction = 1.0

	cps, err := newTestSimulator(t, opts).Run(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, cps, 5)

	assert.Equal(t, 4, cps[0].GiantSize)
	assert.Equal(t, 2, cps[1].GiantSize)
	assert.Equal(t, 0.5, cps[1].GiantFraction)
	assert.Equal(t, 2, cps[1].ComponentCount)
}

func TestRun_StarHubRemoval(t *testing.T) {
	// Hub removal shatters the star: five isolated leaves remain, so the
	// giant fraction falls from 1.0 straight to 1/6.
	g := starGraph(t, 5)
	opts := DefaultOptions()
	opts.Steps = 1
	opts.MaxRemovalFraction = 1.0 / 6.0

	cps, err := newTestSimulator(t, opts).Run(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, cps, 2)

	assert.Equal(t, 1, cps[1].RemovedCount)
	assert.Equal(t, 1, cps[1].GiantSize)
	assert.InDelta(t, 1.0/6.0, cps[1].GiantFraction, 1e-9)
	assert.Equal(t, 5, cps[1].ComponentCount)
	assert.True(t, math.IsNaN(cps[1].AvgPathLength))
	assert.Equal(t, 0.0, cps[1].Efficiency)
}

func TestRun_FullDepletionIsNotAnError(t *testing.T) {
	g := pathGraph(t, 4)
	opts := DefaultOptions()
	opts.Steps = 4
	opts.MaxRemovalFraction = 1.0

	cps, err := newTestSimulator(t, opts).Run(context.Background(), g)
	require.NoError(t, err)

	last := cps[len(cps)-1]
	assert.Equal(t, 4, last.RemovedCount)
	assert.Equal(t, 0, last.GiantSize)
	assert.Equal(t, 0.0, last.GiantFraction)
	assert.Equal(t, 0, last.ComponentCount)
	assert.True(t, math.IsNaN(last.AvgPathLength))
}

func TestRun_GiantFractionNonIncreasing(t *testing.T) {
	g := starGraph(t, 9)
	for _, strategy := range []Strategy{StrategyRandom, StrategyDegree, StrategyCloseness} {
		opts := DefaultOptions()
		opts.Strategy = strategy
		opts.Steps = 10
		opts.MaxRemovalFraction = 1.0

		cps, err := newTestSimulator(t, opts).Run(context.Background(), g)
		require.NoError(t, err)

		for i := 1; i < len(cps); i++ {
			assert.LessOrEqual(t, cps[i].GiantFraction, cps[i-1].GiantFraction,
				"strategy %s checkpoint %d", strategy, i)
		}
	}
}

func TestRun_Reproducible(t *testing.T) {
	g := pathGraph(t, 8)
	for _, strategy := range []Strategy{StrategyRandom, StrategyBetweenness} {
		opts := DefaultOptions()
		opts.Strategy = strategy
		opts.Steps = 8
		opts.MaxRemovalFraction = 1.0

		sim := newTestSimulator(t, opts)
		first, err := sim.Run(context.Background(), g)
		require.NoError(t, err)
		second, err := sim.Run(context.Background(), g)
		require.NoError(t, err)

		assert.Equal(t, first, second, "strategy %s", strategy)
	}
}

func TestRun_AdaptiveDegree(t *testing.T) {
	// Adaptive mode re-ranks after each removal; on a star it still takes
	// the hub first and then peels isolated leaves.
	g := starGraph(t, 5)
	opts := DefaultOptions()
	opts.Adaptive = true
	opts.Steps = 6
	opts.MaxRemovalFraction = 1.0

	cps, err := newTestSimulator(t, opts).Run(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, 1, cps[1].GiantSize)
	last := cps[len(cps)-1]
	assert.Equal(t, 6, last.RemovedCount)
	assert.Equal(t, 0, last.GiantSize)
}

func TestRun_AdaptiveEigenvectorDegradesOnNonConvergence(t *testing.T) {
	g := starGraph(t, 4)
	opts := DefaultOptions()
	opts.Strategy = StrategyEigenvector
	opts.Adaptive = true
	opts.EigenMaxIterations = 1
	opts.Steps = 5
	opts.MaxRemovalFraction = 1.0

	cps, err := newTestSimulator(t, opts).Run(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 0, cps[len(cps)-1].GiantSize)
}

func TestRun_ContextCancellation(t *testing.T) {
	g := pathGraph(t, 10)
	opts := DefaultOptions()
	opts.Steps = 10
	opts.MaxRemovalFraction = 1.0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSimulator(t, opts).Run(ctx, g)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRandomTrials(t *testing.T) {
	g := pathGraph(t, 6)
	opts := DefaultOptions()
	opts.Strategy = StrategyRandom
	opts.Trials = 5
	opts.Workers = 2
	opts.Steps = 6
	opts.MaxRemovalFraction = 1.0

	results, agg, err := newTestSimulator(t, opts).RunRandomTrials(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, r := range results {
		assert.Equal(t, i, r.Trial)
		assert.Equal(t, opts.Seed+int64(i), r.Seed)
		assert.NotEmpty(t, r.Checkpoints)
	}

	// Baseline checkpoint is identical across trials: mean 1, deviation 0
	require.NotEmpty(t, agg)
	assert.Equal(t, 1.0, agg[0].GiantFractionMu)
	assert.Equal(t, 0.0, agg[0].GiantFractionSd)
}

func TestRunRandomTrials_RequiresRandomStrategy(t *testing.T) {
	g := pathGraph(t, 4)
	sim := newTestSimulator(t, DefaultOptions())

	_, _, err := sim.RunRandomTrials(context.Background(), g)
	assert.Error(t, err)
}

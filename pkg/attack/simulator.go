package attack

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/skyroutes/airnet/pkg/algorithms"
	"github.com/skyroutes/airnet/pkg/graph"
	"github.com/skyroutes/airnet/pkg/logging"
	"github.com/skyroutes/airnet/pkg/metrics"
	"github.com/skyroutes/airnet/pkg/parallel"
)

// Simulator quantifies network robustness by progressively deleting nodes
// according to a strategy and recording structural health at scheduled
// checkpoints. The caller's graph is never mutated: every run clones it.
type Simulator struct {
	opts     Options
	logger   logging.Logger
	registry *metrics.Registry
}

// NewSimulator validates the strategy up front (no partial runs on an
// unrecognized identifier) and wires logging/metrics. logger may be nil;
// registry may be nil (metrics become no-ops).
func NewSimulator(opts Options, logger logging.Logger, registry *metrics.Registry) (*Simulator, error) {
	if _, err := ParseStrategy(string(opts.Strategy)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Simulator{
		opts:     opts,
		logger:   logger.With(logging.Component("attack"), logging.Strategy(string(opts.Strategy))),
		registry: registry,
	}, nil
}

// Run executes a single simulation run and returns its checkpoint series.
// The input must be non-empty; it is expected (not enforced) to be a giant
// component, so fraction 0 reports the intact baseline.
func (s *Simulator) Run(ctx context.Context, g *graph.Graph) ([]Checkpoint, error) {
	return s.runWithSeed(ctx, g, s.opts.Seed)
}

func (s *Simulator) runWithSeed(ctx context.Context, g *graph.Graph, seed int64) ([]Checkpoint, error) {
	if g.NodeCount() == 0 {
		s.registry.RecordSimulation(string(s.opts.Strategy), "error")
		return nil, graph.EmptyGraphError("Run")
	}

	work := g.Clone()
	n0 := work.NodeCount()

	order, err := s.initialOrder(work, seed)
	if err != nil {
		s.registry.RecordSimulation(string(s.opts.Strategy), "error")
		return nil, err
	}

	schedule := BuildSchedule(n0, s.opts.Steps, s.opts.MaxRemovalFraction)
	checkpoints := make([]Checkpoint, 0, len(schedule))
	removed := 0

	for _, target := range schedule {
		for removed < target && len(order) > 0 {
			if err := ctx.Err(); err != nil {
				s.registry.RecordSimulation(string(s.opts.Strategy), "canceled")
				return nil, err
			}

			next := order[0]
			order = order[1:]
			if !work.HasNode(next) {
				continue
			}
			if err := work.RemoveNode(next); err != nil {
				s.registry.RecordSimulation(string(s.opts.Strategy), "error")
				return nil, err
			}
			removed++
			s.registry.RecordRemoval(string(s.opts.Strategy))

			// Adaptive mode recomputes the full ordering from the live graph
			// after every individual removal. One centrality computation per
			// removed node; the ctx check above bounds responsiveness.
			if s.opts.Adaptive && s.opts.Strategy != StrategyRandom && work.NodeCount() > 0 {
				order = s.reorder(work, seed)
			}
		}

		checkpoints = append(checkpoints, s.measure(work, n0, removed, seed))
	}

	s.registry.RecordSimulation(string(s.opts.Strategy), "ok")
	return checkpoints, nil
}

// initialOrder computes the full removal priority list on the intact graph.
func (s *Simulator) initialOrder(work *graph.Graph, seed int64) ([]graph.NodeID, error) {
	if s.opts.Strategy == StrategyRandom {
		return RandomOrder(work, seed), nil
	}

	opts := s.opts
	opts.Seed = seed
	order, err := TargetedOrder(work, s.opts.Strategy, opts)
	if errors.Is(err, graph.ErrNoConvergence) {
		// Recoverable: the degenerate all-equal ranking (ascending node id)
		// stands in for the eigenvector
		s.logger.Warn("eigenvector did not converge on intact graph, using node-id order")
		return order, nil
	}
	return order, err
}

// reorder recomputes the priority list on the reduced graph. Non-convergence
// degrades to ascending node-id order for this step instead of aborting.
func (s *Simulator) reorder(work *graph.Graph, seed int64) []graph.NodeID {
	start := time.Now()

	opts := s.opts
	opts.Seed = seed
	order, err := TargetedOrder(work, s.opts.Strategy, opts)
	if err != nil && !errors.Is(err, graph.ErrNoConvergence) {
		// Only unknown-strategy reaches here and NewSimulator excludes it
		s.logger.Error("adaptive reorder failed", logging.Error(err))
		order = work.NodeIDs()
	}
	if errors.Is(err, graph.ErrNoConvergence) {
		s.logger.Warn("eigenvector did not converge during adaptive run",
			logging.Count(work.NodeCount()))
	}

	s.registry.RecordReorder(string(s.opts.Strategy), time.Since(start))
	return order
}

// measure computes the checkpoint record on the current reduced graph.
// An empty graph reports size 0, fraction 0, efficiency 0 and NaN path
// length; no error.
func (s *Simulator) measure(work *graph.Graph, n0, removed int, seed int64) Checkpoint {
	start := time.Now()
	defer func() {
		s.registry.RecordCheckpoint(string(s.opts.Strategy), time.Since(start))
	}()

	cp := Checkpoint{
		RemovedCount:    removed,
		RemovedFraction: float64(removed) / float64(n0),
		AvgPathLength:   math.NaN(),
	}

	if work.NodeCount() == 0 {
		return cp
	}

	comps := algorithms.ConnectedComponents(work)
	cp.ComponentCount = len(comps.Components)

	largest := comps.Components[0]
	for _, c := range comps.Components[1:] {
		if c.Size > largest.Size {
			largest = c
		}
	}
	cp.GiantSize = largest.Size
	cp.GiantFraction = float64(largest.Size) / float64(n0)

	giant := work.Subgraph(largest.Nodes)
	cp.Efficiency = algorithms.ApproxEfficiency(giant, algorithms.EfficiencyOptions{
		Pairs: s.opts.EfficiencyPairs,
		Seed:  seed,
	})

	if giant.NodeCount() >= 2 {
		if length, err := algorithms.AverageShortestPathLength(giant); err == nil {
			cp.AvgPathLength = length
		}
	}

	return cp
}

// RunRandomTrials executes Trials independent random-permutation runs with
// distinct seeds (Seed+trial) and aggregates per-checkpoint mean and standard
// deviation. Trials fan out across the worker pool when Workers > 1; each
// trial clones the graph privately, so no state is shared until the final
// order-independent merge.
func (s *Simulator) RunRandomTrials(ctx context.Context, g *graph.Graph) ([]TrialResult, []AggregatedCheckpoint, error) {
	if s.opts.Strategy != StrategyRandom {
		return nil, nil, fmt.Errorf("RunRandomTrials requires strategy %q, have %q",
			StrategyRandom, s.opts.Strategy)
	}

	trials := s.opts.Trials
	if trials <= 0 {
		trials = 1
	}

	results := make([]TrialResult, trials)
	errs := make([]error, trials)

	runTrial := func(i int) {
		seed := s.opts.Seed + int64(i)
		cps, err := s.runWithSeed(ctx, g, seed)
		results[i] = TrialResult{Trial: i, Seed: seed, Checkpoints: cps}
		errs[i] = err
	}

	if s.opts.Workers > 1 {
		if err := parallel.ForEach(s.opts.Workers, trials, runTrial); err != nil {
			return nil, nil, err
		}
	} else {
		for i := 0; i < trials; i++ {
			runTrial(i)
		}
	}

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}

	return results, Aggregate(results), nil
}

package attack

import (
	"fmt"
	"math"

	"github.com/skyroutes/airnet/pkg/graph"
)

// Strategy selects how the next node to remove is chosen.
type Strategy string

const (
	StrategyRandom      Strategy = "random"
	StrategyDegree      Strategy = "degree"
	StrategyBetweenness Strategy = "betweenness"
	StrategyCloseness   Strategy = "closeness"
	StrategyEigenvector Strategy = "eigenvector"
)

// Strategies lists every recognized strategy.
var Strategies = []Strategy{
	StrategyRandom,
	StrategyDegree,
	StrategyBetweenness,
	StrategyCloseness,
	StrategyEigenvector,
}

// ParseStrategy validates a strategy identifier. Unknown identifiers fail
// immediately with ErrUnknownStrategy; no partial simulation is run.
func ParseStrategy(s string) (Strategy, error) {
	for _, known := range Strategies {
		if Strategy(s) == known {
			return known, nil
		}
	}
	return "", &graph.GraphError{
		Op:      "ParseStrategy",
		Entity:  "strategy",
		Context: s,
		Cause:   graph.ErrUnknownStrategy,
	}
}

// Options configures a simulation run. Defaults mirror the recognized
// analysis configuration: {strategy, adaptive, schedule, seed, sample size}
// are all explicit here rather than living in package-level globals.
type Options struct {
	Strategy Strategy
	// Adaptive recomputes the full priority ordering after every single
	// removal from the current reduced graph. This is the most expensive
	// mode by far: one full centrality computation per removed node.
	Adaptive bool
	// Steps is the number of checkpoints between 0 and MaxRemovalFraction.
	Steps int
	// MaxRemovalFraction bounds cumulative removal; 1.0 means full depletion,
	// which is a legal terminal state, not an error.
	MaxRemovalFraction float64
	// Trials is the number of independent permutations for StrategyRandom.
	Trials int
	// Seed drives the random permutation, betweenness source sampling, and
	// efficiency pair sampling. Trial t uses Seed+t.
	Seed int64
	// BetweennessSampleK caps Brandes sources; 0 means exact.
	BetweennessSampleK int
	// EfficiencyPairs is the sampled pair budget per checkpoint.
	EfficiencyPairs int
	// EigenMaxIterations bounds the power iteration; non-convergence inside
	// a run degrades the ordering instead of aborting.
	EigenMaxIterations int
	// Workers bounds trial-level parallelism; <=1 runs trials serially.
	Workers int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Strategy:           StrategyDegree,
		Adaptive:           false,
		Steps:              50,
		MaxRemovalFraction: 0.9,
		Trials:             20,
		Seed:               42,
		BetweennessSampleK: 200,
		EfficiencyPairs:    2000,
		EigenMaxIterations: 500,
		Workers:            1,
	}
}

// Checkpoint is one measurement along a removal run, ordered by increasing
// removed fraction.
type Checkpoint struct {
	RemovedCount    int
	RemovedFraction float64
	GiantSize       int
	// GiantFraction is giant size over the run's original node count.
	GiantFraction float64
	Efficiency    float64
	// AvgPathLength is NaN when the giant component has fewer than 2 nodes.
	AvgPathLength  float64
	ComponentCount int
}

// TrialResult is the checkpoint series of one independent random trial.
type TrialResult struct {
	Trial       int
	Seed        int64
	Checkpoints []Checkpoint
}

// AggregatedCheckpoint carries per-checkpoint mean and population standard
// deviation across random trials.
type AggregatedCheckpoint struct {
	RemovedCount     int
	RemovedFraction  float64
	GiantFractionMu  float64
	GiantFractionSd  float64
	EfficiencyMu     float64
	EfficiencySd     float64
	AvgPathLengthMu  float64
	AvgPathLengthSd  float64
	ComponentCountMu float64
	ComponentCountSd float64
}

func (c Checkpoint) String() string {
	path := "NaN"
	if !math.IsNaN(c.AvgPathLength) {
		path = fmt.Sprintf("%.3f", c.AvgPathLength)
	}
	return fmt.Sprintf("removed=%d (%.3f) giant=%d (%.3f) eff=%.4f path=%s comps=%d",
		c.RemovedCount, c.RemovedFraction, c.GiantSize, c.GiantFraction,
		c.Efficiency, path, c.ComponentCount)
}

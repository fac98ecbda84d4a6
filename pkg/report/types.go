package report

import (
	"time"

	"github.com/skyroutes/airnet/pkg/attack"
	"github.com/skyroutes/airnet/pkg/graph"
)

// CentralityRow is one airport with every computed centrality measure.
type CentralityRow struct {
	NodeID      graph.NodeID
	IATA        string
	Name        string
	Country     string
	Degree      int
	DegreeNorm  float64
	Closeness   float64
	Betweenness float64
	Eigenvector float64
}

// HubRow is one entry of a top-hubs table for a single measure.
type HubRow struct {
	Rank    int
	NodeID  graph.NodeID
	IATA    string
	Name    string
	Country string
	Score   float64
}

// NetworkSummary captures the whole-graph statistics of the intact network.
type NetworkSummary struct {
	Airports        int
	Routes          int
	GiantSize       int
	GiantFraction   float64
	ComponentCount  int
	AvgDegree       float64
	AvgClustering   float64
	GlobalTriangles int
	AvgPathLength   float64
	Efficiency      float64
	Assortativity   float64
	MaxCoreNumber   int
}

// StrategyResult is one strategy's robustness outcome: the single targeted
// run, or the per-trial series plus aggregate for the random strategy.
type StrategyResult struct {
	Strategy    attack.Strategy
	Checkpoints []attack.Checkpoint
	Trials      []attack.TrialResult
	Aggregated  []attack.AggregatedCheckpoint
}

// RunMeta is the provenance record written beside the artifacts.
type RunMeta struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Airports   int            `json:"airports"`
	Routes     int            `json:"routes"`
	GiantSize  int            `json:"giant_size"`
	Strategies []string       `json:"strategies"`
	Seed       int64          `json:"seed"`
	Dropped    map[string]int `json:"dropped_rows,omitempty"`
}

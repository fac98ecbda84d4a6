package country

import (
	"context"
	"sort"

	"github.com/skyroutes/airnet/pkg/algorithms"
	"github.com/skyroutes/airnet/pkg/graph"
	"github.com/skyroutes/airnet/pkg/logging"
	"github.com/skyroutes/airnet/pkg/parallel"
)

// Impact describes what removing every airport of one country does to the
// global giant component.
type Impact struct {
	Country         string
	AirportsRemoved int
	// GiantFractionBefore and After are relative to the full graph's node count.
	GiantFractionBefore float64
	GiantFractionAfter  float64
	// Drop is Before minus After; the share of global connectivity lost.
	Drop float64
}

// KnockoutOptions bounds the scan.
type KnockoutOptions struct {
	// Countries restricts the scan; empty means every country in the graph.
	Countries []string
	// MinAirports skips countries below this size.
	MinAirports int
	Workers     int
}

// Knockout removes each country's airports in isolation and measures the
// giant-component drop. Each country gets a private clone, so the scan
// parallelizes trivially across the worker pool.
func Knockout(ctx context.Context, g *graph.Graph, opts KnockoutOptions, logger logging.Logger) ([]Impact, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.Component("country"))

	if g.NodeCount() == 0 {
		return nil, graph.EmptyGraphError("Knockout")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n0 := float64(g.NodeCount())
	baseline := float64(algorithms.GiantComponentSize(g)) / n0

	byCountry := airportsByCountry(g)
	targets := opts.Countries
	if len(targets) == 0 {
		targets = make([]string, 0, len(byCountry))
		for name := range byCountry {
			targets = append(targets, name)
		}
		sort.Strings(targets)
	}

	selected := make([]string, 0, len(targets))
	for _, name := range targets {
		ids := byCountry[name]
		if len(ids) == 0 || len(ids) < opts.MinAirports {
			continue
		}
		selected = append(selected, name)
	}

	impacts := make([]Impact, len(selected))
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	err := parallel.ForEach(workers, len(selected), func(i int) {
		name := selected[i]
		ids := byCountry[name]

		work := g.Clone()
		for _, id := range ids {
			_ = work.RemoveNode(id)
		}

		after := 0.0
		if work.NodeCount() > 0 {
			after = float64(algorithms.GiantComponentSize(work)) / n0
		}

		impacts[i] = Impact{
			Country:             name,
			AirportsRemoved:     len(ids),
			GiantFractionBefore: baseline,
			GiantFractionAfter:  after,
			Drop:                baseline - after,
		}
		logger.Debug("country knocked out",
			logging.Country(name),
			logging.Count(len(ids)),
			logging.Float64("drop", impacts[i].Drop))
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(impacts, func(i, j int) bool {
		if impacts[i].Drop != impacts[j].Drop {
			return impacts[i].Drop > impacts[j].Drop
		}
		return impacts[i].Country < impacts[j].Country
	})
	return impacts, nil
}

func airportsByCountry(g *graph.Graph) map[string][]graph.NodeID {
	out := make(map[string][]graph.NodeID)
	for _, id := range g.NodeIDs() {
		a, err := g.Airport(id)
		if err != nil || a.Country == "" {
			continue
		}
		out[a.Country] = append(out[a.Country], id)
	}
	return out
}

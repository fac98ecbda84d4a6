package main

import (
	"context"
	"errors"
	"math"

	"github.com/skyroutes/airnet/pkg/algorithms"
	"github.com/skyroutes/airnet/pkg/graph"
	"github.com/skyroutes/airnet/pkg/logging"
	"github.com/skyroutes/airnet/pkg/report"
)

// analyze computes the structural statistics and centrality tables on the
// giant component.
func (p *pipeline) analyze(ctx context.Context) error {
	g := p.giant
	n := g.NodeCount()

	degree := algorithms.DegreeCentrality(g)
	closeness := algorithms.ClosenessCentrality(g)
	betweenness := algorithms.BetweennessCentrality(g, algorithms.BetweennessOptions{
		SampleK: p.cfg.Analysis.BetweennessSampleK,
		Seed:    p.cfg.Analysis.Seed,
	})

	eigenvector, err := algorithms.EigenvectorCentrality(g, algorithms.EigenvectorOptions{
		MaxIterations: p.cfg.Analysis.EigenMaxIterations,
		Tolerance:     1e-6,
	})
	if err != nil {
		if !errors.Is(err, graph.ErrNoConvergence) {
			return err
		}
		p.logger.Warn("eigenvector centrality did not converge, reporting zeros")
		eigenvector = make(map[graph.NodeID]float64)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	clustering := algorithms.Clustering(g)

	avgPath := math.NaN()
	if length, err := algorithms.AverageShortestPathLength(g); err == nil {
		avgPath = length
	}

	efficiency := algorithms.ApproxEfficiency(g, algorithms.EfficiencyOptions{
		Pairs: p.cfg.Analysis.EfficiencyPairs,
		Seed:  p.cfg.Analysis.Seed,
	})

	cores := algorithms.CoreNumbers(g)
	maxCore := 0
	for _, c := range cores {
		if c > maxCore {
			maxCore = c
		}
	}

	avgDegree := 0.0
	if n > 0 {
		avgDegree = 2 * float64(g.EdgeCount()) / float64(n)
	}

	p.summary = report.NetworkSummary{
		Airports:        p.full.NodeCount(),
		Routes:          p.full.EdgeCount(),
		GiantSize:       n,
		GiantFraction:   float64(n) / float64(p.full.NodeCount()),
		ComponentCount:  len(algorithms.ConnectedComponents(p.full).Components),
		AvgDegree:       avgDegree,
		AvgClustering:   clustering.Average,
		GlobalTriangles: clustering.GlobalCount,
		AvgPathLength:   avgPath,
		Efficiency:      efficiency,
		Assortativity:   algorithms.DegreeAssortativity(g),
		MaxCoreNumber:   maxCore,
	}

	rows := make([]report.CentralityRow, 0, n)
	for _, id := range g.NodeIDs() {
		a, err := g.Airport(id)
		if err != nil {
			continue
		}
		rows = append(rows, report.CentralityRow{
			NodeID:      id,
			IATA:        a.IATA,
			Name:        a.Name,
			Country:     a.Country,
			Degree:      g.Degree(id),
			DegreeNorm:  degree[id],
			Closeness:   closeness[id],
			Betweenness: betweenness[id],
			Eigenvector: eigenvector[id],
		})
	}

	p.centrality = rows
	p.betweenness = betweenness

	p.logger.Info("analysis complete",
		logging.Count(n),
		logging.Float64("avg_degree", avgDegree),
		logging.Float64("avg_clustering", clustering.Average))
	return nil
}

// emitHubs writes the top-N table for each centrality measure.
func (p *pipeline) emitHubs(writer *report.Writer) {
	n := p.cfg.Analysis.TopHubs
	if n <= 0 {
		return
	}

	measures := []struct {
		name   string
		scores map[graph.NodeID]float64
	}{
		{"degree", algorithms.DegreeCentrality(p.giant)},
		{"betweenness", p.betweenness},
	}

	for _, m := range measures {
		ranked := algorithms.TopAirports(p.giant, m.scores, n)
		rows := make([]report.HubRow, 0, len(ranked))
		for i, r := range ranked {
			rows = append(rows, report.HubRow{
				Rank:    i + 1,
				NodeID:  r.NodeID,
				IATA:    r.Airport.IATA,
				Name:    r.Airport.Name,
				Country: r.Airport.Country,
				Score:   r.Score,
			})
		}
		p.emit(writer.WriteTopHubs(m.name, rows))
	}
}

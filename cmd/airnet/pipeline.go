package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/skyroutes/airnet/pkg/algorithms"
	"github.com/skyroutes/airnet/pkg/attack"
	"github.com/skyroutes/airnet/pkg/config"
	"github.com/skyroutes/airnet/pkg/country"
	"github.com/skyroutes/airnet/pkg/gml"
	"github.com/skyroutes/airnet/pkg/graph"
	"github.com/skyroutes/airnet/pkg/logging"
	"github.com/skyroutes/airnet/pkg/metrics"
	"github.com/skyroutes/airnet/pkg/openflights"
	"github.com/skyroutes/airnet/pkg/report"
	"github.com/skyroutes/airnet/pkg/visualization"
)

// pipeline carries the state of one end-to-end run: load, analyze, simulate,
// aggregate, report.
type pipeline struct {
	cfg      config.Config
	logger   logging.Logger
	registry *metrics.Registry
	runID    string
	started  time.Time

	full  *graph.Graph
	giant *graph.Graph
	stats *openflights.LoadStats

	summary     report.NetworkSummary
	centrality  []report.CentralityRow
	betweenness map[graph.NodeID]float64
	strategies  []report.StrategyResult
	rankings    []country.Ranking
	impacts     []country.Impact

	artifacts []string
}

func (p *pipeline) run(ctx context.Context) error {
	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"load", p.load},
		{"analyze", p.analyze},
		{"simulate", p.simulate},
		{"country", p.aggregateCountries},
		{"report", p.report},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		timer := logging.StartTimer(p.logger, "stage complete", logging.Stage(stage.name))
		start := time.Now()
		if err := stage.fn(ctx); err != nil {
			timer.EndError(err)
			return fmt.Errorf("%s: %w", stage.name, err)
		}
		p.registry.RecordStage(stage.name, time.Since(start))
		timer.End()
	}
	return nil
}

func (p *pipeline) load(ctx context.Context) error {
	loader := openflights.NewLoader(p.logger, p.registry)
	g, stats, err := loader.Load(p.cfg.Data.AirportsPath, p.cfg.Data.RoutesPath)
	if err != nil {
		return err
	}

	giant, err := algorithms.GiantComponent(g)
	if err != nil {
		return err
	}

	p.full = g
	p.giant = giant
	p.stats = stats
	return ctx.Err()
}

func (p *pipeline) simulate(ctx context.Context) error {
	for _, name := range p.cfg.Simulation.Strategies {
		strategy, err := attack.ParseStrategy(name)
		if err != nil {
			return err
		}

		opts := attack.Options{
			Strategy:           strategy,
			Adaptive:           p.cfg.Simulation.Adaptive,
			Steps:              p.cfg.Simulation.Steps,
			MaxRemovalFraction: p.cfg.Simulation.MaxRemovalFraction,
			Trials:             p.cfg.Simulation.Trials,
			Seed:               p.cfg.Analysis.Seed,
			BetweennessSampleK: p.cfg.Analysis.BetweennessSampleK,
			EfficiencyPairs:    p.cfg.Analysis.EfficiencyPairs,
			EigenMaxIterations: p.cfg.Analysis.EigenMaxIterations,
			Workers:            p.cfg.Workers,
		}

		sim, err := attack.NewSimulator(opts, p.logger, p.registry)
		if err != nil {
			return err
		}

		result := report.StrategyResult{Strategy: strategy}
		if strategy == attack.StrategyRandom {
			trials, agg, err := sim.RunRandomTrials(ctx, p.giant)
			if err != nil {
				return err
			}
			result.Trials = trials
			result.Aggregated = agg
		} else {
			cps, err := sim.Run(ctx, p.giant)
			if err != nil {
				return err
			}
			result.Checkpoints = cps
		}
		p.strategies = append(p.strategies, result)
	}
	return nil
}

func (p *pipeline) aggregateCountries(ctx context.Context) error {
	if !p.cfg.Country.Enabled {
		return nil
	}

	cg := country.Build(p.full)
	p.rankings = cg.Rankings()

	impacts, err := country.Knockout(ctx, p.giant, country.KnockoutOptions{
		MinAirports: p.cfg.Country.MinAirports,
		Workers:     p.cfg.Workers,
	}, p.logger)
	if err != nil {
		return err
	}
	p.impacts = impacts
	return nil
}

// report emits every artifact best-effort: a failing artifact is logged and
// skipped so the remaining ones still land.
func (p *pipeline) report(ctx context.Context) error {
	writer, err := report.NewWriter(p.cfg.Output.Dir, p.logger, p.registry)
	if err != nil {
		return err
	}

	p.emit(writer.WriteSummary(p.summary))
	p.emit(writer.WriteCentrality(p.centrality))
	p.emitHubs(writer)

	for _, s := range p.strategies {
		if s.Strategy == attack.StrategyRandom {
			p.emit(writer.WriteRandomTrials(s.Trials))
			p.emit(writer.WriteAggregated(s.Aggregated))
			continue
		}
		p.emit(writer.WriteRobustness(s.Strategy, s.Checkpoints))
	}

	if p.cfg.Country.Enabled {
		p.emit(writer.WriteCountryRankings(p.rankings))
		p.emit(writer.WriteCountryKnockout(p.impacts))
	}

	p.emitGML(writer)
	p.emitMap(writer)

	meta := report.RunMeta{
		RunID:      p.runID,
		StartedAt:  p.started,
		FinishedAt: time.Now(),
		Airports:   p.full.NodeCount(),
		Routes:     p.full.EdgeCount(),
		GiantSize:  p.giant.NodeCount(),
		Strategies: p.cfg.Simulation.Strategies,
		Seed:       p.cfg.Analysis.Seed,
		Dropped:    p.stats.DropReasons,
	}
	p.emit(writer.WriteMeta(meta))

	if err := p.persist(ctx, meta); err != nil {
		p.logger.Error("postgres sink failed", logging.Error(err))
	}
	if err := p.upload(ctx, writer.Dir()); err != nil {
		p.logger.Error("s3 upload failed", logging.Error(err))
	}
	return nil
}

func (p *pipeline) emit(path string, err error) {
	if err != nil {
		p.logger.Error("artifact skipped", logging.Error(err))
		return
	}
	p.artifacts = append(p.artifacts, path)
}

func (p *pipeline) emitGML(writer *report.Writer) {
	path := p.cfg.Output.GMLPath
	if path == "" {
		name := "network.gml"
		if p.cfg.Output.CompressGML {
			name += gml.CompressedSuffix
		}
		path = filepath.Join(writer.Dir(), name)
	}

	if err := gml.WriteFile(path, p.giant); err != nil {
		p.registry.RecordArtifact("gml", "error")
		p.logger.Error("artifact skipped", logging.Error(err))
		return
	}
	p.registry.RecordArtifact("gml", "ok")
	p.logger.Info("artifact written", logging.Path(path))
	p.artifacts = append(p.artifacts, path)
}

func (p *pipeline) emitMap(writer *report.Writer) {
	path := p.cfg.Output.MapPath
	if path == "" {
		path = filepath.Join(writer.Dir(), "route_map.html")
	}

	const mapWidth, mapHeight = 1600.0, 800.0
	layout, err := visualization.ParseLayout(p.cfg.Output.MapLayout, &visualization.LayoutConfig{
		Width:  mapWidth,
		Height: mapHeight,
		Seed:   p.cfg.Analysis.Seed,
	})
	if err != nil {
		p.registry.RecordArtifact("html", "error")
		p.logger.Error("artifact skipped", logging.Error(err))
		return
	}

	err = visualization.WriteHTMLFile(path, p.giant, visualization.MapOptions{
		Title:  "Airline route network, betweenness centrality",
		Width:  mapWidth,
		Height: mapHeight,
		Scores: p.betweenness,
		Layout: layout,
	})
	if err != nil {
		p.registry.RecordArtifact("html", "error")
		p.logger.Error("artifact skipped", logging.Error(err))
		return
	}
	p.registry.RecordArtifact("html", "ok")
	p.logger.Info("artifact written", logging.Path(path))
	p.artifacts = append(p.artifacts, path)
}

func (p *pipeline) persist(ctx context.Context, meta report.RunMeta) error {
	if p.cfg.Postgres.URL == "" {
		return nil
	}

	store, err := report.NewPGStore(ctx, p.cfg.Postgres.URL, p.cfg.Postgres.MaxConns, p.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveRun(ctx, meta); err != nil {
		return err
	}
	if err := store.SaveCentrality(ctx, meta.RunID, p.centrality); err != nil {
		return err
	}
	for _, s := range p.strategies {
		cps := s.Checkpoints
		if s.Strategy == attack.StrategyRandom && len(s.Trials) > 0 {
			cps = s.Trials[0].Checkpoints
		}
		if err := store.SaveRobustness(ctx, meta.RunID, s.Strategy, cps); err != nil {
			return err
		}
	}
	return nil
}

func (p *pipeline) upload(ctx context.Context, dir string) error {
	if p.cfg.S3.Bucket == "" {
		return nil
	}

	uploader, err := report.NewS3Uploader(ctx, p.cfg.S3.Bucket, p.cfg.S3.Prefix,
		p.cfg.S3.Region, p.logger, p.registry)
	if err != nil {
		return err
	}
	return uploader.UploadDir(ctx, dir)
}

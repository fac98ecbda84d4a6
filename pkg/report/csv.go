// Package report writes run artifacts: CSV tables, the run metadata record,
// and the optional Postgres and S3 sinks.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/skyroutes/airnet/pkg/attack"
	"github.com/skyroutes/airnet/pkg/country"
	"github.com/skyroutes/airnet/pkg/logging"
	"github.com/skyroutes/airnet/pkg/metrics"
)

// Writer emits artifacts into a single output directory.
type Writer struct {
	dir      string
	logger   logging.Logger
	registry *metrics.Registry
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string, logger logging.Logger, registry *metrics.Registry) (*Writer, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{
		dir:      dir,
		logger:   logger.With(logging.Component("report")),
		registry: registry,
	}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

func (w *Writer) writeCSV(name string, header []string, rows [][]string) (string, error) {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		w.registry.RecordArtifact("csv", "error")
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		w.registry.RecordArtifact("csv", "error")
		return "", err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			w.registry.RecordArtifact("csv", "error")
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		w.registry.RecordArtifact("csv", "error")
		return "", err
	}

	w.registry.RecordArtifact("csv", "ok")
	w.logger.Info("artifact written", logging.Path(path), logging.Count(len(rows)))
	return path, nil
}

// WriteCentrality writes centrality_metrics.csv.
func (w *Writer) WriteCentrality(rows []CentralityRow) (string, error) {
	header := []string{"airport_id", "iata", "name", "country",
		"degree", "degree_norm", "closeness", "betweenness", "eigenvector"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatInt(int64(r.NodeID), 10),
			r.IATA, r.Name, r.Country,
			strconv.Itoa(r.Degree),
			formatFloat(r.DegreeNorm),
			formatFloat(r.Closeness),
			formatFloat(r.Betweenness),
			formatFloat(r.Eigenvector),
		})
	}
	return w.writeCSV("centrality_metrics.csv", header, records)
}

// WriteTopHubs writes top_hubs_<measure>.csv.
func (w *Writer) WriteTopHubs(measure string, rows []HubRow) (string, error) {
	header := []string{"rank", "airport_id", "iata", "name", "country", "score"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Rank),
			strconv.FormatInt(int64(r.NodeID), 10),
			r.IATA, r.Name, r.Country,
			formatFloat(r.Score),
		})
	}
	return w.writeCSV(fmt.Sprintf("top_hubs_%s.csv", measure), header, records)
}

// WriteRobustness writes robustness_<strategy>.csv, the checkpoint series of
// a single targeted run.
func (w *Writer) WriteRobustness(strategy attack.Strategy, cps []attack.Checkpoint) (string, error) {
	header := []string{"removed_count", "removed_fraction", "giant_size",
		"giant_fraction", "efficiency", "avg_path_length", "component_count"}
	records := make([][]string, 0, len(cps))
	for _, cp := range cps {
		records = append(records, []string{
			strconv.Itoa(cp.RemovedCount),
			formatFloat(cp.RemovedFraction),
			strconv.Itoa(cp.GiantSize),
			formatFloat(cp.GiantFraction),
			formatFloat(cp.Efficiency),
			formatFloat(cp.AvgPathLength),
			strconv.Itoa(cp.ComponentCount),
		})
	}
	return w.writeCSV(fmt.Sprintf("robustness_%s.csv", strategy), header, records)
}

// WriteRandomTrials writes robustness_random_trials.csv, every checkpoint of
// every trial in long form.
func (w *Writer) WriteRandomTrials(trials []attack.TrialResult) (string, error) {
	header := []string{"trial", "seed", "removed_count", "removed_fraction",
		"giant_fraction", "efficiency", "avg_path_length", "component_count"}
	var records [][]string
	for _, t := range trials {
		for _, cp := range t.Checkpoints {
			records = append(records, []string{
				strconv.Itoa(t.Trial),
				strconv.FormatInt(t.Seed, 10),
				strconv.Itoa(cp.RemovedCount),
				formatFloat(cp.RemovedFraction),
				formatFloat(cp.GiantFraction),
				formatFloat(cp.Efficiency),
				formatFloat(cp.AvgPathLength),
				strconv.Itoa(cp.ComponentCount),
			})
		}
	}
	return w.writeCSV("robustness_random_trials.csv", header, records)
}

// WriteAggregated writes robustness_random_aggregated.csv: mean and standard
// deviation per checkpoint across trials.
func (w *Writer) WriteAggregated(agg []attack.AggregatedCheckpoint) (string, error) {
	header := []string{"removed_count", "removed_fraction",
		"giant_fraction_mean", "giant_fraction_std",
		"efficiency_mean", "efficiency_std",
		"avg_path_length_mean", "avg_path_length_std",
		"component_count_mean", "component_count_std"}
	records := make([][]string, 0, len(agg))
	for _, a := range agg {
		records = append(records, []string{
			strconv.Itoa(a.RemovedCount),
			formatFloat(a.RemovedFraction),
			formatFloat(a.GiantFractionMu),
			formatFloat(a.GiantFractionSd),
			formatFloat(a.EfficiencyMu),
			formatFloat(a.EfficiencySd),
			formatFloat(a.AvgPathLengthMu),
			formatFloat(a.AvgPathLengthSd),
			formatFloat(a.ComponentCountMu),
			formatFloat(a.ComponentCountSd),
		})
	}
	return w.writeCSV("robustness_random_aggregated.csv", header, records)
}

// WriteCountryRankings writes country_rankings.csv.
func (w *Writer) WriteCountryRankings(rows []country.Ranking) (string, error) {
	header := []string{"country", "airports", "partner_countries",
		"international_routes", "domestic_routes"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Country,
			strconv.Itoa(r.Airports),
			strconv.Itoa(r.PartnerCountries),
			strconv.Itoa(r.InternationalRoutes),
			strconv.Itoa(r.DomesticRoutes),
		})
	}
	return w.writeCSV("country_rankings.csv", header, records)
}

// WriteCountryKnockout writes country_knockout.csv.
func (w *Writer) WriteCountryKnockout(rows []country.Impact) (string, error) {
	header := []string{"country", "airports_removed",
		"giant_fraction_before", "giant_fraction_after", "drop"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Country,
			strconv.Itoa(r.AirportsRemoved),
			formatFloat(r.GiantFractionBefore),
			formatFloat(r.GiantFractionAfter),
			formatFloat(r.Drop),
		})
	}
	return w.writeCSV("country_knockout.csv", header, records)
}

// WriteSummary writes network_summary.csv as a two-column key/value table.
func (w *Writer) WriteSummary(s NetworkSummary) (string, error) {
	header := []string{"metric", "value"}
	records := [][]string{
		{"airports", strconv.Itoa(s.Airports)},
		{"routes", strconv.Itoa(s.Routes)},
		{"giant_size", strconv.Itoa(s.GiantSize)},
		{"giant_fraction", formatFloat(s.GiantFraction)},
		{"component_count", strconv.Itoa(s.ComponentCount)},
		{"avg_degree", formatFloat(s.AvgDegree)},
		{"avg_clustering", formatFloat(s.AvgClustering)},
		{"global_triangles", strconv.Itoa(s.GlobalTriangles)},
		{"avg_path_length", formatFloat(s.AvgPathLength)},
		{"efficiency", formatFloat(s.Efficiency)},
		{"assortativity", formatFloat(s.Assortativity)},
		{"max_core_number", strconv.Itoa(s.MaxCoreNumber)},
	}
	return w.writeCSV("network_summary.csv", header, records)
}

// WriteMeta writes run_meta.json. A zero RunID is assigned a fresh UUID.
func (w *Writer) WriteMeta(meta RunMeta) (string, error) {
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}

	path := filepath.Join(w.dir, "run_meta.json")
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		w.registry.RecordArtifact("json", "error")
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		w.registry.RecordArtifact("json", "error")
		return "", err
	}
	w.registry.RecordArtifact("json", "ok")
	w.logger.Info("artifact written", logging.Path(path))
	return path, nil
}

// formatFloat renders with enough precision for downstream plotting; NaN
// becomes an empty cell.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}

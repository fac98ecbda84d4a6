package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the pipeline. A nil *Registry is valid and
// turns every recording call into a no-op, so instrumentation can be threaded
// through unconditionally.
type Registry struct {
	registry *prometheus.Registry

	// Simulation metrics
	SimulationsTotal   *prometheus.CounterVec
	RemovalsTotal      *prometheus.CounterVec
	CheckpointsTotal   *prometheus.CounterVec
	CheckpointDuration *prometheus.HistogramVec
	ReorderDuration    *prometheus.HistogramVec

	// Pipeline stage metrics
	StageDuration  *prometheus.HistogramVec
	ArtifactsTotal *prometheus.CounterVec
	GraphNodes     prometheus.Gauge
	GraphEdges     prometheus.Gauge
	DroppedRows    *prometheus.CounterVec
}

// NewRegistry creates a registry with all pipeline metrics registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.SimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "airnet_simulations_total",
		Help: "Completed robustness simulation runs by strategy and outcome",
	}, []string{"strategy", "status"})

	r.RemovalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "airnet_removals_total",
		Help: "Individual node removals performed by strategy",
	}, []string{"strategy"})

	r.CheckpointsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "airnet_checkpoints_total",
		Help: "Checkpoint measurements taken by strategy",
	}, []string{"strategy"})

	r.CheckpointDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "airnet_checkpoint_duration_seconds",
		Help:    "Time spent measuring network health at a checkpoint",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"strategy"})

	r.ReorderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "airnet_reorder_duration_seconds",
		Help:    "Time spent recomputing the adaptive attack ordering",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"strategy"})

	r.StageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "airnet_stage_duration_seconds",
		Help:    "Wall time of top-level pipeline stages",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"stage"})

	r.ArtifactsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "airnet_artifacts_total",
		Help: "Output artifacts by kind and outcome",
	}, []string{"kind", "status"})

	r.GraphNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "airnet_graph_nodes",
		Help: "Node count of the working graph",
	})

	r.GraphEdges = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "airnet_graph_edges",
		Help: "Edge count of the working graph",
	})

	r.DroppedRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "airnet_dropped_rows_total",
		Help: "Malformed input rows dropped during load",
	}, []string{"table", "reason"})

	r.registry.MustRegister(
		r.SimulationsTotal,
		r.RemovalsTotal,
		r.CheckpointsTotal,
		r.CheckpointDuration,
		r.ReorderDuration,
		r.StageDuration,
		r.ArtifactsTotal,
		r.GraphNodes,
		r.GraphEdges,
		r.DroppedRows,
	)

	return r
}

// Prometheus exposes the underlying registry for the HTTP handler.
func (r *Registry) Prometheus() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

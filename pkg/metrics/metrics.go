package metrics

import "time"

// RecordSimulation records a finished simulation run.
func (r *Registry) RecordSimulation(strategy, status string) {
	if r == nil {
		return
	}
	r.SimulationsTotal.WithLabelValues(strategy, status).Inc()
}

// RecordRemoval records one node removal.
func (r *Registry) RecordRemoval(strategy string) {
	if r == nil {
		return
	}
	r.RemovalsTotal.WithLabelValues(strategy).Inc()
}

// RecordCheckpoint records a checkpoint measurement with its duration.
func (r *Registry) RecordCheckpoint(strategy string, duration time.Duration) {
	if r == nil {
		return
	}
	r.CheckpointsTotal.WithLabelValues(strategy).Inc()
	r.CheckpointDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordReorder records an adaptive ordering recomputation.
func (r *Registry) RecordReorder(strategy string, duration time.Duration) {
	if r == nil {
		return
	}
	r.ReorderDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordStage records a completed pipeline stage.
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordArtifact records an artifact write attempt.
func (r *Registry) RecordArtifact(kind, status string) {
	if r == nil {
		return
	}
	r.ArtifactsTotal.WithLabelValues(kind, status).Inc()
}

// SetGraphSize updates the working graph gauges.
func (r *Registry) SetGraphSize(nodes, edges int) {
	if r == nil {
		return
	}
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// RecordDroppedRow records one malformed input row.
func (r *Registry) RecordDroppedRow(table, reason string) {
	if r == nil {
		return
	}
	r.DroppedRows.WithLabelValues(table, reason).Inc()
}

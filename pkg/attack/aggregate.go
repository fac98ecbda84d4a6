package attack

import "math"

// Aggregate merges the checkpoint series of independent trials into
// per-checkpoint mean and population standard deviation. All trials run the
// same schedule, so series are aligned by index; the shortest series bounds
// the output defensively.
//
// NaN path lengths (giant component below 2 nodes) are skipped per
// checkpoint: the mean covers only trials where the metric is defined, and a
// checkpoint where no trial defines it stays NaN.
func Aggregate(results []TrialResult) []AggregatedCheckpoint {
	if len(results) == 0 {
		return nil
	}

	length := len(results[0].Checkpoints)
	for _, r := range results[1:] {
		if len(r.Checkpoints) < length {
			length = len(r.Checkpoints)
		}
	}

	agg := make([]AggregatedCheckpoint, 0, length)
	for i := 0; i < length; i++ {
		ref := results[0].Checkpoints[i]
		a := AggregatedCheckpoint{
			RemovedCount:    ref.RemovedCount,
			RemovedFraction: ref.RemovedFraction,
		}

		giant := make([]float64, 0, len(results))
		eff := make([]float64, 0, len(results))
		path := make([]float64, 0, len(results))
		comps := make([]float64, 0, len(results))
		for _, r := range results {
			cp := r.Checkpoints[i]
			giant = append(giant, cp.GiantFraction)
			eff = append(eff, cp.Efficiency)
			comps = append(comps, float64(cp.ComponentCount))
			if !math.IsNaN(cp.AvgPathLength) {
				path = append(path, cp.AvgPathLength)
			}
		}

		a.GiantFractionMu, a.GiantFractionSd = meanStd(giant)
		a.EfficiencyMu, a.EfficiencySd = meanStd(eff)
		a.AvgPathLengthMu, a.AvgPathLengthSd = meanStd(path)
		a.ComponentCountMu, a.ComponentCountSd = meanStd(comps)

		agg = append(agg, a)
	}
	return agg
}

// meanStd returns mean and population standard deviation. Empty input yields
// (NaN, NaN); a single sample or a constant series yields deviation 0.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

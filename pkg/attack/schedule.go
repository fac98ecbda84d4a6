package attack

import "math"

// BuildSchedule derives cumulative removal counts from evenly spaced
// fractions of maxFraction across steps checkpoints. The result is
// deduplicated, sorted ascending, and always starts at 0, so the first
// checkpoint is the unmodified baseline.
func BuildSchedule(nodeCount, steps int, maxFraction float64) []int {
	if nodeCount <= 0 || steps <= 0 || maxFraction <= 0 {
		return []int{0}
	}
	if maxFraction > 1.0 {
		maxFraction = 1.0
	}

	maxRemove := int(math.Floor(float64(nodeCount) * maxFraction))

	schedule := make([]int, 0, steps+1)
	seen := make(map[int]bool, steps+1)
	for i := 0; i <= steps; i++ {
		k := int(math.Round(float64(i) * float64(maxRemove) / float64(steps)))
		if !seen[k] {
			seen[k] = true
			schedule = append(schedule, k)
		}
	}
	// Rounding keeps the sequence monotone, so insertion order is sorted
	return schedule
}

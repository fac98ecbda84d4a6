package visualization

import (
	"math"
	"math/rand"

	"github.com/skyroutes/airnet/pkg/graph"
)

// ForceDirectedLayout implements force-directed graph layout. Useful for the
// country super-node view where there are no geographic coordinates.
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using force-directed iteration with a
// cooling schedule. The initial placement is seeded, so the same
// (graph, config) pair always yields the same picture.
func (fdl *ForceDirectedLayout) ComputeLayout(g *graph.Graph, nodeIDs []graph.NodeID) (map[graph.NodeID]Position, error) {
	if len(nodeIDs) == 0 {
		return make(map[graph.NodeID]Position), nil
	}

	// Single node - center it
	if len(nodeIDs) == 1 {
		return map[graph.NodeID]Position{
			nodeIDs[0]: {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}, nil
	}

	rng := rand.New(rand.NewSource(fdl.config.Seed))
	positions := make(map[graph.NodeID]Position, len(nodeIDs))
	for _, id := range nodeIDs {
		positions[id] = Position{
			X: rng.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rng.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(nodeIDs))) // Optimal distance
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[graph.NodeID]Position, len(nodeIDs))
		for _, id := range nodeIDs {
			forces[id] = Position{}
		}

		// Repulsion between all node pairs
		for i, u := range nodeIDs {
			for j := i + 1; j < len(nodeIDs); j++ {
				v := nodeIDs[j]
				dx := positions[u].X - positions[v].X
				dy := positions[u].Y - positions[v].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[u] = Position{X: forces[u].X + fx, Y: forces[u].Y + fy}
				forces[v] = Position{X: forces[v].X - fx, Y: forces[v].Y - fy}
			}
		}

		// Attraction along routes
		for _, u := range nodeIDs {
			for _, v := range g.Neighbors(u) {
				if _, exists := positions[v]; !exists {
					continue
				}

				dx := positions[u].X - positions[v].X
				dy := positions[u].Y - positions[v].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[u] = Position{X: forces[u].X - fx, Y: forces[u].Y - fy}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, id := range nodeIDs {
			fx := forces[id].X
			fy := forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)
			if force > 0 {
				positions[id] = Position{
					X: positions[id].X + (fx/force)*math.Min(force, temperature)*cool,
					Y: positions[id].Y + (fy/force)*math.Min(force, temperature)*cool,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding), nil
}

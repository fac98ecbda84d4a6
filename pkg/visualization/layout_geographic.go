package visualization

import (
	"github.com/skyroutes/airnet/pkg/graph"
)

// GeographicLayout projects airport coordinates onto the canvas with an
// equirectangular projection: longitude maps linearly to X, latitude to Y
// with north at the top.
type GeographicLayout struct {
	config *LayoutConfig
}

// NewGeographicLayout creates a new geographic layout
func NewGeographicLayout(config *LayoutConfig) *GeographicLayout {
	if config.Padding == 0 {
		config.Padding = 20
	}
	return &GeographicLayout{config: config}
}

// ComputeLayout places every node at its projected coordinate. Airports
// missing from the graph are skipped.
func (gl *GeographicLayout) ComputeLayout(g *graph.Graph, nodeIDs []graph.NodeID) (map[graph.NodeID]Position, error) {
	positions := make(map[graph.NodeID]Position, len(nodeIDs))

	innerW := gl.config.Width - 2*gl.config.Padding
	innerH := gl.config.Height - 2*gl.config.Padding

	for _, id := range nodeIDs {
		a, err := g.Airport(id)
		if err != nil {
			continue
		}
		positions[id] = Position{
			X: gl.config.Padding + (a.Longitude+180)/360*innerW,
			Y: gl.config.Padding + (90-a.Latitude)/180*innerH,
		}
	}

	return positions, nil
}

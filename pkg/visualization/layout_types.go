package visualization

import (
	"fmt"

	"github.com/skyroutes/airnet/pkg/graph"
)

// Position represents a 2D canvas coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       int64   // Seed for randomized initial placement
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *graph.Graph, nodeIDs []graph.NodeID) (map[graph.NodeID]Position, error)
}

// ParseLayout selects a layout implementation by name. The empty string picks
// the geographic projection.
func ParseLayout(name string, config *LayoutConfig) (Layout, error) {
	switch name {
	case "", "geographic":
		return NewGeographicLayout(config), nil
	case "force":
		return NewForceDirectedLayout(config), nil
	case "circular":
		return NewCircularLayout(config), nil
	}
	return nil, fmt.Errorf("unknown layout %q", name)
}

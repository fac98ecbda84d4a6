package algorithms

import (
	"math"

	"github.com/skyroutes/airnet/pkg/graph"
)

// DegreeAssortativity computes the Pearson correlation of degrees at either
// end of each edge. r < 0 means hubs attach to low-degree nodes (typical for
// airline networks), r > 0 means hubs attach to hubs. Returns NaN when the
// graph has no edges or all degrees are equal.
func DegreeAssortativity(g *graph.Graph) float64 {
	routes := g.Routes()
	m := len(routes)
	if m == 0 {
		return math.NaN()
	}

	// Each undirected edge contributes both (du,dv) and (dv,du)
	var sumXY, sumX, sumY, sumX2, sumY2 float64
	total := float64(2 * m)
	for _, r := range routes {
		du := float64(g.Degree(r.From))
		dv := float64(g.Degree(r.To))

		sumXY += 2 * du * dv
		sumX += du + dv
		sumY += du + dv
		sumX2 += du*du + dv*dv
		sumY2 += du*du + dv*dv
	}

	num := sumXY/total - (sumX/total)*(sumY/total)
	den := math.Sqrt(sumX2/total-(sumX/total)*(sumX/total)) *
		math.Sqrt(sumY2/total-(sumY/total)*(sumY/total))
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

package algorithms

import (
	"container/heap"
	"sort"

	"github.com/skyroutes/airnet/pkg/graph"
)

// RankedAirport pairs a node with a centrality score for top-N reporting.
type RankedAirport struct {
	NodeID  graph.NodeID
	Score   float64
	Airport *graph.Airport
}

// rankedHeap is a min-heap by score, used to keep the running top N.
type rankedHeap []RankedAirport

func (h rankedHeap) Len() int           { return len(h) }
func (h rankedHeap) Less(i, j int) bool { return h[i].Score < h[j].Score }
func (h rankedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedHeap) Push(x any) {
	*h = append(*h, x.(RankedAirport))
}

func (h *rankedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopAirports returns the top n nodes by score using a min-heap, sorted by
// score descending with ties broken by ascending node id. O(V log n).
func TopAirports(g *graph.Graph, scores map[graph.NodeID]float64, n int) []RankedAirport {
	if n <= 0 {
		return nil
	}

	h := make(rankedHeap, 0, n)
	heap.Init(&h)

	for _, id := range g.NodeIDs() {
		score := scores[id]
		airport, err := g.Airport(id)
		if err != nil {
			continue
		}

		ra := RankedAirport{NodeID: id, Score: score, Airport: airport}
		if h.Len() < n {
			heap.Push(&h, ra)
		} else if score > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, ra)
		}
	}

	result := make([]RankedAirport, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedAirport)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].NodeID < result[j].NodeID
	})

	return result
}

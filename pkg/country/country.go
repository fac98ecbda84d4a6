// Package country aggregates the airport network to country granularity:
// a super-node graph of international connectivity and a knock-out scan that
// measures how much each country's airports hold the global network together.
package country

import (
	"sort"

	"github.com/skyroutes/airnet/pkg/graph"
)

// Graph is the country-level super-node projection. Each country becomes one
// node; an edge carries the number of distinct airport routes crossing that
// country pair. Domestic routes count on the node itself.
type Graph struct {
	countries map[string]*Stats
	weights   map[pairKey]int
}

// Stats accumulates per-country totals during projection.
type Stats struct {
	Country        string
	Airports       int
	DomesticRoutes int
	// InternationalRoutes counts routes with exactly one endpoint here.
	InternationalRoutes int
}

type pairKey struct {
	a, b string
}

func keyFor(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Build projects the airport graph onto countries. Airports with an empty
// country name are skipped.
func Build(g *graph.Graph) *Graph {
	cg := &Graph{
		countries: make(map[string]*Stats),
		weights:   make(map[pairKey]int),
	}

	for _, id := range g.NodeIDs() {
		a, err := g.Airport(id)
		if err != nil || a.Country == "" {
			continue
		}
		cg.stats(a.Country).Airports++
	}

	for _, r := range g.Routes() {
		from, err := g.Airport(r.From)
		if err != nil || from.Country == "" {
			continue
		}
		to, err := g.Airport(r.To)
		if err != nil || to.Country == "" {
			continue
		}

		if from.Country == to.Country {
			cg.stats(from.Country).DomesticRoutes++
			continue
		}
		cg.stats(from.Country).InternationalRoutes++
		cg.stats(to.Country).InternationalRoutes++
		cg.weights[keyFor(from.Country, to.Country)]++
	}

	return cg
}

func (cg *Graph) stats(country string) *Stats {
	s, ok := cg.countries[country]
	if !ok {
		s = &Stats{Country: country}
		cg.countries[country] = s
	}
	return s
}

// Countries returns all country names in ascending order.
func (cg *Graph) Countries() []string {
	out := make([]string, 0, len(cg.countries))
	for name := range cg.countries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Stats returns the totals for one country, nil if unknown.
func (cg *Graph) StatsFor(country string) *Stats {
	return cg.countries[country]
}

// Weight returns the number of routes between two countries.
func (cg *Graph) Weight(a, b string) int {
	return cg.weights[keyFor(a, b)]
}

// Degree returns the number of partner countries.
func (cg *Graph) Degree(country string) int {
	n := 0
	for key := range cg.weights {
		if key.a == country || key.b == country {
			n++
		}
	}
	return n
}

// Edge is one country pair with its route count.
type Edge struct {
	A, B   string
	Weight int
}

// Edges returns all country pairs sorted by descending weight, then by name.
func (cg *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(cg.weights))
	for key, w := range cg.weights {
		out = append(out, Edge{A: key.a, B: key.b, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Ranking is one row of the country connectivity table.
type Ranking struct {
	Country             string
	Airports            int
	PartnerCountries    int
	InternationalRoutes int
	DomesticRoutes      int
}

// Rankings returns per-country connectivity sorted by descending
// international routes, name ascending on ties.
func (cg *Graph) Rankings() []Ranking {
	out := make([]Ranking, 0, len(cg.countries))
	for name, s := range cg.countries {
		out = append(out, Ranking{
			Country:             name,
			Airports:            s.Airports,
			PartnerCountries:    cg.Degree(name),
			InternationalRoutes: s.InternationalRoutes,
			DomesticRoutes:      s.DomesticRoutes,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].InternationalRoutes != out[j].InternationalRoutes {
			return out[i].InternationalRoutes > out[j].InternationalRoutes
		}
		return out[i].Country < out[j].Country
	})
	return out
}

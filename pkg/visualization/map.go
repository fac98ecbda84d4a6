// Package visualization renders the airport network as a standalone HTML
// document with an inline SVG map. Node placement comes from a Layout, by
// default the geographic projection of airport coordinates.
package visualization

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"sort"

	"github.com/skyroutes/airnet/pkg/graph"
)

// MapOptions configures the rendered map.
type MapOptions struct {
	Title  string
	Width  float64
	Height float64
	// Scores sizes and shades nodes, typically a centrality measure. Nil
	// falls back to degree.
	Scores map[graph.NodeID]float64
	// MaxEdges caps rendered routes to keep the file small; 0 means all.
	// Longest-first is not useful on a map, so the first edges in canonical
	// order are kept.
	MaxEdges int
	Layout   Layout
}

type nodeView struct {
	X, Y   float64
	Radius float64
	Fill   string
	Label  string
}

type edgeView struct {
	X1, Y1, X2, Y2 float64
}

type mapData struct {
	Title  string
	Width  float64
	Height float64
	Nodes  []nodeView
	Edges  []edgeView
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { margin: 0; background: #0b1020; color: #dce3f0; font-family: sans-serif; }
  h1 { font-size: 16px; font-weight: normal; padding: 8px 12px; margin: 0; }
  circle:hover { stroke: #ffffff; stroke-width: 1.5; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
  <rect width="{{.Width}}" height="{{.Height}}" fill="#0b1020"/>
  <g stroke="#3a6ea5" stroke-opacity="0.25" stroke-width="0.5">
{{- range .Edges}}
    <line x1="{{printf "%.1f" .X1}}" y1="{{printf "%.1f" .Y1}}" x2="{{printf "%.1f" .X2}}" y2="{{printf "%.1f" .Y2}}"/>
{{- end}}
  </g>
  <g>
{{- range .Nodes}}
    <circle cx="{{printf "%.1f" .X}}" cy="{{printf "%.1f" .Y}}" r="{{printf "%.1f" .Radius}}" fill="{{.Fill}}" fill-opacity="0.85"><title>{{.Label}}</title></circle>
{{- end}}
  </g>
</svg>
</body>
</html>
`))

// RenderHTML writes the map document for the graph.
func RenderHTML(w io.Writer, g *graph.Graph, opts MapOptions) error {
	if opts.Width == 0 {
		opts.Width = 1600
	}
	if opts.Height == 0 {
		opts.Height = 800
	}
	if opts.Title == "" {
		opts.Title = "Airline route network"
	}
	if opts.Layout == nil {
		opts.Layout = NewGeographicLayout(&LayoutConfig{Width: opts.Width, Height: opts.Height})
	}

	ids := g.NodeIDs()
	positions, err := opts.Layout.ComputeLayout(g, ids)
	if err != nil {
		return err
	}

	scores := opts.Scores
	if scores == nil {
		scores = make(map[graph.NodeID]float64, len(ids))
		for _, id := range ids {
			scores[id] = float64(g.Degree(id))
		}
	}
	maxScore := 0.0
	for _, id := range ids {
		if s := scores[id]; s > maxScore {
			maxScore = s
		}
	}

	data := mapData{Title: opts.Title, Width: opts.Width, Height: opts.Height}

	for _, r := range g.Routes() {
		if opts.MaxEdges > 0 && len(data.Edges) >= opts.MaxEdges {
			break
		}
		p1, ok1 := positions[r.From]
		p2, ok2 := positions[r.To]
		if !ok1 || !ok2 {
			continue
		}
		data.Edges = append(data.Edges, edgeView{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y})
	}

	// Draw small airports first so hubs end up on top
	sorted := append([]graph.NodeID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool {
		si, sj := scores[sorted[i]], scores[sorted[j]]
		if si != sj {
			return si < sj
		}
		return sorted[i] < sorted[j]
	})

	for _, id := range sorted {
		pos, ok := positions[id]
		if !ok {
			continue
		}
		a, err := g.Airport(id)
		if err != nil {
			continue
		}

		rel := 0.0
		if maxScore > 0 {
			rel = scores[id] / maxScore
		}
		data.Nodes = append(data.Nodes, nodeView{
			X:      pos.X,
			Y:      pos.Y,
			Radius: 1.5 + 6*math.Sqrt(rel),
			Fill:   heatColor(rel),
			Label:  nodeLabel(a, scores[id]),
		})
	}

	return mapTemplate.Execute(w, data)
}

// WriteHTMLFile renders the map to a file.
func WriteHTMLFile(path string, g *graph.Graph, opts MapOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return RenderHTML(f, g, opts)
}

func nodeLabel(a *graph.Airport, score float64) string {
	code := a.IATA
	if code == "" {
		code = a.Name
	}
	return fmt.Sprintf("%s (%s) score %.4g", code, a.Country, score)
}

// heatColor maps a relative score in [0,1] onto a cold-to-hot ramp.
func heatColor(rel float64) string {
	switch {
	case rel >= 0.75:
		return "#ff4d4d"
	case rel >= 0.5:
		return "#ff9a3d"
	case rel >= 0.25:
		return "#ffd23d"
	default:
		return "#5aa9e6"
	}
}

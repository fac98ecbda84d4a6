package gml

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/skyroutes/airnet/pkg/graph"
)

type section map[string]string

// Read parses a GML document into a graph. The parser covers the subset this
// package writes: one graph block, flat node/edge blocks, quoted strings and
// plain numerics. Edges are applied after all nodes so block order inside the
// document does not matter.
func Read(r io.Reader) (*graph.Graph, error) {
	g := graph.New()

	var (
		current section
		kind    string
		edges   []section
		depth   int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		switch {
		case text == "graph [":
			depth++
		case text == "node [" || text == "edge [":
			if current != nil {
				return nil, fmt.Errorf("gml: line %d: nested block", line)
			}
			kind = strings.Fields(text)[0]
			current = make(section)
			depth++
		case text == "]":
			depth--
			if current == nil {
				continue // closes the graph block
			}
			if kind == "node" {
				if err := addNode(g, current); err != nil {
					return nil, fmt.Errorf("gml: line %d: %w", line, err)
				}
			} else {
				edges = append(edges, current)
			}
			current = nil
		default:
			key, value, ok := splitKeyValue(text)
			if !ok {
				return nil, fmt.Errorf("gml: line %d: cannot parse %q", line, text)
			}
			if current != nil {
				current[key] = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if depth != 0 {
		return nil, fmt.Errorf("gml: unbalanced brackets")
	}

	for _, e := range edges {
		if err := addEdge(g, e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func addNode(g *graph.Graph, s section) error {
	id, err := strconv.ParseInt(s["id"], 10, 64)
	if err != nil {
		return fmt.Errorf("node id %q: %w", s["id"], err)
	}

	a := &graph.Airport{
		ID:      graph.NodeID(id),
		Name:    s["name"],
		City:    s["city"],
		Country: s["country"],
		IATA:    s["iata"],
		ICAO:    s["icao"],
	}
	if a.Name == "" {
		a.Name = s["label"]
	}
	if v, ok := s["latitude"]; ok {
		if a.Latitude, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("node %d latitude: %w", id, err)
		}
	}
	if v, ok := s["longitude"]; ok {
		if a.Longitude, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("node %d longitude: %w", id, err)
		}
	}

	g.AddAirport(a)
	return nil
}

func addEdge(g *graph.Graph, s section) error {
	source, err := strconv.ParseInt(s["source"], 10, 64)
	if err != nil {
		return fmt.Errorf("gml: edge source %q: %w", s["source"], err)
	}
	target, err := strconv.ParseInt(s["target"], 10, 64)
	if err != nil {
		return fmt.Errorf("gml: edge target %q: %w", s["target"], err)
	}

	distance := 0.0
	for _, key := range []string{"distance", "weight"} {
		if v, ok := s[key]; ok {
			if distance, err = strconv.ParseFloat(v, 64); err != nil {
				return fmt.Errorf("gml: edge %d-%d %s: %w", source, target, key, err)
			}
			break
		}
	}

	return g.AddRoute(graph.NodeID(source), graph.NodeID(target), distance)
}

// splitKeyValue breaks "key value" where value is either a quoted string or
// a bare token.
func splitKeyValue(text string) (string, string, bool) {
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return "", "", false
	}
	key := text[:i]
	value := strings.TrimSpace(text[i+1:])
	if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
		value = value[1 : len(value)-1]
		value = strings.ReplaceAll(value, "&quot;", `"`)
		value = strings.ReplaceAll(value, "&amp;", "&")
	}
	return key, value, true
}

// Package gml serializes the airport graph in GML, the interchange format
// shared with external graph tooling. Files with the .sz suffix are
// block-compressed with snappy.
package gml

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"

	"github.com/skyroutes/airnet/pkg/graph"
)

// CompressedSuffix marks snappy-compressed GML files.
const CompressedSuffix = ".sz"

// WriteFile serializes the graph to path. A .sz suffix selects snappy block
// compression of the whole document.
func WriteFile(path string, g *graph.Graph) error {
	var buf strings.Builder
	if err := Write(&buf, g); err != nil {
		return err
	}

	data := []byte(buf.String())
	if filepath.Ext(path) == CompressedSuffix {
		data = snappy.Encode(nil, data)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile parses a GML file written by WriteFile, transparently
// decompressing .sz files.
func ReadFile(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == CompressedSuffix {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}
	return Read(strings.NewReader(string(data)))
}

// Write serializes the graph as a GML document. Nodes and edges come out in
// canonical (ascending id) order so identical graphs produce identical bytes.
func Write(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "graph [")
	fmt.Fprintln(bw, "  directed 0")

	for _, id := range g.NodeIDs() {
		a, err := g.Airport(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(bw, "  node [")
		fmt.Fprintf(bw, "    id %d\n", a.ID)
		fmt.Fprintf(bw, "    label %s\n", quote(nodeLabel(a)))
		fmt.Fprintf(bw, "    name %s\n", quote(a.Name))
		fmt.Fprintf(bw, "    city %s\n", quote(a.City))
		fmt.Fprintf(bw, "    country %s\n", quote(a.Country))
		fmt.Fprintf(bw, "    iata %s\n", quote(a.IATA))
		fmt.Fprintf(bw, "    icao %s\n", quote(a.ICAO))
		fmt.Fprintf(bw, "    latitude %g\n", a.Latitude)
		fmt.Fprintf(bw, "    longitude %g\n", a.Longitude)
		fmt.Fprintln(bw, "  ]")
	}

	for _, r := range g.Routes() {
		fmt.Fprintln(bw, "  edge [")
		fmt.Fprintf(bw, "    source %d\n", r.From)
		fmt.Fprintf(bw, "    target %d\n", r.To)
		fmt.Fprintf(bw, "    distance %g\n", r.DistanceKm)
		fmt.Fprintln(bw, "  ]")
	}

	fmt.Fprintln(bw, "]")
	return bw.Flush()
}

func nodeLabel(a *graph.Airport) string {
	if a.IATA != "" {
		return a.IATA
	}
	return a.Name
}

// quote wraps a value in double quotes, escaping with the ISO 8859-1 entities
// GML uses so embedded quotes survive a round trip.
func quote(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return `"` + s + `"`
}

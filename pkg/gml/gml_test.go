package gml

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyroutes/airnet/pkg/graph"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.AddAirport(&graph.Airport{
		ID: 1, Name: "Lester B. Pearson", City: "Toronto", Country: "Canada",
		IATA: "YYZ", ICAO: "CYYZ", Latitude: 43.6772, Longitude: -79.6306,
	})
	g.AddAirport(&graph.Airport{
		ID: 2, Name: "Heathrow", City: "London", Country: "United Kingdom",
		IATA: "LHR", ICAO: "EGLL", Latitude: 51.4706, Longitude: -0.461941,
	})
	g.AddAirport(&graph.Airport{ID: 3, Name: "No Code Field"})
	require.NoError(t, g.AddRoute(1, 2, 5711.2))
	require.NoError(t, g.AddRoute(2, 3, 120.5))
	return g
}

func assertSameGraph(t *testing.T, want, got *graph.Graph) {
	t.Helper()
	assert.Equal(t, want.NodeCount(), got.NodeCount())
	assert.Equal(t, want.EdgeCount(), got.EdgeCount())
	for _, id := range want.NodeIDs() {
		wa, err := want.Airport(id)
		require.NoError(t, err)
		ga, err := got.Airport(id)
		require.NoError(t, err)
		assert.Equal(t, *wa, *ga)
	}
	for _, r := range want.Routes() {
		d, ok := got.EdgeDistance(r.From, r.To)
		require.True(t, ok)
		assert.InDelta(t, r.DistanceKm, d, 1e-9)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	want := sampleGraph(t)

	var buf strings.Builder
	require.NoError(t, Write(&buf, want))

	got, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assertSameGraph(t, want, got)
}

func TestWriteRead_PreservesEmbeddedQuotes(t *testing.T) {
	want := graph.New()
	want.AddAirport(&graph.Airport{
		ID: 1, Name: `Chicago O'Hare "ORD" & Co`, City: `Chi "Town"`,
		Country: "United States", IATA: "ORD",
	})
	want.AddAirport(&graph.Airport{ID: 2, Name: "Midway", Country: "United States"})
	require.NoError(t, want.AddRoute(1, 2, 25))

	var buf strings.Builder
	require.NoError(t, Write(&buf, want))

	got, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)

	a, err := got.Airport(1)
	require.NoError(t, err)
	assert.Equal(t, `Chicago O'Hare "ORD" & Co`, a.Name)
	assert.Equal(t, `Chi "Town"`, a.City)
}

func TestWrite_Deterministic(t *testing.T) {
	g := sampleGraph(t)

	var first, second strings.Builder
	require.NoError(t, Write(&first, g))
	require.NoError(t, Write(&second, g))

	assert.Equal(t, first.String(), second.String())
}

func TestReadFile_SnappyRoundTrip(t *testing.T) {
	want := sampleGraph(t)
	path := filepath.Join(t.TempDir(), "network.gml.sz")

	require.NoError(t, WriteFile(path, want))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assertSameGraph(t, want, got)
}

func TestReadFile_PlainRoundTrip(t *testing.T) {
	want := sampleGraph(t)
	path := filepath.Join(t.TempDir(), "network.gml")

	require.NoError(t, WriteFile(path, want))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assertSameGraph(t, want, got)
}

func TestRead_WeightKeyAndEdgeFirstOrder(t *testing.T) {
	doc := `graph [
  directed 0
  edge [
    source 1
    target 2
    weight 42.5
  ]
  node [
    id 1
    label "A"
  ]
  node [
    id 2
    label "B"
  ]
]
`
	g, err := Read(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 2, g.NodeCount())
	d, ok := g.EdgeDistance(1, 2)
	require.True(t, ok)
	assert.Equal(t, 42.5, d)
}

func TestRead_Malformed(t *testing.T) {
	_, err := Read(strings.NewReader("graph [\n  node [\n    id nope\n  ]\n]"))
	assert.Error(t, err)

	_, err = Read(strings.NewReader("graph [\n  node [\n"))
	assert.Error(t, err)
}

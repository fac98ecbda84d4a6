package openflights

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/skyroutes/airnet/pkg/graph"
	"github.com/skyroutes/airnet/pkg/logging"
	"github.com/skyroutes/airnet/pkg/metrics"
)

// Loader reads OpenFlights airports.dat and routes.dat into a graph. Bad rows
// are dropped with a counted reason and the load continues; only I/O failures
// are fatal.
type Loader struct {
	logger   logging.Logger
	registry *metrics.Registry
	validate *validator.Validate
}

// NewLoader wires logging and metrics; both may be nil.
func NewLoader(logger logging.Logger, registry *metrics.Registry) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{
		logger:   logger.With(logging.Component("openflights")),
		registry: registry,
		validate: validator.New(),
	}
}

// Load builds the undirected route graph from the two data files. Routes
// referencing unknown airports are dropped; route multiplicity (airlines,
// codeshares) collapses into a single edge weighted by great-circle distance.
func (l *Loader) Load(airportsPath, routesPath string) (*graph.Graph, *LoadStats, error) {
	g := graph.New()
	stats := newLoadStats()

	if err := l.loadFile(airportsPath, func(r io.Reader) error {
		return l.LoadAirports(r, g, stats)
	}); err != nil {
		return nil, nil, err
	}

	if err := l.loadFile(routesPath, func(r io.Reader) error {
		return l.LoadRoutes(r, g, stats)
	}); err != nil {
		return nil, nil, err
	}

	l.registry.SetGraphSize(g.NodeCount(), g.EdgeCount())
	l.logger.Info("load complete",
		logging.Int("airports", stats.AirportsLoaded),
		logging.Int("airports_dropped", stats.AirportsDropped),
		logging.Int("routes", stats.RoutesLoaded),
		logging.Int("routes_dropped", stats.RoutesDropped),
		logging.Int("edges", g.EdgeCount()))
	return g, stats, nil
}

func (l *Loader) loadFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}

// LoadAirports parses airports.dat records into graph nodes.
func (l *Loader) LoadAirports(r io.Reader, g *graph.Graph, stats *LoadStats) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			// Malformed quoting in one line; skip the record
			stats.AirportsDropped++
			stats.drop("malformed_csv")
			l.registry.RecordDroppedRow("airports", "malformed_csv")
			continue
		}

		row, reason := parseAirportRow(record)
		if reason == "" {
			if err := l.validate.Struct(row); err != nil {
				reason = "validation"
			}
		}
		if reason != "" {
			stats.AirportsDropped++
			stats.drop(reason)
			l.registry.RecordDroppedRow("airports", reason)
			continue
		}

		g.AddAirport(&graph.Airport{
			ID:        graph.NodeID(row.ID),
			Name:      row.Name,
			City:      row.City,
			Country:   row.Country,
			IATA:      row.IATA,
			ICAO:      row.ICAO,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
		})
		stats.AirportsLoaded++
	}
}

// LoadRoutes parses routes.dat records into undirected edges. Both endpoints
// must already exist as airports.
func (l *Loader) LoadRoutes(r io.Reader, g *graph.Graph, stats *LoadStats) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			stats.RoutesDropped++
			stats.drop("malformed_csv")
			l.registry.RecordDroppedRow("routes", "malformed_csv")
			continue
		}

		row, reason := parseRouteRow(record)
		if reason == "" {
			if err := l.validate.Struct(row); err != nil {
				reason = "validation"
			}
		}
		if reason == "" {
			reason = routeDropReason(g, row)
		}
		if reason != "" {
			stats.RoutesDropped++
			stats.drop(reason)
			l.registry.RecordDroppedRow("routes", reason)
			continue
		}

		from, _ := g.Airport(graph.NodeID(row.SourceID))
		to, _ := g.Airport(graph.NodeID(row.DestID))
		distance := HaversineKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
		if err := g.AddRoute(from.ID, to.ID, distance); err != nil {
			stats.RoutesDropped++
			stats.drop("rejected_edge")
			l.registry.RecordDroppedRow("routes", "rejected_edge")
			continue
		}
		stats.RoutesLoaded++
	}
}

func routeDropReason(g *graph.Graph, row RouteRow) string {
	if row.SourceID == row.DestID {
		return "self_loop"
	}
	if !g.HasNode(graph.NodeID(row.SourceID)) || !g.HasNode(graph.NodeID(row.DestID)) {
		return "unknown_airport"
	}
	return ""
}

func parseAirportRow(record []string) (AirportRow, string) {
	if len(record) < airportFieldsMin {
		return AirportRow{}, "short_record"
	}

	id, err := strconv.ParseInt(field(record, 0), 10, 64)
	if err != nil {
		return AirportRow{}, "bad_id"
	}
	lat, err := strconv.ParseFloat(field(record, 6), 64)
	if err != nil {
		return AirportRow{}, "bad_coordinates"
	}
	lon, err := strconv.ParseFloat(field(record, 7), 64)
	if err != nil {
		return AirportRow{}, "bad_coordinates"
	}

	return AirportRow{
		ID:        id,
		Name:      field(record, 1),
		City:      field(record, 2),
		Country:   field(record, 3),
		IATA:      field(record, 4),
		ICAO:      field(record, 5),
		Latitude:  lat,
		Longitude: lon,
	}, ""
}

func parseRouteRow(record []string) (RouteRow, string) {
	if len(record) < routeFieldsMin {
		return RouteRow{}, "short_record"
	}

	source, err := strconv.ParseInt(field(record, 3), 10, 64)
	if err != nil {
		return RouteRow{}, "bad_airport_id"
	}
	dest, err := strconv.ParseInt(field(record, 5), 10, 64)
	if err != nil {
		return RouteRow{}, "bad_airport_id"
	}

	stops := 0
	if len(record) > 7 {
		if s, err := strconv.Atoi(field(record, 7)); err == nil {
			stops = s
		}
	}

	return RouteRow{SourceID: source, DestID: dest, Stops: stops}, ""
}

// field returns a record column with the OpenFlights null token normalized to
// the empty string.
func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	if record[i] == nullToken {
		return ""
	}
	return record[i]
}

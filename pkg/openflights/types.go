package openflights

// OpenFlights data files are headerless CSV. The \N token marks a null field.
//
// airports.dat: id, name, city, country, iata, icao, latitude, longitude,
// altitude, timezone, dst, tz, type, source
//
// routes.dat: airline, airline_id, source_airport, source_airport_id,
// dest_airport, dest_airport_id, codeshare, stops, equipment

const (
	nullToken        = "\\N"
	airportFieldsMin = 8
	routeFieldsMin   = 6
)

// AirportRow is one parsed airports.dat record. Validation rejects rows with
// out-of-range coordinates or missing identity fields; such rows are dropped,
// never fatal.
type AirportRow struct {
	ID        int64   `validate:"gt=0"`
	Name      string  `validate:"required"`
	City      string  `validate:"-"`
	Country   string  `validate:"required"`
	IATA      string  `validate:"omitempty,len=3"`
	ICAO      string  `validate:"omitempty,len=4"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

// RouteRow is one parsed routes.dat record, reduced to the endpoint airport
// IDs. Codeshare duplicates collapse in the graph since edges are a set.
type RouteRow struct {
	SourceID int64 `validate:"gt=0"`
	DestID   int64 `validate:"gt=0"`
	Stops    int   `validate:"gte=0"`
}

// LoadStats summarizes a load: how many rows survived and why the rest were
// dropped. Reasons double as the label values on the dropped-row counter.
type LoadStats struct {
	AirportsLoaded  int
	AirportsDropped int
	RoutesLoaded    int
	RoutesDropped   int
	DropReasons     map[string]int
}

func newLoadStats() *LoadStats {
	return &LoadStats{DropReasons: make(map[string]int)}
}

func (s *LoadStats) drop(reason string) {
	s.DropReasons[reason]++
}

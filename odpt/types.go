package odpt

// Departure is one timetable slot: the scheduled departure time at the
// queried station and the opaque train identifier. Time strings may use
// hours ≥ 24 for post-midnight continuation of the service day.
type Departure struct {
	DepartureTime string `json:"odpt:departureTime"`
	Train         string `json:"odpt:train"`
}

// StationTimetable is one block of the StationTimetable response. The
// API returns an array of these per (station, calendar, direction)
// query.
type StationTimetable struct {
	Station       string      `json:"odpt:station"`
	Railway       string      `json:"odpt:railway"`
	Calendar      string      `json:"odpt:calendar"`
	RailDirection string      `json:"odpt:railDirection"`
	Departures    []Departure `json:"odpt:stationTimetableObject"`
}

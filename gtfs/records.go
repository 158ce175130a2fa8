package gtfs

// Translation is one row of translations.txt. Only rows for the target
// language ("en") participate in station name translation.
type Translation struct {
	Language    string `csv:"language"`
	FieldValue  string `csv:"field_value"`
	Translation string `csv:"translation"`
}

// Stop is one row of stops.txt
type Stop struct {
	Name string `csv:"stop_name"`
	ID   string `csv:"stop_id"`
}

// StopTime is one row of stop_times.txt. Time strings follow the GTFS
// service-day convention: hours may exceed 23 to denote post-midnight
// continuation of the previous day's schedule (e.g. "24:25:00").
type StopTime struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
}

package gtfs

import "fmt"

// DatasetMissingError indicates a required dataset file is absent.
// The schedule store must load successfully before the service starts,
// so this is fatal at startup.
type DatasetMissingError struct {
	Path string
}

func (e *DatasetMissingError) Error() string {
	return fmt.Sprintf("dataset file missing: %s", e.Path)
}

// DatasetCorruptError indicates a dataset file lacks a required column.
type DatasetCorruptError struct {
	File   string
	Column string
}

func (e *DatasetCorruptError) Error() string {
	return fmt.Sprintf("dataset file %s missing required column %q", e.File, e.Column)
}

// UnknownStationNameError indicates a station name with no entry in the
// loaded dataset. This is a caller configuration error, not a transient
// condition.
type UnknownStationNameError string

func (e UnknownStationNameError) Error() string {
	return fmt.Sprintf("unknown station name: %q", string(e))
}

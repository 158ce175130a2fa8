package estimator

import "fmt"

// NoCandidateError indicates the live timetable contained no departure
// with a parseable time string.
type NoCandidateError struct{}

func (e *NoCandidateError) Error() string {
	return "no train with a parseable departure time in the live timetable"
}

// NoMatchingTripError indicates the resolved train could not be matched
// to any row of the static stop-time table. Usually a dataset/API
// version mismatch.
type NoMatchingTripError struct {
	Suffix string
	Times  []string
}

func (e *NoMatchingTripError) Error() string {
	return fmt.Sprintf("no static trip with suffix %q departing at any of %v", e.Suffix, e.Times)
}

// DestinationNotOnTripError indicates the matched trip has no scheduled
// stop at the destination.
type DestinationNotOnTripError struct {
	TripID string
	StopID string
}

func (e *DestinationNotOnTripError) Error() string {
	return fmt.Sprintf("trip %s has no scheduled stop %s", e.TripID, e.StopID)
}

package estimator

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// CrossReference maps a resolved live train onto the static stop-time
// table and returns the destination's scheduled arrival time.
//
// Live train identifiers only disclose a short trailing fragment of the
// static trip_id, so the table is filtered by trailing-suffix match.
// The departure time comparison is a string prefix match (static rows
// carry seconds, the live API does not) against the winning string and
// its midnight-rollover dual: the live API and the static table may
// disagree on whether a time just past midnight is written "00:xx" or
// "24:xx", and both spellings must match either way.
func CrossReference(schedule Schedule, trainID, departureTime, originStopID, destStopID string) (string, error) {
	suffix := tripSuffix(trainID)
	accept := acceptableTimes(departureTime)

	var tripIDs []string
	seen := make(map[string]bool)
	for _, row := range schedule.StopTimesForSuffix(suffix) {
		if row.StopID != originStopID {
			continue
		}
		if !hasAnyPrefix(row.DepartureTime, accept) {
			continue
		}
		if !seen[row.TripID] {
			seen[row.TripID] = true
			tripIDs = append(tripIDs, row.TripID)
		}
	}

	if len(tripIDs) == 0 {
		return "", &NoMatchingTripError{Suffix: suffix, Times: accept}
	}
	if len(tripIDs) > 1 {
		// Trip id suffixes recur across service days, so multiple
		// matches are a known ambiguity. First by table order wins.
		log.Warn().
			Strs("trip_ids", tripIDs).
			Str("suffix", suffix).
			Msg("multiple trips matched, using the first")
	}
	tripID := tripIDs[0]

	arrivalTime, ok := schedule.ArrivalAt(tripID, destStopID)
	if !ok {
		return "", &DestinationNotOnTripError{TripID: tripID, StopID: destStopID}
	}
	return arrivalTime, nil
}

// tripSuffix extracts the trailing fragment of a live train identifier,
// the portion after the last separator.
func tripSuffix(trainID string) string {
	if i := strings.LastIndex(trainID, "."); i >= 0 {
		return trainID[i+1:]
	}
	return trainID
}

// acceptableTimes returns the winning departure-time string plus its
// midnight-rollover dual ("00:" prefix ↔ "24:" prefix).
func acceptableTimes(departureTime string) []string {
	times := []string{departureTime}
	switch {
	case strings.HasPrefix(departureTime, "00:"):
		times = append(times, "24:"+departureTime[3:])
	case strings.HasPrefix(departureTime, "24:"):
		times = append(times, "00:"+departureTime[3:])
	}
	return times
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

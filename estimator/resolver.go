package estimator

import (
	"strconv"
	"strings"
	"time"

	"github.com/YutaHarimoto2025/auto-line-arrival-message/odpt"
)

// NearestDeparture scans every departure in the timetable blocks and
// returns the one scheduled closest to now, together with its raw
// departure-time string.
//
// Each well-formed time is placed on now's calendar date (hours ≥ 24
// land on the next date, as post-midnight continuation of the service
// day) and then also tried shifted by ±1 day, to defend against
// service-day boundary ambiguity around midnight. The global minimum of
// the absolute distance across all departures and all three shifts wins;
// ties keep the first-seen entry.
//
// Past departures are deliberately not filtered out: the caller is
// physically at the station, so the nearest scheduled slot in either
// direction identifies the train they are boarding.
func NearestDeparture(timetables []odpt.StationTimetable, now time.Time) (departureTime, trainID string, err error) {
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var minDiff time.Duration
	found := false
	for _, tt := range timetables {
		for _, dep := range tt.Departures {
			if dep.DepartureTime == "" {
				continue
			}
			hour, minute, ok := parseHourMinute(dep.DepartureTime)
			if !ok {
				continue
			}

			scheduled := base
			if hour >= 24 {
				scheduled = scheduled.AddDate(0, 0, 1).
					Add(time.Duration(hour-24)*time.Hour + time.Duration(minute)*time.Minute)
			} else {
				scheduled = scheduled.
					Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
			}

			for _, shift := range []int{0, -1, 1} {
				diff := scheduled.AddDate(0, 0, shift).Sub(now)
				if diff < 0 {
					diff = -diff
				}
				if !found || diff < minDiff {
					found = true
					minDiff = diff
					departureTime = dep.DepartureTime
					trainID = dep.Train
				}
			}
		}
	}

	if !found || trainID == "" {
		return "", "", &NoCandidateError{}
	}
	return departureTime, trainID, nil
}

// parseHourMinute accepts "HH:MM" or "HH:MM:SS" with hours 00–29.
func parseHourMinute(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

package estimator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/YutaHarimoto2025/auto-line-arrival-message/calendar"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/config"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/gtfs"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/odpt"
)

// Schedule is the static dataset view the estimator needs. *gtfs.Store
// satisfies it.
type Schedule interface {
	Translate(localName string) (string, error)
	StopID(localName string) (string, error)
	StopTimesForSuffix(suffix string) []gtfs.StopTime
	ArrivalAt(tripID, stopID string) (string, bool)
}

// Timetable is the live departures source. *odpt.Client satisfies it.
type Timetable interface {
	StationCode(fragment string) string
	FetchStationTimetable(ctx context.Context, station string, cal calendar.Type, direction string) ([]odpt.StationTimetable, error)
}

// Arrival is a fully resolved estimation. Time keeps the dataset's
// service-day notation (e.g. "24:25:00").
type Arrival struct {
	Time    string
	Station string
}

// Estimator resolves which train the tracked person is boarding at the
// origin station and when it reaches the destination. Safe for
// concurrent use; it holds no mutable state.
type Estimator struct {
	schedule    Schedule
	timetable   Timetable
	origin      string
	destination string
	direction   string
	now         func() time.Time
}

func New(schedule Schedule, timetable Timetable, stations config.StationsConfig, direction string) *Estimator {
	return &Estimator{
		schedule:    schedule,
		timetable:   timetable,
		origin:      stations.Origin,
		destination: stations.Destination,
		direction:   direction,
		now:         func() time.Time { return time.Now().In(calendar.JST) },
	}
}

// Estimate runs the full pipeline: calendar classification, live
// timetable fetch, nearest-train resolution and static cross-reference.
// It either fully succeeds with both fields populated or fails; no
// partial results.
func (e *Estimator) Estimate(ctx context.Context) (Arrival, error) {
	now := e.now()
	cal := calendar.Classify(now)

	originFragment, err := e.schedule.Translate(e.origin)
	if err != nil {
		return Arrival{}, err
	}
	station := e.timetable.StationCode(originFragment)

	timetables, err := e.timetable.FetchStationTimetable(ctx, station, cal, e.direction)
	if err != nil {
		return Arrival{}, err
	}

	departureTime, trainID, err := NearestDeparture(timetables, now)
	if err != nil {
		return Arrival{}, fmt.Errorf("station %s (%s) at %s: %w",
			e.origin, string(cal), now.Format(time.RFC3339), err)
	}
	log.Info().
		Str("train", trainID).
		Str("departure", departureTime).
		Str("station", e.origin).
		Msg("nearest train resolved")

	originStopID, err := e.schedule.StopID(e.origin)
	if err != nil {
		return Arrival{}, err
	}
	destStopID, err := e.schedule.StopID(e.destination)
	if err != nil {
		return Arrival{}, err
	}

	arrivalTime, err := CrossReference(e.schedule, trainID, departureTime, originStopID, destStopID)
	if err != nil {
		return Arrival{}, fmt.Errorf("train %s from %s: %w", trainID, e.origin, err)
	}
	return Arrival{Time: arrivalTime, Station: e.destination}, nil
}

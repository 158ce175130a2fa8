// Package calendar decides which schedule calendar applies to a date.
//
// Weekend days and Japanese public holidays use the SaturdayHoliday
// timetable; everything else uses the Weekday one.
package calendar

import (
	"time"

	holiday_jp "github.com/holiday-jp/holiday_jp-go"
)

// Type is a schedule calendar variant, named as the live timetable API
// names them.
type Type string

const (
	Weekday         Type = "Weekday"
	SaturdayHoliday Type = "SaturdayHoliday"
)

// JST is the single civil-time offset the whole service operates in.
var JST = time.FixedZone("JST", 9*60*60)

// Classify returns the calendar type for the date component of t,
// evaluated in JST. Pure function; no clock access.
func Classify(t time.Time) Type {
	t = t.In(JST)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return SaturdayHoliday
	}
	if holiday_jp.IsHoliday(t) {
		return SaturdayHoliday
	}
	return Weekday
}

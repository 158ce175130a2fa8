// Package odpt is a thin client for the ODPT real-time timetable API.
//
// Only the StationTimetable resource is queried. Responses are ephemeral
// and fetched per request; nothing in this package is cached or
// persisted.
package odpt

// Package tracking records a person's progress through the three
// physical checkpoints and decides when arrival estimation should fire.
//
// Progress is persisted per person in SQLite so the sequence survives
// process restarts; the state machine itself lives in Tracker and only
// the record storage is swappable.
package tracking

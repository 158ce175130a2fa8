package tracking

import (
	"time"

	"github.com/YutaHarimoto2025/auto-line-arrival-message/config"
)

// CStatus is the outcome of a station C checkpoint check.
type CStatus int

const (
	// CValid means a valid B record exists within the allowed window;
	// arrival estimation should run.
	CValid CStatus = iota
	// CTooSlow means a B record exists but too much time has passed.
	CTooSlow
	// CNoRecord means there is no valid B record at all, either because
	// B was never passed or because the A→B window was exceeded.
	CNoRecord
)

// Tracker drives the per-person checkpoint state machine:
// Idle → AtA → AtB → estimation. Station A always restarts the
// sequence; B and C are only accepted within their time windows.
type Tracker struct {
	storage Storage
	maxAToB time.Duration
	maxBToC time.Duration
}

func New(storage Storage, cfg config.TrackingConfig) *Tracker {
	return &Tracker{
		storage: storage,
		maxAToB: time.Duration(cfg.MaxAToBMinutes) * time.Minute,
		maxBToC: time.Duration(cfg.MaxBToCMinutes) * time.Minute,
	}
}

// RecordA records passing checkpoint A, discarding any earlier B
// progress.
func (t *Tracker) RecordA(person string, now time.Time) error {
	return t.storage.Save(person, Record{StationATime: &now})
}

// RecordB records passing checkpoint B. The pass only counts when A was
// recorded no more than the A→B window ago; otherwise the B time is
// cleared, which blocks the subsequent C checkpoint.
func (t *Tracker) RecordB(person string, now time.Time) (bool, error) {
	rec, err := t.storage.Load(person)
	if err != nil {
		return false, err
	}

	if rec.StationATime != nil && now.Sub(*rec.StationATime) <= t.maxAToB {
		rec.StationBTime = &now
		return true, t.storage.Save(person, rec)
	}
	rec.StationBTime = nil
	return false, t.storage.Save(person, rec)
}

// CheckC evaluates the C checkpoint against the B record. It does not
// reset anything; the caller resets after a successful estimation.
func (t *Tracker) CheckC(person string, now time.Time) (CStatus, error) {
	rec, err := t.storage.Load(person)
	if err != nil {
		return CNoRecord, err
	}
	if rec.StationBTime == nil {
		return CNoRecord, nil
	}
	if now.Sub(*rec.StationBTime) <= t.maxBToC {
		return CValid, nil
	}
	return CTooSlow, nil
}

// Reset returns the person to the idle state.
func (t *Tracker) Reset(person string) error {
	return t.storage.Save(person, Record{})
}

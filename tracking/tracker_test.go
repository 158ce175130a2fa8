package tracking

import (
	"testing"
	"time"

	"github.com/YutaHarimoto2025/auto-line-arrival-message/config"
)

// memStorage is an in-memory Storage for state machine tests.
type memStorage struct {
	records map[string]Record
}

func newMemStorage() *memStorage {
	return &memStorage{records: make(map[string]Record)}
}

func (m *memStorage) Load(person string) (Record, error) {
	return m.records[person], nil
}

func (m *memStorage) Save(person string, rec Record) error {
	m.records[person] = rec
	return nil
}

func newTestTracker() (*Tracker, *memStorage) {
	storage := newMemStorage()
	return New(storage, config.TrackingConfig{MaxAToBMinutes: 30, MaxBToCMinutes: 5}), storage
}

func TestValidSequence(t *testing.T) {
	tracker, _ := newTestTracker()
	start := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)

	if err := tracker.RecordA("alice", start); err != nil {
		t.Fatal(err)
	}
	ok, err := tracker.RecordB("alice", start.Add(10*time.Minute))
	if err != nil || !ok {
		t.Fatalf("RecordB = (%v, %v), want valid", ok, err)
	}
	status, err := tracker.CheckC("alice", start.Add(13*time.Minute))
	if err != nil || status != CValid {
		t.Fatalf("CheckC = (%v, %v), want CValid", status, err)
	}
}

func TestSlowAToBInvalidatesB(t *testing.T) {
	tracker, storage := newTestTracker()
	start := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)

	if err := tracker.RecordA("alice", start); err != nil {
		t.Fatal(err)
	}
	ok, err := tracker.RecordB("alice", start.Add(31*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("RecordB 31 minutes after A should be invalid")
	}
	if storage.records["alice"].StationBTime != nil {
		t.Error("invalid B pass should clear the stored B time")
	}

	// The next checkpoint must reject: there is no valid B record.
	status, err := tracker.CheckC("alice", start.Add(33*time.Minute))
	if err != nil || status != CNoRecord {
		t.Fatalf("CheckC = (%v, %v), want CNoRecord", status, err)
	}
}

func TestBWithoutA(t *testing.T) {
	tracker, _ := newTestTracker()
	now := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)

	ok, err := tracker.RecordB("alice", now)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("RecordB without a prior A should be invalid")
	}
}

func TestSlowBToC(t *testing.T) {
	tracker, _ := newTestTracker()
	start := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)

	if err := tracker.RecordA("alice", start); err != nil {
		t.Fatal(err)
	}
	if _, err := tracker.RecordB("alice", start.Add(10*time.Minute)); err != nil {
		t.Fatal(err)
	}

	status, err := tracker.CheckC("alice", start.Add(16*time.Minute))
	if err != nil || status != CTooSlow {
		t.Fatalf("CheckC = (%v, %v), want CTooSlow", status, err)
	}
}

func TestRecordARestartsSequence(t *testing.T) {
	tracker, storage := newTestTracker()
	start := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)

	if err := tracker.RecordA("alice", start); err != nil {
		t.Fatal(err)
	}
	if _, err := tracker.RecordB("alice", start.Add(10*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := tracker.RecordA("alice", start.Add(20*time.Minute)); err != nil {
		t.Fatal(err)
	}

	if storage.records["alice"].StationBTime != nil {
		t.Error("a fresh A pass should discard earlier B progress")
	}
}

func TestReset(t *testing.T) {
	tracker, storage := newTestTracker()
	start := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)

	if err := tracker.RecordA("alice", start); err != nil {
		t.Fatal(err)
	}
	if _, err := tracker.RecordB("alice", start.Add(10*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := tracker.Reset("alice"); err != nil {
		t.Fatal(err)
	}

	rec := storage.records["alice"]
	if rec.StationATime != nil || rec.StationBTime != nil {
		t.Errorf("record after reset = %+v", rec)
	}
}

func TestPersonsAreIndependent(t *testing.T) {
	tracker, _ := newTestTracker()
	start := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)

	if err := tracker.RecordA("alice", start); err != nil {
		t.Fatal(err)
	}
	ok, err := tracker.RecordB("bob", start.Add(5*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("bob has no A record, his B pass should be invalid")
	}
}

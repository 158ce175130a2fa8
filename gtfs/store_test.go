package gtfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const (
	translationsCSV = `language,field_value,translation
ja,柏の葉キャンパス,かしわのはキャンパス
en,柏の葉キャンパス,Kashiwanoha-campus
en,秋葉原,Akihabara
`
	stopsCSV = `stop_name,stop_id
柏の葉キャンパス,10
秋葉原,20
`
	stopTimesCSV = `trip_id,stop_id,arrival_time,departure_time
T-1234,10,24:09:30,24:10:00
T-1234,20,24:25:00,24:26:00
Z-555,10,08:00:00,08:01:00
`
)

func writeDataset(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"translations.txt": translationsCSV,
		"stops.txt":        stopsCSV,
		"stop_times.txt":   stopTimesCSV,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	writeDataset(t, dir)
	store, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store, dir
}

func TestTranslate(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Translate("柏の葉キャンパス")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Kashiwanoha-campus" {
		t.Errorf("Translate = %q, want Kashiwanoha-campus", got)
	}

	_, err = store.Translate("知らない駅")
	var unknown UnknownStationNameError
	if !errors.As(err, &unknown) {
		t.Fatalf("want UnknownStationNameError, got %v", err)
	}
}

func TestStopID(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.StopID("秋葉原")
	if err != nil {
		t.Fatalf("StopID: %v", err)
	}
	if got != "20" {
		t.Errorf("StopID = %q, want 20", got)
	}

	if name, ok := store.StopName("20"); !ok || name != "秋葉原" {
		t.Errorf("StopName(20) = (%q, %v)", name, ok)
	}
}

func TestStopTimesForSuffix(t *testing.T) {
	store, _ := newTestStore(t)

	rows := store.StopTimesForSuffix("1234")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Table order is preserved.
	if rows[0].StopID != "10" || rows[1].StopID != "20" {
		t.Errorf("rows out of table order: %+v", rows)
	}

	if rows := store.StopTimesForSuffix("0000"); len(rows) != 0 {
		t.Errorf("got %d rows for unmatched suffix, want 0", len(rows))
	}
}

func TestArrivalAt(t *testing.T) {
	store, _ := newTestStore(t)

	got, ok := store.ArrivalAt("T-1234", "20")
	if !ok || got != "24:25:00" {
		t.Errorf("ArrivalAt = (%q, %v), want (24:25:00, true)", got, ok)
	}
	if _, ok := store.ArrivalAt("T-1234", "99"); ok {
		t.Error("ArrivalAt for absent stop should report false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir)
	if err := os.Remove(filepath.Join(dir, "stop_times.txt")); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	var missing *DatasetMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("want DatasetMissingError, got %v", err)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir)
	broken := "trip_id,stop_id,arrival_time\nT-1,10,07:00:00\n"
	if err := os.WriteFile(filepath.Join(dir, "stop_times.txt"), []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	var corrupt *DatasetCorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("want DatasetCorruptError, got %v", err)
	}
	if corrupt.Column != "departure_time" {
		t.Errorf("column = %q, want departure_time", corrupt.Column)
	}
}

func TestReloadSwapsIndex(t *testing.T) {
	store, dir := newTestStore(t)

	updated := translationsCSV + "en,つくば,Tsukuba\n"
	if err := os.WriteFile(filepath.Join(dir, "translations.txt"), []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Translate("つくば"); err == nil {
		t.Fatal("new row visible before Reload")
	}
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got, err := store.Translate("つくば"); err != nil || got != "Tsukuba" {
		t.Errorf("Translate after reload = (%q, %v)", got, err)
	}
}

func TestReloadFailureKeepsOldIndex(t *testing.T) {
	store, dir := newTestStore(t)

	if err := os.Remove(filepath.Join(dir, "stops.txt")); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err == nil {
		t.Fatal("Reload should fail with a missing table")
	}

	// Old index still serves.
	if got, err := store.StopID("秋葉原"); err != nil || got != "20" {
		t.Errorf("StopID after failed reload = (%q, %v)", got, err)
	}
}

func TestStats(t *testing.T) {
	store, _ := newTestStore(t)
	stats := store.Stats()
	if stats.Translations != 2 || stats.Stops != 2 || stats.StopTimes != 3 {
		t.Errorf("Stats = %+v", stats)
	}
}

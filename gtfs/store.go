package gtfs

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

const (
	translationsFile = "translations.txt"
	stopsFile        = "stops.txt"
	stopTimesFile    = "stop_times.txt"
)

// translationLanguage selects which translations.txt rows feed the
// station-name → canonical-fragment mapping.
const translationLanguage = "en"

// index holds the loaded dataset. It is built once per (re)load and never
// mutated afterwards, so readers only need the pointer.
type index struct {
	nameToCanonical map[string]string
	stopIDByName    map[string]string
	stopNameByID    map[string]string
	stopTimes       []StopTime
	stopTimesByTrip map[string][]StopTime
}

// Store is the in-memory static schedule index. All lookups are served
// from memory; Reload swaps the whole index atomically so concurrent
// estimations either see the old or the new dataset, never a mix.
type Store struct {
	dir string

	mu  sync.RWMutex
	idx *index
}

// Load reads the three dataset tables from dir and builds the index.
func Load(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the dataset from disk and swaps the index. Intended to
// be called by the archive refresh job after a successful download.
func (s *Store) Reload() error {
	idx, err := loadIndex(s.dir)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()

	log.Info().
		Str("dir", s.dir).
		Int("translations", len(idx.nameToCanonical)).
		Int("stops", len(idx.stopIDByName)).
		Int("stop_times", len(idx.stopTimes)).
		Msg("schedule dataset loaded")
	return nil
}

// Translate resolves a local station name to the canonical fragment used
// to build live API station codes.
func (s *Store) Translate(localName string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fragment, ok := s.idx.nameToCanonical[localName]
	if !ok {
		return "", UnknownStationNameError(localName)
	}
	return fragment, nil
}

// StopID resolves a local station name to its dataset stop id.
func (s *Store) StopID(localName string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idx.stopIDByName[localName]
	if !ok {
		return "", UnknownStationNameError(localName)
	}
	return id, nil
}

// StopName resolves a stop id back to its local station name.
func (s *Store) StopName(stopID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.idx.stopNameByID[stopID]
	return name, ok
}

// StopTimesForSuffix returns, in table order, every stop-time row whose
// trip_id ends with the given suffix. Live train identifiers only
// disclose a short trailing fragment of the static trip_id, so this is a
// string suffix match rather than an exact lookup.
func (s *Store) StopTimesForSuffix(suffix string) []StopTime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []StopTime
	for _, st := range s.idx.stopTimes {
		if strings.HasSuffix(st.TripID, suffix) {
			rows = append(rows, st)
		}
	}
	return rows
}

// ArrivalAt returns the static arrival_time string for the given trip at
// the given stop.
func (s *Store) ArrivalAt(tripID, stopID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.idx.stopTimesByTrip[tripID] {
		if st.StopID == stopID {
			return st.ArrivalTime, true
		}
	}
	return "", false
}

// Stats reports table sizes for the health endpoint.
type Stats struct {
	Translations int `json:"translations"`
	Stops        int `json:"stops"`
	StopTimes    int `json:"stop_times"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Translations: len(s.idx.nameToCanonical),
		Stops:        len(s.idx.stopIDByName),
		StopTimes:    len(s.idx.stopTimes),
	}
}

func loadIndex(dir string) (*index, error) {
	var translations []Translation
	if err := readTable(dir, translationsFile, []string{"language", "field_value", "translation"}, &translations); err != nil {
		return nil, err
	}
	var stops []Stop
	if err := readTable(dir, stopsFile, []string{"stop_name", "stop_id"}, &stops); err != nil {
		return nil, err
	}
	var stopTimes []StopTime
	if err := readTable(dir, stopTimesFile, []string{"trip_id", "stop_id", "arrival_time", "departure_time"}, &stopTimes); err != nil {
		return nil, err
	}

	idx := &index{
		nameToCanonical: make(map[string]string),
		stopIDByName:    make(map[string]string, len(stops)),
		stopNameByID:    make(map[string]string, len(stops)),
		stopTimes:       stopTimes,
		stopTimesByTrip: make(map[string][]StopTime),
	}
	for _, tr := range translations {
		if tr.Language == translationLanguage {
			idx.nameToCanonical[tr.FieldValue] = tr.Translation
		}
	}
	for _, stop := range stops {
		idx.stopIDByName[stop.Name] = stop.ID
		idx.stopNameByID[stop.ID] = stop.Name
	}
	for _, st := range stopTimes {
		idx.stopTimesByTrip[st.TripID] = append(idx.stopTimesByTrip[st.TripID], st)
	}
	return idx, nil
}

// readTable loads one CSV table, verifying the required columns exist
// before handing the bytes to gocsv.
func readTable(dir, file string, required []string, out any) error {
	path := filepath.Join(dir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &DatasetMissingError{Path: path}
		}
		return err
	}

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &DatasetCorruptError{File: file, Column: required[0]}
		}
		return err
	}
	for _, col := range required {
		found := false
		for _, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				found = true
				break
			}
		}
		if !found {
			return &DatasetCorruptError{File: file, Column: col}
		}
	}

	// Tolerate records with missing trailing columns, as real feeds
	// occasionally ship them.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})
	return gocsv.UnmarshalBytes(data, out)
}

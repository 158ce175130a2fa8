package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tracking (
	person         TEXT PRIMARY KEY,
	station_a_time TEXT,
	station_b_time TEXT
);`

// Record is one person's checkpoint progress. Nil means the checkpoint
// has not been (validly) passed.
type Record struct {
	StationATime *time.Time
	StationBTime *time.Time
}

// Storage persists per-person checkpoint records. The SQLite Store
// implements it; tests substitute an in-memory fake.
type Storage interface {
	Load(person string) (Record, error)
	Save(person string, rec Record) error
}

// Store is the SQLite-backed Storage. SQLite supports one writer at a
// time, so writes are serialized through a single connection plus a
// mutex.
type Store struct {
	db      *sql.DB
	writeMu sync.Mutex
}

// OpenStore opens (creating if needed) the tracking database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open tracking db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping tracking db: %w", err)
	}
	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure tracking schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored record for person, or an empty record for a
// person never seen before.
func (s *Store) Load(person string) (Record, error) {
	var a, b sql.NullString
	err := s.db.QueryRow(
		"SELECT station_a_time, station_b_time FROM tracking WHERE person = ?", person,
	).Scan(&a, &b)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("load tracking record: %w", err)
	}

	rec := Record{}
	if rec.StationATime, err = parseNullTime(a); err != nil {
		return Record{}, err
	}
	if rec.StationBTime, err = parseNullTime(b); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Save upserts the record for person.
func (s *Store) Save(person string, rec Record) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO tracking (person, station_a_time, station_b_time)
		VALUES (?, ?, ?)
		ON CONFLICT (person)
		DO UPDATE SET
			station_a_time = excluded.station_a_time,
			station_b_time = excluded.station_b_time`,
		person, formatNullTime(rec.StationATime), formatNullTime(rec.StationBTime),
	)
	if err != nil {
		return fmt.Errorf("save tracking record: %w", err)
	}
	return nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil, fmt.Errorf("parse tracking timestamp %q: %w", v.String, err)
	}
	return &t, nil
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

package mapstore

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	_ "embed"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/spline-slam/core/internal/splinemap"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps a SQLite-backed table of splinemap.MapSnapshot blobs.
type Store struct {
	db *sql.DB
}

// Open creates or attaches to a SQLite database at path and ensures the
// map_snapshot table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("mapstore: open %q: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("mapstore: apply %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("mapstore: init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save gzip+gob encodes the snapshot's control buffer and inserts a new row,
// returning the generated snapshot ID.
func (s *Store) Save(snap splinemap.MapSnapshot) (string, error) {
	blob, err := encodeCtrl(snap.Ctrl)
	if err != nil {
		return "", fmt.Errorf("mapstore: encode ctrl: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO map_snapshot (id, gx, gy, origin_x, origin_y, knot_space, ctrl_blob, created_unix_nanos)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, snap.Gx, snap.Gy, snap.OriginX, snap.OriginY, snap.KnotSpace, blob, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("mapstore: insert snapshot: %w", err)
	}
	return id, nil
}

// Load retrieves a snapshot by ID.
func (s *Store) Load(id string) (splinemap.MapSnapshot, error) {
	var snap splinemap.MapSnapshot
	var blob []byte
	row := s.db.QueryRow(
		`SELECT gx, gy, origin_x, origin_y, knot_space, ctrl_blob FROM map_snapshot WHERE id = ?`, id)
	if err := row.Scan(&snap.Gx, &snap.Gy, &snap.OriginX, &snap.OriginY, &snap.KnotSpace, &blob); err != nil {
		if err == sql.ErrNoRows {
			return snap, fmt.Errorf("mapstore: no snapshot with id %q", id)
		}
		return snap, fmt.Errorf("mapstore: load snapshot %q: %w", id, err)
	}

	ctrl, err := decodeCtrl(blob)
	if err != nil {
		return snap, fmt.Errorf("mapstore: decode ctrl: %w", err)
	}
	snap.Ctrl = ctrl
	return snap, nil
}

// Latest returns the most recently saved snapshot ID, or an error if the
// store is empty.
func (s *Store) Latest() (string, error) {
	var id string
	row := s.db.QueryRow(`SELECT id FROM map_snapshot ORDER BY created_unix_nanos DESC LIMIT 1`)
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("mapstore: store is empty")
		}
		return "", fmt.Errorf("mapstore: query latest snapshot: %w", err)
	}
	return id, nil
}

func encodeCtrl(ctrl []float64) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(ctrl); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeCtrl(blob []byte) ([]float64, error) {
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	var ctrl []float64
	if err := gob.NewDecoder(gz).Decode(&ctrl); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// Package sqlite persists index snapshots in a single SQLite file so
// startup can skip re-embedding the document set.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS snapshot_meta (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	model_name TEXT    NOT NULL,
	dimensions INTEGER NOT NULL,
	built_at   TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshot_documents (
	position INTEGER PRIMARY KEY,
	doc_id   TEXT NOT NULL,
	player   TEXT NOT NULL,
	category TEXT NOT NULL,
	body     TEXT NOT NULL,
	vector   BLOB NOT NULL
);
`

// Store is a SQLite-backed snapshot store. It holds at most one snapshot;
// Save replaces the previous one atomically.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the snapshot database at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save replaces any existing snapshot with the given one. The swap runs in
// one transaction, so a crashed save leaves the previous snapshot intact.
func (s *Store) Save(ctx context.Context, snap *driven.IndexSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_meta`); err != nil {
		return fmt.Errorf("clearing snapshot meta: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_documents`); err != nil {
		return fmt.Errorf("clearing snapshot documents: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (id, model_name, dimensions, built_at) VALUES (1, ?, ?, ?)`,
		snap.ModelName, snap.Dimensions, snap.BuiltAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing snapshot meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_documents (position, doc_id, player, category, body, vector) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer stmt.Close()

	for i, doc := range snap.Documents {
		if _, err := stmt.ExecContext(ctx, i, doc.ID, doc.Player, string(doc.Category), doc.Text, encodeVector(snap.Vectors[i])); err != nil {
			return fmt.Errorf("writing document %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or domain.ErrNotFound when none has
// been saved.
func (s *Store) Load(ctx context.Context) (*driven.IndexSnapshot, error) {
	var (
		modelName  string
		dimensions int
		builtAtRaw string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT model_name, dimensions, built_at FROM snapshot_meta WHERE id = 1`,
	).Scan(&modelName, &dimensions, &builtAtRaw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no snapshot saved", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot meta: %w", err)
	}

	builtAt, err := time.Parse(time.RFC3339Nano, builtAtRaw)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot timestamp: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, player, category, body, vector FROM snapshot_documents ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot documents: %w", err)
	}
	defer rows.Close()

	snap := &driven.IndexSnapshot{
		ModelName:  modelName,
		Dimensions: dimensions,
		BuiltAt:    builtAt,
	}
	for rows.Next() {
		var (
			doc  domain.Document
			cat  string
			blob []byte
		)
		if err := rows.Scan(&doc.ID, &doc.Player, &cat, &doc.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning snapshot document: %w", err)
		}
		doc.Category = domain.Category(cat)
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("decoding vector for %s: %w", doc.ID, err)
		}
		snap.Documents = append(snap.Documents, doc)
		snap.Vectors = append(snap.Vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot documents: %w", err)
	}
	return snap, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// encodeVector packs a float32 vector as little-endian bytes.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeVector unpacks a vector written by encodeVector.
func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of 4", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec, nil
}

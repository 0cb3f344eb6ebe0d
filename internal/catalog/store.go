// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists parsed record books in a SQLite database so
// persons can be searched and exported across many source files.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/genealogy-tex/pkg/types"
)

const (
	dbFile            = "catalog.db"
	defaultMaxResults = 20
)

// ErrPersonNotFound is returned when a person lookup matches no row.
var ErrPersonNotFound = errors.New("person not found")

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the catalog database at dir/catalog.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath(cfg.Dir)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			path TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL,
			mode TEXT,
			persons INTEGER,
			ingested_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS persons (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL REFERENCES sources(path) ON DELETE CASCADE,
			id TEXT NOT NULL,
			entry_number TEXT,
			name TEXT NOT NULL,
			clause TEXT,
			generation TEXT,
			generation_title TEXT,
			line INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_persons_source ON persons(source)`,
		`CREATE INDEX IF NOT EXISTS idx_persons_id ON persons(id)`,
		`CREATE INDEX IF NOT EXISTS idx_persons_generation ON persons(generation)`,
		`CREATE TABLE IF NOT EXISTS sections (
			person_rowid INTEGER NOT NULL REFERENCES persons(rowid) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			text TEXT,
			lines TEXT,
			nested INTEGER,
			polarity TEXT,
			plural INTEGER,
			PRIMARY KEY (person_rowid, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS children (
			person_rowid INTEGER NOT NULL REFERENCES persons(rowid) ON DELETE CASCADE,
			section_seq INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			marker TEXT,
			ref TEXT,
			roman TEXT,
			name TEXT,
			rest TEXT,
			PRIMARY KEY (person_rowid, section_seq, seq)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestStatus is the outcome of ingesting one source.
type IngestStatus string

const (
	IngestIndexed IngestStatus = "indexed"
	IngestUpdated IngestStatus = "updated"
	IngestSkipped IngestStatus = "skipped"
)

// Ingest stores every person of doc under doc.Source. A source whose
// fingerprint matches the stored one is skipped unless force is set; a
// changed source replaces all of its previous rows.
func (s *Store) Ingest(ctx context.Context, doc *types.Document, fingerprint string, force bool, w io.Writer) (IngestStatus, error) {
	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT fingerprint FROM sources WHERE path = ?`, doc.Source,
	).Scan(&stored)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("looking up source: %w", err)
	}
	known := err == nil

	if known && stored == fingerprint && !force {
		fmt.Fprintf(w, "skipped %s (unchanged)\n", doc.Source)
		return IngestSkipped, nil
	}

	if err := s.ingestDocument(ctx, doc, fingerprint); err != nil {
		return "", err
	}

	persons := humanize.Comma(int64(len(doc.Persons)))
	if known {
		fmt.Fprintf(w, "updated %s (%s persons)\n", doc.Source, persons)
		return IngestUpdated, nil
	}
	fmt.Fprintf(w, "indexing %s (%s persons)\n", doc.Source, persons)
	return IngestIndexed, nil
}

func (s *Store) ingestDocument(ctx context.Context, doc *types.Document, fingerprint string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Rows of a previous version cascade from the source row.
	if _, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE path = ?`, doc.Source); err != nil {
		return fmt.Errorf("deleting old source: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sources (path, fingerprint, mode, persons, ingested_at) VALUES (?, ?, ?, ?, ?)`,
		doc.Source, fingerprint, string(doc.Mode), len(doc.Persons),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting source: %w", err)
	}

	personStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO persons (source, id, entry_number, name, clause, generation, generation_title, line)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing person insert: %w", err)
	}
	defer personStmt.Close()

	sectionStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sections (person_rowid, seq, kind, text, lines, nested, polarity, plural)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing section insert: %w", err)
	}
	defer sectionStmt.Close()

	childStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO children (person_rowid, section_seq, seq, marker, ref, roman, name, rest)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing child insert: %w", err)
	}
	defer childStmt.Close()

	for _, p := range doc.Persons {
		res, err := personStmt.ExecContext(ctx,
			doc.Source, p.ID, p.EntryNumber, p.Name, p.Clause,
			p.Generation, p.GenerationTitle, p.Line,
		)
		if err != nil {
			return fmt.Errorf("inserting person %s: %w", p.ID, err)
		}
		rowid, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading person rowid: %w", err)
		}

		for seq, sec := range p.Sections {
			var linesJSON []byte
			if len(sec.Lines) > 0 {
				// A []string always marshals.
				linesJSON, _ = json.Marshal(sec.Lines)
			}
			var polarity sql.NullString
			var plural sql.NullBool
			if sec.Heading != nil {
				polarity = sql.NullString{String: string(sec.Heading.Polarity), Valid: true}
				plural = sql.NullBool{Bool: sec.Heading.Plural, Valid: true}
			}
			if _, err := sectionStmt.ExecContext(ctx,
				rowid, seq, string(sec.Kind), sec.Text, string(linesJSON), sec.Nested, polarity, plural,
			); err != nil {
				return fmt.Errorf("inserting section %d of person %s: %w", seq, p.ID, err)
			}

			for cseq, c := range sec.Children {
				if _, err := childStmt.ExecContext(ctx,
					rowid, seq, cseq, string(c.Marker), c.Ref, c.Roman, c.Name, c.Rest,
				); err != nil {
					return fmt.Errorf("inserting child %d of person %s: %w", cseq, p.ID, err)
				}
			}
		}
	}

	return tx.Commit()
}

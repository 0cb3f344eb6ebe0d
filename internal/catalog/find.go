// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// QueryOptions holds parameters for catalog searches.
type QueryOptions struct {
	// Query is a case-insensitive substring matched against names and
	// clauses. Empty matches every person.
	Query string

	// Generation filters by generation label (e.g. "Second").
	Generation string

	// Source filters by source path.
	Source string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Result is one person row returned by Find.
type Result struct {
	Source          string `json:"source" yaml:"source"`
	ID              string `json:"id" yaml:"id"`
	EntryNumber     string `json:"entry_number" yaml:"entry_number"`
	Name            string `json:"name" yaml:"name"`
	Clause          string `json:"clause,omitempty" yaml:"clause,omitempty"`
	Generation      string `json:"generation,omitempty" yaml:"generation,omitempty"`
	GenerationTitle string `json:"generation_title,omitempty" yaml:"generation_title,omitempty"`
	Line            int    `json:"line" yaml:"line"`

	rowid int64
}

// Find searches persons. Results are ordered by source path, then by
// position in the source.
func (s *Store) Find(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT rowid, source, id, entry_number, name, clause, generation, generation_title, line
		FROM persons
		WHERE 1=1`)

	if opts.Query != "" {
		pattern := "%" + escapeLike(strings.ToLower(opts.Query)) + "%"
		qb.WriteString(` AND (lower(name) LIKE ? ESCAPE '\' OR lower(clause) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if opts.Generation != "" {
		qb.WriteString(` AND lower(generation) = lower(?)`)
		args = append(args, opts.Generation)
	}
	if opts.Source != "" {
		qb.WriteString(` AND source = ?`)
		args = append(args, opts.Source)
	}

	qb.WriteString(` ORDER BY source, rowid LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r                                  Result
			number, clause, generation, gtitle sql.NullString
		)
		if err := rows.Scan(
			&r.rowid, &r.Source, &r.ID, &number, &r.Name, &clause, &generation, &gtitle, &r.Line,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.EntryNumber = number.String
		r.Clause = clause.String
		r.Generation = generation.String
		r.GenerationTitle = gtitle.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// Person loads the person with the given identifier, including sections
// and children. When source is empty the first matching person across
// all sources is returned.
func (s *Store) Person(ctx context.Context, source, id string) (*types.Person, error) {
	query := `SELECT rowid FROM persons WHERE id = ?`
	args := []any{id}
	if source != "" {
		query += ` AND source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY source, rowid LIMIT 1`

	var rowid int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&rowid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
		}
		return nil, fmt.Errorf("looking up person: %w", err)
	}
	return s.load(ctx, rowid)
}

func (s *Store) load(ctx context.Context, rowid int64) (*types.Person, error) {
	var (
		p                                  types.Person
		number, clause, generation, gtitle sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, entry_number, name, clause, generation, generation_title, line
		FROM persons WHERE rowid = ?`, rowid,
	).Scan(&p.ID, &number, &p.Name, &clause, &generation, &gtitle, &p.Line)
	if err != nil {
		return nil, fmt.Errorf("loading person: %w", err)
	}
	p.EntryNumber = number.String
	p.Clause = clause.String
	p.Generation = generation.String
	p.GenerationTitle = gtitle.String

	if p.Sections, err = s.loadSections(ctx, rowid); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) loadSections(ctx context.Context, rowid int64) ([]types.Section, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, text, lines, nested, polarity, plural
		FROM sections WHERE person_rowid = ? ORDER BY seq`, rowid)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var sections []types.Section
	for rows.Next() {
		var (
			sec         types.Section
			kind        string
			text, lines sql.NullString
			polarity    sql.NullString
			plural      sql.NullBool
		)
		if err := rows.Scan(&kind, &text, &lines, &sec.Nested, &polarity, &plural); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		sec.Kind = types.SectionKind(kind)
		sec.Text = text.String
		if lines.String != "" {
			if err := json.Unmarshal([]byte(lines.String), &sec.Lines); err != nil {
				return nil, fmt.Errorf("decoding section lines: %w", err)
			}
		}
		if polarity.Valid {
			sec.Heading = &types.Heading{Polarity: types.Polarity(polarity.String), Plural: plural.Bool}
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx,
		`SELECT section_seq, marker, ref, roman, name, rest
		FROM children WHERE person_rowid = ? ORDER BY section_seq, seq`, rowid)
	if err != nil {
		return nil, fmt.Errorf("querying children: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var (
			seq    int
			marker string
			c      types.ChildEntry
		)
		if err := crows.Scan(&seq, &marker, &c.Ref, &c.Roman, &c.Name, &c.Rest); err != nil {
			return nil, fmt.Errorf("scanning child: %w", err)
		}
		c.Marker = types.MarkerKind(marker)
		if seq < len(sections) {
			sections[seq].Children = append(sections[seq].Children, c)
		}
	}
	return sections, crows.Err()
}

// SourceInfo describes one ingested record book.
type SourceInfo struct {
	Path        string `json:"path" yaml:"path"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
	Mode        string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Persons     int    `json:"persons" yaml:"persons"`
	IngestedAt  string `json:"ingested_at" yaml:"ingested_at"`
}

// Sources lists the ingested record books ordered by path.
func (s *Store) Sources(ctx context.Context) ([]SourceInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, fingerprint, mode, persons, ingested_at FROM sources ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []SourceInfo
	for rows.Next() {
		var (
			info     SourceInfo
			mode, at sql.NullString
			persons  sql.NullInt64
		)
		if err := rows.Scan(&info.Path, &info.Fingerprint, &mode, &persons, &at); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		info.Mode = mode.String
		info.Persons = int(persons.Int64)
		info.IngestedAt = at.String
		sources = append(sources, info)
	}
	return sources, rows.Err()
}

func dbPath(dir string) string {
	return filepath.Join(dir, dbFile)
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

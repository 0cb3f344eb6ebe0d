// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/genealogy-tex/internal/source"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// ExportEntry is a stored person with its source path.
type ExportEntry struct {
	Source       string `json:"source" yaml:"source"`
	types.Person `yaml:",inline"`
}

const exportLimit = 1000000

// ExportYAML writes the matching persons to dir/export.yaml and returns
// the path written.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, source.WriteAtomic(path, data)
}

// ExportJSON writes the matching persons to dir/export.json and returns
// the path written.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, source.WriteAtomic(path, data)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	results, err := s.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, 0, len(results))
	for _, r := range results {
		p, err := s.load(ctx, r.rowid)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ExportEntry{Source: r.Source, Person: *p})
	}
	return entries, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pdiddy/sympo-pubtools/internal/program"
)

const exportLimit = 100000

// ExportYAML writes the matching papers to <catalog dir>/export.yaml and
// returns the path. It takes the same filters as Search.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	return s.export(ctx, opts, "export.yaml")
}

// ExportJSON writes the matching papers to <catalog dir>/export.json and
// returns the path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	return s.export(ctx, opts, "export.json")
}

func (s *Store) export(ctx context.Context, opts QueryOptions, name string) (string, error) {
	opts.MaxResults = exportLimit
	results, err := s.Search(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := program.WriteFile(path, results); err != nil {
		return "", err
	}
	return path, nil
}

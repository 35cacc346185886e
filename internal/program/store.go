// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package program loads and saves the program data files that stand in for
// a database between pipeline stages: sessions, awards, special-session
// organizers, conference information, and revision items. Files ending in
// .yaml or .yml use YAML; everything else is JSON.
package program

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// LoadSessions reads and validates a session list.
func LoadSessions(path string) ([]types.Session, error) {
	sessions, err := readFile[[]types.Session](path, listOf(sessionSchema))
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return sessions, nil
}

// SaveSessions writes sessions to path. Nil lists are written as empty
// lists.
func SaveSessions(path string, sessions []types.Session) error {
	out := make([]types.Session, len(sessions))
	for i, s := range sessions {
		s.Chairs = nonNil(s.Chairs)
		papers := make([]types.Paper, len(s.Papers))
		for j, p := range s.Papers {
			p.Keywords = nonNil(p.Keywords)
			p.Authors = nonNil(p.Authors)
			papers[j] = p
		}
		s.Papers = papers
		out[i] = s
	}
	return WriteFile(path, out)
}

// LoadAwards reads an award list.
func LoadAwards(path string) ([]types.Award, error) {
	awards, err := readFile[[]types.Award](path, listOf(awardSchema))
	if err != nil {
		return nil, err
	}
	for i, a := range awards {
		if a.ID == "" {
			return nil, fmt.Errorf("%s: award %d: missing id", path, i)
		}
	}
	return awards, nil
}

// LoadOrganizers reads a special-session organizer list.
func LoadOrganizers(path string) ([]types.SSOrganizer, error) {
	orgs, err := readFile[[]types.SSOrganizer](path, listOf(organizerSchema))
	if err != nil {
		return nil, err
	}
	for i, o := range orgs {
		if o.Category.Tag == "" {
			return nil, fmt.Errorf("%s: organizer record %d: missing category", path, i)
		}
	}
	return orgs, nil
}

// LoadCommon reads and validates the conference information.
func LoadCommon(path string) (types.CommonInfo, error) {
	common, err := readFile[types.CommonInfo](path, recordOf(commonSchema))
	if err != nil {
		return types.CommonInfo{}, err
	}
	if err := common.Validate(); err != nil {
		return types.CommonInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	return common, nil
}

// LoadReviseItems reads a revision item list.
func LoadReviseItems(path string) ([]types.ReviseItem, error) {
	return readFile[[]types.ReviseItem](path, listOf(reviseItemSchema))
}

// SaveReviseItems writes revision items to path.
func SaveReviseItems(path string, items []types.ReviseItem) error {
	out := make([]types.ReviseItem, len(items))
	for i, it := range items {
		it.Errors = nonNil(it.Errors)
		out[i] = it
	}
	return WriteFile(path, out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func listOf(s *schema) func(any) error {
	return func(v any) error { return checkList(v, s) }
}

func recordOf(s *schema) func(any) error {
	return func(v any) error { return checkRecord(v, s) }
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// readFile decodes path into T after check has accepted the generic
// decoding of the same document.
func readFile[T any](path string, check func(any) error) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("reading %s: %w", path, err)
	}
	var generic any
	if err := decode(path, data, &generic); err != nil {
		return v, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := check(generic); err != nil {
		return v, fmt.Errorf("%s: %w", path, err)
	}
	if err := decode(path, data, &v); err != nil {
		return v, fmt.Errorf("parsing %s: %w", path, err)
	}
	return v, nil
}

func decode(path string, data []byte, v any) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// Marshal encodes v as JSON with 4-space indentation and without HTML
// escaping, or as YAML when path names a YAML file.
func Marshal(path string, v any) ([]byte, error) {
	var buf bytes.Buffer
	if isYAML(path) {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes v as Marshal does and writes it atomically via a
// temporary file.
func WriteFile(path string, v any) error {
	data, err := Marshal(path, v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package program

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// SessionUpdate is a partial session record. Category and CategoryOrder
// identify the target session; Fields holds every other key present in the
// update (except papers) as raw JSON.
type SessionUpdate struct {
	Category      types.Category
	CategoryOrder *int
	Fields        map[string]json.RawMessage
	Papers        []PaperUpdate
}

// PaperUpdate is a partial paper record identified by paper ID.
type PaperUpdate struct {
	ID     int
	Fields map[string]json.RawMessage
}

// LoadUpdates reads a list of partial session records. Each record must
// carry category and category_order; papers is optional and each of its
// entries must carry id.
func LoadUpdates(path string) ([]SessionUpdate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []map[string]json.RawMessage
	if isYAML(path) {
		var generic []map[string]any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		for _, g := range generic {
			b, err := json.Marshal(g)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			var rec map[string]json.RawMessage
			if err := json.Unmarshal(b, &rec); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			records = append(records, rec)
		}
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	updates := make([]SessionUpdate, 0, len(records))
	for i, rec := range records {
		u, err := parseUpdate(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: update %d: %w", path, i, err)
		}
		updates = append(updates, u)
	}
	return updates, nil
}

func parseUpdate(rec map[string]json.RawMessage) (SessionUpdate, error) {
	var u SessionUpdate

	rawCat, ok := rec["category"]
	if !ok {
		return u, fmt.Errorf("missing category")
	}
	if err := json.Unmarshal(rawCat, &u.Category); err != nil {
		return u, err
	}
	rawOrder, ok := rec["category_order"]
	if !ok {
		return u, fmt.Errorf("missing category_order")
	}
	if err := json.Unmarshal(rawOrder, &u.CategoryOrder); err != nil {
		return u, fmt.Errorf("category_order: %w", err)
	}

	u.Fields = make(map[string]json.RawMessage, len(rec))
	for k, v := range rec {
		if k != "papers" {
			u.Fields[k] = v
		}
	}

	if rawPapers, ok := rec["papers"]; ok {
		var papers []map[string]json.RawMessage
		if err := json.Unmarshal(rawPapers, &papers); err != nil {
			return u, fmt.Errorf("papers: %w", err)
		}
		for j, p := range papers {
			rawID, ok := p["id"]
			if !ok {
				return u, fmt.Errorf("paper %d: missing id", j)
			}
			pu := PaperUpdate{Fields: p}
			if err := json.Unmarshal(rawID, &pu.ID); err != nil {
				return u, fmt.Errorf("paper %d: id: %w", j, err)
			}
			u.Papers = append(u.Papers, pu)
		}
	}
	return u, nil
}

// UpdateSessions applies updates to a copy of sessions. Each update targets
// the first session with the same category and category_order and
// overwrites the fields it names; each paper update overwrites the fields
// of the paper with the same ID in that session. Paper updates with unknown
// IDs are ignored. An update that matches no session is a *NotFoundError
// naming both files.
func UpdateSessions(sessions []types.Session, updates []SessionUpdate, dataPath, updatePath string) ([]types.Session, error) {
	out := slices.Clone(sessions)

	index := make(map[string]int, len(out))
	for i, s := range out {
		k := updateKey(s.Category, s.CategoryOrder)
		if _, ok := index[k]; !ok {
			index[k] = i
		}
	}

	for _, u := range updates {
		i, ok := index[updateKey(u.Category, u.CategoryOrder)]
		if !ok {
			return nil, &NotFoundError{
				Kind:   "session",
				Key:    fmt.Sprintf("%s %s", u.Category, formatOrder(u.CategoryOrder)),
				Source: updatePath + " / " + dataPath,
			}
		}

		updated, err := overlay(out[i], u.Fields)
		if err != nil {
			return nil, fmt.Errorf("updating session %s: %w", out[i].Code, err)
		}
		updated.Papers = slices.Clone(out[i].Papers)

		for _, pu := range u.Papers {
			j := slices.IndexFunc(updated.Papers, func(p types.Paper) bool { return p.ID == pu.ID })
			if j < 0 {
				continue
			}
			p, err := overlay(updated.Papers[j], pu.Fields)
			if err != nil {
				return nil, fmt.Errorf("updating paper %d: %w", pu.ID, err)
			}
			updated.Papers[j] = p
		}

		if err := updated.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", updatePath, err)
		}
		out[i] = updated
	}
	return out, nil
}

func updateKey(c types.Category, order *int) string {
	return c.Key() + "#" + formatOrder(order)
}

func formatOrder(order *int) string {
	if order == nil {
		return "none"
	}
	return fmt.Sprint(*order)
}

// overlay replaces the JSON fields of v named in fields.
func overlay[T any](v T, fields map[string]json.RawMessage) (T, error) {
	var out T
	base, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(base, &m); err != nil {
		return out, err
	}
	maps.Copy(m, fields)
	merged, err := json.Marshal(m)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, err
	}
	return out, nil
}

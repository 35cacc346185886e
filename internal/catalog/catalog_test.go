// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.CatalogConfig{Dir: filepath.Join(t.TempDir(), "catalog")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func intPtr(i int) *int { return &i }

func testSessions() []types.Session {
	jst := time.FixedZone("", 9*60*60)
	pages := types.PageRange{1, 4}
	return []types.Session{
		{
			Code:      "P1",
			Name:      "Plenary",
			Category:  types.Category{Tag: types.CategoryPlenary},
			StartTime: time.Date(2024, 12, 4, 9, 0, 0, 0, jst),
			EndTime:   time.Date(2024, 12, 4, 10, 0, 0, 0, jst),
			Papers: []types.Paper{{
				ID: 1, Order: 1, Title: "Reservoirs everywhere", Plenary: true,
				Authors: []types.Person{{Name: "Alan Kay", Organization: "VPRI"}},
			}},
		},
		{
			Code:          "A2L",
			Name:          "Chaotic Dynamics",
			Category:      types.NewCategory("r", 2),
			CategoryOrder: intPtr(1),
			Location:      "Room A",
			Papers: []types.Paper{
				{
					ID: 6000, Order: 1, Title: "Coupled logistic maps",
					Abstract: "We study synchronization in coupled maps.",
					Keywords: []string{"chaos", "synchronization"},
					Authors: []types.Person{
						{Name: "Taro Yamada", Organization: "Kyoto Univ."},
						{Name: "Hana Sato", Organization: "Tokyo Tech"},
					},
					Pages: &pages,
				},
				{
					ID: 6001, Order: 2, Title: "Bifurcations in circuits",
					Abstract: "A study of period doubling.",
					Keywords: []string{"bifurcation"},
					Authors:  []types.Person{{Name: "Ken Ito", Organization: "NTT"}},
				},
			},
		},
		{
			Code:     "C3",
			Name:     "(S3-1) Reservoir Computing",
			Category: types.NewCategory("s", 3),
			Papers: []types.Paper{{
				ID: 7000, Order: 1, Title: "Physical reservoir computing",
				Keywords: []string{"reservoir computing"},
				Authors:  []types.Person{{Name: "Mei Wong", Organization: "HKU"}},
			}},
		},
	}
}

func indexTestSessions(t *testing.T, store *Store) {
	t.Helper()
	var buf bytes.Buffer
	summary, err := store.Index(context.Background(), testSessions(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Sessions != 3 || summary.Papers != 4 {
		t.Fatalf("summary = %+v, want 3 sessions and 4 papers", summary)
	}
	if !strings.Contains(buf.String(), "indexed: 3 sessions, 4 papers") {
		t.Errorf("missing summary line in %q", buf.String())
	}
}

func numbers(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Number
	}
	return out
}

// --- tests ---

func TestNewStoreCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")
	store, err := NewStore(types.CatalogConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(dir, dbFile)); err != nil {
		t.Errorf("expected %s: %v", dbFile, err)
	}
	if store.maxResults != defaultMaxResults {
		t.Errorf("maxResults = %d, want %d", store.maxResults, defaultMaxResults)
	}

	// Reopening keeps the existing schema.
	again, err := NewStore(types.CatalogConfig{Dir: dir, MaxResults: 5})
	if err != nil {
		t.Fatal(err)
	}
	again.Close()
}

func TestSearchStructured(t *testing.T) {
	store := testStore(t)
	indexTestSessions(t, store)
	ctx := context.Background()

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"all in program order", QueryOptions{}, []string{"P11", "A2L1", "A2L2", "C31"}},
		{"by session", QueryOptions{SessionCode: "A2L"}, []string{"A2L1", "A2L2"}},
		{"by category", QueryOptions{Category: "s"}, []string{"C31"}},
		{"limit", QueryOptions{MaxResults: 2}, []string{"P11", "A2L1"}},
		{"no match", QueryOptions{SessionCode: "Z9"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Search(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			got := numbers(results)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchFullText(t *testing.T) {
	store := testStore(t)
	indexTestSessions(t, store)
	ctx := context.Background()

	results, err := store.Search(ctx, QueryOptions{Query: "synchronization"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Number != "A2L1" {
		t.Fatalf("got %v, want [A2L1]", numbers(results))
	}

	r := results[0]
	if r.PaperID != 6000 || r.SessionName != "Chaotic Dynamics" || r.Category != "r" || r.Location != "Room A" {
		t.Errorf("unexpected result %+v", r)
	}
	if strings.Join(r.Authors, "|") != "Taro Yamada|Hana Sato" {
		t.Errorf("authors = %v", r.Authors)
	}
	if strings.Join(r.Affiliations, "|") != "Kyoto Univ.|Tokyo Tech" {
		t.Errorf("affiliations = %v", r.Affiliations)
	}
	if r.Pages == nil || *r.Pages != (types.PageRange{1, 4}) {
		t.Errorf("pages = %v, want [1 4]", r.Pages)
	}

	// Author names are indexed too.
	results, err = store.Search(ctx, QueryOptions{Query: "authors:wong"})
	if err != nil {
		t.Fatal(err)
	}
	if got := numbers(results); len(got) != 1 || got[0] != "C31" {
		t.Errorf("author search got %v, want [C31]", got)
	}

	// Full-text and structured filters combine.
	results, err = store.Search(ctx, QueryOptions{Query: "reservoir*", Category: "p"})
	if err != nil {
		t.Fatal(err)
	}
	if got := numbers(results); len(got) != 1 || got[0] != "P11" || !results[0].Plenary {
		t.Errorf("filtered search got %v, want plenary [P11]", got)
	}
}

func TestIndexReplacesContent(t *testing.T) {
	store := testStore(t)
	indexTestSessions(t, store)
	ctx := context.Background()

	sessions := testSessions()[1:2]
	sessions[0].Papers = sessions[0].Papers[:1]
	if _, err := store.Index(ctx, sessions, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	results, err := store.Search(ctx, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := numbers(results); len(got) != 1 || got[0] != "A2L1" {
		t.Errorf("got %v, want [A2L1]", got)
	}

	// The FTS index follows the replacement.
	results, err = store.Search(ctx, QueryOptions{Query: "bifurcation"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("stale FTS rows: %v", numbers(results))
	}
}

func TestIndexStoresChairs(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	sessions := testSessions()
	sessions[1].Chairs = []types.Person{{Name: "Hana Sato", Organization: "Tokyo Tech"}}
	if _, err := store.Index(ctx, sessions, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		code string
		want []types.Person
	}{
		{"P1", []types.Person{}},
		{"A2L", sessions[1].Chairs},
	}
	for _, tt := range tests {
		var raw string
		if err := store.db.QueryRowContext(ctx, `SELECT chairs FROM sessions WHERE code = ?`, tt.code).Scan(&raw); err != nil {
			t.Fatal(err)
		}
		var got []types.Person
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("%s: chairs %q: %v", tt.code, raw, err)
		}
		if got == nil || len(got) != len(tt.want) || (len(got) > 0 && got[0] != tt.want[0]) {
			t.Errorf("%s: chairs = %q, want %v", tt.code, raw, tt.want)
		}
	}
}

func TestIndexRollsBackOnDuplicate(t *testing.T) {
	store := testStore(t)
	indexTestSessions(t, store)

	sessions := testSessions()
	sessions[2].Papers[0].ID = 6000
	if _, err := store.Index(context.Background(), sessions, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for duplicate paper id")
	}

	results, err := store.Search(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Errorf("catalog changed after failed index: %v", numbers(results))
	}
}

func TestExport(t *testing.T) {
	store := testStore(t)
	indexTestSessions(t, store)
	ctx := context.Background()

	path, err := store.ExportJSON(ctx, QueryOptions{SessionCode: "A2L"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON []Result
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatal(err)
	}
	if len(fromJSON) != 2 || fromJSON[1].Title != "Bifurcations in circuits" {
		t.Errorf("unexpected JSON export: %+v", fromJSON)
	}
	if !strings.Contains(string(data), "\n    {") {
		t.Error("expected 4-space indented JSON")
	}

	path, err = store.ExportYAML(ctx, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "export.yaml" {
		t.Errorf("path = %s", path)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []Result
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatal(err)
	}
	if len(fromYAML) != 4 || fromYAML[0].Number != "P11" {
		t.Errorf("unexpected YAML export: %v", numbers(fromYAML))
	}
}

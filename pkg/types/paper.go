// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the sympo-pubtools pipeline.
// Session and Paper records are produced by spreadsheet ingestion, patched by
// PDF stamping and update merges, and consumed by every output stage
// (metadata CSV, LaTeX, catalog, revision requests).
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.yaml.in/yaml/v3"
)

// Category tags used by Session.Category.
const (
	CategorySpecial = "s"
	CategoryRegular = "r"
	CategoryPlenary = "p"
	CategoryInvited = "i"
)

// Person is an author, chair, organizer, or contact.
type Person struct {
	// Name is the full display name ("Given Family").
	Name string `json:"name" yaml:"name"`

	// Organization is the person's affiliation.
	Organization string `json:"organization" yaml:"organization"`

	Country string `json:"country,omitempty" yaml:"country,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
}

// PageRange is the inclusive [start, end] page range of a stamped paper.
// It serializes as a two-element array.
type PageRange [2]int

// NewPageRange returns a PageRange after checking 1 <= start <= end.
func NewPageRange(start, end int) (PageRange, error) {
	if start < 1 || end < start {
		return PageRange{}, fmt.Errorf("invalid page range %d-%d", start, end)
	}
	return PageRange{start, end}, nil
}

// From returns the first page.
func (p PageRange) From() int { return p[0] }

// To returns the last page.
func (p PageRange) To() int { return p[1] }

// Category classifies a session: a tag (s, r, p, i) and an optional numeric
// sub-index. It serializes as a two-element array, e.g. ["s", 3] or ["p", null].
type Category struct {
	Tag   string
	Index *int
}

// NewCategory builds a Category with a numeric sub-index.
func NewCategory(tag string, index int) Category {
	return Category{Tag: tag, Index: &index}
}

// IsSpecial reports whether the category marks a special session.
func (c Category) IsSpecial() bool { return c.Tag == CategorySpecial }

// Equal reports whether both tag and sub-index match.
func (c Category) Equal(o Category) bool {
	if c.Tag != o.Tag {
		return false
	}
	if c.Index == nil || o.Index == nil {
		return c.Index == nil && o.Index == nil
	}
	return *c.Index == *o.Index
}

// Key returns a comparable string form suitable for map keys.
func (c Category) Key() string {
	if c.Index == nil {
		return c.Tag + "/-"
	}
	return c.Tag + "/" + strconv.Itoa(*c.Index)
}

func (c Category) String() string {
	if c.Index == nil {
		return fmt.Sprintf("(%s, none)", c.Tag)
	}
	return fmt.Sprintf("(%s, %d)", c.Tag, *c.Index)
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Tag, c.Index})
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("category: want [tag, index], got %d elements", len(raw))
	}
	var tag string
	if err := json.Unmarshal(raw[0], &tag); err != nil {
		return fmt.Errorf("category tag: %w", err)
	}
	var index *int
	if err := json.Unmarshal(raw[1], &index); err != nil {
		return fmt.Errorf("category index: %w", err)
	}
	c.Tag, c.Index = tag, index
	return nil
}

func (c Category) MarshalYAML() (any, error) {
	return []any{c.Tag, c.Index}, nil
}

func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("category: want [tag, index] at line %d", node.Line)
	}
	var tag string
	if err := node.Content[0].Decode(&tag); err != nil {
		return fmt.Errorf("category tag: %w", err)
	}
	c.Tag, c.Index = tag, nil
	if node.Content[1].Tag == "!!null" {
		return nil
	}
	var index int
	if err := node.Content[1].Decode(&index); err != nil {
		return fmt.Errorf("category index: %w", err)
	}
	c.Index = &index
	return nil
}

// Paper is one accepted submission within a session.
type Paper struct {
	// ID is the submission system's paper ID, unique within a run.
	ID int `json:"id" yaml:"id"`

	Title string `json:"title" yaml:"title"`

	// Order is the 1-based position of the paper within its session.
	Order int `json:"order" yaml:"order"`

	// Contact is the corresponding author.
	Contact Person `json:"contact" yaml:"contact"`

	// Pages is nil until the PDF has been stamped.
	Pages *PageRange `json:"pages" yaml:"pages"`

	Abstract string   `json:"abstract" yaml:"abstract"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Authors  []Person `json:"authors" yaml:"authors"`

	// StartTime is the scheduled presentation start, if known.
	StartTime *time.Time `json:"start_time" yaml:"start_time"`

	// Plenary marks invited/plenary talks. Plenary papers are excluded from
	// page numbering, merging, and the CSL bibliography.
	Plenary bool `json:"plenary" yaml:"plenary"`
}

// Number returns the paper number used in file names and metadata:
// the session code followed by the paper order (e.g. "A2L1").
func (p Paper) Number(sessionCode string) string {
	return sessionCode + strconv.Itoa(p.Order)
}

// Session is a scheduled conference slot containing papers.
type Session struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`

	// Code is the short unique session identifier (e.g. "A2L").
	Code string `json:"code" yaml:"code"`

	Category Category `json:"category" yaml:"category"`

	// CategoryOrder is the secondary key of grouped sessions, e.g. 4 for "(S3-4)".
	CategoryOrder *int `json:"category_order" yaml:"category_order"`

	Location  string    `json:"location" yaml:"location"`
	Chairs    []Person  `json:"chairs" yaml:"chairs"`
	StartTime time.Time `json:"start_time" yaml:"start_time"`
	EndTime   time.Time `json:"end_time" yaml:"end_time"`
	Papers    []Paper   `json:"papers" yaml:"papers"`
}

// Validate checks the session invariants: distinct 1-based paper orders
// and start_time <= end_time.
func (s Session) Validate() error {
	if s.Code == "" {
		return fmt.Errorf("session %q: missing code", s.Name)
	}
	if s.EndTime.Before(s.StartTime) {
		return fmt.Errorf("session %s: end time %s before start time %s",
			s.Code, s.EndTime.Format(time.RFC3339), s.StartTime.Format(time.RFC3339))
	}
	seen := make(map[int]bool, len(s.Papers))
	for _, p := range s.Papers {
		if p.Order < 1 {
			return fmt.Errorf("session %s paper %d: order %d, want >= 1", s.Code, p.ID, p.Order)
		}
		if seen[p.Order] {
			return fmt.Errorf("session %s: duplicate paper order %d", s.Code, p.Order)
		}
		seen[p.Order] = true
		if p.Pages != nil {
			if _, err := NewPageRange(p.Pages.From(), p.Pages.To()); err != nil {
				return fmt.Errorf("session %s paper %d: %w", s.Code, p.ID, err)
			}
		}
	}
	return nil
}

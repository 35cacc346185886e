// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

// DateLayout is the calendar date format used in data files and metadata CSVs.
const DateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month, and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Award lists the awards received by one paper. ID is the paper number
// (session code + order, e.g. "A2L21").
type Award struct {
	ID     string   `json:"id" yaml:"id"`
	Awards []string `json:"awards" yaml:"awards"`
}

// SSOrganizer is the organizing committee of a special session, matched
// against Session.Category.
type SSOrganizer struct {
	Category   Category `json:"category" yaml:"category"`
	Title      string   `json:"title" yaml:"title"`
	Organizers []Person `json:"organizers" yaml:"organizers"`
}

// Cooperator buckets of CommonInfo.Cooperators.
const (
	CooperatorOrganizer = iota
	CooperatorCoOrganizer
	CooperatorSponsor
	CooperatorSupporter
)

// CommonInfo holds conference-wide metadata.
type CommonInfo struct {
	// ConfAbbr is the conference abbreviation (e.g. "NOLTA").
	ConfAbbr string `json:"conf_abbr" yaml:"conf_abbr"`

	Year      int     `json:"year" yaml:"year"`
	EventName string  `json:"event_name" yaml:"event_name"`
	EventDate [2]Date `json:"event_date" yaml:"event_date"`

	EventCity  []string `json:"event_city" yaml:"event_city"`
	EventVenue []string `json:"event_venue" yaml:"event_venue"`

	// EventWebURL must start with http:// or https://.
	EventWebURL string `json:"event_web_url" yaml:"event_web_url"`

	// Cooperators holds four buckets: organizers, co-organizers, sponsors,
	// and supporters.
	Cooperators [4][]string `json:"cooperators" yaml:"cooperators"`

	Publication   string `json:"publication" yaml:"publication"`
	DatePublished Date   `json:"date_published" yaml:"date_published"`
	Publisher     string `json:"publisher" yaml:"publisher"`
}

// Validate checks that the required fields are present.
func (c CommonInfo) Validate() error {
	switch {
	case c.ConfAbbr == "":
		return fmt.Errorf("common info: missing conf_abbr")
	case c.Year == 0:
		return fmt.Errorf("common info: missing year")
	case c.EventName == "":
		return fmt.Errorf("common info: missing event_name")
	case c.EventDate[0].IsZero() || c.EventDate[1].IsZero():
		return fmt.Errorf("common info: missing event_date")
	case c.EventWebURL == "":
		return fmt.Errorf("common info: missing event_web_url")
	case c.Publication == "":
		return fmt.Errorf("common info: missing publication")
	case c.DatePublished.IsZero():
		return fmt.Errorf("common info: missing date_published")
	case c.Publisher == "":
		return fmt.Errorf("common info: missing publisher")
	}
	return nil
}

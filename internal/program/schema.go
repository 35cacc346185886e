// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package program

import "fmt"

// key describes one key of a data file record.
type key struct {
	name string

	// optional keys may be absent or null.
	optional bool

	// nullable keys must be present but may be null.
	nullable bool

	// nested is checked against the key's object, or against every element
	// when list is set.
	nested *schema
	list   bool
}

// schema lists the keys of one record type.
type schema struct {
	name string
	keys []key
}

var personSchema = &schema{name: "person", keys: []key{
	{name: "name"},
	{name: "organization"},
	{name: "country", optional: true},
	{name: "email", optional: true},
}}

var paperSchema = &schema{name: "paper", keys: []key{
	{name: "id"},
	{name: "title"},
	{name: "order"},
	{name: "contact", nested: personSchema},
	{name: "pages", nullable: true},
	{name: "abstract"},
	{name: "keywords"},
	{name: "authors", nested: personSchema, list: true},
	{name: "start_time", optional: true},
	{name: "plenary", optional: true},
}}

var sessionSchema = &schema{name: "session", keys: []key{
	{name: "name"},
	{name: "type"},
	{name: "code"},
	{name: "category"},
	{name: "category_order", nullable: true},
	{name: "location"},
	{name: "chairs", nested: personSchema, list: true},
	{name: "start_time"},
	{name: "end_time"},
	{name: "papers", optional: true, nested: paperSchema, list: true},
}}

var awardSchema = &schema{name: "award", keys: []key{
	{name: "id"},
	{name: "awards"},
}}

var organizerSchema = &schema{name: "organizer record", keys: []key{
	{name: "category"},
	{name: "title"},
	{name: "organizers", nested: personSchema, list: true},
}}

var commonSchema = &schema{name: "common info", keys: []key{
	{name: "conf_abbr"},
	{name: "year"},
	{name: "event_name"},
	{name: "event_date"},
	{name: "event_city"},
	{name: "event_venue"},
	{name: "event_web_url"},
	{name: "cooperators"},
	{name: "publication"},
	{name: "date_published"},
	{name: "publisher"},
}}

var reviseItemSchema = &schema{name: "revise item", keys: []key{
	{name: "pdfname"},
	{name: "errors"},
	{name: "ext_msg", optional: true},
	{name: "paper_id"},
	{name: "title"},
	{name: "contact", nested: personSchema},
}}

// checkList checks that v is a list of records of s.
func checkList(v any, s *schema) error {
	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("want a list of %s records", s.name)
	}
	for i, e := range list {
		if err := checkRecord(e, s); err != nil {
			return fmt.Errorf("%s %d: %w", s.name, i, err)
		}
	}
	return nil
}

// checkRecord checks that v is an object carrying every required key of s.
func checkRecord(v any, s *schema) error {
	rec, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("want a %s object", s.name)
	}
	for _, k := range s.keys {
		val, present := rec[k.name]
		switch {
		case !present && k.optional:
			continue
		case !present:
			return fmt.Errorf("missing required key %q", k.name)
		case val == nil && (k.optional || k.nullable):
			continue
		case val == nil:
			return fmt.Errorf("key %q must not be null", k.name)
		case k.nested == nil:
			continue
		}

		var err error
		if k.list {
			err = checkList(val, k.nested)
		} else {
			err = checkRecord(val, k.nested)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"fmt"
	"strconv"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// Record is a metadata row. Fields returns the rendered cells in column
// order; the order matches the header rows of the CSV templates.
type Record interface {
	Fields() []string
}

// MetaSession is the metadata row of one session.
type MetaSession struct {
	Comment     string
	Number      string
	Name        string
	Date        string
	Organizers  string
	OrgAffils   string
	Chairs      string
	ChairAffils string
	Cities      string
	Venues      string
}

func (m MetaSession) Fields() []string {
	return []string{
		m.Comment, m.Number, m.Name, m.Date, m.Organizers,
		m.OrgAffils, m.Chairs, m.ChairAffils, m.Cities, m.Venues,
	}
}

// SessionInput holds the raw values of a MetaSession.
type SessionInput struct {
	Comment     string
	Number      string
	Name        string
	Date        types.Date
	Organizers  []string
	OrgAffils   []string
	Chairs      []string
	ChairAffils []string
	Cities      []string
	Venues      []string
}

// NewMetaSession validates and encodes in.
func NewMetaSession(in SessionInput) (MetaSession, error) {
	b := fieldBuilder{record: "session " + in.Number}
	m := MetaSession{
		Comment:     b.comment(in.Comment),
		Number:      b.id("number", in.Number),
		Name:        b.str("name", in.Name),
		Date:        FormatDate(in.Date),
		Organizers:  b.names("organizers", in.Organizers),
		OrgAffils:   b.entities("org_affils", in.OrgAffils),
		Chairs:      b.names("chairs", in.Chairs),
		ChairAffils: b.entities("chair_affils", in.ChairAffils),
		Cities:      b.strs("cities", in.Cities),
		Venues:      b.strs("venues", in.Venues),
	}
	if b.err != nil {
		return MetaSession{}, b.err
	}
	return m, nil
}

// MetaPaper is the metadata row of one paper.
type MetaPaper struct {
	Comment  string
	Title    string
	Filename string
	Abstract string
	Keywords string
	PageFrom string
	PageTo   string
	Session  string
	Volume   string
	Number   string
	Awards   string
	Authors  string
	Affils   string
}

func (m MetaPaper) Fields() []string {
	return []string{
		m.Comment, m.Title, m.Filename, m.Abstract, m.Keywords, m.PageFrom,
		m.PageTo, m.Session, m.Volume, m.Number, m.Awards, m.Authors, m.Affils,
	}
}

// PaperInput holds the raw values of a MetaPaper. A nil Pages renders
// page_from and page_to as empty cells.
type PaperInput struct {
	Comment  string
	Title    string
	Filename string
	Abstract string
	Keywords []string
	Pages    *types.PageRange
	Session  string
	Number   string
	Awards   []string
	Authors  []string
	Affils   []string
}

// NewMetaPaper validates and encodes in.
func NewMetaPaper(in PaperInput) (MetaPaper, error) {
	b := fieldBuilder{record: "paper " + in.Number}
	m := MetaPaper{
		Comment:  b.comment(in.Comment),
		Title:    b.str("title", in.Title),
		Filename: b.str("filename", in.Filename),
		Abstract: b.text("abstract", in.Abstract),
		Keywords: b.strs("keywords", in.Keywords),
		Session:  b.id("session", in.Session),
		Number:   b.id("number", in.Number),
		Awards:   b.strs("awards", in.Awards),
		Authors:  b.names("authors", in.Authors),
		Affils:   b.entities("affils", in.Affils),
	}
	if in.Pages != nil {
		m.PageFrom = strconv.Itoa(in.Pages.From())
		m.PageTo = strconv.Itoa(in.Pages.To())
	}
	if b.err != nil {
		return MetaPaper{}, b.err
	}
	return m, nil
}

// MetaCommon is the metadata row describing the conference itself.
type MetaCommon struct {
	Comment         string
	ConfName        string
	ConfAbbr        string
	Year            string
	BodyURL         string
	EventName       string
	EventDateFrom   string
	EventDateTo     string
	EventCity       string
	EventVenue      string
	EventWebURL     string
	Cooperators     string
	Publication     string
	DatePublished   string
	CopyrightHolder string
	Publisher       string
}

func (m MetaCommon) Fields() []string {
	return []string{
		m.Comment, m.ConfName, m.ConfAbbr, m.Year, m.BodyURL, m.EventName,
		m.EventDateFrom, m.EventDateTo, m.EventCity, m.EventVenue,
		m.EventWebURL, m.Cooperators, m.Publication, m.DatePublished,
		m.CopyrightHolder, m.Publisher,
	}
}

// NewMetaCommon validates and encodes the conference information. Columns
// without a source value (conf_name, body_url, copyright_holder) stay empty.
func NewMetaCommon(comment string, c types.CommonInfo) (MetaCommon, error) {
	b := fieldBuilder{record: "common " + c.ConfAbbr}
	m := MetaCommon{
		Comment:       b.comment(comment),
		ConfAbbr:      b.str("conf_abbr", c.ConfAbbr),
		Year:          b.str("year", strconv.Itoa(c.Year)),
		EventName:     b.str("event_name", c.EventName),
		EventDateFrom: FormatDate(c.EventDate[0]),
		EventDateTo:   FormatDate(c.EventDate[1]),
		EventCity:     b.strs("event_city", c.EventCity),
		EventVenue:    b.strs("event_venue", c.EventVenue),
		EventWebURL:   b.url("event_web_url", c.EventWebURL),
		Cooperators:   b.groups("cooperators", c.Cooperators[:]),
		Publication:   b.str("publication", c.Publication),
		DatePublished: FormatDate(c.DatePublished),
		Publisher:     b.str("publisher", c.Publisher),
	}
	if b.err != nil {
		return MetaCommon{}, b.err
	}
	return m, nil
}

// fieldBuilder runs field validators in sequence and keeps the first error,
// so record constructors read as a single struct literal.
type fieldBuilder struct {
	record string
	err    error
}

func (b *fieldBuilder) apply(field string, fn func() (string, error)) string {
	if b.err != nil {
		return ""
	}
	v, err := fn()
	if err != nil {
		b.err = fmt.Errorf("%s: %s: %w", b.record, field, err)
		return ""
	}
	return v
}

func (b *fieldBuilder) comment(v string) string {
	return b.apply("comment", func() (string, error) { return Comment(v) })
}

func (b *fieldBuilder) str(field, v string) string {
	return b.apply(field, func() (string, error) { return BoundedString(v) })
}

func (b *fieldBuilder) text(field, v string) string {
	return b.apply(field, func() (string, error) { return BoundedText(v) })
}

func (b *fieldBuilder) id(field, v string) string {
	return b.apply(field, func() (string, error) { return Identifier(v) })
}

func (b *fieldBuilder) url(field, v string) string {
	return b.apply(field, func() (string, error) { return URL(v) })
}

func (b *fieldBuilder) strs(field string, v []string) string {
	return b.apply(field, func() (string, error) { return JoinStrs(v) })
}

func (b *fieldBuilder) entities(field string, v []string) string {
	return b.apply(field, func() (string, error) { return JoinEntities(v) })
}

func (b *fieldBuilder) groups(field string, v [][]string) string {
	return b.apply(field, func() (string, error) { return JoinGroups(v) })
}

func (b *fieldBuilder) names(field string, v []string) string {
	return b.apply(field, func() (string, error) { return joinNames(v), nil })
}

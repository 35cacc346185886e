// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet converts the accepted-paper export of the submission system
// (CSV or Excel) into the session list used by every later stage.
package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// Column names of the submission-system export.
const (
	colDecision        = "Decision"
	colSessionName     = "Session Name"
	colSessionType     = "Session Type"
	colSessionCode     = "Session Code"
	colSessionLocation = "Session Location"
	colSessionStart    = "Session Start Time"
	colSessionEnd      = "Session End Time"
	colPaperID         = "Paper ID"
	colPaperTitle      = "Paper Title"
	colPaperOrder      = "Paper Order"
	colAbstract        = "Abstract"
	colKeywords        = "Keywords"
	colTrackName       = "Track Name"

	acceptDecision = "Accept"
	invitedTrack   = "Invited"
)

var timeLayouts = []string{"2006-01-02 15:04", "2006-01-02 15:04:05"}

// Options controls session construction.
type Options struct {
	TZOffsetHours    int
	PresentationTime time.Duration
	PlenaryTalkTime  time.Duration
	SheetName        string
}

// DefaultOptions returns 20-minute presentations, 60-minute plenary talks,
// and UTC times.
func DefaultOptions() Options {
	return Options{
		PresentationTime: 20 * time.Minute,
		PlenaryTalkTime:  60 * time.Minute,
	}
}

// OptionsFromConfig fills unset values of cfg with the defaults.
func OptionsFromConfig(cfg types.SheetConfig) Options {
	opts := DefaultOptions()
	opts.TZOffsetHours = cfg.TZOffsetHours
	opts.SheetName = cfg.SheetName
	if cfg.PresentationTime > 0 {
		opts.PresentationTime = cfg.PresentationTime
	}
	if cfg.PlenaryTalkTime > 0 {
		opts.PlenaryTalkTime = cfg.PlenaryTalkTime
	}
	return opts
}

// Convert reads the export at path, keeps accepted rows, and returns the
// sessions sorted by session code with papers sorted by order. A one-line
// summary is written to w.
func Convert(path string, opts Options, w io.Writer) ([]types.Session, error) {
	rows, err := ReadRows(path, opts.SheetName)
	if err != nil {
		return nil, err
	}
	accepted := Accepted(rows)

	sessions, err := BuildSessions(accepted, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := program.SortSessions(sessions); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	nSessions, nPapers := program.Counts(sessions)
	fmt.Fprintf(w, "Read %d rows (%d accepted): %d sessions, %d papers\n",
		len(rows), len(accepted), nSessions, nPapers)
	return sessions, nil
}

// Accepted returns the rows whose Decision column is "Accept".
func Accepted(rows []Row) []Row {
	var out []Row
	for _, r := range rows {
		if r.Get(colDecision) == acceptDecision {
			out = append(out, r)
		}
	}
	return out
}

// BuildSessions groups rows into sessions by session code, in first-seen
// order. Session details come from the first row of each session.
func BuildSessions(rows []Row, opts Options) ([]types.Session, error) {
	loc := time.FixedZone("", opts.TZOffsetHours*60*60)

	var sessions []types.Session
	byCode := make(map[string]int)

	for i, r := range rows {
		paper, err := buildPaper(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		code := r.Get(colSessionCode)
		if idx, ok := byCode[code]; ok {
			st := sessions[idx].StartTime.Add(opts.PresentationTime * time.Duration(paper.Order-1))
			paper.StartTime = &st
			sessions[idx].Papers = append(sessions[idx].Papers, paper)
			continue
		}

		session, err := buildSession(r, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		slot := opts.PresentationTime
		if paper.Plenary {
			slot = opts.PlenaryTalkTime
		}
		st := session.StartTime.Add(slot * time.Duration(paper.Order-1))
		paper.StartTime = &st
		session.Papers = []types.Paper{paper}

		byCode[code] = len(sessions)
		sessions = append(sessions, session)
	}

	for _, s := range sessions {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func buildSession(r Row, loc *time.Location) (types.Session, error) {
	name := r.Get(colSessionName)
	category, order, err := ParseCategory(name)
	if err != nil {
		return types.Session{}, err
	}
	start, err := parseTime(r.Get(colSessionStart), loc)
	if err != nil {
		return types.Session{}, fmt.Errorf("%s: %w", colSessionStart, err)
	}
	end, err := parseTime(r.Get(colSessionEnd), loc)
	if err != nil {
		return types.Session{}, fmt.Errorf("%s: %w", colSessionEnd, err)
	}

	chairs := []types.Person{}
	for i := 1; ; i++ {
		first, ok := r[fmt.Sprintf("Session Chair First%d", i)]
		if !ok {
			break
		}
		if strings.TrimSpace(first) == "" {
			continue
		}
		chairs = append(chairs, types.Person{
			Name:         joinName(first, r.Get(fmt.Sprintf("Session Chair Last%d", i))),
			Organization: r.Get(fmt.Sprintf("Session Chair Organization%d", i)),
		})
	}

	return types.Session{
		Name:          name,
		Type:          r.Get(colSessionType),
		Code:          r.Get(colSessionCode),
		Category:      category,
		CategoryOrder: order,
		Location:      r.Get(colSessionLocation),
		Chairs:        chairs,
		StartTime:     start,
		EndTime:       end,
	}, nil
}

func buildPaper(r Row) (types.Paper, error) {
	id, err := parseInt(r.Get(colPaperID))
	if err != nil {
		return types.Paper{}, fmt.Errorf("%s: %w", colPaperID, err)
	}
	order, err := parseInt(r.Get(colPaperOrder))
	if err != nil {
		return types.Paper{}, fmt.Errorf("%s: %w", colPaperOrder, err)
	}

	authors := []types.Person{}
	for i := 1; ; i++ {
		first, ok := r[fmt.Sprintf("First Name%d", i)]
		if !ok {
			break
		}
		if strings.TrimSpace(first) == "" {
			continue
		}
		authors = append(authors, types.Person{
			Name:         joinName(first, r.Get(fmt.Sprintf("Last Name%d", i))),
			Organization: r.Get(fmt.Sprintf("Organization%d", i)),
			Country:      r.Get(fmt.Sprintf("Country%d", i)),
		})
	}

	return types.Paper{
		ID:    id,
		Title: r.Get(colPaperTitle),
		Order: order,
		Contact: types.Person{
			Name:         joinName(r.Get("Contact First"), r.Get("Contact Last")),
			Organization: r.Get("Contact Organization"),
			Country:      r.Get("Contact Country"),
			Email:        r.Get("Contact Email"),
		},
		Abstract: r[colAbstract],
		Keywords: SplitKeywords(r.Get(colKeywords)),
		Authors:  authors,
		Plenary:  r.Get(colTrackName) == invitedTrack,
	}, nil
}

// ParseCategory derives the session category from its name. Names starting
// with P or I are plenary and invited sessions without a sub-index. Other
// names start with a bracketed tag: "(S3-4) Title" is special session 3,
// order 4; "(R5) Title" is regular session 5 without an order.
func ParseCategory(name string) (types.Category, *int, error) {
	if name == "" {
		return types.Category{}, nil, fmt.Errorf("empty session name")
	}
	switch name[0] {
	case 'P', 'I':
		return types.Category{Tag: strings.ToLower(name[:1])}, nil, nil
	}

	tag, _, _ := strings.Cut(name, " ")
	if len(tag) < 4 || tag[0] != '(' || tag[len(tag)-1] != ')' {
		return types.Category{}, nil, fmt.Errorf("session name %q: want a (S<n>-<m>) or (R<n>) prefix", name)
	}
	kind := types.CategoryRegular
	if tag[1] == 'S' {
		kind = types.CategorySpecial
	}

	numStr, orderStr, hasOrder := strings.Cut(tag[2:len(tag)-1], "-")
	num, err := strconv.Atoi(numStr)
	if err != nil {
		return types.Category{}, nil, fmt.Errorf("session name %q: category number: %w", name, err)
	}
	if !hasOrder {
		return types.NewCategory(kind, num), nil, nil
	}
	order, err := strconv.Atoi(orderStr)
	if err != nil {
		return types.Category{}, nil, fmt.Errorf("session name %q: category order: %w", name, err)
	}
	return types.NewCategory(kind, num), &order, nil
}

// SplitKeywords folds full-width characters (including the full-width
// comma) to their ASCII forms and splits the list on commas. The result
// is never nil.
func SplitKeywords(s string) []string {
	s = width.Fold.String(s)
	out := []string{}
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseInt accepts integers and the "6000.0" form spreadsheets produce for
// numeric cells.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

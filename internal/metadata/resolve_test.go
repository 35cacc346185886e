// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

var jst = time.FixedZone("JST", 9*60*60)

func testCommon() types.CommonInfo {
	return types.CommonInfo{
		ConfAbbr:      "NOLTA",
		Year:          2024,
		EventName:     "International Symposium on Nonlinear Theory and Its Applications",
		EventDate:     [2]types.Date{types.NewDate(2024, time.December, 3), types.NewDate(2024, time.December, 6)},
		EventCity:     []string{"Ha Long"},
		EventVenue:    []string{"Convention Center"},
		EventWebURL:   "https://nolta.example.org/2024/",
		Cooperators:   [4][]string{{"IEICE"}, {"Society A", "Society B"}, nil, {"City"}},
		Publication:   "Proceedings of NOLTA2024",
		DatePublished: types.NewDate(2024, time.November, 26),
		Publisher:     "IEICE",
	}
}

func TestBuildPapersEndToEnd(t *testing.T) {
	sessions := []types.Session{{
		Code:      "A2L",
		Category:  types.NewCategory("r", 2),
		StartTime: time.Date(2024, 12, 4, 9, 0, 0, 0, jst),
		EndTime:   time.Date(2024, 12, 4, 10, 40, 0, 0, jst),
		Papers: []types.Paper{{
			ID:       6000,
			Order:    1,
			Title:    "Chaos in Coupled Maps",
			Keywords: []string{"chaos", "-", "maps"},
			Authors: []types.Person{
				{Name: "Taro Yamada", Organization: "Kyoto University"},
				{Name: "Ada Lovelace", Organization: "UCL"},
			},
		}},
	}}

	papers, err := BuildPapers(sessions, nil)
	require.NoError(t, err)
	require.Len(t, papers, 1)

	p := papers[0]
	assert.Equal(t, "A2L1", p.Number)
	assert.Equal(t, "A2L", p.Session)
	assert.Equal(t, "", p.Filename)
	assert.Equal(t, "", p.PageFrom)
	assert.Equal(t, "", p.PageTo)
	assert.Equal(t, "", p.Awards)
	assert.Equal(t, "", p.Volume)
	assert.Equal(t, "chaos;maps", p.Keywords)
	assert.Equal(t, "Yamada Taro@@Lovelace Ada", p.Authors)
	assert.Equal(t, "Kyoto University@@UCL", p.Affils)
	assert.Len(t, p.Fields(), 13)
}

func TestBuildPapersWithPages(t *testing.T) {
	pages := types.PageRange{5, 8}
	sessions := []types.Session{{
		Code:   "B1",
		Papers: []types.Paper{{ID: 1, Order: 3, Title: "T", Pages: &pages}},
	}}
	papers, err := BuildPapers(sessions, nil)
	require.NoError(t, err)
	assert.Equal(t, "B13.pdf", papers[0].Filename)
	assert.Equal(t, "5", papers[0].PageFrom)
	assert.Equal(t, "8", papers[0].PageTo)
}

func TestBuildPapersAwards(t *testing.T) {
	sessions := []types.Session{{
		Code: "A2L",
		Papers: []types.Paper{
			{ID: 1, Order: 21, Title: "Awarded"},
			{ID: 2, Order: 22, Title: "Not awarded"},
		},
	}}
	awards := []types.Award{
		{ID: "A2L21", Awards: []string{"Best Paper"}},
		{ID: "A2L21", Awards: []string{"Shadowed"}},
	}

	papers, err := BuildPapers(sessions, awards)
	require.NoError(t, err)
	require.Len(t, papers, 2)
	assert.Equal(t, "Best Paper", papers[0].Awards)
	assert.Equal(t, "", papers[1].Awards)
}

func TestBuildPapersInvalidTitle(t *testing.T) {
	sessions := []types.Session{{
		Code:   "A1",
		Papers: []types.Paper{{ID: 1, Order: 1, Title: "two\nlines"}},
	}}
	_, err := BuildPapers(sessions, nil)
	var verr *ValidationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "A11")
	assert.Contains(t, err.Error(), "title")
}

func TestBuildSessionsOrganizers(t *testing.T) {
	special := types.Session{
		Code:      "C3",
		Name:      "Special Session: Reservoir Computing",
		Category:  types.NewCategory("s", 3),
		StartTime: time.Date(2024, 12, 5, 13, 0, 0, 0, jst),
		EndTime:   time.Date(2024, 12, 5, 14, 40, 0, 0, jst),
		Chairs:    []types.Person{{Name: "Hana Sato", Organization: "Tokyo Tech"}},
	}
	regular := types.Session{
		Code:      "A2L",
		Name:      "Chaos",
		Category:  types.NewCategory("r", 2),
		StartTime: time.Date(2024, 12, 4, 9, 0, 0, 0, jst),
		EndTime:   time.Date(2024, 12, 4, 10, 40, 0, 0, jst),
	}
	organizers := []types.SSOrganizer{{
		Category: types.NewCategory("s", 3),
		Title:    "Reservoir Computing",
		Organizers: []types.Person{
			{Name: "Ken Ito", Organization: "NTT"},
			{Name: "Mei Wong", Organization: "HKU"},
		},
	}}

	got, err := BuildSessions([]types.Session{special, regular}, organizers, testCommon(), "ss.json")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []string{
		"", "C3", "Special Session: Reservoir Computing", "2024-12-05",
		"Ito Ken@@Wong Mei", "NTT@@HKU", "Sato Hana", "Tokyo Tech",
		"Ha Long", "Convention Center",
	}, got[0].Fields())

	assert.Equal(t, "", got[1].Organizers)
	assert.Equal(t, "", got[1].OrgAffils)
	assert.Equal(t, "2024-12-04", got[1].Date)
}

func TestBuildSessionsMissingOrganizer(t *testing.T) {
	special := types.Session{
		Code:     "C3",
		Name:     "Special",
		Category: types.NewCategory("s", 3),
	}
	other := []types.SSOrganizer{{Category: types.NewCategory("s", 4)}}

	_, err := BuildSessions([]types.Session{special}, other, testCommon(), "ss_organizers.json")
	require.Error(t, err)

	var nf *program.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "C3", nf.Key)
	assert.Equal(t, "ss_organizers.json", nf.Source)
}

func TestBuildSessionsRegularIgnoresOrganizers(t *testing.T) {
	regular := types.Session{Code: "A1", Name: "Regular", Category: types.NewCategory("r", 1)}
	got, err := BuildSessions([]types.Session{regular}, nil, testCommon(), "ss.json")
	require.NoError(t, err)
	assert.Equal(t, "", got[0].Organizers)
}

func TestBuildCommon(t *testing.T) {
	got, err := BuildCommon(testCommon())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"", "", "NOLTA", "2024", "",
		"International Symposium on Nonlinear Theory and Its Applications",
		"2024-12-03", "2024-12-06", "Ha Long", "Convention Center",
		"https://nolta.example.org/2024/", "IEICE/Society A;Society B//City",
		"Proceedings of NOLTA2024", "2024-11-26", "", "IEICE",
	}, got.Fields())
}

func TestBuildCommonRejectsFTP(t *testing.T) {
	c := testCommon()
	c.EventWebURL = "ftp://x.com"
	_, err := BuildCommon(c)
	var verr *ValidationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "url", verr.Kind)
}

func TestNewMetaSessionRejectsComment(t *testing.T) {
	_, err := NewMetaSession(SessionInput{Comment: "x", Number: "A1", Name: "n"})
	assert.Error(t, err)

	m, err := NewMetaSession(SessionInput{Comment: "#", Number: "A1", Name: "n"})
	require.NoError(t, err)
	assert.Equal(t, "#", m.Comment)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

var header = []string{
	"Decision", "Session Name", "Session Type", "Session Code", "Session Location",
	"Session Start Time", "Session End Time",
	"Session Chair First1", "Session Chair Last1", "Session Chair Organization1",
	"Paper ID", "Paper Title", "Paper Order",
	"Contact First", "Contact Last", "Contact Organization", "Contact Country", "Contact Email",
	"Abstract", "Keywords",
	"First Name1", "Last Name1", "Organization1", "Country1",
	"First Name2", "Last Name2", "Organization2", "Country2",
	"Track Name",
}

var records = [][]string{
	{"Accept", "(S3-4) Reservoir Computing", "Lecture", "C3", "Room C",
		"2024-12-04 13:00", "2024-12-04 14:40", "Hana", "Sato", "Tokyo Tech",
		"6002", "Physical Reservoirs", "2",
		"Mei", "Wong", "HKU", "China", "mei@example.org",
		"Second abstract", "reservoir， physics",
		"Mei", "Wong", "HKU", "China", "", "", "", "",
		"Regular"},
	{"Reject", "(R1) Chaos", "Lecture", "A1", "Room A",
		"2024-12-04 09:00", "2024-12-04 10:40", "", "", "",
		"7000", "Rejected", "1", "X", "Y", "Z", "", "", "", "", "", "", "", "", "", "", "", "",
		"Regular"},
	{"Accept", "(S3-4) Reservoir Computing", "Lecture", "C3", "Room C",
		"2024-12-04 13:00", "2024-12-04 14:40", "Hana", "Sato", "Tokyo Tech",
		"6001", "Echo States", "1",
		"Ken", "Ito", "NTT", "Japan", "ito@example.org",
		"First abstract\nwith two lines", "reservoir, memory, -",
		"Ken", "Ito", "NTT", "Japan", "Ada", "Lovelace", "UCL", "UK",
		"Regular"},
	{"Accept", "Plenary 1", "Plenary", "P1", "Main Hall",
		"2024-12-04 09:00", "2024-12-04 11:00", "", "", "",
		"1", "Keynote", "1",
		"Alan", "Kay", "VPRI", "USA", "alan@example.org",
		"", "",
		"Alan", "Kay", "VPRI", "USA", "", "", "", "",
		"Invited"},
	{"Accept", "Plenary 1", "Plenary", "P1", "Main Hall",
		"2024-12-04 09:00", "2024-12-04 11:00", "", "", "",
		"2", "Second Keynote", "2",
		"Grace", "Hopper", "Navy", "USA", "grace@example.org",
		"", "",
		"Grace", "Hopper", "Navy", "USA", "", "", "", "",
		"Invited"},
}

func writeCSVFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(header))
	require.NoError(t, w.WriteAll(records))
	require.NoError(t, os.WriteFile(path, append([]byte("\ufeff"), buf.Bytes()...), 0o644))
	return path
}

func writeXLSXFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.xlsx")
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Accepted"
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := rec
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func checkSessions(t *testing.T, sessions []types.Session) {
	t.Helper()
	jst := time.FixedZone("", 9*60*60)

	require.Len(t, sessions, 2)
	// C3 sorts before P1 (33 < 161).
	c3, p1 := sessions[0], sessions[1]
	assert.Equal(t, "C3", c3.Code)
	assert.Equal(t, "P1", p1.Code)

	assert.True(t, c3.Category.Equal(types.NewCategory("s", 3)))
	require.NotNil(t, c3.CategoryOrder)
	assert.Equal(t, 4, *c3.CategoryOrder)
	assert.Equal(t, []types.Person{{Name: "Hana Sato", Organization: "Tokyo Tech"}}, c3.Chairs)
	assert.True(t, c3.StartTime.Equal(time.Date(2024, 12, 4, 13, 0, 0, 0, jst)))

	require.Len(t, c3.Papers, 2)
	first, second := c3.Papers[0], c3.Papers[1]
	assert.Equal(t, 6001, first.ID)
	assert.Equal(t, []string{"reservoir", "memory", "-"}, first.Keywords)
	assert.Equal(t, "First abstract\nwith two lines", first.Abstract)
	require.Len(t, first.Authors, 2)
	assert.Equal(t, "Ada Lovelace", first.Authors[1].Name)
	assert.Equal(t, "ito@example.org", first.Contact.Email)

	assert.Equal(t, []string{"reservoir", "physics"}, second.Keywords)
	require.Len(t, second.Authors, 1)
	// The first row seen for C3 was order 2, so it is placed 20 minutes in.
	require.NotNil(t, second.StartTime)
	assert.True(t, second.StartTime.Equal(time.Date(2024, 12, 4, 13, 20, 0, 0, jst)))
	require.NotNil(t, first.StartTime)
	assert.True(t, first.StartTime.Equal(time.Date(2024, 12, 4, 13, 0, 0, 0, jst)))

	assert.Equal(t, types.Category{Tag: "p"}.Key(), p1.Category.Key())
	assert.Nil(t, p1.CategoryOrder)
	// Sessions without chairs and papers without keywords keep empty lists.
	assert.Equal(t, []types.Person{}, p1.Chairs)
	assert.Equal(t, []string{}, p1.Papers[0].Keywords)
	require.Len(t, p1.Papers, 2)
	assert.True(t, p1.Papers[0].Plenary)
	// Later papers of a session use the presentation slot.
	assert.True(t, p1.Papers[1].StartTime.Equal(time.Date(2024, 12, 4, 9, 20, 0, 0, jst)))
}

func TestConvertCSV(t *testing.T) {
	opts := DefaultOptions()
	opts.TZOffsetHours = 9

	var log bytes.Buffer
	sessions, err := Convert(writeCSVFixture(t), opts, &log)
	require.NoError(t, err)
	checkSessions(t, sessions)
	assert.Contains(t, log.String(), "Read 5 rows (4 accepted): 2 sessions, 4 papers")
}

func TestConvertXLSX(t *testing.T) {
	opts := DefaultOptions()
	opts.TZOffsetHours = 9
	opts.SheetName = "Accepted"

	var log bytes.Buffer
	sessions, err := Convert(writeXLSXFixture(t), opts, &log)
	require.NoError(t, err)
	checkSessions(t, sessions)
}

func TestConvertMissingSheet(t *testing.T) {
	opts := DefaultOptions()
	opts.SheetName = "NoSuchSheet"
	_, err := Convert(writeXLSXFixture(t), opts, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name      string
		wantTag   string
		wantIndex *int
		wantOrder *int
		wantErr   bool
	}{
		{name: "Plenary 1", wantTag: "p"},
		{name: "Invited 2", wantTag: "i"},
		{name: "(S3-4) xxx", wantTag: "s", wantIndex: ptr(3), wantOrder: ptr(4)},
		{name: "(R5-6) yyy", wantTag: "r", wantIndex: ptr(5), wantOrder: ptr(6)},
		{name: "(R3) zzz", wantTag: "r", wantIndex: ptr(3)},
		{name: "Regular without tag", wantErr: true},
		{name: "(Sx) bad", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, order, err := ParseCategory(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTag, cat.Tag)
			assert.Equal(t, tt.wantIndex, cat.Index)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"chaos", "bifurcation"}, SplitKeywords("chaos， bifurcation"))
	assert.Equal(t, []string{"AI", "graphs"}, SplitKeywords("ＡＩ,graphs"))
	assert.Equal(t, []string{}, SplitKeywords(""))
}

func TestParseInt(t *testing.T) {
	n, err := parseInt("6000.0")
	require.NoError(t, err)
	assert.Equal(t, 6000, n)

	_, err = parseInt("6000.5")
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(types.SheetConfig{TZOffsetHours: 7, PlenaryTalkTime: 45 * time.Minute})
	assert.Equal(t, 7, opts.TZOffsetHours)
	assert.Equal(t, 20*time.Minute, opts.PresentationTime)
	assert.Equal(t, 45*time.Minute, opts.PlenaryTalkTime)
}

func ptr(i int) *int { return &i }

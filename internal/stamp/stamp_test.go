// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stamp

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// fakeStamper records calls and pretends every input has pageCount[in]
// pages. Stamp copies the input to the output so MergeAll finds the files.
type fakeStamper struct {
	pageCount map[string]int
	failOn    string
	stamped   []string
	merged    []string
	mergedTo  string
}

func (f *fakeStamper) Stamp(in, out, overlay string, start int, encl types.Enclosure) (int, error) {
	if filepath.Base(in) == f.failOn {
		return 0, errors.New("broken pdf")
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return 0, err
	}
	f.stamped = append(f.stamped, filepath.Base(out))
	return start + f.pageCount[filepath.Base(in)], nil
}

func (f *fakeStamper) Merge(ins []string, out string) error {
	f.merged = ins
	f.mergedTo = out
	return nil
}

func testSessions() []types.Session {
	return []types.Session{
		{Code: "P1", Papers: []types.Paper{{ID: 1, Order: 1, Plenary: true}}},
		{Code: "A2L", Papers: []types.Paper{
			{ID: 6000, Order: 1},
			{ID: 6001, Order: 2},
		}},
		{Code: "B1R", Papers: []types.Paper{{ID: 6100, Order: 1}}},
	}
}

func setupInputs(t *testing.T, ids ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, id := range ids {
		require.NoError(t, os.WriteFile(filepath.Join(dir, id+".pdf"), []byte("%PDF "+id), 0o644))
	}
	return dir
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		encl types.Enclosure
		want string
	}{
		{types.EnclosureParens, "( 7 )"},
		{types.EnclosureEnDash, "– 7 –"},
		{types.EnclosureEmDash, "— 7 —"},
		{types.EnclosureMinus, "− 7 −"},
		{types.EnclosurePage, "p. 7"},
		{types.EnclosurePageUC, "P. 7"},
		{"", "– 7 –"},
	}
	for _, tt := range tests {
		got, err := FormatNumber(7, tt.encl)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, string(tt.encl))
	}

	_, err := FormatNumber(7, "brackets")
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(types.StampConfig{InputDir: "in", OutputDir: "out"})
	assert.Equal(t, types.EnclosureEnDash, opts.Enclosure)
	assert.Equal(t, 1, opts.StartPage)

	opts = OptionsFromConfig(types.StampConfig{Enclosure: types.EnclosurePage, StartPage: 11})
	assert.Equal(t, types.EnclosurePage, opts.Enclosure)
	assert.Equal(t, 11, opts.StartPage)
}

func TestStampAll(t *testing.T) {
	in := setupInputs(t, "6000", "6001", "6100")
	out := filepath.Join(t.TempDir(), "stamped")
	st := &fakeStamper{pageCount: map[string]int{"6000.pdf": 4, "6001.pdf": 2, "6100.pdf": 3}}
	sessions := testSessions()

	var buf bytes.Buffer
	got, result, err := StampAll(st, sessions, Options{InputDir: in, OutputDir: out, StartPage: 3}, &buf)
	require.NoError(t, err)

	assert.Equal(t, BatchResult{Stamped: 3, Skipped: 1}, result)
	assert.Equal(t, 4, result.Total())
	assert.False(t, result.HasFailures())
	assert.Equal(t, []string{"A2L1.pdf", "A2L2.pdf", "B1R1.pdf"}, st.stamped)

	assert.Nil(t, got[0].Papers[0].Pages)
	assert.Equal(t, &types.PageRange{3, 6}, got[1].Papers[0].Pages)
	assert.Equal(t, &types.PageRange{7, 8}, got[1].Papers[1].Pages)
	assert.Equal(t, &types.PageRange{9, 11}, got[2].Papers[0].Pages)

	// The input sessions are left untouched.
	assert.Nil(t, sessions[1].Papers[0].Pages)

	log := buf.String()
	assert.Contains(t, log, "skipped: P11 (plenary)")
	assert.Contains(t, log, "stamped: A2L2 (pp. 7-8)")
	assert.Contains(t, log, "Batch summary: 3 stamped, 1 skipped, 0 failed (total: 4)")
}

func TestStampAllStopsOnFailure(t *testing.T) {
	in := setupInputs(t, "6000", "6001", "6100")
	st := &fakeStamper{
		pageCount: map[string]int{"6000.pdf": 4, "6001.pdf": 2, "6100.pdf": 3},
		failOn:    "6001.pdf",
	}

	var buf bytes.Buffer
	got, result, err := StampAll(st, testSessions(), Options{InputDir: in, OutputDir: t.TempDir()}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A2L2")
	assert.Nil(t, got)
	assert.Equal(t, BatchResult{Stamped: 1, Skipped: 1, Failed: 1}, result)
	assert.True(t, result.HasFailures())
	assert.Equal(t, []string{"A2L1.pdf"}, st.stamped)
	assert.Contains(t, buf.String(), "failed:  A2L2")
}

func TestStampAllMissingInput(t *testing.T) {
	in := setupInputs(t, "6000")
	st := &fakeStamper{pageCount: map[string]int{"6000.pdf": 1}}
	_, result, err := StampAll(st, testSessions(), Options{InputDir: in, OutputDir: t.TempDir()}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, 1, result.Failed)
}

func TestStampAllUnknownEnclosure(t *testing.T) {
	st := &fakeStamper{}
	_, _, err := StampAll(st, testSessions(), Options{OutputDir: t.TempDir(), Enclosure: "brackets"}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.Empty(t, st.stamped)
}

func TestStampSingle(t *testing.T) {
	in := setupInputs(t, "42")
	st := &fakeStamper{pageCount: map[string]int{"42.pdf": 5}}
	pages, err := StampSingle(st, filepath.Join(in, "42.pdf"), filepath.Join(t.TempDir(), "X1.pdf"), "", 10, types.EnclosurePage)
	require.NoError(t, err)
	assert.Equal(t, types.PageRange{10, 14}, pages)

	// A file without pages cannot occupy a range.
	st.pageCount["42.pdf"] = 0
	_, err = StampSingle(st, filepath.Join(in, "42.pdf"), filepath.Join(t.TempDir(), "X1.pdf"), "", 10, types.EnclosurePage)
	assert.Error(t, err)
}

func TestMergeAll(t *testing.T) {
	dir := setupInputs(t, "A2L1", "A2L2", "B1R1")
	st := &fakeStamper{}
	out := filepath.Join(t.TempDir(), "proceedings.pdf")

	var buf bytes.Buffer
	n, err := MergeAll(st, testSessions(), dir, out, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{
		filepath.Join(dir, "A2L1.pdf"),
		filepath.Join(dir, "A2L2.pdf"),
		filepath.Join(dir, "B1R1.pdf"),
	}, st.merged)
	assert.Equal(t, out, st.mergedTo)
	assert.Contains(t, buf.String(), "merged: 3 files")
}

func TestMergeAllErrors(t *testing.T) {
	st := &fakeStamper{}
	_, err := MergeAll(st, testSessions(), setupInputs(t, "A2L1"), "out.pdf", &bytes.Buffer{})
	assert.Error(t, err, "missing A2L2.pdf")
	assert.Nil(t, st.merged)

	_, err = MergeAll(st, nil, t.TempDir(), "out.pdf", &bytes.Buffer{})
	assert.Error(t, err)
}

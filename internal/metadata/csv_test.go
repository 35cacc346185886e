// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "template.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir, "コメント,番号,名前\ncomment,number,name\nignored,row,here\n")

	records := []MetaSession{
		{Number: "A1", Name: "Chaos, Order"},
		{Comment: "#", Number: "A2", Name: "Networks"},
	}
	out := filepath.Join(dir, "out", "metadata_session.csv")
	require.NoError(t, WriteCSV(out, tmpl, records))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	want := "コメント,番号,名前\r\n" +
		"comment,number,name\r\n" +
		`,A1,"Chaos, Order",,,,,,,` + "\r\n" +
		"#,A2,Networks,,,,,,,\r\n"
	assert.Equal(t, want, string(data))

	_, err = os.Stat(out + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteCSVMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.csv")
	err := WriteCSV(filepath.Join(dir, "out.csv"), missing, []MetaPaper{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}

func TestReadTemplateHeadersTooShort(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir, "only,one,row\n")
	_, err := ReadTemplateHeaders(tmpl)
	assert.Error(t, err)
}

func TestWriteRecordsNoRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, [][]string{{"a"}, {"b"}}, []MetaCommon(nil)))
	assert.Equal(t, "a\r\nb\r\n", buf.String())
}

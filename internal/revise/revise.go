// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package revise turns the reviewers' check sheet into revision requests
// and tracks which of the requested papers came back revised.
//
// The check sheet has one row per stamped PDF. PDF_NAME names the file
// (e.g. "A2L1.pdf"), EXTRA_COMMENTS holds an optional hint, and every other
// column whose header is an error key from the message table flags that
// error with the value 1.
package revise

import (
	"cmp"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/internal/sheet"
	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// Column headers of the message table and the check sheet.
const (
	ColErrKey        = "ERR_KEY"
	ColErrMsg        = "ERR_MSG"
	ColPDFName       = "PDF_NAME"
	ColExtraComments = "EXTRA_COMMENTS"
)

// Message is one entry of the error message table.
type Message struct {
	Key  string
	Text string
}

// LoadErrorMessages reads the ERR_KEY/ERR_MSG table, keeping file order.
// Later duplicates of a key replace the earlier text in place.
func LoadErrorMessages(path string) ([]Message, error) {
	rows, err := sheet.ReadRows(path, "")
	if err != nil {
		return nil, fmt.Errorf("loading error messages: %w", err)
	}

	var msgs []Message
	index := make(map[string]int)
	for i, row := range rows {
		key := row.Get(ColErrKey)
		if key == "" {
			return nil, fmt.Errorf("loading error messages from %s: row %d: missing %s", path, i+2, ColErrKey)
		}
		if j, ok := index[key]; ok {
			msgs[j].Text = row.Get(ColErrMsg)
			continue
		}
		index[key] = len(msgs)
		msgs = append(msgs, Message{Key: key, Text: row.Get(ColErrMsg)})
	}
	return msgs, nil
}

// LoadSheet reads the check sheet and resolves each row against sessions.
// dataSource names the session file in not-found errors. A row whose PDF
// does not match a paper fails the whole sheet.
func LoadSheet(path string, messages []Message, sessions []types.Session, dataSource string) ([]types.ReviseItem, error) {
	rows, err := sheet.ReadRows(path, "")
	if err != nil {
		return nil, fmt.Errorf("loading check sheet: %w", err)
	}

	items := make([]types.ReviseItem, 0, len(rows))
	for i, row := range rows {
		pdf := row.Get(ColPDFName)
		code, order, err := ParsePDFName(pdf)
		if err != nil {
			return nil, fmt.Errorf("check sheet %s: row %d: %w", path, i+2, err)
		}
		_, paper, err := program.FindPaper(sessions, code, order, dataSource)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", pdf, err)
		}

		items = append(items, types.ReviseItem{
			PDFName: pdf,
			Errors:  flaggedErrors(row, messages),
			ExtMsg:  row.Get(ColExtraComments),
			PaperID: paper.ID,
			Title:   paper.Title,
			Contact: paper.Contact,
		})
	}
	return items, nil
}

// ParsePDFName splits a stamped file name such as "A2L1.pdf" into the
// session code "A2L" and the paper order 1. The order is the last
// character before the first dot.
func ParsePDFName(name string) (string, int, error) {
	base, _, _ := strings.Cut(name, ".")
	if len(base) < 2 {
		return "", 0, fmt.Errorf("pdf name %q: want <session code><order>.pdf", name)
	}
	order, err := strconv.Atoi(base[len(base)-1:])
	if err != nil {
		return "", 0, fmt.Errorf("pdf name %q: order is not a digit", name)
	}
	return base[:len(base)-1], order, nil
}

func flaggedErrors(row sheet.Row, messages []Message) []string {
	errs := []string{}
	for _, m := range messages {
		v := row.Get(m.Key)
		if v == "" {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && f == 1 {
			errs = append(errs, m.Text)
		}
	}
	return errs
}

// RevisedIDs returns the sorted, distinct base names of all .pdf files
// below dir. Revised papers are uploaded as <paper id>.pdf.
func RevisedIDs(dir string) ([]string, error) {
	seen := make(map[string]bool)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".pdf") {
			seen[strings.TrimSuffix(d.Name(), ".pdf")] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning revised PDFs in %s: %w", dir, err)
	}
	return sortedKeys(seen), nil
}

// AllIDs returns the sorted, distinct paper ids of items.
func AllIDs(items []types.ReviseItem) []string {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		seen[strconv.Itoa(it.PaperID)] = true
	}
	return sortedKeys(seen)
}

// ItemsByIDs returns the first item for each id, in ids order.
func ItemsByIDs(items []types.ReviseItem, ids []string) ([]types.ReviseItem, error) {
	index := make(map[string]int, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		index[strconv.Itoa(items[i].PaperID)] = i
	}

	out := make([]types.ReviseItem, 0, len(ids))
	for _, id := range ids {
		i, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("paper id %s not found in revise items", id)
		}
		out = append(out, items[i])
	}
	return out, nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareIDs)
	return keys
}

// compareIDs orders numeric ids numerically and everything else after
// them, lexically.
func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

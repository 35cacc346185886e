// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// templateHeaderRows is the number of header rows copied from a template.
const templateHeaderRows = 2

// ReadTemplateHeaders returns the first two rows of the CSV template at path.
func ReadTemplateHeaders(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV template %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headers := make([][]string, 0, templateHeaderRows)
	for len(headers) < templateHeaderRows {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("CSV template %s: want %d header rows, found %d", path, templateHeaderRows, len(headers))
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV template %s: %w", path, err)
		}
		headers = append(headers, row)
	}
	return headers, nil
}

// WriteRecords writes the header rows followed by one row per record.
func WriteRecords[R Record](w io.Writer, headers [][]string, records []R) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.WriteAll(headers); err != nil {
		return fmt.Errorf("writing CSV headers: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(rec.Fields()); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV copies the two header rows of templatePath into a new CSV at
// path and appends one row per record. The file is written to a temporary
// name first and renamed into place.
func WriteCSV[R Record](path, templatePath string, records []R) error {
	headers, err := ReadTemplateHeaders(templatePath)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if err := WriteRecords(f, headers, records); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	return nil
}

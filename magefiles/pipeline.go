//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Pipeline groups targets that run the publication steps with the built CLI.
type Pipeline mg.Namespace

func cli(args ...string) error {
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Data converts export.xlsx (or export.csv) into data.json.
func (Pipeline) Data() error {
	mg.Deps(Build)
	src := "export.xlsx"
	if _, err := os.Stat(src); err != nil {
		src = "export.csv"
	}
	return cli("sheet", "convert", src, "-o", "data.json")
}

// Stamp numbers every paper PDF in pdfs/ into stamped/ and records the page ranges.
func (Pipeline) Stamp() error {
	mg.Deps(Build)
	return cli("pdf", "stamp", "--input-dir", "pdfs", "--output-dir", "stamped")
}

// Proceedings merges the stamped PDFs into proceedings.pdf.
func (Pipeline) Proceedings() error {
	mg.Deps(Pipeline.Stamp)
	return cli("pdf", "merge", "--dir", "stamped", "-o", "proceedings.pdf")
}

// Catalog rebuilds the program catalog from data.json.
func (Pipeline) Catalog() error {
	mg.Deps(Build)
	return cli("catalog", "index", "--data", "data.json")
}

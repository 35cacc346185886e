// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stamp numbers the pages of the accepted papers and merges them
// into the proceedings volume. Page numbers run continuously across the
// program: each paper starts where the previous one ended. The PDF work is
// done behind the Stamper interface so the numbering logic can be tested
// without real PDFs.
package stamp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// Stamper stamps and merges PDF files. The production implementation is
// PDFStamper.
type Stamper interface {
	// Stamp writes in to out with a page number on every page, starting at
	// start, and the first page of overlay on the first page. It returns
	// the page number that follows the last stamped page.
	Stamp(in, out, overlay string, start int, encl types.Enclosure) (next int, err error)

	// Merge concatenates ins, in order, into out.
	Merge(ins []string, out string) error
}

// BatchResult holds the outcome of a stamping run.
type BatchResult struct {
	Stamped int
	Skipped int
	Failed  int
}

// Total returns the total number of papers processed.
func (r BatchResult) Total() int {
	return r.Stamped + r.Skipped + r.Failed
}

// HasFailures reports whether any paper failed stamping.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Options controls a stamping run.
type Options struct {
	Overlay   string
	InputDir  string
	OutputDir string
	Enclosure types.Enclosure
	StartPage int
}

// OptionsFromConfig fills Options from the stamp configuration, defaulting
// to en-dash enclosures starting at page 1.
func OptionsFromConfig(cfg types.StampConfig) Options {
	opts := Options{
		Overlay:   cfg.Overlay,
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Enclosure: cfg.Enclosure,
		StartPage: cfg.StartPage,
	}
	if opts.Enclosure == "" {
		opts.Enclosure = types.EnclosureEnDash
	}
	if opts.StartPage < 1 {
		opts.StartPage = 1
	}
	return opts
}

// FormatNumber decorates page number n with the enclosure.
func FormatNumber(n int, encl types.Enclosure) (string, error) {
	s := strconv.Itoa(n)
	switch encl {
	case types.EnclosureParens:
		return "( " + s + " )", nil
	case types.EnclosureEnDash, "":
		return "– " + s + " –", nil
	case types.EnclosureEmDash:
		return "— " + s + " —", nil
	case types.EnclosureMinus:
		return "− " + s + " −", nil
	case types.EnclosurePage:
		return "p. " + s, nil
	case types.EnclosurePageUC:
		return "P. " + s, nil
	}
	return "", fmt.Errorf("unknown page number enclosure %q", encl)
}

// StampAll stamps every non-plenary paper of sessions in program order.
// Paper <id>.pdf in the input directory becomes <code><order>.pdf in the
// output directory. It returns a copy of sessions with the page ranges
// filled in. A failure stops the run since the numbering of the following
// papers depends on it.
func StampAll(st Stamper, sessions []types.Session, opts Options, w io.Writer) ([]types.Session, BatchResult, error) {
	var result BatchResult
	if _, err := FormatNumber(1, opts.Enclosure); err != nil {
		return nil, result, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, result, fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
	}

	out := cloneSessions(sessions)
	page := max(opts.StartPage, 1)

	for si := range out {
		s := &out[si]
		for pi := range s.Papers {
			p := &s.Papers[pi]
			number := p.Number(s.Code)
			if p.Plenary {
				fmt.Fprintf(w, "skipped: %s (plenary)\n", number)
				result.Skipped++
				continue
			}

			in := filepath.Join(opts.InputDir, strconv.Itoa(p.ID)+".pdf")
			dst := filepath.Join(opts.OutputDir, number+".pdf")
			pages, err := StampSingle(st, in, dst, opts.Overlay, page, opts.Enclosure)
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", number, err)
				result.Failed++
				printSummary(w, result)
				return nil, result, fmt.Errorf("stamping paper %s: %w", number, err)
			}

			p.Pages = &pages
			page = pages.To() + 1
			fmt.Fprintf(w, "stamped: %s (pp. %d-%d)\n", number, pages.From(), pages.To())
			result.Stamped++
		}
	}

	printSummary(w, result)
	return out, result, nil
}

// StampSingle stamps one file starting at page start and returns the page
// range it now occupies.
func StampSingle(st Stamper, in, out, overlay string, start int, encl types.Enclosure) (types.PageRange, error) {
	next, err := st.Stamp(in, out, overlay, start, encl)
	if err != nil {
		return types.PageRange{}, err
	}
	pages, err := types.NewPageRange(start, next-1)
	if err != nil {
		return types.PageRange{}, fmt.Errorf("stamping %s: %w", in, err)
	}
	return pages, nil
}

// MergeAll merges the stamped <code><order>.pdf files of all non-plenary
// papers, in program order, into out. It returns the number of files merged.
func MergeAll(st Stamper, sessions []types.Session, inputDir, out string, w io.Writer) (int, error) {
	var ins []string
	for _, s := range sessions {
		for _, p := range s.Papers {
			if p.Plenary {
				continue
			}
			ins = append(ins, filepath.Join(inputDir, p.Number(s.Code)+".pdf"))
		}
	}
	if len(ins) == 0 {
		return 0, fmt.Errorf("merging into %s: no papers to merge", out)
	}
	for _, in := range ins {
		if _, err := os.Stat(in); err != nil {
			return 0, fmt.Errorf("merging into %s: %w", out, err)
		}
	}
	if err := st.Merge(ins, out); err != nil {
		return 0, fmt.Errorf("merging into %s: %w", out, err)
	}
	fmt.Fprintf(w, "merged: %d files into %s\n", len(ins), out)
	return len(ins), nil
}

func printSummary(w io.Writer, r BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d stamped, %d skipped, %d failed (total: %d)\n",
		r.Stamped, r.Skipped, r.Failed, r.Total())
}

func cloneSessions(sessions []types.Session) []types.Session {
	out := make([]types.Session, len(sessions))
	for i, s := range sessions {
		s.Papers = append([]types.Paper(nil), s.Papers...)
		out[i] = s
	}
	return out
}

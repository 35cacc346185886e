// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stamp

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

const (
	// DefaultNumberDesc places page numbers at the bottom center.
	DefaultNumberDesc = "fontname:Helvetica, points:10, position:bc, offset:0 28, scalefactor:1 abs, rotation:0, fillcolor:#000000"

	// DefaultOverlayDesc lays the overlay page over the full first page.
	DefaultOverlayDesc = "position:c, scalefactor:1 rel, rotation:0"
)

// PDFStamper stamps and merges PDFs with pdfcpu. Numbers and overlays are
// added as on-top stamps.
type PDFStamper struct {
	conf        *model.Configuration
	numberDesc  string
	overlayDesc string
}

// NewPDFStamper creates a stamper with relaxed PDF validation, since
// submitted papers come from many different producers.
func NewPDFStamper() *PDFStamper {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFStamper{
		conf:        conf,
		numberDesc:  DefaultNumberDesc,
		overlayDesc: DefaultOverlayDesc,
	}
}

// Stamp writes in to out, numbering every page from start and stamping the
// first page of overlay onto page 1. An empty overlay stamps numbers only.
func (s *PDFStamper) Stamp(in, out, overlay string, start int, encl types.Enclosure) (int, error) {
	n, err := api.PageCountFile(in)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", in, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%s has no pages", in)
	}

	src := in
	for i := 1; i <= n; i++ {
		text, err := FormatNumber(start+i-1, encl)
		if err != nil {
			return 0, err
		}
		wm, err := api.TextWatermark(text, s.numberDesc, true, false, pdftypes.POINTS)
		if err != nil {
			return 0, fmt.Errorf("building page number stamp: %w", err)
		}
		if err := api.AddWatermarksFile(src, out, []string{strconv.Itoa(i)}, wm, s.conf); err != nil {
			return 0, fmt.Errorf("stamping page %d of %s: %w", i, in, err)
		}
		src = out
	}

	if overlay != "" {
		wm, err := api.PDFWatermark(overlay+":1", s.overlayDesc, true, false, pdftypes.POINTS)
		if err != nil {
			return 0, fmt.Errorf("loading overlay %s: %w", overlay, err)
		}
		if err := api.AddWatermarksFile(out, out, []string{"1"}, wm, s.conf); err != nil {
			return 0, fmt.Errorf("stamping overlay on %s: %w", out, err)
		}
	}
	return start + n, nil
}

// Merge concatenates ins into out.
func (s *PDFStamper) Merge(ins []string, out string) error {
	if err := api.MergeCreateFile(ins, out, false, s.conf); err != nil {
		return fmt.Errorf("merging %d files: %w", len(ins), err)
	}
	return nil
}

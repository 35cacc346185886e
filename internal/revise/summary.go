// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package revise

import (
	"fmt"
	"io"
	"strings"
)

// Summary compares the requested papers with the revised uploads.
type Summary struct {
	// All holds every requested paper id.
	All []string
	// Revised holds the requested ids with an uploaded revision.
	Revised []string
	// Missing holds the requested ids still waiting for a revision.
	Missing []string
	// Unexpected holds uploads that were never requested.
	Unexpected []string
}

// Summarize splits all into revised and missing ids.
func Summarize(all, revised []string) Summary {
	uploaded := make(map[string]bool, len(revised))
	for _, id := range revised {
		uploaded[id] = true
	}
	requested := make(map[string]bool, len(all))

	s := Summary{All: all}
	for _, id := range all {
		requested[id] = true
		if uploaded[id] {
			s.Revised = append(s.Revised, id)
		} else {
			s.Missing = append(s.Missing, id)
		}
	}
	for _, id := range revised {
		if !requested[id] {
			s.Unexpected = append(s.Unexpected, id)
		}
	}
	return s
}

// Rate returns the revised share of all requests in percent.
func (s Summary) Rate() float64 {
	if len(s.All) == 0 {
		return 0
	}
	return float64(len(s.Revised)) / float64(len(s.All)) * 100
}

// Report prints the summary as
//
//	12 = 3 + 9 (75.00 % revised)
//
// followed by the missing (-) and revised (+) id lists.
func (s Summary) Report(w io.Writer) {
	fmt.Fprintf(w, "%d = %d + %d (%.2f %% revised)\n\n", len(s.All), len(s.Missing), len(s.Revised), s.Rate())
	fmt.Fprintf(w, "- %s\n\n", strings.Join(s.Missing, ", "))
	fmt.Fprintf(w, "+ %s\n", strings.Join(s.Revised, ", "))
	if len(s.Unexpected) > 0 {
		fmt.Fprintf(w, "\n? %s\n", strings.Join(s.Unexpected, ", "))
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tex

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// SpecialSessions writes one block per organizer record listing the
// special sessions with the record's category and the organizers. Session
// names lose their first prefixWords words (the "(S3-4)" tag). Blocks are
// separated by \ssbreak.
func (r *Renderer) SpecialSessions(w io.Writer, sessions []types.Session, organizers []types.SSOrganizer, prefixWords int) error {
	blocks := make([]string, 0, len(organizers))
	for _, o := range organizers {
		var records []string
		for _, s := range sessions {
			if !s.Category.IsSpecial() || !s.Category.Equal(o.Category) {
				continue
			}
			rec, err := r.render("ssRecord.tex", struct{ Code, Name string }{
				Code: s.Code,
				Name: Escape(dropWords(s.Name, prefixWords)),
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}

		heading, names := organizerList(o.Organizers)
		orgs, err := r.render("ssOrgs.tex", struct{ Heading, Organizers string }{
			Heading:    heading,
			Organizers: Escape(names),
		})
		if err != nil {
			return err
		}

		block, err := r.render("ssSession.tex", struct{ Sessions, Organizers string }{
			Sessions:   strings.Join(records, "\\\\\n"),
			Organizers: orgs,
		})
		if err != nil {
			return fmt.Errorf("organizers %s: %w", o.Category, err)
		}
		blocks = append(blocks, block)
	}
	_, err := io.WriteString(w, strings.Join(blocks, "\\ssbreak\n"))
	return err
}

// organizerList formats "A (X)" for one organizer and "A (X), B (Y) and
// C (Z)" for several.
func organizerList(people []types.Person) (heading, names string) {
	format := func(p types.Person) string { return p.Name + " (" + p.Organization + ")" }
	switch len(people) {
	case 0:
		return "Organizers", ""
	case 1:
		return "Organizer", format(people[0])
	}
	head := make([]string, len(people)-1)
	for i, p := range people[:len(people)-1] {
		head[i] = format(p)
	}
	return "Organizers", strings.Join(head, ", ") + " and " + format(people[len(people)-1])
}

func dropWords(s string, n int) string {
	words := strings.Split(s, " ")
	if n >= len(words) {
		return ""
	}
	return strings.Join(words[n:], " ")
}

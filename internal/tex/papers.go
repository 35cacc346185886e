// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tex

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

const tba = `\tba`

type sessionData struct {
	Code, Title, Date, Place, Chairs, Entries string
}

type entryData struct {
	PID, Title, Authors, Abstract, PageFrom, PageTo, Keywords, PaperID, Indices string
}

// Papers writes one session environment per session with one paper entry
// per paper. Plenary papers use \pEntryPlenary. & and % are escaped over
// the whole output.
func (r *Renderer) Papers(w io.Writer, sessions []types.Session) error {
	var out strings.Builder
	for _, s := range sessions {
		entries := make([]string, 0, len(s.Papers))
		for _, p := range s.Papers {
			e, err := r.paperEntry(s, p)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}

		chairs := tba
		if len(s.Chairs) > 0 {
			parts := make([]string, len(s.Chairs))
			for i, c := range s.Chairs {
				parts[i] = c.Name + " (" + c.Organization + ")"
			}
			chairs = strings.Join(parts, ", ")
		}

		block, err := r.render("session.tex", sessionData{
			Code:    s.Code,
			Title:   s.Name,
			Date:    sessionDate(s.StartTime, s.EndTime),
			Place:   s.Location,
			Chairs:  chairs,
			Entries: strings.Join(entries, "\n"),
		})
		if err != nil {
			return fmt.Errorf("session %s: %w", s.Code, err)
		}
		out.WriteString(block)
		out.WriteString("\n")
	}
	_, err := io.WriteString(w, Escape(out.String()))
	return err
}

func (r *Renderer) paperEntry(s types.Session, p types.Paper) (string, error) {
	pid := p.Number(s.Code)

	authors := make([]string, len(p.Authors))
	var indices strings.Builder
	for i, a := range p.Authors {
		authors[i] = a.Name + ", (" + a.Organization + ")"
		indices.WriteString(IndexEntry(a.Name, pid))
	}

	abstract := p.Abstract
	if abstract == "-" {
		abstract = ""
	}

	var from, to int
	if p.Pages != nil {
		from, to = p.Pages.From(), p.Pages.To()
	}

	data := entryData{
		PID:      pid,
		Title:    p.Title,
		Authors:  strings.Join(authors, ", "),
		Abstract: abstract,
		PageFrom: strconv.Itoa(from),
		PageTo:   strconv.Itoa(to),
		Keywords: strings.Join(p.Keywords, ", "),
		PaperID:  strconv.Itoa(p.ID),
		Indices:  indices.String(),
	}
	name := "pEntry.tex"
	if p.Plenary {
		name = "pEntryPlenary.tex"
	}
	e, err := r.render(name, data)
	if err != nil {
		return "", fmt.Errorf("paper %s: %w", pid, err)
	}
	return e, nil
}

// IndexEntry returns the author-index macro for a paper: the last name
// token first, then the remaining tokens.
func IndexEntry(name, pid string) string {
	tokens := strings.Split(name, " ")
	last := tokens[len(tokens)-1]
	return `\customindex{` + last + ", " + strings.Join(tokens[:len(tokens)-1], " ") + "}{" + pid + "}"
}

func sessionDate(start, end time.Time) string {
	return start.Format("2006/01/02~~15:04") + "--" + end.Format("15:04")
}

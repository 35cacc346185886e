// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

const noSession = `& \nosession`

type panelGroup struct {
	name     string
	timeslot string
	rooms    map[rune][]string
}

// Panels writes one <group>.tex file per timeslot group into dir. Session
// codes have the form <group>-<room>, e.g. "A2-L". Each file starts with
// the group's \timeslot line followed by one "& \spanel" line per room
// from firstRoom to finalRoom; rooms without a session get "& \nosession".
// A zero firstRoom or finalRoom takes the lowest or highest room seen.
// It returns the paths written.
func (r *Renderer) Panels(dir string, sessions []types.Session, firstRoom, finalRoom rune) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	lo, hi := rune(utf8.MaxRune), rune(-1)
	if firstRoom != 0 {
		lo = firstRoom
	}
	if finalRoom != 0 {
		hi = finalRoom
	}

	var groups []*panelGroup
	byName := make(map[string]*panelGroup)

	for _, s := range sessions {
		name, room, err := splitPanelCode(s.Code)
		if err != nil {
			return nil, err
		}

		g, ok := byName[name]
		if !ok {
			ts, err := r.render("timeslot.tex", struct{ Start, End string }{
				Start: s.StartTime.Format("15:04"),
				End:   s.EndTime.Format("15:04"),
			})
			if err != nil {
				return nil, err
			}
			g = &panelGroup{name: name, timeslot: ts, rooms: make(map[rune][]string)}
			byName[name] = g
			groups = append(groups, g)
		}

		panel, err := r.render("spanel.tex", struct{ Code, Name, Chairs string }{
			Code:   s.Code,
			Name:   Escape(s.Name),
			Chairs: chairLine(s.Chairs),
		})
		if err != nil {
			return nil, err
		}
		g.rooms[room] = append(g.rooms[room], "& "+panel)
		lo, hi = min(lo, room), max(hi, room)
	}

	if lo > hi {
		return nil, fmt.Errorf("no session rooms in range %q to %q", firstRoom, finalRoom)
	}

	paths := make([]string, 0, len(groups))
	for _, g := range groups {
		lines := []string{g.timeslot}
		for room := lo; room <= hi; room++ {
			if panels, ok := g.rooms[room]; ok {
				lines = append(lines, panels...)
			} else {
				lines = append(lines, noSession)
			}
		}
		path := filepath.Join(dir, g.name+".tex")
		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// splitPanelCode splits "A2-L" into group "A2" and room 'L'.
func splitPanelCode(code string) (string, rune, error) {
	parts := strings.Split(code, "-")
	if len(parts) != 2 || utf8.RuneCountInString(parts[1]) != 1 {
		return "", 0, fmt.Errorf("session code %q: want <group>-<room letter>", code)
	}
	room, _ := utf8.DecodeRuneInString(parts[1])
	return parts[0], room, nil
}

// chairLine formats session chairs for a panel: "Chair: \mbox{A}" or
// "Chairs: \mbox{A} and \mbox{B}", or \tba without chairs.
func chairLine(chairs []types.Person) string {
	if len(chairs) == 0 {
		return tba
	}
	boxed := make([]string, len(chairs))
	for i, c := range chairs {
		boxed[i] = `\mbox{` + c.Name + "}"
	}
	label := "Chairs: "
	if len(chairs) == 1 {
		label = "Chair: "
	}
	return label + strings.Join(boxed, " and ")
}

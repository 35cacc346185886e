// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// BuildSessions projects sessions into MetaSession rows. Special sessions
// (category tag "s") take their organizers from the organizer list; a
// special session without an organizer record is an error naming the
// session code and organizersSource. Cities and venues come from common.
func BuildSessions(sessions []types.Session, organizers []types.SSOrganizer, common types.CommonInfo, organizersSource string) ([]MetaSession, error) {
	byCategory := indexOrganizers(organizers)

	out := make([]MetaSession, 0, len(sessions))
	for _, s := range sessions {
		var orgs []types.Person
		if s.Category.IsSpecial() {
			found, ok := byCategory[s.Category.Key()]
			if !ok {
				return nil, &program.NotFoundError{Kind: "session organizers", Key: s.Code, Source: organizersSource}
			}
			orgs = found
		}

		m, err := NewMetaSession(SessionInput{
			Number:      s.Code,
			Name:        s.Name,
			Date:        types.Date{Time: s.StartTime},
			Organizers:  names(orgs),
			OrgAffils:   organizations(orgs),
			Chairs:      names(s.Chairs),
			ChairAffils: organizations(s.Chairs),
			Cities:      common.EventCity,
			Venues:      common.EventVenue,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// BuildPapers projects every paper of every session into MetaPaper rows.
// Awards are looked up by paper number; a paper without an award record
// gets an empty awards cell. Keywords equal to "-" are dropped and the
// file name is set only for papers that have been stamped.
func BuildPapers(sessions []types.Session, awards []types.Award) ([]MetaPaper, error) {
	byNumber := indexAwards(awards)

	var out []MetaPaper
	for _, s := range sessions {
		for _, p := range s.Papers {
			number := p.Number(s.Code)
			var filename string
			if p.Pages != nil {
				filename = number + ".pdf"
			}

			var keywords []string
			for _, k := range p.Keywords {
				if k != "-" {
					keywords = append(keywords, k)
				}
			}

			m, err := NewMetaPaper(PaperInput{
				Title:    p.Title,
				Filename: filename,
				Abstract: p.Abstract,
				Keywords: keywords,
				Pages:    p.Pages,
				Session:  s.Code,
				Number:   number,
				Awards:   byNumber[number],
				Authors:  names(p.Authors),
				Affils:   organizations(p.Authors),
			})
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// BuildCommon projects the conference information into its MetaCommon row.
func BuildCommon(common types.CommonInfo) (MetaCommon, error) {
	return NewMetaCommon("", common)
}

// indexAwards maps paper numbers to awards. The first record for a number wins.
func indexAwards(awards []types.Award) map[string][]string {
	idx := make(map[string][]string, len(awards))
	for _, a := range awards {
		if _, ok := idx[a.ID]; !ok {
			idx[a.ID] = a.Awards
		}
	}
	return idx
}

// indexOrganizers maps category keys to organizers. The first record for a
// category wins.
func indexOrganizers(orgs []types.SSOrganizer) map[string][]types.Person {
	idx := make(map[string][]types.Person, len(orgs))
	for _, o := range orgs {
		k := o.Category.Key()
		if _, ok := idx[k]; !ok {
			idx[k] = o.Organizers
		}
	}
	return idx
}

func names(people []types.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.Name
	}
	return out
}

func organizations(people []types.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.Organization
	}
	return out
}

package metadata

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form,
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	EventTitle     string    `yaml:"event-title,omitempty"`
	EventPlace     string    `yaml:"event-place,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes every non-plenary paper as a CSL-YAML paper-conference
// entry keyed by paper number.
func WriteCSL(w io.Writer, sessions []types.Session, common types.CommonInfo) error {
	items := []CSLItem{}
	for _, s := range sessions {
		for _, p := range s.Papers {
			if p.Plenary {
				continue
			}
			items = append(items, toCSLItem(s, p, common))
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding CSL: %w", err)
	}
	return nil
}

func toCSLItem(s types.Session, p types.Paper, common types.CommonInfo) CSLItem {
	item := CSLItem{
		ID:             p.Number(s.Code),
		Type:           "paper-conference",
		Title:          p.Title,
		ContainerTitle: common.Publication,
		EventTitle:     common.EventName,
		EventPlace:     strings.Join(common.EventCity, ", "),
		Publisher:      common.Publisher,
		Abstract:       p.Abstract,
	}

	for _, a := range p.Authors {
		item.Author = append(item.Author, parseAuthorName(a.Name))
	}

	var keywords []string
	for _, k := range p.Keywords {
		if k != "-" {
			keywords = append(keywords, k)
		}
	}
	item.Keyword = strings.Join(keywords, ", ")

	if p.Pages != nil {
		item.Page = fmt.Sprintf("%d-%d", p.Pages.From(), p.Pages.To())
	}

	if d := common.DatePublished; !d.IsZero() {
		item.Issued = &CSLDate{
			DateParts: [][]int{{d.Year(), int(d.Month()), d.Day()}},
		}
	}
	return item
}

// parseAuthorName splits a full name on the last space: everything before
// is given, the last token is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  strings.TrimSpace(name[:idx]),
		Family: name[idx+1:],
	}
}

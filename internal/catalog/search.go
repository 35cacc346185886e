// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// QueryOptions holds the parameters of a catalog search.
type QueryOptions struct {
	// Query is an FTS5 query over title, abstract, authors and keywords.
	Query string

	// SessionCode restricts results to one session.
	SessionCode string

	// Category restricts results to sessions with this category tag.
	Category string

	// MaxResults limits the result count. Zero uses the store default.
	MaxResults int
}

// Result is one paper with its session.
type Result struct {
	Number       string           `json:"number" yaml:"number"`
	PaperID      int              `json:"paper_id" yaml:"paper_id"`
	Title        string           `json:"title" yaml:"title"`
	Authors      []string         `json:"authors" yaml:"authors"`
	Affiliations []string         `json:"affiliations" yaml:"affiliations"`
	Keywords     []string         `json:"keywords" yaml:"keywords"`
	Pages        *types.PageRange `json:"pages" yaml:"pages"`
	Plenary      bool             `json:"plenary,omitempty" yaml:"plenary,omitempty"`
	SessionCode  string           `json:"session_code" yaml:"session_code"`
	SessionName  string           `json:"session_name" yaml:"session_name"`
	Category     string           `json:"category" yaml:"category"`
	Location     string           `json:"location,omitempty" yaml:"location,omitempty"`
}

// Search returns matching papers. Full-text results are ranked by
// relevance; structured-only results follow program order.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	const columns = `p.number, p.id, p.title, p.authors, p.affiliations, p.keywords,
		p.page_from, p.page_to, p.plenary, s.code, s.name, s.category_tag, s.location`

	if useFTS {
		qb.WriteString(`SELECT ` + columns + `
			FROM papers_fts
			JOIN papers p ON p.rowid = papers_fts.rowid
			JOIN sessions s ON s.code = p.session_code
			WHERE papers_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(`SELECT ` + columns + `
			FROM papers p
			JOIN sessions s ON s.code = p.session_code
			WHERE 1=1`)
	}

	if opts.SessionCode != "" {
		qb.WriteString(` AND s.code = ?`)
		args = append(args, opts.SessionCode)
	}
	if opts.Category != "" {
		qb.WriteString(` AND s.category_tag = ?`)
		args = append(args, opts.Category)
	}

	if useFTS {
		qb.WriteString(` ORDER BY papers_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY s.position, p.paper_order`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var (
			r                       Result
			authors, orgs, keywords sql.NullString
			from, to                sql.NullInt64
			location                sql.NullString
		)
		if err := rows.Scan(
			&r.Number, &r.PaperID, &r.Title, &authors, &orgs, &keywords,
			&from, &to, &r.Plenary, &r.SessionCode, &r.SessionName, &r.Category, &location,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Authors = splitList(authors)
		r.Affiliations = splitList(orgs)
		r.Keywords = splitList(keywords)
		if from.Valid && to.Valid {
			r.Pages = &types.PageRange{int(from.Int64), int(to.Int64)}
		}
		r.Location = location.String
		results = append(results, r)
	}
	return results, rows.Err()
}

func splitList(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return []string{}
	}
	return strings.Split(v.String, listSep)
}

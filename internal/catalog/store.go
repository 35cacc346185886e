// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a searchable SQLite copy of the program. Indexing
// replaces the whole catalog with the current session data; searches run
// over an FTS5 index of paper titles, abstracts, authors and keywords.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

const (
	dbFile = "program.db"

	defaultMaxResults = 20
)

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates <cfg.Dir>/program.db and its schema.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			code TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT,
			type TEXT,
			category_tag TEXT,
			category_index INTEGER,
			category_order INTEGER,
			location TEXT,
			chairs TEXT,
			start_time TEXT,
			end_time TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id INTEGER NOT NULL UNIQUE,
			number TEXT NOT NULL,
			session_code TEXT NOT NULL REFERENCES sessions(code),
			paper_order INTEGER NOT NULL,
			title TEXT,
			abstract TEXT,
			authors TEXT,
			affiliations TEXT,
			keywords TEXT,
			page_from INTEGER,
			page_to INTEGER,
			plenary INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_session ON papers(session_code)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_category ON sessions(category_tag)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(
				title, abstract, authors, keywords, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract, authors, keywords)
				VALUES (new.rowid, new.title, new.abstract, new.authors, new.keywords);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, authors, keywords)
				VALUES ('delete', old.rowid, old.title, old.abstract, old.authors, old.keywords);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, authors, keywords)
				VALUES ('delete', old.rowid, old.title, old.abstract, old.authors, old.keywords);
				INSERT INTO papers_fts(rowid, title, abstract, authors, keywords)
				VALUES (new.rowid, new.title, new.abstract, new.authors, new.keywords);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// IndexSummary holds the counts of an indexing run.
type IndexSummary struct {
	Sessions int
	Papers   int
}

// Index replaces the catalog content with sessions in one transaction.
// Progress lines go to w.
func (s *Store) Index(ctx context.Context, sessions []types.Session, w io.Writer) (IndexSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM papers`, `DELETE FROM sessions`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return IndexSummary{}, fmt.Errorf("clearing catalog: %w", err)
		}
	}

	insertSession, err := tx.PrepareContext(ctx,
		`INSERT INTO sessions (code, position, name, type, category_tag, category_index,
			category_order, location, chairs, start_time, end_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing session insert: %w", err)
	}
	defer insertSession.Close()

	insertPaper, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (id, number, session_code, paper_order, title, abstract,
			authors, affiliations, keywords, page_from, page_to, plenary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing paper insert: %w", err)
	}
	defer insertPaper.Close()

	var summary IndexSummary
	for i, sess := range sessions {
		chairs := sess.Chairs
		if chairs == nil {
			chairs = []types.Person{}
		}
		chairsJSON, err := json.Marshal(chairs)
		if err != nil {
			return IndexSummary{}, fmt.Errorf("encoding chairs of session %s: %w", sess.Code, err)
		}
		if _, err := insertSession.ExecContext(ctx,
			sess.Code, i, sess.Name, sess.Type, sess.Category.Tag, sess.Category.Index,
			sess.CategoryOrder, sess.Location, string(chairsJSON),
			formatTime(sess.StartTime), formatTime(sess.EndTime),
		); err != nil {
			return IndexSummary{}, fmt.Errorf("inserting session %s: %w", sess.Code, err)
		}
		summary.Sessions++

		for _, p := range sess.Papers {
			var from, to *int
			if p.Pages != nil {
				f, t := p.Pages.From(), p.Pages.To()
				from, to = &f, &t
			}
			names, orgs := people(p.Authors)
			if _, err := insertPaper.ExecContext(ctx,
				p.ID, p.Number(sess.Code), sess.Code, p.Order, p.Title, p.Abstract,
				names, orgs, strings.Join(p.Keywords, listSep), from, to, p.Plenary,
			); err != nil {
				return IndexSummary{}, fmt.Errorf("inserting paper %s: %w", p.Number(sess.Code), err)
			}
			summary.Papers++
		}
		fmt.Fprintf(w, "indexed %s (%d papers)\n", sess.Code, len(sess.Papers))
	}

	if err := tx.Commit(); err != nil {
		return IndexSummary{}, fmt.Errorf("committing catalog: %w", err)
	}
	fmt.Fprintf(w, "\nindexed: %d sessions, %d papers\n", summary.Sessions, summary.Papers)
	return summary, nil
}

// listSep joins author names, affiliations and keywords in one column.
const listSep = "; "

func people(ps []types.Person) (names, orgs string) {
	n := make([]string, len(ps))
	o := make([]string, len(ps))
	for i, p := range ps {
		n[i], o[i] = p.Name, p.Organization
	}
	return strings.Join(n, listSep), strings.Join(o, listSep)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

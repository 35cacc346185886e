// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tex renders the program book listings as LaTeX fragments: paper
// entries grouped by session, special-session organizer blocks, and the
// per-timeslot session panels of the schedule grid. The fragments call
// macros (\pEntry, \ssRecord, \spanel, ...) that the program book defines.
package tex

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"
)

//go:embed templates/*.tex
var embedded embed.FS

// Renderer executes the fragment templates. Templates use << >> as action
// delimiters so LaTeX braces need no escaping.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer loads the fragment templates from dir, or the built-in
// templates when dir is empty. A directory must provide every template.
func NewRenderer(dir string) (*Renderer, error) {
	var (
		fsys    fs.FS
		pattern = "*.tex"
	)
	if dir == "" {
		fsys, pattern = embedded, "templates/*.tex"
	} else {
		fsys = os.DirFS(dir)
	}
	tmpl, err := template.New("tex").Delims("<<", ">>").Option("missingkey=error").ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("loading TeX templates: %w", err)
	}
	for _, name := range []string{
		"session.tex", "pEntry.tex", "pEntryPlenary.tex", "ssRecord.tex",
		"ssOrgs.tex", "ssSession.tex", "spanel.tex", "timeslot.tex",
	} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("loading TeX templates: %s missing", name)
		}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// render executes a template and drops its trailing newline.
func (r *Renderer) render(name string, data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Escape escapes & and % for LaTeX. Already escaped \& and \% are kept
// as single escapes.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\&`, `&`)
	s = strings.ReplaceAll(s, `&`, `\&`)
	s = strings.ReplaceAll(s, `\%`, `%`)
	return strings.ReplaceAll(s, `%`, `\%`)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata projects sessions, papers, and conference information into
// the flat bibliographic metadata records published alongside the
// proceedings, and writes them as CSV (with template-supplied header rows)
// or as a CSL-YAML bibliography.
package metadata

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

const (
	maxStringLen = 1000
	maxTextLen   = 10000
	maxListLen   = 100

	// lineBreak replaces newlines in long text fields so a CSV cell stays
	// on one line.
	lineBreak = "<br>"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9\-./]{1,100}$`)

// ValidationError reports a value rejected by one of the field validators.
type ValidationError struct {
	Kind   string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	v := e.Value
	if utf8.RuneCountInString(v) > 60 {
		v = string([]rune(v)[:60]) + "..."
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, v, e.Reason)
}

// BoundedString accepts strings of at most 1000 characters with no newline.
func BoundedString(s string) (string, error) {
	if n := utf8.RuneCountInString(s); n > maxStringLen {
		return "", &ValidationError{Kind: "string", Value: s,
			Reason: fmt.Sprintf("too long (%d > %d characters)", n, maxStringLen)}
	}
	if strings.Contains(s, "\n") {
		return "", &ValidationError{Kind: "string", Value: s, Reason: "contains newline"}
	}
	return s, nil
}

// BoundedText accepts text of at most 10000 characters and replaces every
// newline with "<br>".
func BoundedText(s string) (string, error) {
	if n := utf8.RuneCountInString(s); n > maxTextLen {
		return "", &ValidationError{Kind: "text", Value: s,
			Reason: fmt.Sprintf("too long (%d > %d characters)", n, maxTextLen)}
	}
	return strings.ReplaceAll(s, "\n", lineBreak), nil
}

// Identifier accepts session codes and paper numbers: 1 to 100 characters
// from [A-Za-z0-9-./].
func Identifier(s string) (string, error) {
	if !identifierPattern.MatchString(s) {
		return "", &ValidationError{Kind: "identifier", Value: s,
			Reason: "want 1-100 characters from [A-Za-z0-9-./]"}
	}
	return s, nil
}

// URL accepts strings beginning with http:// or https://.
func URL(s string) (string, error) {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return "", &ValidationError{Kind: "url", Value: s, Reason: "scheme must be http or https"}
	}
	return s, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(d types.Date) string {
	return d.Format(types.DateLayout)
}

// Comment accepts the leading marker of a metadata row: "" for a live row
// or "#" for a commented-out one.
func Comment(c string) (string, error) {
	if c != "" && c != "#" {
		return "", &ValidationError{Kind: "comment", Value: c, Reason: `want "" or "#"`}
	}
	return c, nil
}

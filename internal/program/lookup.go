// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package program

import (
	"fmt"
	"strconv"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// NotFoundError reports a required record missing from a data file.
type NotFoundError struct {
	// Kind names what was looked up, e.g. "session" or "paper".
	Kind string
	Key  string
	// Source names the file or files that were searched.
	Source string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s (%s)", e.Kind, e.Key, e.Source)
}

// FindPaper returns the session and paper with the given session code and
// paper order. source names the data file for the error message.
func FindPaper(sessions []types.Session, code string, order int, source string) (types.Session, types.Paper, error) {
	for _, s := range sessions {
		if s.Code != code {
			continue
		}
		for _, p := range s.Papers {
			if p.Order == order {
				return s, p, nil
			}
		}
	}
	return types.Session{}, types.Paper{}, &NotFoundError{
		Kind:   "paper",
		Key:    code + strconv.Itoa(order),
		Source: source,
	}
}

// Counts returns the number of sessions and papers.
func Counts(sessions []types.Session) (nSessions, nPapers int) {
	for _, s := range sessions {
		nPapers += len(s.Papers)
	}
	return len(sessions), nPapers
}

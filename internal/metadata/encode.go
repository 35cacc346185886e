// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"strings"
)

const (
	strsSep   = ";"
	entitySep = "@@"
	groupSep  = "/"
)

// JoinStrs validates every entry with BoundedString and joins them with
// ";". Lists longer than 100 entries are truncated to the first 100 after
// validation, so an invalid entry past the cut is still an error.
func JoinStrs(items []string) (string, error) {
	valid, err := validAll(items)
	if err != nil {
		return "", err
	}
	if len(valid) > maxListLen {
		valid = valid[:maxListLen]
	}
	return strings.Join(valid, strsSep), nil
}

// JoinEntities validates each entry with BoundedString and joins them with
// "@@". Callers keep parallel lists (authors and affiliations) aligned.
func JoinEntities(items []string) (string, error) {
	return joinValid(items, entitySep)
}

// JoinGroups encodes each group with JoinStrs and joins the results with "/".
func JoinGroups(groups [][]string) (string, error) {
	parts := make([]string, len(groups))
	for i, g := range groups {
		s, err := JoinStrs(g)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, groupSep), nil
}

// ReverseName reverses the whitespace-separated tokens of a full name, so
// "Taro Yamada" becomes "Yamada Taro".
func ReverseName(full string) string {
	tokens := strings.Fields(full)
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return strings.Join(tokens, " ")
}

// joinNames reverses every name and joins them with "@@".
func joinNames(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = ReverseName(n)
	}
	return strings.Join(out, entitySep)
}

func joinValid(items []string, sep string) (string, error) {
	out, err := validAll(items)
	if err != nil {
		return "", err
	}
	return strings.Join(out, sep), nil
}

func validAll(items []string) ([]string, error) {
	out := make([]string, len(items))
	for i, item := range items {
		v, err := BoundedString(item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

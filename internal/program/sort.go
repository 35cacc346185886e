package program

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

// SortKey maps a session code to its numeric sort position: the "L-" marker
// is removed and every upper-case letter is replaced by its 1-based
// alphabet index, so "A2L" sorts as 1212 and "L-B1" as 21.
func SortKey(code string) (int, error) {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(code, "L-", "") {
		if r >= 'A' && r <= 'Z' {
			b.WriteString(strconv.Itoa(int(r-'A') + 1))
			continue
		}
		b.WriteRune(r)
	}
	key, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, fmt.Errorf("session code %q has no numeric sort key: %w", code, err)
	}
	return key, nil
}

// SortSessions orders sessions by SortKey and the papers of each session
// by order. Ties keep their input order.
func SortSessions(sessions []types.Session) error {
	keys := make(map[string]int, len(sessions))
	for _, s := range sessions {
		k, err := SortKey(s.Code)
		if err != nil {
			return err
		}
		keys[s.Code] = k
	}
	slices.SortStableFunc(sessions, func(a, b types.Session) int {
		return cmp.Compare(keys[a.Code], keys[b.Code])
	})
	for i := range sessions {
		slices.SortStableFunc(sessions[i].Papers, func(a, b types.Paper) int {
			return cmp.Compare(a.Order, b.Order)
		})
	}
	return nil
}

package usecase

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// similarity returns a [0,1] score of textual closeness between two product
// names: the SequenceMatcher ratio (2*M/T) at rune granularity over the
// case-folded full names. No tokenization, no stop words, no unit or
// whitespace normalization. The score is greedy, order-sensitive and
// non-transitive; groupings depend on scan order.
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(splitRunes(strings.ToLower(a)), splitRunes(strings.ToLower(b)))
	return m.Ratio()
}

// splitRunes breaks a string into per-rune elements so the line-oriented
// matcher compares characters, like difflib does on plain strings.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

package tokenizer

import "unicode/utf8"

// matcher performs greedy longest-prefix lookup over one tier's entry set.
// The scan is bounded by the longest entry in the set, precomputed at
// construction, so a lookup never probes more candidate lengths than the
// dictionary can answer. All tiers share this one primitive; only the
// backing set differs.
type matcher struct {
	tier    Tier
	entries map[string]int
	maxLen  int // longest entry, in runes
}

func newMatcher(tier Tier, entries map[string]int) matcher {
	maxLen := 0
	for text := range entries {
		if n := utf8.RuneCountInString(text); n > maxLen {
			maxLen = n
		}
	}
	return matcher{tier: tier, entries: entries, maxLen: maxLen}
}

// longestPrefix returns the longest entry of this tier that is a prefix of
// runes[pos:]. The boolean is false when no entry matches; that is a
// normal outcome, not an error. Entries are unique strings, so at most one
// entry of maximal length can match.
func (m matcher) longestPrefix(runes []rune, pos int) (Token, bool) {
	limit := len(runes) - pos
	if limit > m.maxLen {
		limit = m.maxLen
	}
	for l := limit; l >= 1; l-- {
		candidate := string(runes[pos : pos+l])
		if id, ok := m.entries[candidate]; ok {
			return Token{Text: candidate, ID: id, Tier: m.tier}, true
		}
	}
	return Token{}, false
}

package tokenizer

import "unicode/utf8"

type vocabEntry struct {
	text string
	tier Tier
}

// Vocabulary is the immutable merged mapping of token text to id across
// the three tiers plus the reserved special tokens. Ids are unique and
// contiguous from 0, which lets the reverse map be a dense slice. A
// Vocabulary never changes after construction and is safe to share across
// any number of concurrent readers.
type Vocabulary struct {
	byText   map[string]Token
	byID     []vocabEntry
	specials [specialKindCount]Token

	root   matcher
	suffix matcher
	bpe    matcher
}

// NewVocabulary builds a Vocabulary from the three tier dictionaries.
// All three must be non-empty. Entries must be valid UTF-8, ids must be
// non-negative, unique across tiers, and together with the appended
// special tokens cover 0..Len()-1 without gaps; any violation fails with
// a *VocabularyError.
//
// A special literal supplied by a dictionary (the reference dictionaries
// carry them inside the root file) keeps its supplied id and is re-tagged
// Special; it does not participate in dictionary matching. Missing
// specials are appended after the largest supplied id.
func NewVocabulary(roots, suffixes, bpe map[string]int) (*Vocabulary, error) {
	tiers := []struct {
		name    string
		tier    Tier
		entries map[string]int
	}{
		{"root", TierRoot, roots},
		{"suffix", TierSuffix, suffixes},
		{"bpe", TierBPE, bpe},
	}

	specialByText := make(map[string]SpecialKind, specialKindCount)
	for k := SpecialKind(0); k < specialKindCount; k++ {
		specialByText[k.Text()] = k
	}

	v := &Vocabulary{byText: make(map[string]Token)}
	idToText := make(map[int]string)
	maxID := -1

	rootSet := make(map[string]int, len(roots))
	suffixSet := make(map[string]int, len(suffixes))
	bpeSet := make(map[string]int, len(bpe))
	matchSets := []map[string]int{rootSet, suffixSet, bpeSet}

	for i, td := range tiers {
		if len(td.entries) == 0 {
			return nil, vocabErrorf("%s dictionary is empty", td.name)
		}
		for text, id := range td.entries {
			if !utf8.ValidString(text) {
				return nil, vocabErrorf("%s entry %q is not valid UTF-8", td.name, text)
			}
			if text == "" {
				return nil, vocabErrorf("%s dictionary contains an empty entry", td.name)
			}
			if id < 0 {
				return nil, vocabErrorf("%s entry %q has negative id %d", td.name, text, id)
			}
			if prev, ok := v.byText[text]; ok {
				return nil, vocabErrorf("entry %q appears in both %s and %s tiers", text, prev.Tier, td.tier)
			}
			if prevText, ok := idToText[id]; ok {
				return nil, vocabErrorf("id %d assigned to both %q and %q", id, prevText, text)
			}
			tier := td.tier
			if _, isSpecial := specialByText[text]; isSpecial {
				tier = TierSpecial
			} else {
				matchSets[i][text] = id
			}
			v.byText[text] = Token{Text: text, ID: id, Tier: tier}
			idToText[id] = text
			if id > maxID {
				maxID = id
			}
		}
	}

	// Append the special tokens the dictionaries did not supply.
	nextID := maxID + 1
	for k := SpecialKind(0); k < specialKindCount; k++ {
		text := k.Text()
		if tok, ok := v.byText[text]; ok {
			v.specials[k] = tok
			continue
		}
		tok := Token{Text: text, ID: nextID, Tier: TierSpecial}
		v.byText[text] = tok
		idToText[nextID] = text
		v.specials[k] = tok
		nextID++
	}

	n := len(v.byText)
	v.byID = make([]vocabEntry, n)
	filled := make([]bool, n)
	for text, tok := range v.byText {
		if tok.ID >= n {
			return nil, vocabErrorf("id %d for %q leaves a gap: ids must be contiguous from 0", tok.ID, text)
		}
		v.byID[tok.ID] = vocabEntry{text: text, tier: tok.Tier}
		filled[tok.ID] = true
	}
	for id, ok := range filled {
		if !ok {
			return nil, vocabErrorf("id %d is unassigned: ids must be contiguous from 0", id)
		}
	}

	v.root = newMatcher(TierRoot, rootSet)
	v.suffix = newMatcher(TierSuffix, suffixSet)
	v.bpe = newMatcher(TierBPE, bpeSet)
	return v, nil
}

// LookupText returns the id and tier of the given token text.
func (v *Vocabulary) LookupText(text string) (int, Tier, bool) {
	tok, ok := v.byText[text]
	if !ok {
		return 0, 0, false
	}
	return tok.ID, tok.Tier, true
}

// LookupID returns the text and tier of the given id.
func (v *Vocabulary) LookupID(id int) (string, Tier, bool) {
	if id < 0 || id >= len(v.byID) {
		return "", 0, false
	}
	e := v.byID[id]
	return e.text, e.tier, true
}

// Len returns the total number of entries across all tiers, specials
// included.
func (v *Vocabulary) Len() int { return len(v.byID) }

// Special returns the token for the given reserved kind.
func (v *Vocabulary) Special(kind SpecialKind) Token {
	return v.specials[kind]
}

// MaxEntryLen returns the length in runes of the longest entry of the
// given matching tier, or 0 for TierSpecial.
func (v *Vocabulary) MaxEntryLen(tier Tier) int {
	switch tier {
	case TierRoot:
		return v.root.maxLen
	case TierSuffix:
		return v.suffix.maxLen
	case TierBPE:
		return v.bpe.maxLen
	default:
		return 0
	}
}

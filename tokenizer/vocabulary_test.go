package tokenizer

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireVocabError(t *testing.T, err error) *VocabularyError {
	t.Helper()
	require.Error(t, err)
	var vocabErr *VocabularyError
	require.True(t, errors.As(err, &vocabErr), "expected *VocabularyError, got %v", err)
	return vocabErr
}

func TestNewVocabulary_AppendsSpecials(t *testing.T) {
	v, err := NewVocabulary(testDicts())
	require.NoError(t, err)

	for k := SpecialPad; k <= SpecialUppercase; k++ {
		tok := v.Special(k)
		assert.Equal(t, k.Text(), tok.Text)
		assert.Equal(t, TierSpecial, tok.Tier)
		id, tier, ok := v.LookupText(k.Text())
		require.True(t, ok)
		assert.Equal(t, tok.ID, id)
		assert.Equal(t, TierSpecial, tier)
	}
}

func TestNewVocabulary_SuppliedSpecialKeepsID(t *testing.T) {
	// The reference dictionaries carry the specials inside the root file;
	// their supplied ids must win and the entries must be re-tagged.
	roots := map[string]int{"<pad>": 0, "<uppercase>": 1, "kitap": 2}
	suffixes := map[string]int{"lar": 3}
	bpe := map[string]int{"a": 4, "b": 5}

	v, err := NewVocabulary(roots, suffixes, bpe)
	require.NoError(t, err)

	assert.Equal(t, 0, v.Special(SpecialPad).ID)
	assert.Equal(t, 1, v.Special(SpecialUppercase).ID)

	_, tier, ok := v.LookupText("<pad>")
	require.True(t, ok)
	assert.Equal(t, TierSpecial, tier)

	// Remaining specials are appended after the largest supplied id:
	// 6 supplied entries plus the 6 specials not in the dictionaries.
	assert.GreaterOrEqual(t, v.Special(SpecialEOS).ID, 6)
	assert.Equal(t, 12, v.Len())
}

func TestNewVocabulary_IDUniquenessAndRoundTrip(t *testing.T) {
	v, err := NewVocabulary(testDicts())
	require.NoError(t, err)

	seen := map[string]bool{}
	for id := 0; id < v.Len(); id++ {
		text, tier, ok := v.LookupID(id)
		require.True(t, ok, "id %d must be assigned", id)
		assert.False(t, seen[text], "text %q mapped twice", text)
		seen[text] = true

		gotID, gotTier, ok := v.LookupText(text)
		require.True(t, ok)
		assert.Equal(t, id, gotID)
		assert.Equal(t, tier, gotTier)
	}
}

func TestNewVocabulary_EmptyTier(t *testing.T) {
	roots, suffixes, _ := testDicts()
	_, err := NewVocabulary(roots, suffixes, map[string]int{})
	vocabErr := requireVocabError(t, err)
	assert.Contains(t, vocabErr.Reason, "bpe")

	_, err = NewVocabulary(nil, suffixes, map[string]int{"a": 0})
	requireVocabError(t, err)
}

func TestNewVocabulary_IDCollision(t *testing.T) {
	roots := map[string]int{"kitap": 0}
	suffixes := map[string]int{"lar": 0} // collides with kitap
	bpe := map[string]int{"a": 1}
	_, err := NewVocabulary(roots, suffixes, bpe)
	requireVocabError(t, err)
}

func TestNewVocabulary_DuplicateTextAcrossTiers(t *testing.T) {
	roots := map[string]int{"kitap": 0}
	suffixes := map[string]int{"kitap": 1}
	bpe := map[string]int{"a": 2}
	_, err := NewVocabulary(roots, suffixes, bpe)
	requireVocabError(t, err)
}

func TestNewVocabulary_GapInIDs(t *testing.T) {
	roots := map[string]int{"kitap": 0}
	suffixes := map[string]int{"lar": 1}
	bpe := map[string]int{"a": 40} // leaves 2..39 unassigned
	_, err := NewVocabulary(roots, suffixes, bpe)
	requireVocabError(t, err)
}

func TestNewVocabulary_NegativeID(t *testing.T) {
	roots := map[string]int{"kitap": -1}
	_, err := NewVocabulary(roots, map[string]int{"lar": 0}, map[string]int{"a": 1})
	requireVocabError(t, err)
}

func TestNewVocabulary_InvalidUTF8Entry(t *testing.T) {
	roots := map[string]int{"kitap": 0, string([]byte{0xff, 0xfe}): 1}
	_, err := NewVocabulary(roots, map[string]int{"lar": 2}, map[string]int{"a": 3})
	requireVocabError(t, err)
}

func TestVocabulary_MaxEntryLen(t *testing.T) {
	v, err := NewVocabulary(testDicts())
	require.NoError(t, err)

	// Longest root is "istanbul" (8 runes); "merhaba" is 7.
	assert.Equal(t, 8, v.MaxEntryLen(TierRoot))
	// Longest suffix is "iyor".
	assert.Equal(t, 4, v.MaxEntryLen(TierSuffix))
	// Longest BPE entry is "ab".
	assert.Equal(t, 2, v.MaxEntryLen(TierBPE))
	assert.Equal(t, 0, v.MaxEntryLen(TierSpecial))
}

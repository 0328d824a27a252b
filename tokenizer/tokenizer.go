package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Tokenizer segments Turkish text into root, suffix and BPE-fallback
// tokens backed by an immutable Vocabulary. All methods are read-only and
// safe for concurrent use; encode and decode calls are independent of one
// another.
type Tokenizer struct {
	vocab *Vocabulary
}

// New builds a tokenizer from the three tier dictionaries. It fails with
// a *VocabularyError when the dictionaries are malformed; no partial
// tokenizer is returned.
func New(roots, suffixes, bpe map[string]int) (*Tokenizer, error) {
	v, err := NewVocabulary(roots, suffixes, bpe)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{vocab: v}, nil
}

// NewFromVocabulary wraps an already-constructed Vocabulary. Callers that
// share one vocabulary across several tokenizers own it explicitly; there
// is no process-wide instance.
func NewFromVocabulary(v *Vocabulary) *Tokenizer {
	return &Tokenizer{vocab: v}
}

// Vocab returns the backing vocabulary.
func (t *Tokenizer) Vocab() *Vocabulary { return t.vocab }

// Tokenize segments text into an ordered token sequence. It fails only
// when text is not valid UTF-8; segmentation itself has no error path,
// because the one-rune unknown escape covers anything the dictionaries
// cannot.
func (t *Tokenizer) Tokenize(text string) ([]Token, error) {
	if !utf8.ValidString(text) {
		return nil, errors.WithStack(ErrInvalidUTF8)
	}
	var out []Token
	for _, a := range splitAtoms(text) {
		if a.class != atomLetter {
			out = t.fallback([]rune(a.text), 0, out)
			continue
		}
		for _, seg := range camelSegments(a.text) {
			if seg.uppercase {
				out = append(out, t.vocab.Special(SpecialUppercase))
			}
			out = t.decompose(lowerTurkish(seg.text), out)
		}
	}
	return out, nil
}

// Encode segments text and maps each token to its id.
func (t *Tokenizer) Encode(text string) ([]int, error) {
	toks, err := t.Tokenize(text)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(toks))
	for i, tok := range toks {
		ids[i] = tok.ID
	}
	return ids, nil
}

// EncodeWithEOS is Encode with the eos id appended.
func (t *Tokenizer) EncodeWithEOS(text string) ([]int, error) {
	ids, err := t.Encode(text)
	if err != nil {
		return nil, err
	}
	return append(ids, t.vocab.Special(SpecialEOS).ID), nil
}

// Decode reconstructs text from an id sequence. An <uppercase> marker is
// never emitted literally: it capitalizes (Turkish rules) the first rune
// of the next emitted text. With skipSpecial set, Special-tier tokens are
// omitted from the output while still consuming their position. An id
// outside the vocabulary fails with a *DecodeError.
func (t *Tokenizer) Decode(ids []int, skipSpecial bool) (string, error) {
	upperID := t.vocab.Special(SpecialUppercase).ID
	var b strings.Builder
	pendingUpper := false
	for _, id := range ids {
		text, tier, ok := t.vocab.LookupID(id)
		if !ok {
			return "", errors.WithStack(&DecodeError{ID: id})
		}
		if id == upperID {
			pendingUpper = true
			continue
		}
		if skipSpecial && tier == TierSpecial {
			continue
		}
		if pendingUpper {
			text = upperFirstTurkish(text)
			pendingUpper = false
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// VocabSize returns the number of entries in the vocabulary.
func (t *Tokenizer) VocabSize() int { return t.vocab.Len() }

// TokenToID returns the id of the given token text.
func (t *Tokenizer) TokenToID(text string) (int, bool) {
	id, _, ok := t.vocab.LookupText(text)
	return id, ok
}

// IDToToken returns the text and tier of the given id.
func (t *Tokenizer) IDToToken(id int) (string, Tier, bool) {
	return t.vocab.LookupID(id)
}

// SpecialID returns the id of the given reserved token.
func (t *Tokenizer) SpecialID(kind SpecialKind) int {
	return t.vocab.Special(kind).ID
}

// Named accessors for the reserved ids, stable for the lifetime of the
// tokenizer.

func (t *Tokenizer) PadID() int  { return t.SpecialID(SpecialPad) }
func (t *Tokenizer) EOSID() int  { return t.SpecialID(SpecialEOS) }
func (t *Tokenizer) BOSID() int  { return t.SpecialID(SpecialBOS) }
func (t *Tokenizer) UnkID() int  { return t.SpecialID(SpecialUnk) }
func (t *Tokenizer) SepID() int  { return t.SpecialID(SpecialSep) }
func (t *Tokenizer) ClsID() int  { return t.SpecialID(SpecialCls) }
func (t *Tokenizer) MaskID() int { return t.SpecialID(SpecialMask) }

package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// atomClass partitions runes into the three pre-split classes.
type atomClass int

const (
	atomLetter atomClass = iota
	atomSpace
	atomOther
)

func classOf(r rune) atomClass {
	switch {
	case unicode.IsSpace(r):
		return atomSpace
	case unicode.IsLetter(r):
		return atomLetter
	default:
		return atomOther
	}
}

// atom is a maximal run of characters of one class. Atoms never leave the
// segmenter.
type atom struct {
	text  string
	class atomClass
}

// splitAtoms groups s into maximal runs of one character class. A class
// transition always ends an atom, so concatenating the returned texts
// reproduces s exactly.
func splitAtoms(s string) []atom {
	var atoms []atom
	start := 0
	var cur atomClass
	first := true
	for i, r := range s {
		c := classOf(r)
		if first {
			cur = c
			first = false
			continue
		}
		if c != cur {
			atoms = append(atoms, atom{text: s[start:i], class: cur})
			start = i
			cur = c
		}
	}
	if !first {
		atoms = append(atoms, atom{text: s[start:], class: cur})
	}
	return atoms
}

// segment is one camel-case piece of a letter atom, in original casing.
// uppercase records whether the piece started with an uppercase letter;
// decoding reconstructs casing solely from that flag.
type segment struct {
	text      string
	uppercase bool
}

// camelSegments splits a letter run at every lowercase-to-uppercase
// transition past the first character. "merhabaDünya" becomes
// ["merhaba", "Dünya"]; an all-caps run stays whole.
func camelSegments(word string) []segment {
	runes := []rune(word)
	var segs []segment
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			segs = append(segs, segment{text: string(runes[start:i]), uppercase: unicode.IsUpper(runes[start])})
			start = i
		}
	}
	segs = append(segs, segment{text: string(runes[start:]), uppercase: unicode.IsUpper(runes[start])})
	return segs
}

// decompose runs the root, suffix, BPE, escape chain over one lowercased
// camel segment and appends the resulting tokens to out.
//
// The longest root wins and is never retried: if the suffix loop stops
// short of the end, the remainder goes to the BPE fallback rather than a
// shorter root. Root-first ordering is what keeps a decomposable word
// from being swallowed by a single opaque BPE entry.
func (t *Tokenizer) decompose(seg string, out []Token) []Token {
	runes := []rune(seg)
	pos := 0
	if tok, ok := t.vocab.root.longestPrefix(runes, 0); ok {
		out = append(out, tok)
		pos += utf8.RuneCountInString(tok.Text)
		for pos < len(runes) {
			tok, ok := t.vocab.suffix.longestPrefix(runes, pos)
			if !ok {
				break
			}
			out = append(out, tok)
			pos += utf8.RuneCountInString(tok.Text)
		}
	}
	return t.fallback(runes, pos, out)
}

// fallback consumes runes[pos:] with greedy BPE matches. When nothing
// matches at a position, a single <unknown> token covers exactly one rune
// and matching resumes. Every iteration advances pos, so fallback
// terminates for arbitrary input; this is the totality guarantee.
func (t *Tokenizer) fallback(runes []rune, pos int, out []Token) []Token {
	for pos < len(runes) {
		if tok, ok := t.vocab.bpe.longestPrefix(runes, pos); ok {
			out = append(out, tok)
			pos += utf8.RuneCountInString(tok.Text)
			continue
		}
		out = append(out, t.vocab.Special(SpecialUnk))
		pos++
	}
	return out
}

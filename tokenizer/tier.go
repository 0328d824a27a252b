// Package tokenizer implements a three-tier morphological tokenizer for
// Turkish text. Words are decomposed into a root from the root dictionary
// followed by grammatical suffixes; anything left over is covered by a
// fixed BPE-style fallback dictionary, and a one-character unknown escape
// guarantees every input segments without error.
package tokenizer

// Tier identifies which dictionary a token belongs to. It is a fixed tag:
// matching priority is Root, then Suffix, then BPE, with Special tokens
// emitted only by the segmenter itself.
type Tier int

const (
	TierRoot Tier = iota
	TierSuffix
	TierBPE
	TierSpecial
)

func (t Tier) String() string {
	switch t {
	case TierRoot:
		return "root"
	case TierSuffix:
		return "suffix"
	case TierBPE:
		return "bpe"
	case TierSpecial:
		return "special"
	default:
		return "invalid"
	}
}

// Token is one unit of a segmentation. Tokens are values produced per
// call; they hold no state beyond the text, id and tier.
type Token struct {
	Text string
	ID   int
	Tier Tier
}

// SpecialKind enumerates the reserved tokens that are always present in a
// Vocabulary, whether or not the supplied dictionaries include them.
type SpecialKind int

const (
	SpecialPad SpecialKind = iota
	SpecialEOS
	SpecialBOS
	SpecialUnk
	SpecialSep
	SpecialCls
	SpecialMask
	SpecialUppercase
	specialKindCount
)

// specialTexts holds the literal text of each special token. SpecialUnk
// doubles as the one-character unknown escape emitted by the segmenter.
var specialTexts = [specialKindCount]string{
	SpecialPad:       "<pad>",
	SpecialEOS:       "<eos>",
	SpecialBOS:       "<bos>",
	SpecialUnk:       "<unknown>",
	SpecialSep:       "<sep>",
	SpecialCls:       "<cls>",
	SpecialMask:      "<mask>",
	SpecialUppercase: "<uppercase>",
}

// Text returns the literal text of the special token.
func (k SpecialKind) Text() string {
	if k < 0 || k >= specialKindCount {
		return ""
	}
	return specialTexts[k]
}

func (k SpecialKind) String() string { return k.Text() }

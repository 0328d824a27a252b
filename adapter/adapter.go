// Package adapter wraps the core engine to satisfy the api.Tokenizer
// interface used by model pipelines, adding the framework-side options
// the engine itself deliberately lacks: padding, truncation, attention
// masks and input normalization. It is a thin composition over Encode,
// Decode and the vocabulary queries; nothing here reaches into the
// engine's internals.
package adapter

import (
	"unicode/utf8"

	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/trnlp/turkish-tokenizer/api"
	"github.com/trnlp/turkish-tokenizer/tokenizer"
)

// Options configure the adapter. The zero value encodes with no padding,
// no truncation, no eos and no normalization.
type Options struct {
	// MaxLength truncates every encoding to this many ids when > 0.
	MaxLength int
	// PadToMaxLength pads encodings up to MaxLength with the pad id.
	// Requires MaxLength > 0.
	PadToMaxLength bool
	// AppendEOS appends the eos id to every encoding (before truncation).
	AppendEOS bool
	// NormalizeNFC applies Unicode NFC normalization before encoding.
	NormalizeNFC bool
	// SkipSpecialOnDecode omits Special-tier tokens from decoded text.
	SkipSpecialOnDecode bool
	// ReturnTensors makes EncodePlus also materialize the ids and mask as
	// int32 GoMLX tensors of shape [1, length], ready to feed a model.
	ReturnTensors bool
}

// Adapter adapts a *tokenizer.Tokenizer to api.Tokenizer.
type Adapter struct {
	tok  *tokenizer.Tokenizer
	opts Options
}

// Compile time asserts that Adapter implements the api interfaces.
var (
	_ api.Tokenizer          = &Adapter{}
	_ api.TokenizerWithSpans = &Adapter{}
)

// New wraps tok with the given options.
func New(tok *tokenizer.Tokenizer, opts Options) (*Adapter, error) {
	if opts.PadToMaxLength && opts.MaxLength <= 0 {
		return nil, errors.Errorf("PadToMaxLength requires MaxLength > 0, got %d", opts.MaxLength)
	}
	return &Adapter{tok: tok, opts: opts}, nil
}

func (a *Adapter) normalize(text string) string {
	if a.opts.NormalizeNFC {
		return norm.NFC.String(text)
	}
	return text
}

// Encode converts text to ids, applying the configured eos append and
// truncation.
func (a *Adapter) Encode(text string) ([]int, error) {
	var ids []int
	var err error
	if a.opts.AppendEOS {
		ids, err = a.tok.EncodeWithEOS(a.normalize(text))
	} else {
		ids, err = a.tok.Encode(a.normalize(text))
	}
	if err != nil {
		return nil, err
	}
	if a.opts.MaxLength > 0 && len(ids) > a.opts.MaxLength {
		ids = ids[:a.opts.MaxLength]
	}
	return ids, nil
}

// Decode converts ids back to text, honoring SkipSpecialOnDecode.
func (a *Adapter) Decode(ids []int) (string, error) {
	return a.tok.Decode(ids, a.opts.SkipSpecialOnDecode)
}

// Encoding is the rich result of EncodePlus: ids plus an attention mask
// of the same length, 1 over content and 0 over padding. The tensor
// fields are nil unless Options.ReturnTensors is set.
type Encoding struct {
	InputIDs      []int
	AttentionMask []int

	// InputIDsTensor and AttentionMaskTensor hold the same values as
	// int32 tensors of shape [1, length], batch dimension included.
	InputIDsTensor      *tensors.Tensor
	AttentionMaskTensor *tensors.Tensor
}

// EncodePlus encodes text and builds the attention mask, padding up to
// MaxLength when configured.
func (a *Adapter) EncodePlus(text string) (Encoding, error) {
	ids, err := a.Encode(text)
	if err != nil {
		return Encoding{}, err
	}
	mask := make([]int, len(ids))
	for i := range mask {
		mask[i] = 1
	}
	if a.opts.PadToMaxLength && len(ids) < a.opts.MaxLength {
		padID := a.tok.PadID()
		for len(ids) < a.opts.MaxLength {
			ids = append(ids, padID)
			mask = append(mask, 0)
		}
	}
	enc := Encoding{InputIDs: ids, AttentionMask: mask}
	if a.opts.ReturnTensors {
		enc.InputIDsTensor = rowTensor(ids)
		enc.AttentionMaskTensor = rowTensor(mask)
	}
	return enc, nil
}

// rowTensor packs vals into an int32 tensor with a leading batch
// dimension of 1.
func rowTensor(vals []int) *tensors.Tensor {
	flat := make([]int32, len(vals))
	for i, v := range vals {
		flat[i] = int32(v)
	}
	return tensors.FromFlatDataAndDimensions(flat, 1, len(flat))
}

// EncodeWithSpans encodes text and reports each token's byte span in the
// normalized input. Uppercase markers consume no input and get an empty
// span at their position; an unknown escape covers exactly one rune.
// Truncation applies to the spans as well, keeping both slices aligned.
func (a *Adapter) EncodeWithSpans(text string) (api.EncodingResult, error) {
	text = a.normalize(text)
	toks, err := a.tok.Tokenize(text)
	if err != nil {
		return api.EncodingResult{}, err
	}

	upperID := a.tok.SpecialID(tokenizer.SpecialUppercase)
	unkID := a.tok.UnkID()
	runes := []rune(text)

	ids := make([]int, 0, len(toks))
	spans := make([]api.TokenSpan, 0, len(toks))
	byteOff, runeIdx := 0, 0
	for _, tok := range toks {
		// Turkish lowering maps runes one to one, so every non-marker
		// token covers as many input runes as its text has.
		var n int
		switch {
		case tok.ID == upperID:
			n = 0
		case tok.ID == unkID && tok.Tier == tokenizer.TierSpecial:
			n = 1
		default:
			n = utf8.RuneCountInString(tok.Text)
		}
		start := byteOff
		for i := 0; i < n && runeIdx < len(runes); i++ {
			byteOff += utf8.RuneLen(runes[runeIdx])
			runeIdx++
		}
		ids = append(ids, tok.ID)
		spans = append(spans, api.TokenSpan{Start: start, End: byteOff})
	}

	if a.opts.AppendEOS {
		ids = append(ids, a.tok.EOSID())
		spans = append(spans, api.TokenSpan{Start: byteOff, End: byteOff})
	}
	if a.opts.MaxLength > 0 && len(ids) > a.opts.MaxLength {
		ids = ids[:a.opts.MaxLength]
		spans = spans[:a.opts.MaxLength]
	}
	return api.EncodingResult{IDs: ids, Spans: spans}, nil
}

// SpecialTokenID maps the api special-token enum onto this vocabulary's
// reserved ids.
func (a *Adapter) SpecialTokenID(token api.SpecialToken) (int, error) {
	switch token {
	case api.TokPad:
		return a.tok.PadID(), nil
	case api.TokEndOfSequence:
		return a.tok.EOSID(), nil
	case api.TokBeginningOfSequence:
		return a.tok.BOSID(), nil
	case api.TokUnknown:
		return a.tok.UnkID(), nil
	case api.TokSeparator:
		return a.tok.SepID(), nil
	case api.TokClassification:
		return a.tok.ClsID(), nil
	case api.TokMask:
		return a.tok.MaskID(), nil
	default:
		return 0, errors.Errorf("unknown special token: %s (%d)", token, int(token))
	}
}

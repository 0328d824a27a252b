// Package api defines the tokenizer interface consumed by model
// pipelines. It exists so pipeline code can depend on the interface
// without importing the engine, and so alternative tokenizers can be
// swapped in behind it.
package api

import "fmt"

// TokenSpan is the byte span of a token in the original text. Start and
// End are byte offsets, suitable for slicing Go strings directly:
// originalText[span.Start:span.End]. Marker tokens that consume no input
// have Start == End.
type TokenSpan struct {
	Start int // start byte position (inclusive)
	End   int // end byte position (exclusive)
}

// EncodingResult contains token ids with their spans in the original
// text, for tasks that map predictions back to input positions.
type EncodingResult struct {
	IDs   []int
	Spans []TokenSpan
}

// Tokenizer converts text to integer ids and back. It also maps special
// tokens: tokens with a common semantic (like padding) that may resolve
// to different ids for different tokenizers.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)

	// SpecialTokenID returns the id for the given special token, or an
	// error if the tokenizer does not define it.
	SpecialTokenID(token SpecialToken) (int, error)
}

// TokenizerWithSpans extends Tokenizer with byte-span tracking.
type TokenizerWithSpans interface {
	Tokenizer
	EncodeWithSpans(text string) (EncodingResult, error)
}

// SpecialToken is an enum of commonly used special tokens.
type SpecialToken int

const (
	TokPad SpecialToken = iota
	TokEndOfSequence
	TokBeginningOfSequence
	TokUnknown
	TokSeparator
	TokClassification
	TokMask
	TokSpecialTokensCount
)

var specialTokenNames = [TokSpecialTokensCount]string{
	TokPad:                 "pad",
	TokEndOfSequence:       "end_of_sequence",
	TokBeginningOfSequence: "beginning_of_sequence",
	TokUnknown:             "unknown",
	TokSeparator:           "separator",
	TokClassification:      "classification",
	TokMask:                "mask",
}

func (s SpecialToken) String() string {
	if s < 0 || s >= TokSpecialTokensCount {
		return fmt.Sprintf("SpecialToken(%d)", int(s))
	}
	return specialTokenNames[s]
}

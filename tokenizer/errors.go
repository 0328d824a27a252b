package tokenizer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidUTF8 is returned by Tokenize and Encode when the input is not
// valid UTF-8. Malformed input is rejected before segmentation starts.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// VocabularyError reports a defect in the supplied tier dictionaries
// detected at construction time. No partial tokenizer is returned.
type VocabularyError struct {
	Reason string
}

func (e *VocabularyError) Error() string {
	return "vocabulary: " + e.Reason
}

func vocabErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&VocabularyError{Reason: fmt.Sprintf(format, args...)})
}

// DecodeError reports an id with no vocabulary entry.
type DecodeError struct {
	ID int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: id %d is not in the vocabulary", e.ID)
}

package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trnlp/turkish-tokenizer/api"
	"github.com/trnlp/turkish-tokenizer/tokenizer"
)

func newTestEngine(t *testing.T) *tokenizer.Tokenizer {
	t.Helper()
	roots := map[string]int{"merhaba": 0, "dünya": 1, "kitap": 2}
	suffixes := map[string]int{"lar": 3, "ım": 4, "ı": 5}
	bpe := map[string]int{"a": 6, "b": 7, " ": 8, "!": 9}
	tok, err := tokenizer.New(roots, suffixes, bpe)
	require.NoError(t, err)
	return tok
}

func TestEncodeDecode_Defaults(t *testing.T) {
	a, err := New(newTestEngine(t), Options{})
	require.NoError(t, err)

	ids, err := a.Encode("merhaba dünya")
	require.NoError(t, err)
	require.Len(t, ids, 3)

	text, err := a.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "merhaba dünya", text)
}

func TestEncode_AppendEOSAndTruncate(t *testing.T) {
	eng := newTestEngine(t)

	a, err := New(eng, Options{AppendEOS: true})
	require.NoError(t, err)
	ids, err := a.Encode("merhaba")
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, eng.EOSID(), ids[1])

	a, err = New(eng, Options{MaxLength: 2})
	require.NoError(t, err)
	ids, err = a.Encode("merhaba dünya")
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestEncodePlus_Padding(t *testing.T) {
	eng := newTestEngine(t)
	a, err := New(eng, Options{MaxLength: 6, PadToMaxLength: true})
	require.NoError(t, err)

	enc, err := a.EncodePlus("merhaba dünya")
	require.NoError(t, err)
	require.Len(t, enc.InputIDs, 6)
	require.Len(t, enc.AttentionMask, 6)
	assert.Equal(t, []int{1, 1, 1, 0, 0, 0}, enc.AttentionMask)
	for _, id := range enc.InputIDs[3:] {
		assert.Equal(t, eng.PadID(), id)
	}
	assert.Nil(t, enc.InputIDsTensor)
	assert.Nil(t, enc.AttentionMaskTensor)
}

func TestEncodePlus_ReturnTensors(t *testing.T) {
	eng := newTestEngine(t)
	a, err := New(eng, Options{MaxLength: 5, PadToMaxLength: true, ReturnTensors: true})
	require.NoError(t, err)

	enc, err := a.EncodePlus("merhaba dünya")
	require.NoError(t, err)
	require.NotNil(t, enc.InputIDsTensor)
	require.NotNil(t, enc.AttentionMaskTensor)
	assert.Equal(t, []int{1, 5}, enc.InputIDsTensor.Shape().Dimensions)
	assert.Equal(t, []int{1, 5}, enc.AttentionMaskTensor.Shape().Dimensions)

	rows := enc.InputIDsTensor.Value().([][]int32)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(enc.InputIDs))
	for i, id := range enc.InputIDs {
		assert.Equal(t, int32(id), rows[0][i])
	}
	assert.Equal(t, [][]int32{{1, 1, 1, 0, 0}}, enc.AttentionMaskTensor.Value())
}

func TestNew_PadWithoutMaxLength(t *testing.T) {
	_, err := New(newTestEngine(t), Options{PadToMaxLength: true})
	assert.Error(t, err)
}

func TestEncodeWithSpans(t *testing.T) {
	a, err := New(newTestEngine(t), Options{})
	require.NoError(t, err)

	text := "Merhaba ab"
	res, err := a.EncodeWithSpans(text)
	require.NoError(t, err)
	// <uppercase>, merhaba, " ", a, b; "ab" is not a BPE entry here.
	require.Len(t, res.IDs, 5)
	require.Len(t, res.Spans, 5)

	// The marker consumes no input.
	assert.Equal(t, api.TokenSpan{Start: 0, End: 0}, res.Spans[0])
	// The root token covers the original-cased word.
	assert.Equal(t, "Merhaba", text[res.Spans[1].Start:res.Spans[1].End])
	assert.Equal(t, " ", text[res.Spans[2].Start:res.Spans[2].End])
	assert.Equal(t, "a", text[res.Spans[3].Start:res.Spans[3].End])
	assert.Equal(t, "b", text[res.Spans[4].Start:res.Spans[4].End])
}

func TestEncodeWithSpans_UnknownEscape(t *testing.T) {
	eng := newTestEngine(t)
	a, err := New(eng, Options{})
	require.NoError(t, err)

	text := "a🙂b"
	res, err := a.EncodeWithSpans(text)
	require.NoError(t, err)
	require.Len(t, res.IDs, 3)
	assert.Equal(t, eng.UnkID(), res.IDs[1])
	// The escape covers exactly the one unmatched rune.
	assert.Equal(t, "🙂", text[res.Spans[1].Start:res.Spans[1].End])
}

func TestEncode_NormalizeNFC(t *testing.T) {
	a, err := New(newTestEngine(t), Options{NormalizeNFC: true})
	require.NoError(t, err)

	// "du" + combining diaeresis + "nya" composes to the vocabulary form.
	ids, err := a.Encode("dünya")
	require.NoError(t, err)
	require.Len(t, ids, 1)

	text, err := a.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "dünya", text)
}

func TestSpecialTokenID(t *testing.T) {
	eng := newTestEngine(t)
	a, err := New(eng, Options{})
	require.NoError(t, err)

	tests := []struct {
		token api.SpecialToken
		want  int
	}{
		{api.TokPad, eng.PadID()},
		{api.TokEndOfSequence, eng.EOSID()},
		{api.TokBeginningOfSequence, eng.BOSID()},
		{api.TokUnknown, eng.UnkID()},
		{api.TokSeparator, eng.SepID()},
		{api.TokClassification, eng.ClsID()},
		{api.TokMask, eng.MaskID()},
	}
	for _, tt := range tests {
		got, err := a.SpecialTokenID(tt.token)
		require.NoError(t, err, "token %s", tt.token)
		assert.Equal(t, tt.want, got)
	}

	_, err = a.SpecialTokenID(api.TokSpecialTokensCount)
	assert.Error(t, err)
}

func TestDecode_SkipSpecialOption(t *testing.T) {
	eng := newTestEngine(t)
	a, err := New(eng, Options{SkipSpecialOnDecode: true})
	require.NoError(t, err)

	merhabaID, ok := eng.TokenToID("merhaba")
	require.True(t, ok)
	text, err := a.Decode([]int{eng.PadID(), merhabaID, eng.EOSID()})
	require.NoError(t, err)
	assert.Equal(t, "merhaba", text)
}

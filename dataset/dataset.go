// Package dataset batch-encodes text corpora for training pipelines.
// Parquet is the interchange format: the input carries one text column,
// the output one id-list column per row.
package dataset

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/trnlp/turkish-tokenizer/tokenizer"
)

// TextRow is one input record. The text column must be named "text".
type TextRow struct {
	Text string `parquet:"text"`
}

// EncodedRow is one output record: the id sequence for the matching
// input row.
type EncodedRow struct {
	IDs []int32 `parquet:"ids,list"`
}

// EncodeParquet reads the "text" column of inPath, encodes every row and
// writes the id sequences to outPath. It returns the number of rows
// written. Rows fail individually only for invalid UTF-8, which fails the
// whole batch: corpus text is expected to be clean before encoding.
func EncodeParquet(tok *tokenizer.Tokenizer, inPath, outPath string) (int, error) {
	rows, err := parquet.ReadFile[TextRow](inPath)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read parquet dataset %q", inPath)
	}
	out := make([]EncodedRow, 0, len(rows))
	for i, row := range rows {
		ids, err := tok.Encode(row.Text)
		if err != nil {
			return 0, errors.WithMessagef(err, "encoding row %d of %q", i, inPath)
		}
		enc := EncodedRow{IDs: make([]int32, len(ids))}
		for j, id := range ids {
			enc.IDs[j] = int32(id)
		}
		out = append(out, enc)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create %q", outPath)
	}
	writer := parquet.NewGenericWriter[EncodedRow](f)
	if _, err := writer.Write(out); err != nil {
		_ = writer.Close()
		_ = f.Close()
		return 0, errors.Wrapf(err, "failed to write encoded rows to %q", outPath)
	}
	if err := writer.Close(); err != nil {
		_ = f.Close()
		return 0, errors.Wrapf(err, "failed to close parquet writer for %q", outPath)
	}
	if err := f.Close(); err != nil {
		return 0, errors.Wrapf(err, "failed to close %q", outPath)
	}
	klog.V(1).Infof("encoded %d rows from %q to %q", len(out), inPath, outPath)
	return len(out), nil
}

// EncodeLines encodes r line by line and writes one JSON id array per
// line to w. It returns the number of lines written.
func EncodeLines(tok *tokenizer.Tokenizer, r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	enc := json.NewEncoder(w)
	n := 0
	for scanner.Scan() {
		ids, err := tok.Encode(scanner.Text())
		if err != nil {
			return n, errors.WithMessagef(err, "encoding line %d", n+1)
		}
		if err := enc.Encode(ids); err != nil {
			return n, errors.Wrapf(err, "writing ids for line %d", n+1)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, errors.Wrapf(err, "reading input")
	}
	return n, nil
}

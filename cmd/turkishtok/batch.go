package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trnlp/turkish-tokenizer/dataset"
)

func newBatchCmd() *cobra.Command {
	var inPath, outPath string
	var lines bool

	cmd := &cobra.Command{
		Use:   "batch --in FILE --out FILE",
		Short: "Batch-encode a corpus (parquet text column, or plain lines with --lines)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inPath == "" || outPath == "" {
				return errors.Errorf("--in and --out are required")
			}
			tok, err := loadTokenizer(cmd)
			if err != nil {
				return err
			}
			var n int
			if lines {
				in, err := os.Open(inPath)
				if err != nil {
					return errors.Wrapf(err, "failed to open %q", inPath)
				}
				defer func() { _ = in.Close() }()
				out, err := os.Create(outPath)
				if err != nil {
					return errors.Wrapf(err, "failed to create %q", outPath)
				}
				defer func() { _ = out.Close() }()
				n, err = dataset.EncodeLines(tok, in, out)
				if err != nil {
					return err
				}
			} else {
				n, err = dataset.EncodeParquet(tok, inPath, outPath)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "encoded %d rows\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "Input file (parquet with a \"text\" column, or plain text with --lines)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (parquet, or JSON lines with --lines)")
	cmd.Flags().BoolVar(&lines, "lines", false, "Treat input as plain text, one record per line")
	return cmd
}

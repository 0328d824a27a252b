package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trnlp/turkish-tokenizer/tokenizer"
)

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Print vocabulary statistics and the reserved special ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := loadTokenizer(cmd)
			if err != nil {
				return err
			}
			v := tok.Vocab()
			counts := map[tokenizer.Tier]int{}
			for id := 0; id < v.Len(); id++ {
				_, tier, _ := v.LookupID(id)
				counts[tier]++
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vocab size: %d\n", v.Len())
			for _, tier := range []tokenizer.Tier{tokenizer.TierRoot, tokenizer.TierSuffix, tokenizer.TierBPE, tokenizer.TierSpecial} {
				fmt.Fprintf(out, "  %-8s %d\n", tier, counts[tier])
			}
			fmt.Fprintln(out, "special ids:")
			for k := tokenizer.SpecialPad; k <= tokenizer.SpecialUppercase; k++ {
				fmt.Fprintf(out, "  %-12s %d\n", k.Text(), v.Special(k).ID)
			}
			return nil
		},
	}
	return cmd
}

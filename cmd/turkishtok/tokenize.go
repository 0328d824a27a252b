package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/trnlp/turkish-tokenizer/tokenizer"
)

var tierStyles = map[tokenizer.Tier]lipgloss.Style{
	tokenizer.TierRoot:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	tokenizer.TierSuffix:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	tokenizer.TierBPE:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	tokenizer.TierSpecial: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Faint(true),
}

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [text]",
		Short: "Segment text and print every token with its tier and id",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			tok, err := loadTokenizer(cmd)
			if err != nil {
				return err
			}
			tokens, err := tok.Tokenize(text)
			if err != nil {
				return err
			}
			for _, t := range tokens {
				style := tierStyles[t.Tier]
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n",
					style.Render(fmt.Sprintf("%q", t.Text)), t.ID, t.Tier)
			}
			return nil
		},
	}
	return cmd
}

// readInput joins the args as the text to process, or reads stdin when no
// args are given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

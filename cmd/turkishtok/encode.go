package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var appendEOS bool

	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text to a space-separated id sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			tok, err := loadTokenizer(cmd)
			if err != nil {
				return err
			}
			var ids []int
			if appendEOS {
				ids, err = tok.EncodeWithEOS(text)
			} else {
				ids, err = tok.Encode(text)
			}
			if err != nil {
				return err
			}
			parts := make([]string, len(ids))
			for i, id := range ids {
				parts[i] = strconv.Itoa(id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&appendEOS, "eos", false, "Append the eos id")
	return cmd
}

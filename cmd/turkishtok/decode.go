package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var skipSpecial bool

	cmd := &cobra.Command{
		Use:   "decode id...",
		Short: "Decode an id sequence back to text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, len(args))
			for i, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return errors.Wrapf(err, "argument %q is not an id", arg)
				}
				ids[i] = id
			}
			tok, err := loadTokenizer(cmd)
			if err != nil {
				return err
			}
			text, err := tok.Decode(ids, skipSpecial)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipSpecial, "skip-special", false, "Omit special tokens from the output")
	return cmd
}

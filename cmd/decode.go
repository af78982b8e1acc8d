package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/conneroisu/bpetok/pkg/bpe"
	"github.com/spf13/cobra"
)

// NewDecodeCommand returns a new decode command.
func NewDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [ids]",
		Short: "Decode a whitespace-separated list of token ids back into text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tok bpe.Tokenizer
			if err := tok.Load(RootArgs.tokenizerPath); err != nil {
				return fmt.Errorf("load tokenizer: %w", err)
			}

			fields := strings.Fields(args[0])
			ids := make([]uint32, len(fields))
			for i, field := range fields {
				id, err := strconv.ParseUint(field, 10, 32)
				if err != nil {
					return fmt.Errorf("parse token id %q: %w", field, err)
				}
				ids[i] = uint32(id)
			}

			text, err := tok.Decode(ids)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			fmt.Println(text)
			return nil
		},
	}
	return cmd
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/conneroisu/bpetok/pkg/bpe"
	"github.com/spf13/cobra"
)

// NewEncodeCommand returns a new encode command.
func NewEncodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text into token ids using a trained tokenizer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tok bpe.Tokenizer
			if err := tok.Load(RootArgs.tokenizerPath); err != nil {
				return fmt.Errorf("load tokenizer: %w", err)
			}

			ids, err := tok.Encode(args[0])
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			parts := make([]string, len(ids))
			for i, id := range ids {
				parts[i] = fmt.Sprintf("%d", id)
			}
			fmt.Println(strings.Join(parts, " "))
			return nil
		},
	}
	return cmd
}

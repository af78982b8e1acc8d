package cmd

import (
	"fmt"

	"github.com/conneroisu/bpetok/pkg/bpe"
	"github.com/spf13/cobra"
)

// NewVerifyCommand returns a new verify command.
func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run a fixed set of train/encode/decode scenarios and check the results",
		Long: `
Trains a small tokenizer on a fixed phrase and checks known properties of
the result: the first encoded token of a trained phrase decodes back to a
whole word, and decode(encode(s)) reproduces s exactly across a set of
whitespace-variant strings.
	`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify()
		},
	}
	return cmd
}

func runVerify() error {
	const phrase = "Hello, world!"

	trainer, err := bpe.NewTokenizerTrainer(bpe.Config{Size: 266, MinCount: 1, MaxWorker: 1, CacheSize: 10})
	if err != nil {
		return fmt.Errorf("configure trainer: %w", err)
	}
	trainer.TrainOnText(phrase)
	if err := trainer.BuildBPE(); err != nil {
		return fmt.Errorf("build bpe: %w", err)
	}

	artifact, err := trainer.Save()
	if err != nil {
		return fmt.Errorf("serialize artifact: %w", err)
	}

	var tok bpe.Tokenizer
	if err := tok.Attach(artifact); err != nil {
		return fmt.Errorf("attach artifact: %w", err)
	}

	failed := false

	ids, err := tok.Encode(phrase)
	if err != nil {
		return fmt.Errorf("encode %q: %w", phrase, err)
	}
	first, err := tok.DecodeToken(ids[0])
	if err != nil {
		return fmt.Errorf("decode first token: %w", err)
	}
	if string(first) == "Hello" {
		fmt.Printf("first-token ok: %q -> %q\n", phrase, string(first))
	} else {
		fmt.Printf("FIRST-TOKEN MISMATCH: got %q, want %q\n", string(first), "Hello")
		failed = true
	}

	roundTripCases := []string{
		"",
		" ",
		"  ",
		"Hello, world!",
		" Hello, world!",
		"  Hello, world!",
		"   Hello, world!",
		"Hello, world! ",
		"Hello, world!  ",
		"Hello, world!   ",
	}
	for i, s := range roundTripCases {
		encoded, err := tok.Encode(s)
		if err != nil {
			return fmt.Errorf("encode case %d: %w", i, err)
		}
		decoded, err := tok.Decode(encoded)
		if err != nil {
			return fmt.Errorf("decode case %d: %w", i, err)
		}
		if decoded == s {
			fmt.Printf("round-trip ok at case %d: %q\n", i, s)
		} else {
			fmt.Printf("ROUND-TRIP MISMATCH AT CASE %d: got %q, want %q\n", i, decoded, s)
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("verify failed")
	}
	return nil
}

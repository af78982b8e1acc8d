package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/conneroisu/bpetok/pkg/bpe"
	"github.com/spf13/cobra"
)

// NewTrainCommand returns a new train command.
func NewTrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a BPE tokenizer on a corpus or inline text",
		Long: `
Train a BPE tokenizer.

Ingests a corpus file and/or inline text into a word vocabulary, runs the
merge loop up to the configured vocabulary size, and writes the resulting
tokenizer artifact to disk.
	`,
		RunE: func(cmd *cobra.Command, args []string) error {
			trainer, err := bpe.NewTokenizerTrainer(bpe.Config{
				Size:      RootArgs.size,
				MinCount:  RootArgs.minCount,
				MaxWorker: RootArgs.maxWorker,
				CacheSize: RootArgs.cacheSize,
			})
			if err != nil {
				return fmt.Errorf("configure trainer: %w", err)
			}

			if RootArgs.corpusPath != "" {
				log.Debug("ingesting corpus", "path", RootArgs.corpusPath, "workers", RootArgs.maxWorker)
				if err := trainer.TrainOnCorpus(RootArgs.corpusPath, RootArgs.symbolsCount); err != nil {
					return fmt.Errorf("ingest corpus: %w", err)
				}
			}
			if RootArgs.text != "" {
				trainer.TrainOnText(RootArgs.text)
			}

			log.Debug("building bpe vocabulary", "size", RootArgs.size)
			if err := trainer.BuildBPE(); err != nil {
				return fmt.Errorf("build bpe: %w", err)
			}

			artifact, err := trainer.Save()
			if err != nil {
				return fmt.Errorf("serialize artifact: %w", err)
			}

			if err := os.WriteFile(RootArgs.outputPath, artifact, 0o644); err != nil {
				return fmt.Errorf("write artifact: %w", err)
			}

			log.Info("tokenizer trained",
				"merges", len(trainer.MergeTable()),
				"vocabulary", len(trainer.IDToSeq()),
				"output", RootArgs.outputPath,
			)
			return nil
		},
	}

	cmd.Flags().
		StringVarP(&RootArgs.corpusPath, "corpus", "c", "", "Path to a corpus file to ingest")
	cmd.Flags().
		StringVarP(&RootArgs.text, "text", "t", "", "Inline text to ingest in addition to the corpus")
	cmd.Flags().
		Int64VarP(&RootArgs.symbolsCount, "symbols-count", "n", 0, "Number of bytes to ingest from the corpus, 0 for the whole file")
	cmd.Flags().
		IntVarP(&RootArgs.size, "size", "s", 256, "Target vocabulary size, raw bytes plus merges")
	cmd.Flags().
		Uint64VarP(&RootArgs.minCount, "min-count", "m", 1, "Minimum corpus occurrences for a word to be considered")
	cmd.Flags().
		IntVarP(&RootArgs.maxWorker, "max-worker", "w", 1, "Maximum goroutines used for corpus ingestion")
	cmd.Flags().
		IntVar(&RootArgs.cacheSize, "cache-size", 0, "Number of frequent words to precompute into the artifact's cache")
	cmd.Flags().
		StringVarP(&RootArgs.outputPath, "output", "o", "tokenizer.bpe", "Path to write the trained tokenizer artifact")

	return cmd
}

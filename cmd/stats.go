package cmd

import (
	"fmt"
	"math"

	"github.com/conneroisu/bpetok/pkg/bpe"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

// NewStatsCommand returns a new stats command.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report statistics about a trained vocabulary's compression",
		Long: `
Trains a tokenizer the same way "train" does, then reports the mean,
variance, and entropy of how many tokens each distinct word's merged
sequence compressed down to — a quick way to sanity-check a vocabulary
size or min-count choice without inspecting individual merges.
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
				if err := trainer.TrainOnCorpus(RootArgs.corpusPath, RootArgs.symbolsCount); err != nil {
					return fmt.Errorf("ingest corpus: %w", err)
				}
			}
			if RootArgs.text != "" {
				trainer.TrainOnText(RootArgs.text)
			}
			if err := trainer.BuildBPE(); err != nil {
				return fmt.Errorf("build bpe: %w", err)
			}

			lengths := trainer.TokenSequenceLengths()
			if len(lengths) == 0 {
				fmt.Println("no vocabulary entries to report on")
				return nil
			}

			values := make([]float64, len(lengths))
			countByLength := make(map[int]float64, len(lengths))
			for i, length := range lengths {
				values[i] = float64(length)
				countByLength[length]++
			}

			mean, variance := stat.MeanVariance(values, nil)

			probabilities := make([]float64, 0, len(countByLength))
			for _, count := range countByLength {
				probabilities = append(probabilities, count/float64(len(lengths)))
			}
			entropyBits := stat.Entropy(probabilities) / math.Ln2

			fmt.Printf("words:                      %d\n", len(lengths))
			fmt.Printf("mean token-sequence length: %.4f\n", mean)
			fmt.Printf("variance:                   %.4f\n", variance)
			fmt.Printf("entropy (bits):             %.4f\n", entropyBits)
			return nil
		},
	}

	cmd.Flags().StringVarP(&RootArgs.corpusPath, "corpus", "c", "", "Path to a corpus file to ingest")
	cmd.Flags().StringVarP(&RootArgs.text, "text", "t", "", "Inline text to ingest in addition to the corpus")
	cmd.Flags().Int64VarP(&RootArgs.symbolsCount, "symbols-count", "n", 0, "Number of bytes to ingest from the corpus, 0 for the whole file")
	cmd.Flags().IntVarP(&RootArgs.size, "size", "s", 256, "Target vocabulary size, raw bytes plus merges")
	cmd.Flags().Uint64VarP(&RootArgs.minCount, "min-count", "m", 1, "Minimum corpus occurrences for a word to be considered")
	cmd.Flags().IntVarP(&RootArgs.maxWorker, "max-worker", "w", 1, "Maximum goroutines used for corpus ingestion")
	cmd.Flags().IntVar(&RootArgs.cacheSize, "cache-size", 0, "Number of frequent words to precompute into the artifact's cache")

	return cmd
}

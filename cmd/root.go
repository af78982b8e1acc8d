// Package cmd contains the commands for the bpetok CLI.
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// rootArgs is the root command arguments, shared across subcommands the
// same way flags threaded through RootArgs by the teacher's CLI.
type rootArgs struct {
	verbose bool

	corpusPath    string
	text          string
	symbolsCount  int64
	tokenizerPath string
	outputPath    string

	size      int
	minCount  uint64
	maxWorker int
	cacheSize int
}

// RootArgs is the root command arguments.
var RootArgs rootArgs

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bpetok",
	Short: "A byte-level BPE tokenizer trainer and encoder",
	Long: `
A byte-level BPE tokenizer trainer and encoder.

Train a merge-based vocabulary on a text corpus and use it to encode and
decode text against a mapped, zero-copy tokenizer artifact.
	`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if RootArgs.verbose {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&RootArgs.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&RootArgs.tokenizerPath, "tokenizer-path", "p", "tokenizer.bpe", "Path to the tokenizer artifact")

	rootCmd.AddCommand(NewTrainCommand())
	rootCmd.AddCommand(NewEncodeCommand())
	rootCmd.AddCommand(NewDecodeCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewVerifyCommand())
}

// Command bpetok trains and runs a byte-level BPE tokenizer.
package main

import "github.com/conneroisu/bpetok/cmd"

func main() {
	cmd.Execute()
}

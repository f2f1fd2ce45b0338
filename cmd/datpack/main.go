package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kelvane/go-datpack/pkg/datpack"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "datpack",
	Short:   "datpack - block-compressed game archive extractor",
	Long:    "datpack reconstructs files out of block-compressed game archives.",
	Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseOffsets parses offset arguments in decimal or 0x-prefixed hex form
func parseOffsets(args []string) ([]int64, error) {
	offsets := make([]int64, 0, len(args))
	for _, arg := range args {
		off, err := datpack.ParseOffset(arg)
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, off)
	}
	return offsets, nil
}

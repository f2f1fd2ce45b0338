// cmd/datpack/inspect_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kelvane/go-datpack/pkg/inspect"
)

func init() {
	rootCmd.AddCommand(inspectCmd())
}

func inspectCmd() *cobra.Command {
	var archivePath string

	cmd := &cobra.Command{
		Use:   "inspect OFFSET...",
		Short: "Probe archive metadata records",
		Long: `Inspect reads the archive header and the metadata record at each given
offset without decoding any block data, so it is cheap even on very large
archives. Offsets are decimal or 0x-prefixed hex.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offsets, err := parseOffsets(args)
			if err != nil {
				return err
			}

			opts := &inspect.Options{
				ArchivePath: archivePath,
				Offsets:     offsets,
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			result, err := inspect.Inspect(opts)
			if err != nil && result == nil {
				return err
			}

			fmt.Print(result.Summary())

			if !result.Success() {
				return fmt.Errorf("archive inspection failed")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&archivePath, "archive", "a", "", "Archive file (required)")

	_ = cmd.MarkFlagRequired("archive")

	return cmd
}

// cmd/datpack/extract_cmd.go

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/kelvane/go-datpack/pkg/datpack"
	"github.com/kelvane/go-datpack/pkg/extract"
)

func init() {
	rootCmd.AddCommand(extractCmd())
}

func extractCmd() *cobra.Command {
	var archivePath, outputDir string
	var workers int
	var digest bool
	var compress bool
	var overwrite bool
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "extract OFFSET...",
		Short: "Extract files from an archive by offset",
		Long: `Extract reconstructs the files whose metadata records sit at the given
archive offsets and writes each one into the output directory, named by
its offset. Offsets are decimal or 0x-prefixed hex.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offsets, err := parseOffsets(args)
			if err != nil {
				return err
			}

			if workers <= 0 {
				workers = defaultWorkers()
			}

			// Prepare options
			opts := &extract.Options{
				ArchivePath: archivePath,
				Offsets:     offsets,
				OutputDir:   outputDir,
				Workers:     workers,
				Digest:      digest,
				Compress:    compress,
				Overwrite:   overwrite,
				Verbose:     verbose,
				Quiet:       quiet,
			}

			// Validate and set defaults
			if err := opts.Validate(); err != nil {
				return err
			}

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			log("Starting extraction...")
			log("  Archive:     %s", opts.ArchivePath)
			log("  Output:      %s", opts.OutputDir)
			log("  Files:       %d", len(opts.Offsets))
			log("  Workers:     %d", opts.Workers)
			if compress {
				log("  Mode:        XZ (recompressing outputs)")
			}
			if overwrite {
				log("  Mode:        OVERWRITE (replacing existing files)")
			}
			log("")

			// Create progress callback and progress container
			var progressCb extract.ProgressCallback
			var progress *mpb.Progress

			if !quiet && !verbose {
				progressCb, progress = extract.ProgressBarCallback()
			} else if verbose {
				progressCb = func(event extract.ProgressEvent) {
					switch event.Type {
					case extract.EventFileStart:
						fmt.Printf("  Extracting %s (%s)...\n",
							event.Name, datpack.FormatSize(uint64(event.Total)))
					case extract.EventFileComplete:
						fmt.Printf("  Finished %s\n", event.Name)
					case extract.EventError:
						fmt.Printf("  Error at %s\n", datpack.FormatOffset(event.Offset))
					}
				}
			}

			// Perform extraction
			result, err := extract.Extract(opts, progressCb)

			// Wait for progress bars to finish rendering
			if progress != nil {
				progress.Wait()
			}

			if err != nil {
				return err
			}

			if digest {
				seen := make(map[int64]bool)
				for _, off := range opts.Offsets {
					if seen[off] {
						continue
					}
					seen[off] = true
					if d, ok := result.Digests[off]; ok {
						fmt.Printf("%s  %s\n", d, datpack.FormatOffset(off))
					}
				}
			}

			for _, warning := range result.Warnings {
				fmt.Printf("Warning: %s\n", warning)
			}

			// Final report
			fmt.Println()
			fmt.Print(extract.FormatSummary(result))

			if len(result.Errors) > 0 {
				return fmt.Errorf("finished with %d errors", len(result.Errors))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&archivePath, "archive", "a", "", "Archive file (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Output directory")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&digest, "digest", false, "Print a BLAKE3 digest for every extracted file")
	cmd.Flags().BoolVar(&compress, "xz", false, "Write outputs as xz streams")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	_ = cmd.MarkFlagRequired("archive")

	return cmd
}

// defaultWorkers picks the auto worker count. Every worker buffers one
// decoded file, so machines with little memory get fewer workers than
// cores.
func defaultWorkers() int {
	workers := runtime.NumCPU()
	if memKB, err := getTotalSystemMemory(); err == nil {
		if byMem := int(memKB / (512 * 1024)); byMem < workers {
			workers = byMem
		}
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
